package bot

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func TestSendRecap(t *testing.T) {
	s := &fakeSender{}
	require.NoError(t, sendRecap(s, 42, "*Week 3* recap"))
	require.Len(t, s.sent, 1)
	assert.Equal(t, int64(42), s.sent[0].ChatID)
	assert.Equal(t, "Markdown", s.sent[0].ParseMode)
	assert.Equal(t, "*Week 3* recap", s.sent[0].Text)
}

func TestSendRecap_Errors(t *testing.T) {
	assert.ErrorIs(t, sendRecap(&fakeSender{}, 0, "recap"), ErrNoChat)

	cause := errors.New("Bad Request: chat not found")
	err := sendRecap(&fakeSender{err: cause}, 42, "recap")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "chat 42")
}

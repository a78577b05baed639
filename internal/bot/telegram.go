package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, wrapped WrappedService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(wrapped),
		chatID:  chatID,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			if update.Message.IsCommand() {
				msg := t.handler.HandleCommand(ctx, update)
				if _, err := t.bot.Send(msg); err != nil {
					slog.Error("Error sending message", "error", err)
				}
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// ErrNoChat is returned when a recap is pushed without a configured chat.
var ErrNoChat = errors.New("chat ID not set")

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

func (t *TelegramBot) SendMessage(text string) error {
	return sendRecap(t.bot, t.chatID, text)
}

func sendRecap(s sender, chatID int64, text string) error {
	if chatID == 0 {
		slog.Error("Recap not sent", "error", ErrNoChat)
		return ErrNoChat
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := s.Send(msg); err != nil {
		slog.Error("Error sending recap", "chat_id", chatID, "error", err)
		return fmt.Errorf("sending recap to chat %d: %w", chatID, err)
	}
	return nil
}

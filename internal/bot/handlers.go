package bot

import (
	"context"
	"errors"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/hoopswrapped/internal/service"
)

type WrappedService interface {
	OpenSession(ctx context.Context, ownerID string) (*service.Session, error)
	OpenTeamSession(ctx context.Context, teamName string) (*service.Session, error)
	Section(ctx context.Context, id string, section service.Section) (string, error)
}

const helpText = "Available commands:\n" +
	"/wrapped [team] - Full season wrap-up (your team by default)\n" +
	"/weeks - Weekly average, best and worst week\n" +
	"/streaks - Longest win and loss streaks\n" +
	"/players - Sleeper and bust\n" +
	"/clutch - Clutch player\n" +
	"/comeback - Biggest comeback\n" +
	"/bench - Points left on the bench\n" +
	"/rivals - Favorite opponent and nemesis\n" +
	"/titles - League titles"

// Handler keeps one analytics session per chat.
type Handler struct {
	wrapped  WrappedService
	mu       sync.Mutex
	sessions map[int64]string
}

func NewHandler(wrapped WrappedService) *Handler {
	return &Handler{
		wrapped:  wrapped,
		sessions: make(map[int64]string),
	}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	chatID := update.Message.Chat.ID
	msg := tgbotapi.NewMessage(chatID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to Hoops Wrapped! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "wrapped":
		h.handleWrapped(ctx, &msg, chatID, args)
	case "weeks":
		h.handleSection(ctx, &msg, chatID, service.SectionWeeks)
	case "streaks":
		h.handleSection(ctx, &msg, chatID, service.SectionStreaks)
	case "players":
		h.handleSection(ctx, &msg, chatID, service.SectionPlayers)
	case "clutch":
		h.handleSection(ctx, &msg, chatID, service.SectionClutch)
	case "comeback":
		h.handleSection(ctx, &msg, chatID, service.SectionComeback)
	case "bench":
		h.handleSection(ctx, &msg, chatID, service.SectionBench)
	case "rivals":
		h.handleSection(ctx, &msg, chatID, service.SectionRivals)
	case "titles":
		h.handleSection(ctx, &msg, chatID, service.SectionTitles)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

// handleWrapped always starts a fresh session so /wrapped reflects the latest
// league data and can switch teams.
func (h *Handler) handleWrapped(ctx context.Context, msg *tgbotapi.MessageConfig, chatID int64, teamName string) {
	var session *service.Session
	var err error
	if teamName != "" {
		session, err = h.wrapped.OpenTeamSession(ctx, teamName)
	} else {
		session, err = h.wrapped.OpenSession(ctx, "")
	}
	if err != nil {
		msg.Text = service.UserMessage(err)
		return
	}
	h.setSession(chatID, session.ID)

	text, err := h.wrapped.Section(ctx, session.ID, service.SectionWrapped)
	if err != nil {
		msg.Text = service.UserMessage(err)
		return
	}
	msg.Text = text
}

func (h *Handler) handleSection(ctx context.Context, msg *tgbotapi.MessageConfig, chatID int64, section service.Section) {
	id, err := h.session(ctx, chatID)
	if err != nil {
		msg.Text = service.UserMessage(err)
		return
	}

	text, err := h.wrapped.Section(ctx, id, section)
	if errors.Is(err, service.ErrSessionNotFound) {
		h.clearSession(chatID)
		if id, err = h.session(ctx, chatID); err == nil {
			text, err = h.wrapped.Section(ctx, id, section)
		}
	}
	if err != nil {
		msg.Text = service.UserMessage(err)
		return
	}
	msg.Text = text
}

// session returns the chat's session, opening one for the default owner when
// the chat has none.
func (h *Handler) session(ctx context.Context, chatID int64) (string, error) {
	h.mu.Lock()
	id, ok := h.sessions[chatID]
	h.mu.Unlock()
	if ok {
		return id, nil
	}

	session, err := h.wrapped.OpenSession(ctx, "")
	if err != nil {
		return "", err
	}
	h.setSession(chatID, session.ID)
	return session.ID, nil
}

func (h *Handler) setSession(chatID int64, id string) {
	h.mu.Lock()
	h.sessions[chatID] = id
	h.mu.Unlock()
}

func (h *Handler) clearSession(chatID int64) {
	h.mu.Lock()
	delete(h.sessions, chatID)
	h.mu.Unlock()
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/omarshaarawi/hoopswrapped/internal/bot"
	"github.com/omarshaarawi/hoopswrapped/internal/scheduler"
	"github.com/omarshaarawi/hoopswrapped/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the Telegram bot and the recap scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sendMessage func(string) error
	if a.cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(a.cfg.TelegramBot.Token, a.cfg.TelegramBot.ChatID, a.wrapped)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("TELEGRAM_TOKEN not set, bot disabled")
	}

	location, err := a.cfg.Wrapped.RecapLocation()
	if err != nil {
		return err
	}
	sched, err := scheduler.NewScheduler(a.wrapped, a.wrapped, a.cfg.Wrapped.RecapSchedule, location, sendMessage)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := server.New(a.cfg.Server.Addr, a.wrapped, a.registry)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

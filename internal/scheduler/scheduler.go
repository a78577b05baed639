package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

type RecapSource interface {
	GetRecap(ctx context.Context) (string, error)
}

type SessionSweeper interface {
	SweepSessions() int
}

type Scheduler struct {
	s           gocron.Scheduler
	recaps      RecapSource
	sweeper     SessionSweeper
	sendMessage func(string) error
	recapCron   string
	location    *time.Location
	timeout     time.Duration
}

// NewScheduler builds the job runner. recapCron is read in location, UTC when
// nil. A nil sendMessage disables the recap job; sessions are swept either way.
func NewScheduler(recaps RecapSource, sweeper SessionSweeper, recapCron string, location *time.Location, sendMessage func(string) error) (*Scheduler, error) {
	if location == nil {
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		recaps:      recaps,
		sweeper:     sweeper,
		sendMessage: sendMessage,
		recapCron:   recapCron,
		location:    location,
		timeout:     10 * time.Minute,
	}, nil
}

func (s *Scheduler) Start() error {
	// Idle sessions - every minute
	_, err := s.s.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(s.sweepSessions),
	)
	if err != nil {
		return fmt.Errorf("failed to create session sweep job: %w", err)
	}

	if s.sendMessage != nil {
		_, err = s.s.NewJob(
			gocron.CronJob(s.recapCron, false),
			gocron.NewTask(s.sendRecap),
		)
		if err != nil {
			return fmt.Errorf("failed to create recap job: %w", err)
		}
	}

	s.s.Start()
	if s.sendMessage != nil {
		slog.Info("Season recap scheduled", "cron", s.recapCron, "tz", s.location.String())
	}
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sweepSessions() {
	s.sweeper.SweepSessions()
}

func (s *Scheduler) sendRecap() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	recap, err := s.recaps.GetRecap(ctx)
	if err != nil {
		slog.Error("Failed to get season recap", "error", err)
		return
	}
	if err := s.sendMessage(recap); err != nil {
		slog.Error("Failed to send season recap", "error", err)
	}
}

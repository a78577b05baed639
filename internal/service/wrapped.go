package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omarshaarawi/hoopswrapped/internal/analytics"
	"github.com/omarshaarawi/hoopswrapped/internal/config"
	"github.com/omarshaarawi/hoopswrapped/internal/metrics"
	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

type LeagueProvider interface {
	analytics.BoxScoreSource
	FetchLeague(ctx context.Context) (*models.League, error)
}

type WrappedService struct {
	provider     LeagueProvider
	sessions     *SessionStore
	opts         analytics.Options
	metrics      *metrics.Metrics
	defaultOwner string
}

func NewWrappedService(provider LeagueProvider, cfg config.Wrapped, m *metrics.Metrics) (*WrappedService, error) {
	policy, err := analytics.ParseTiePolicy(cfg.TiePolicy)
	if err != nil {
		return nil, err
	}
	opts := analytics.DefaultOptions()
	opts.TiePolicy = policy

	return &WrappedService{
		provider:     provider,
		sessions:     NewSessionStore(cfg.SessionTTL, m),
		opts:         opts,
		metrics:      m,
		defaultOwner: cfg.OwnerID,
	}, nil
}

func (s *WrappedService) Sessions() *SessionStore {
	return s.sessions
}

func (s *WrappedService) snapshot(ctx context.Context) (*analytics.Snapshot, error) {
	league, err := s.provider.FetchLeague(ctx)
	if err != nil {
		return nil, &analytics.UpstreamError{Op: "league", Err: err}
	}
	return analytics.NewSnapshot(league, s.provider, analytics.WithMetrics(s.metrics)), nil
}

// OpenSession loads the league and pins the team owned by ownerID. An empty
// ownerID falls back to the configured owner.
func (s *WrappedService) OpenSession(ctx context.Context, ownerID string) (*Session, error) {
	if ownerID == "" {
		ownerID = s.defaultOwner
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	team, err := snap.ResolveTeam(ownerID)
	if err != nil {
		return nil, err
	}
	return s.open(snap, team), nil
}

// OpenTeamSession pins a team looked up by name instead of owner.
func (s *WrappedService) OpenTeamSession(ctx context.Context, teamName string) (*Session, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	team, err := snap.FindTeam(teamName)
	if err != nil {
		return nil, err
	}
	return s.open(snap, team), nil
}

func (s *WrappedService) open(snap *analytics.Snapshot, team *models.Team) *Session {
	session := s.sessions.Add(team, analytics.NewAnalyzer(snap, s.opts))
	slog.Info("Opened session", "session", session.ID, "team", team.Name)
	return session
}

func (s *WrappedService) Session(id string) (*Session, error) {
	return s.sessions.Get(id)
}

func (s *WrappedService) CloseSession(id string) error {
	if !s.sessions.Remove(id) {
		return ErrSessionNotFound
	}
	return nil
}

func (s *WrappedService) SweepSessions() int {
	n := s.sessions.Sweep()
	if n > 0 {
		slog.Info("Swept idle sessions", "removed", n, "open", s.sessions.Len())
	}
	return n
}

func (s *WrappedService) Report(ctx context.Context, id string) (analytics.Report, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return analytics.Report{}, err
	}
	report, err := session.Analyzer.Wrapped(ctx, session.Team)
	if err != nil {
		return analytics.Report{}, err
	}
	if w := report.Warnings(); len(w) > 0 {
		slog.Warn("Report has partial metrics", "session", id, "team", session.Team.Name, "warnings", len(w))
	}
	return report, nil
}

// OwnerReport runs a one-shot session for the CLI and scheduled recaps.
func (s *WrappedService) OwnerReport(ctx context.Context, ownerID, teamName string) (analytics.Report, error) {
	var session *Session
	var err error
	if teamName != "" {
		session, err = s.OpenTeamSession(ctx, teamName)
	} else {
		session, err = s.OpenSession(ctx, ownerID)
	}
	if err != nil {
		return analytics.Report{}, err
	}
	defer s.sessions.Remove(session.ID)

	return s.Report(ctx, session.ID)
}

func (s *WrappedService) GetRecap(ctx context.Context) (string, error) {
	report, err := s.OwnerReport(ctx, "", "")
	if err != nil {
		return "", fmt.Errorf("error building recap: %w", err)
	}
	return FormatReport(report), nil
}

// Section renders one part of a session's report for chat.
func (s *WrappedService) Section(ctx context.Context, id string, section Section) (string, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return "", err
	}
	a, team := session.Analyzer, session.Team

	switch section {
	case SectionWrapped:
		report, err := s.Report(ctx, id)
		if err != nil {
			return "", err
		}
		return FormatReport(report), nil
	case SectionWeeks:
		return formatWeeks(team.Name, a.WeeklyAverage(team), a.BestWeek(team), a.WorstWeek(team)), nil
	case SectionStreaks:
		return formatStreaks(team.Name, a.LongestStreaks(team)), nil
	case SectionPlayers:
		return formatPlayers(team.Name, a.Sleeper(team), a.Bust(team)), nil
	case SectionClutch:
		res, err := a.ClutchPlayer(ctx, team)
		if err != nil {
			return "", err
		}
		return formatClutch(team.Name, res), nil
	case SectionComeback:
		res, err := a.BiggestComeback(ctx, team)
		if err != nil {
			return "", err
		}
		return formatComeback(team.Name, res), nil
	case SectionBench:
		res, err := a.MissingPoints(ctx, team)
		if err != nil {
			return "", err
		}
		return formatBench(team.Name, res), nil
	case SectionRivals:
		return formatRivals(team.Name, a.HeadToHead(team)), nil
	case SectionTitles:
		return formatTitles(team.Name, a.BonusTitles(team)), nil
	}
	return "", fmt.Errorf("unknown section %q", section)
}

// UserMessage turns a service error into something fit for a chat reply.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, analytics.ErrTeamNotFound):
		return "Couldn't find that team in the league."
	case errors.Is(err, ErrSessionNotFound):
		return "Your session expired. Try /wrapped again."
	case errors.Is(err, analytics.ErrUpstream):
		return "ESPN isn't answering right now. Try again in a bit."
	}
	return fmt.Sprintf("Something went wrong: %v", err)
}

package analytics

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/omarshaarawi/hoopswrapped/internal/metrics"
	"github.com/omarshaarawi/hoopswrapped/internal/models"
	"github.com/omarshaarawi/hoopswrapped/internal/repository/memory"
)

const teamNameThreshold = 0.6

// BoxScoreSource retrieves the box scores of every matchup for one day.
type BoxScoreSource interface {
	BoxScores(ctx context.Context, matchupPeriod, scoringPeriod int) ([]models.BoxScore, error)
}

// Snapshot is the read-only season view for one analytics session. Box-score
// lookups are memoized for the lifetime of the snapshot.
type Snapshot struct {
	league  *models.League
	source  BoxScoreSource
	boxes   *memory.BoxScoreRepository
	metrics *metrics.Metrics
}

type SnapshotOption func(*Snapshot)

func WithMetrics(m *metrics.Metrics) SnapshotOption {
	return func(s *Snapshot) {
		s.metrics = m
	}
}

func NewSnapshot(league *models.League, source BoxScoreSource, opts ...SnapshotOption) *Snapshot {
	s := &Snapshot{
		league: league,
		source: source,
		boxes:  memory.NewBoxScoreRepository(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Snapshot) League() *models.League {
	return s.league
}

func (s *Snapshot) Team(id int) *models.Team {
	return s.league.Team(id)
}

func (s *Snapshot) teamName(id int) string {
	if t := s.league.Team(id); t != nil {
		return t.Name
	}
	return fmt.Sprintf("Team %d", id)
}

// ResolveTeam returns the team owned by ownerID.
func (s *Snapshot) ResolveTeam(ownerID string) (*models.Team, error) {
	for _, team := range s.league.Teams {
		if team.OwnedBy(ownerID) {
			return team, nil
		}
	}
	return nil, fmt.Errorf("owner %q: %w", ownerID, ErrTeamNotFound)
}

// FindTeam looks a team up by display name, tolerating typos.
func (s *Snapshot) FindTeam(name string) (*models.Team, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil, fmt.Errorf("empty team name: %w", ErrTeamNotFound)
	}

	var bestMatch *models.Team
	bestScore := teamNameThreshold

	for _, team := range s.league.Teams {
		candidate := strings.ToLower(team.Name)
		if candidate == query || strings.ToLower(team.Abbreviation) == query {
			return team, nil
		}
		distance := fuzzy.LevenshteinDistance(query, candidate)
		maxLen := float64(max(utf8.RuneCountInString(query), utf8.RuneCountInString(candidate)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > bestScore {
			bestScore = similarity
			bestMatch = team
		}
	}

	if bestMatch == nil {
		return nil, fmt.Errorf("team %q: %w", name, ErrTeamNotFound)
	}
	return bestMatch, nil
}

// BoxScoresFor returns the box scores of one day, fetching at most once per
// (matchup period, scoring period) for the life of the snapshot.
func (s *Snapshot) BoxScoresFor(ctx context.Context, matchupPeriod, scoringPeriod int) ([]models.BoxScore, error) {
	if boxes, ok := s.boxes.GetBoxScores(matchupPeriod, scoringPeriod); ok {
		s.metrics.ObserveBoxScoreLookup(true)
		return boxes, nil
	}
	s.metrics.ObserveBoxScoreLookup(false)

	boxes, err := s.source.BoxScores(ctx, matchupPeriod, scoringPeriod)
	if err != nil {
		return nil, &UpstreamError{
			Op:            "box scores",
			MatchupPeriod: matchupPeriod,
			ScoringPeriod: scoringPeriod,
			Err:           err,
		}
	}
	s.boxes.SaveBoxScores(matchupPeriod, scoringPeriod, boxes)
	return boxes, nil
}

// teamBoxScore finds the team's matchup on one day. found is false when the
// provider answered but the team is absent.
func (s *Snapshot) teamBoxScore(ctx context.Context, teamID, matchupPeriod, scoringPeriod int) (models.BoxScore, bool, error) {
	boxes, err := s.BoxScoresFor(ctx, matchupPeriod, scoringPeriod)
	if err != nil {
		return models.BoxScore{}, false, err
	}
	for _, box := range boxes {
		if box.Involves(teamID) {
			return box, true, nil
		}
	}
	return models.BoxScore{}, false, nil
}

func (s *Snapshot) CacheStats() (hits, misses int) {
	return s.boxes.Stats()
}

package fantasy

import (
	"context"
	"log/slog"

	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

type LeagueSource interface {
	FetchLeague(ctx context.Context) (*models.League, error)
	BoxScores(ctx context.Context, matchupPeriod, scoringPeriod int) ([]models.BoxScore, error)
}

// API is the provider used by the analytics layer. It trims upstream data to
// the regular season.
type API struct {
	source LeagueSource
}

func NewAPI(source LeagueSource) *API {
	return &API{source: source}
}

func (a *API) FetchLeague(ctx context.Context) (*models.League, error) {
	league, err := a.source.FetchLeague(ctx)
	if err != nil {
		return nil, err
	}
	for _, team := range league.Teams {
		team.Schedule = regularSeason(team.Schedule)
	}
	slog.Info("Fetched league", "league", league.ID, "season", league.Season, "teams", len(league.Teams))
	return league, nil
}

func (a *API) BoxScores(ctx context.Context, matchupPeriod, scoringPeriod int) ([]models.BoxScore, error) {
	return a.source.BoxScores(ctx, matchupPeriod, scoringPeriod)
}

func regularSeason(schedule []models.Matchup) []models.Matchup {
	kept := make([]models.Matchup, 0, models.RegularSeasonWeeks)
	for _, m := range schedule {
		if m.Week >= 1 && m.Week <= models.RegularSeasonWeeks {
			kept = append(kept, m)
		}
	}
	return kept
}

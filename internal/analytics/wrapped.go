package analytics

import (
	"context"

	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

// Report is a team's full season wrap-up.
type Report struct {
	Season        int                      `json:"season" yaml:"season"`
	TeamID        int                      `json:"team_id" yaml:"team_id"`
	TeamName      string                   `json:"team_name" yaml:"team_name"`
	WeeklyAverage float64                  `json:"weekly_average" yaml:"weekly_average"`
	BestWeek      Result[WeekScore]        `json:"best_week" yaml:"best_week"`
	WorstWeek     Result[WeekScore]        `json:"worst_week" yaml:"worst_week"`
	Streaks       Streaks                  `json:"streaks" yaml:"streaks"`
	Sleeper       Result[PlayerDivergence] `json:"sleeper" yaml:"sleeper"`
	Bust          Result[PlayerDivergence] `json:"bust" yaml:"bust"`
	Clutch        Result[ClutchPlayer]     `json:"clutch" yaml:"clutch"`
	Comeback      Result[Comeback]         `json:"comeback" yaml:"comeback"`
	MissingPoints Result[BenchPoints]      `json:"missing_points" yaml:"missing_points"`
	HeadToHead    HeadToHead               `json:"head_to_head" yaml:"head_to_head"`
	Titles        TitleSet                 `json:"titles" yaml:"titles"`
}

// Warnings collects the partial-result warnings of every window-walking metric.
func (r Report) Warnings() []Warning {
	var all []Warning
	all = append(all, r.Clutch.Warnings...)
	all = append(all, r.Comeback.Warnings...)
	all = append(all, r.MissingPoints.Warnings...)
	return all
}

func (a *Analyzer) Wrapped(ctx context.Context, team *models.Team) (Report, error) {
	report := Report{
		Season:        a.snap.League().Season,
		TeamID:        team.ID,
		TeamName:      team.Name,
		WeeklyAverage: a.WeeklyAverage(team),
		BestWeek:      a.BestWeek(team),
		WorstWeek:     a.WorstWeek(team),
		Streaks:       a.LongestStreaks(team),
		Sleeper:       a.Sleeper(team),
		Bust:          a.Bust(team),
		HeadToHead:    a.HeadToHead(team),
		Titles:        a.BonusTitles(team),
	}

	var err error
	if report.Clutch, err = a.ClutchPlayer(ctx, team); err != nil {
		return Report{}, err
	}
	if report.Comeback, err = a.BiggestComeback(ctx, team); err != nil {
		return Report{}, err
	}
	if report.MissingPoints, err = a.MissingPoints(ctx, team); err != nil {
		return Report{}, err
	}
	return report, nil
}

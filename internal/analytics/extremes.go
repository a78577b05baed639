package analytics

import (
	"math"

	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

type WeekScore struct {
	Week  int     `json:"week" yaml:"week"`
	Score float64 `json:"score" yaml:"score"`
}

type Streaks struct {
	Win  int `json:"win" yaml:"win"`
	Loss int `json:"loss" yaml:"loss"`
}

// BestWeek is the earliest week with the team's highest score.
func (a *Analyzer) BestWeek(team *models.Team) Result[WeekScore] {
	var best WeekScore
	for _, m := range regularSeason(team) {
		if score := m.Score(team.ID); score > best.Score {
			best = WeekScore{Week: m.Week, Score: score}
		}
	}
	if best.Week == 0 {
		return NoData[WeekScore]()
	}
	return Ok(best)
}

// WorstWeek is the earliest week with the team's lowest score.
func (a *Analyzer) WorstWeek(team *models.Team) Result[WeekScore] {
	worst := WeekScore{Score: math.Inf(1)}
	for _, m := range regularSeason(team) {
		if score := m.Score(team.ID); score < worst.Score {
			worst = WeekScore{Week: m.Week, Score: score}
		}
	}
	if worst.Week == 0 {
		return NoData[WeekScore]()
	}
	return Ok(worst)
}

func (a *Analyzer) LongestStreaks(team *models.Team) Streaks {
	var streaks Streaks
	win, loss := 0, 0
	for _, m := range regularSeason(team) {
		switch m.Outcome(team.ID) {
		case models.OutcomeWin:
			win++
			loss = 0
		case models.OutcomeLoss:
			loss++
			win = 0
		default:
			win = 0
			if a.opts.TiePolicy == TieBreaksWinOnly {
				loss++
			} else {
				loss = 0
			}
		}
		streaks.Win = max(streaks.Win, win)
		streaks.Loss = max(streaks.Loss, loss)
	}
	return streaks
}

func (a *Analyzer) WeeklyAverage(team *models.Team) float64 {
	return team.PointsFor / models.RegularSeasonWeeks
}

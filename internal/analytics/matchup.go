package analytics

import (
	"context"

	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

const reasonTeamMissing = "team not present in box scores"

type ClutchPlayer struct {
	Name string `json:"name" yaml:"name"`
	Wins int    `json:"wins" yaml:"wins"`
}

type Comeback struct {
	Deficit      float64 `json:"deficit" yaml:"deficit"`
	Week         int     `json:"week" yaml:"week"`
	OpponentID   int     `json:"opponent_id" yaml:"opponent_id"`
	OpponentName string  `json:"opponent_name" yaml:"opponent_name"`
}

type BenchPoints struct {
	Points float64 `json:"points" yaml:"points"`
	// ShortDays counts the days fewer than the expected active slots scored.
	ShortDays int `json:"short_days" yaml:"short_days"`
}

type playerKey struct {
	id   int
	name string
}

// ClutchPlayer credits, for every close win, the active player who most
// outperformed their average on the final day. The player credited most often
// wins; on equal counts the one who reached that count first is kept.
func (a *Analyzer) ClutchPlayer(ctx context.Context, team *models.Team) (Result[ClutchPlayer], error) {
	var warnings []Warning
	counts := make(map[playerKey]int)
	var leader playerKey
	leaderCount := 0

	for _, m := range regularSeason(team) {
		if m.Outcome(team.ID) != models.OutcomeWin || m.Margin() > a.opts.ClutchMargin {
			continue
		}
		end, ok := FinalScoringPeriod(m.Week)
		if !ok {
			continue
		}

		box, found, err := a.snap.teamBoxScore(ctx, team.ID, m.Week, end)
		if err != nil {
			return Result[ClutchPlayer]{}, err
		}
		if !found {
			warnings = append(warnings, Warning{Week: m.Week, ScoringPeriod: end, Reason: reasonTeamMissing})
			continue
		}

		var hero *models.Player
		bestDiff := 0.0
		lineup := box.Lineup(team.ID)
		for i := range lineup {
			p := &lineup[i]
			if !p.Slot.Active() {
				continue
			}
			if diff := p.Points - p.AvgPoints; diff > bestDiff {
				bestDiff = diff
				hero = p
			}
		}
		if hero == nil {
			continue
		}

		key := playerKey{id: hero.ID, name: hero.Name}
		counts[key]++
		if counts[key] > leaderCount {
			leader = key
			leaderCount = counts[key]
		}
	}

	if leaderCount == 0 {
		return NoData[ClutchPlayer]().withWarnings(warnings), nil
	}
	return Ok(ClutchPlayer{Name: leader.name, Wins: leaderCount}).withWarnings(warnings), nil
}

// BiggestComeback walks every won week day by day and reports the largest
// cumulative deficit the team overcame.
func (a *Analyzer) BiggestComeback(ctx context.Context, team *models.Team) (Result[Comeback], error) {
	var warnings []Warning
	var best Comeback

	for _, m := range regularSeason(team) {
		if m.Outcome(team.ID) != models.OutcomeWin {
			continue
		}
		window, ok := MatchupWindow(m.Week)
		if !ok {
			continue
		}

		var forCum, oppCum float64
		for sp := window.FirstScoringPeriod; sp <= window.LastScoringPeriod; sp++ {
			box, found, err := a.snap.teamBoxScore(ctx, team.ID, m.Week, sp)
			if err != nil {
				return Result[Comeback]{}, err
			}
			if !found {
				warnings = append(warnings, Warning{Week: m.Week, ScoringPeriod: sp, Reason: reasonTeamMissing})
				continue
			}

			pointsFor, pointsAgainst := box.Scores(team.ID)
			forCum += pointsFor
			oppCum += pointsAgainst
			if deficit := oppCum - forCum; deficit > best.Deficit {
				opponent := m.OpponentID(team.ID)
				best = Comeback{
					Deficit:      deficit,
					Week:         m.Week,
					OpponentID:   opponent,
					OpponentName: a.snap.teamName(opponent),
				}
			}
		}
	}

	if best.Week == 0 {
		return NoData[Comeback]().withWarnings(warnings), nil
	}
	return Ok(best).withWarnings(warnings), nil
}

// MissingPoints sums bench and IR points on days when fewer than the expected
// number of active slots produced points.
func (a *Analyzer) MissingPoints(ctx context.Context, team *models.Team) (Result[BenchPoints], error) {
	var warnings []Warning
	var total BenchPoints

	for _, m := range regularSeason(team) {
		window, ok := MatchupWindow(m.Week)
		if !ok {
			continue
		}

		for sp := window.FirstScoringPeriod; sp <= window.LastScoringPeriod; sp++ {
			box, found, err := a.snap.teamBoxScore(ctx, team.ID, m.Week, sp)
			if err != nil {
				return Result[BenchPoints]{}, err
			}
			if !found {
				warnings = append(warnings, Warning{Week: m.Week, ScoringPeriod: sp, Reason: reasonTeamMissing})
				continue
			}

			productive := 0
			benchPoints := 0.0
			for _, p := range box.Lineup(team.ID) {
				if p.Slot.Active() {
					if p.Points != 0 {
						productive++
					}
				} else {
					benchPoints += p.Points
				}
			}

			if productive < a.opts.ProductiveSlots {
				total.Points += benchPoints
				total.ShortDays++
			}
		}
	}

	return Ok(total).withWarnings(warnings), nil
}

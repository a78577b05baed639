package analytics

import "github.com/omarshaarawi/hoopswrapped/internal/models"

type PlayerDivergence struct {
	Name               string  `json:"name" yaml:"name"`
	AvgPoints          float64 `json:"avg_points" yaml:"avg_points"`
	ProjectedAvgPoints float64 `json:"projected_avg_points" yaml:"projected_avg_points"`
	Divergence         float64 `json:"divergence" yaml:"divergence"`
}

// divergence is positive when a player beat their projection.
func divergence(p models.Player) float64 {
	return (p.AvgPoints - p.ProjectedAvgPoints) + (p.TotalPoints - p.ProjectedTotalPoints)
}

// Sleeper is the roster player who most exceeded their projection.
func (a *Analyzer) Sleeper(team *models.Team) Result[PlayerDivergence] {
	return mostDivergent(team.Roster, 1)
}

// Bust is the roster player who fell furthest below their projection.
func (a *Analyzer) Bust(team *models.Team) Result[PlayerDivergence] {
	return mostDivergent(team.Roster, -1)
}

func mostDivergent(roster []models.Player, sign float64) Result[PlayerDivergence] {
	var chosen *models.Player
	best := 0.0
	for i := range roster {
		if d := sign * divergence(roster[i]); d > best {
			best = d
			chosen = &roster[i]
		}
	}
	if chosen == nil {
		return NoData[PlayerDivergence]()
	}
	return Ok(PlayerDivergence{
		Name:               chosen.Name,
		AvgPoints:          chosen.AvgPoints,
		ProjectedAvgPoints: chosen.ProjectedAvgPoints,
		Divergence:         best,
	})
}

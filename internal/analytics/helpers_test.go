package analytics

import (
	"context"
	"sync"

	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

// fakeSource records every upstream lookup.
type fakeSource struct {
	mu        sync.Mutex
	gen       func(matchupPeriod, scoringPeriod int) ([]models.BoxScore, error)
	calls     map[[2]int]int
	weekCalls map[int]int
	total     int
}

func newFakeSource(gen func(matchupPeriod, scoringPeriod int) ([]models.BoxScore, error)) *fakeSource {
	return &fakeSource{
		gen:       gen,
		calls:     make(map[[2]int]int),
		weekCalls: make(map[int]int),
	}
}

func (f *fakeSource) BoxScores(ctx context.Context, matchupPeriod, scoringPeriod int) ([]models.BoxScore, error) {
	f.mu.Lock()
	f.calls[[2]int{matchupPeriod, scoringPeriod}]++
	f.weekCalls[matchupPeriod]++
	f.total++
	f.mu.Unlock()
	if f.gen == nil {
		return nil, nil
	}
	return f.gen(matchupPeriod, scoringPeriod)
}

// buildTeam creates a team whose week i+1 result is results[i]. The team is
// always home; opponents rotate through the given ids.
func buildTeam(id int, name, results string, opponents ...int) *models.Team {
	if len(opponents) == 0 {
		opponents = []int{id + 100}
	}
	team := &models.Team{ID: id, Name: name, Owners: []string{name + "-owner"}}
	for i, r := range results {
		m := models.Matchup{Week: i + 1, HomeTeamID: id, AwayTeamID: opponents[i%len(opponents)]}
		switch r {
		case 'W':
			m.HomeScore, m.AwayScore, m.Winner = 110, 100, models.WinnerHome
		case 'L':
			m.HomeScore, m.AwayScore, m.Winner = 100, 110, models.WinnerAway
		default:
			m.HomeScore, m.AwayScore, m.Winner = 100, 100, models.WinnerTie
		}
		team.Schedule = append(team.Schedule, m)
	}
	return team
}

func newLeague(teams ...*models.Team) *models.League {
	return &models.League{ID: 1, Name: "Test League", Season: 2025, Teams: teams}
}

func newTestAnalyzer(league *models.League, src BoxScoreSource) *Analyzer {
	return NewAnalyzer(NewSnapshot(league, src), DefaultOptions())
}

// activeLineup returns one active player per points value.
func activeLineup(points ...float64) []models.Player {
	lineup := make([]models.Player, 0, len(points))
	for i, p := range points {
		lineup = append(lineup, models.Player{
			ID:     1000 + i,
			Name:   "starter",
			Slot:   models.SlotUtility,
			Points: p,
		})
	}
	return lineup
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}

package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

func player(id int, name string, slot models.SlotPosition, points, avg float64) models.Player {
	return models.Player{ID: id, Name: name, Slot: slot, Points: points, AvgPoints: avg}
}

func TestClutchPlayer(t *testing.T) {
	team := buildTeam(1, "Splash", "WWWLW", 2)
	team.Schedule[4].HomeScore = 300 // blowout, not clutch
	league := newLeague(team, &models.Team{ID: 2, Name: "Rivals"})

	finalDay := map[int][]models.Player{
		1: {
			player(1, "Alpha", models.SlotPointGuard, 40, 20),
			player(2, "Bravo", models.SlotCenter, 25, 20),
			player(3, "Benchwarmer", models.SlotBench, 90, 10),
		},
		2: {
			player(1, "Alpha", models.SlotPointGuard, 20, 20),
			player(2, "Bravo", models.SlotCenter, 35, 20),
		},
		3: {
			player(1, "Alpha", models.SlotPointGuard, 30, 20),
			player(2, "Bravo", models.SlotCenter, 22, 20),
			player(4, "Hurt", models.SlotInjuredReserve, 60, 0),
		},
	}
	src := newFakeSource(func(mp, sp int) ([]models.BoxScore, error) {
		end, _ := FinalScoringPeriod(mp)
		require.Equal(t, end, sp, "only final days are fetched")
		return []models.BoxScore{{HomeTeamID: 1, AwayTeamID: 2, HomeLineup: finalDay[mp]}}, nil
	})
	a := newTestAnalyzer(league, src)

	res, err := a.ClutchPlayer(context.Background(), team)
	require.NoError(t, err)

	got, ok := res.Get()
	require.True(t, ok)
	assert.Equal(t, ClutchPlayer{Name: "Alpha", Wins: 2}, got)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, 3, src.total)
	assert.Zero(t, src.weekCalls[4], "losses are skipped")
	assert.Zero(t, src.weekCalls[5], "blowouts are skipped")
}

func TestClutchPlayer_TieKeepsFirstToReachCount(t *testing.T) {
	team := buildTeam(1, "Splash", "WW", 2)
	src := newFakeSource(func(mp, sp int) ([]models.BoxScore, error) {
		lineup := []models.Player{player(1, "Alpha", models.SlotPointGuard, 30, 20)}
		if mp == 2 {
			lineup = []models.Player{player(2, "Bravo", models.SlotCenter, 30, 20)}
		}
		return []models.BoxScore{{HomeTeamID: 1, AwayTeamID: 2, HomeLineup: lineup}}, nil
	})
	a := newTestAnalyzer(newLeague(team), src)

	res, err := a.ClutchPlayer(context.Background(), team)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", res.Value.Name)
}

func TestClutchPlayer_NoQualifyingWeek(t *testing.T) {
	team := buildTeam(1, "Splash", repeat("L", 20), 2)
	src := newFakeSource(nil)
	a := newTestAnalyzer(newLeague(team), src)

	res, err := a.ClutchPlayer(context.Background(), team)
	require.NoError(t, err)
	assert.Equal(t, StatusNoData, res.Status)
	assert.Zero(t, src.total)
}

func TestClutchPlayer_MissingBoxScoreWarns(t *testing.T) {
	team := buildTeam(1, "Splash", "W", 2)
	src := newFakeSource(func(mp, sp int) ([]models.BoxScore, error) {
		return []models.BoxScore{{HomeTeamID: 5, AwayTeamID: 6}}, nil
	})
	a := newTestAnalyzer(newLeague(team), src)

	res, err := a.ClutchPlayer(context.Background(), team)
	require.NoError(t, err)
	assert.Equal(t, StatusNoData, res.Status)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, Warning{Week: 1, ScoringPeriod: 6, Reason: reasonTeamMissing}, res.Warnings[0])
}

// dailyScores feeds per-day (for, against) scores keyed by week and day offset.
func dailyScores(days map[int][][2]float64) func(mp, sp int) ([]models.BoxScore, error) {
	return func(mp, sp int) ([]models.BoxScore, error) {
		w, _ := MatchupWindow(mp)
		pointsFor, against := 10.0, 10.0
		if scores, ok := days[mp]; ok && sp-w.FirstScoringPeriod < len(scores) {
			pointsFor, against = scores[sp-w.FirstScoringPeriod][0], scores[sp-w.FirstScoringPeriod][1]
		}
		return []models.BoxScore{{
			MatchupPeriod: mp, ScoringPeriod: sp,
			HomeTeamID: 2, AwayTeamID: 1,
			HomeScore: against, AwayScore: pointsFor,
		}}, nil
	}
}

func TestBiggestComeback(t *testing.T) {
	team := buildTeam(1, "Splash", "WLW", 2)
	league := newLeague(team, &models.Team{ID: 2, Name: "Rivals"})
	src := newFakeSource(dailyScores(map[int][][2]float64{
		1: {{10, 40}, {10, 10}, {50, 0}},
		2: {{0, 500}},
		3: {{0, 20}, {0, 30}, {30, 0}, {30, 0}},
	}))
	a := newTestAnalyzer(league, src)

	res, err := a.BiggestComeback(context.Background(), team)
	require.NoError(t, err)

	got, ok := res.Get()
	require.True(t, ok)
	assert.Equal(t, Comeback{Deficit: 50, Week: 3, OpponentID: 2, OpponentName: "Rivals"}, got)
	assert.Zero(t, src.weekCalls[2], "lost weeks are not walked")
	assert.Equal(t, 7, src.weekCalls[1])
	assert.Equal(t, 7, src.weekCalls[3])
}

func TestBiggestComeback_NeverTrailed(t *testing.T) {
	team := buildTeam(1, "Splash", "WW", 2)
	src := newFakeSource(dailyScores(map[int][][2]float64{
		1: {{20, 10}},
		2: {{20, 10}},
	}))
	a := newTestAnalyzer(newLeague(team), src)

	res, err := a.BiggestComeback(context.Background(), team)
	require.NoError(t, err)
	assert.Equal(t, StatusNoData, res.Status)
}

func TestBiggestComeback_WalksDoubleWeek(t *testing.T) {
	team := buildTeam(1, "Splash", repeat("W", 20), 2)
	src := newFakeSource(dailyScores(nil))
	a := newTestAnalyzer(newLeague(team), src)

	_, err := a.BiggestComeback(context.Background(), team)
	require.NoError(t, err)

	for week := 1; week <= 20; week++ {
		want := 7
		if week == DoubleWeekIndex+1 {
			want = 14
		}
		assert.Equal(t, want, src.weekCalls[week], "week %d", week)
	}
	assert.Equal(t, 147, src.total)
}

func TestMissingPoints(t *testing.T) {
	team := buildTeam(1, "Splash", "WL", 2)
	w1, _ := MatchupWindow(1)
	w2, _ := MatchupWindow(2)

	full := func() []models.Player {
		return activeLineup(1, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	}

	src := newFakeSource(func(mp, sp int) ([]models.BoxScore, error) {
		mine := append(full(), player(50, "Bench", models.SlotBench, 100, 0))
		switch {
		case mp == 1 && sp == w1.FirstScoringPeriod:
			mine = append(full(), player(50, "Bench", models.SlotBench, 15, 0))
		case mp == 1 && sp == w1.FirstScoringPeriod+1:
			mine = append(activeLineup(1, 1, 1, 1, 1, 1, 1, 1, 1, 0),
				player(50, "Bench", models.SlotBench, 12, 0),
				player(51, "Hurt", models.SlotInjuredReserve, 8, 0))
		case mp == 2 && sp == w2.FirstScoringPeriod+3:
			mine = append(activeLineup(2, 2, 2, 2, 2, 2, 2, 2), player(50, "Bench", models.SlotBench, 5, 0))
		}
		// The team sits on the away side; the home lineup must be ignored.
		return []models.BoxScore{{
			HomeTeamID: 2, AwayTeamID: 1,
			HomeLineup: append(activeLineup(0, 0, 0), player(60, "Theirs", models.SlotBench, 999, 0)),
			AwayLineup: mine,
		}}, nil
	})
	a := newTestAnalyzer(newLeague(team), src)

	res, err := a.MissingPoints(context.Background(), team)
	require.NoError(t, err)

	got, ok := res.Get()
	require.True(t, ok)
	assert.Equal(t, BenchPoints{Points: 25, ShortDays: 2}, got)
}

func TestMissingPoints_LookupsPerWeek(t *testing.T) {
	team := buildTeam(1, "Splash", repeat("L", 20), 2)
	src := newFakeSource(dailyScores(nil))
	a := newTestAnalyzer(newLeague(team), src)

	_, err := a.MissingPoints(context.Background(), team)
	require.NoError(t, err)

	for week := 1; week <= 20; week++ {
		want := 7
		if week == 17 {
			want = 14
		}
		assert.Equal(t, want, src.weekCalls[week], "week %d", week)
	}
}

func TestMissingPoints_Memoized(t *testing.T) {
	team := buildTeam(1, "Splash", repeat("W", 20), 2)
	src := newFakeSource(dailyScores(nil))
	a := newTestAnalyzer(newLeague(team), src)
	ctx := context.Background()

	first, err := a.MissingPoints(ctx, team)
	require.NoError(t, err)
	calls := src.total

	second, err := a.MissingPoints(ctx, team)
	require.NoError(t, err)
	_, err = a.BiggestComeback(ctx, team)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, calls, src.total, "repeat lookups are served from the session cache")
	for key, n := range src.calls {
		assert.Equal(t, 1, n, "key %v fetched more than once", key)
	}

	hits, misses := a.Snapshot().CacheStats()
	assert.Equal(t, calls, misses)
	assert.Equal(t, 2*calls, hits)
}

func TestMissingPoints_TeamAbsentWarns(t *testing.T) {
	team := buildTeam(1, "Splash", "W", 2)
	w, _ := MatchupWindow(1)
	src := newFakeSource(func(mp, sp int) ([]models.BoxScore, error) {
		if sp == w.FirstScoringPeriod+2 {
			return nil, nil
		}
		return dailyScores(nil)(mp, sp)
	})
	a := newTestAnalyzer(newLeague(team), src)

	res, err := a.MissingPoints(context.Background(), team)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, w.FirstScoringPeriod+2, res.Warnings[0].ScoringPeriod)
}

func TestIntraMatchup_UpstreamFailure(t *testing.T) {
	boom := errors.New("connection reset")
	team := buildTeam(1, "Splash", "WWW", 2)
	src := newFakeSource(func(mp, sp int) ([]models.BoxScore, error) {
		if mp == 2 {
			return nil, boom
		}
		return dailyScores(nil)(mp, sp)
	})
	a := newTestAnalyzer(newLeague(team), src)
	ctx := context.Background()

	_, err := a.MissingPoints(ctx, team)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, boom)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 2, ue.MatchupPeriod)

	_, err = a.BiggestComeback(ctx, team)
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = a.ClutchPlayer(ctx, team)
	assert.ErrorIs(t, err, ErrUpstream)
}

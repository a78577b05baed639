package analytics

import (
	"fmt"

	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

// TiePolicy decides how a tied (or undecided) week affects streak counters.
type TiePolicy int

const (
	// TieBreaksBoth resets both the win and the loss streak.
	TieBreaksBoth TiePolicy = iota
	// TieBreaksWinOnly resets the win streak and extends the loss streak.
	TieBreaksWinOnly
)

func ParseTiePolicy(s string) (TiePolicy, error) {
	switch s {
	case "", "both":
		return TieBreaksBoth, nil
	case "win-only":
		return TieBreaksWinOnly, nil
	default:
		return 0, fmt.Errorf("unknown tie policy %q", s)
	}
}

func (p TiePolicy) String() string {
	if p == TieBreaksWinOnly {
		return "win-only"
	}
	return "both"
}

type Options struct {
	TiePolicy TiePolicy
	// ClutchMargin is the widest winning margin still considered close.
	ClutchMargin float64
	// ProductiveSlots is the number of active slots expected to score each day.
	ProductiveSlots int
}

func DefaultOptions() Options {
	return Options{
		TiePolicy:       TieBreaksBoth,
		ClutchMargin:    100,
		ProductiveSlots: 10,
	}
}

// Analyzer computes season metrics over a Snapshot. It never mutates the
// snapshot's entities.
type Analyzer struct {
	snap *Snapshot
	opts Options
}

func NewAnalyzer(snap *Snapshot, opts Options) *Analyzer {
	return &Analyzer{snap: snap, opts: opts}
}

func (a *Analyzer) Snapshot() *Snapshot {
	return a.snap
}

// regularSeason guards against schedules that were not truncated upstream.
func regularSeason(team *models.Team) []models.Matchup {
	if len(team.Schedule) > models.RegularSeasonWeeks {
		return team.Schedule[:models.RegularSeasonWeeks]
	}
	return team.Schedule
}

package analytics

import "github.com/omarshaarawi/hoopswrapped/internal/models"

const (
	daysPerWeek = 7

	// DoubleWeekIndex is the zero-based week that spans two calendar weeks
	// (the All-Star break).
	DoubleWeekIndex = 16
)

// Window is the contiguous range of scoring periods inside one matchup period.
type Window struct {
	Week               int
	FirstScoringPeriod int
	LastScoringPeriod  int
}

func (w Window) Days() int {
	return w.LastScoringPeriod - w.FirstScoringPeriod + 1
}

// ESPN numbers scoring periods continuously across the season, so the table is
// fixed rather than derived from the matchup index.
var seasonWindows = buildWindows()

func buildWindows() []Window {
	windows := make([]Window, 0, models.RegularSeasonWeeks)
	first := 0
	for i := 0; i < models.RegularSeasonWeeks; i++ {
		days := daysPerWeek
		if i == DoubleWeekIndex {
			days = 2 * daysPerWeek
		}
		windows = append(windows, Window{
			Week:               i + 1,
			FirstScoringPeriod: first,
			LastScoringPeriod:  first + days - 1,
		})
		first += days
	}
	return windows
}

// MatchupWindow returns the scoring-period window for a 1-based week.
func MatchupWindow(week int) (Window, bool) {
	if week < 1 || week > len(seasonWindows) {
		return Window{}, false
	}
	return seasonWindows[week-1], true
}

// FinalScoringPeriod is the last day of a 1-based week.
func FinalScoringPeriod(week int) (int, bool) {
	w, ok := MatchupWindow(week)
	if !ok {
		return 0, false
	}
	return w.LastScoringPeriod, true
}

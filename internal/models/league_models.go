package models

import "strings"

// RegularSeasonWeeks is the number of weekly matchups in a regular season.
const RegularSeasonWeeks = 20

// SlotPosition is the lineup slot a player occupies for a scoring period.
type SlotPosition string

const (
	SlotPointGuard     SlotPosition = "PG"
	SlotShootingGuard  SlotPosition = "SG"
	SlotSmallForward   SlotPosition = "SF"
	SlotPowerForward   SlotPosition = "PF"
	SlotCenter         SlotPosition = "C"
	SlotGuard          SlotPosition = "G"
	SlotForward        SlotPosition = "F"
	SlotUtility        SlotPosition = "UT"
	SlotBench          SlotPosition = "BE"
	SlotInjuredReserve SlotPosition = "IR"
	SlotUnknown        SlotPosition = "Unknown"
)

// Active reports whether points scored in this slot count toward the team score.
func (s SlotPosition) Active() bool {
	return s != SlotBench && s != SlotInjuredReserve
}

type AcquisitionType string

const (
	AcquisitionDraft AcquisitionType = "DRAFT"
	AcquisitionAdd   AcquisitionType = "ADD"
	AcquisitionTrade AcquisitionType = "TRADE"
)

type Winner string

const (
	WinnerHome      Winner = "HOME"
	WinnerAway      Winner = "AWAY"
	WinnerTie       Winner = "TIE"
	WinnerUndecided Winner = "UNDECIDED"
)

// Outcome is a matchup result from one team's point of view.
type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomeWin
	OutcomeLoss
)

type League struct {
	ID     int
	Name   string
	Season int
	Teams  []*Team
}

// Team returns the team with the given id, or nil.
func (l *League) Team(id int) *Team {
	for _, t := range l.Teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

type Team struct {
	ID            int
	Name          string
	Abbreviation  string
	Owners        []string
	Roster        []Player
	Schedule      []Matchup
	PointsFor     float64
	PointsAgainst float64
}

// OwnedBy matches an owner identity. ESPN SWIDs are compared without braces
// and case-insensitively.
func (t *Team) OwnedBy(ownerID string) bool {
	want := normalizeOwnerID(ownerID)
	if want == "" {
		return false
	}
	for _, o := range t.Owners {
		if normalizeOwnerID(o) == want {
			return true
		}
	}
	return false
}

func normalizeOwnerID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimPrefix(id, "{")
	id = strings.TrimSuffix(id, "}")
	return strings.ToUpper(id)
}

type Player struct {
	ID                   int
	Name                 string
	Slot                 SlotPosition
	Points               float64
	AvgPoints            float64
	ProjectedAvgPoints   float64
	TotalPoints          float64
	ProjectedTotalPoints float64
	Acquisition          AcquisitionType
}

type Matchup struct {
	Week       int
	HomeTeamID int
	AwayTeamID int
	HomeScore  float64
	AwayScore  float64
	Winner     Winner
}

func (m Matchup) IsHome(teamID int) bool {
	return m.HomeTeamID == teamID
}

// Score returns the final score of the given team's side.
func (m Matchup) Score(teamID int) float64 {
	if m.IsHome(teamID) {
		return m.HomeScore
	}
	return m.AwayScore
}

func (m Matchup) OpponentID(teamID int) int {
	if m.IsHome(teamID) {
		return m.AwayTeamID
	}
	return m.HomeTeamID
}

func (m Matchup) Margin() float64 {
	if m.HomeScore > m.AwayScore {
		return m.HomeScore - m.AwayScore
	}
	return m.AwayScore - m.HomeScore
}

// Outcome reads the winner field; TIE and UNDECIDED are both OutcomeTie.
func (m Matchup) Outcome(teamID int) Outcome {
	home := m.IsHome(teamID)
	switch m.Winner {
	case WinnerHome:
		if home {
			return OutcomeWin
		}
		return OutcomeLoss
	case WinnerAway:
		if home {
			return OutcomeLoss
		}
		return OutcomeWin
	default:
		return OutcomeTie
	}
}

// BoxScore is one scoring period of a matchup.
type BoxScore struct {
	MatchupPeriod int
	ScoringPeriod int
	HomeTeamID    int
	AwayTeamID    int
	HomeScore     float64
	AwayScore     float64
	HomeLineup    []Player
	AwayLineup    []Player
}

func (b BoxScore) Involves(teamID int) bool {
	return b.HomeTeamID == teamID || b.AwayTeamID == teamID
}

func (b BoxScore) Lineup(teamID int) []Player {
	if b.HomeTeamID == teamID {
		return b.HomeLineup
	}
	return b.AwayLineup
}

// Scores returns the day's points for the team and its opponent.
func (b BoxScore) Scores(teamID int) (float64, float64) {
	if b.HomeTeamID == teamID {
		return b.HomeScore, b.AwayScore
	}
	return b.AwayScore, b.HomeScore
}

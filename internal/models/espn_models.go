package models

type LeagueResponse struct {
	ID              int            `json:"id"`
	ScoringPeriodID int            `json:"scoringPeriodId"`
	SeasonID        int            `json:"seasonId"`
	SegmentID       int            `json:"segmentId"`
	Teams           []TeamEntry    `json:"teams"`
	Settings        Settings       `json:"settings"`
	Schedule        []MatchupScore `json:"schedule"`
}

type Settings struct {
	Name             string           `json:"name"`
	Size             int              `json:"size"`
	ScheduleSettings ScheduleSettings `json:"scheduleSettings"`
}

type ScheduleSettings struct {
	MatchupPeriodCount int `json:"matchupPeriodCount"`
}

type TeamEntry struct {
	ID           int      `json:"id"`
	Abbreviation string   `json:"abbrev"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Nickname     string   `json:"nickname"`
	Owners       []string `json:"owners"`
	PrimaryOwner string   `json:"primaryOwner"`
	Roster       Roster   `json:"roster"`
	Record       Record   `json:"record"`
}

type Roster struct {
	Entries []RosterEntry `json:"entries"`
}

type Record struct {
	Overall RecordDetails `json:"overall"`
}

type RecordDetails struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Percentage    float64 `json:"percentage"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type ScoreboardResponse struct {
	Schedule []MatchupScore `json:"schedule"`
}

type MatchupScore struct {
	ID              int       `json:"id"`
	MatchupPeriodID int       `json:"matchupPeriodId"`
	Away            TeamScore `json:"away"`
	Home            TeamScore `json:"home"`
	Winner          string    `json:"winner"`
}

type TeamScore struct {
	TeamID                        int             `json:"teamId"`
	TotalPoints                   float64         `json:"totalPoints"`
	TotalPointsLive               float64         `json:"totalPointsLive"`
	RosterForCurrentScoringPeriod RosterForPeriod `json:"rosterForCurrentScoringPeriod"`
}

type RosterForPeriod struct {
	AppliedStatTotal float64       `json:"appliedStatTotal"`
	Entries          []RosterEntry `json:"entries"`
}

type RosterEntry struct {
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int             `json:"lineupSlotId"`
	AcquisitionType string          `json:"acquisitionType"`
}

type PlayerPoolEntry struct {
	ID               int        `json:"id"`
	OnTeamID         int        `json:"onTeamId"`
	Player           PlayerInfo `json:"player"`
	AppliedStatTotal float64    `json:"appliedStatTotal"`
}

type PlayerInfo struct {
	ID                int    `json:"id"`
	FullName          string `json:"fullName"`
	DefaultPositionID int    `json:"defaultPositionId"`
	ProTeamID         int    `json:"proTeamId"`
	Stats             []Stat `json:"stats"`
	InjuryStatus      string `json:"injuryStatus"`
}

// Stat is one stat line. StatSourceID 0 is actual, 1 is projected.
// StatSplitTypeID 0 is the season split, 5 a single scoring period.
type Stat struct {
	ID              string  `json:"id"`
	SeasonID        int     `json:"seasonId"`
	StatSourceID    int     `json:"statSourceId"`
	StatSplitTypeID int     `json:"statSplitTypeId"`
	ScoringPeriodID int     `json:"scoringPeriodId"`
	AppliedTotal    float64 `json:"appliedTotal"`
	AppliedAverage  float64 `json:"appliedAverage"`
}

package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) leagueEndpoint() string {
	return fmt.Sprintf("/seasons/%d/segments/0/leagues/%s", a.client.Config.Year, a.client.Config.LeagueID)
}

func matchupPeriodFilter(matchupPeriod int) (map[string]string, error) {
	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": []int{matchupPeriod},
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	return map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}, nil
}

// FetchLeague loads teams, rosters and the full schedule in one request.
func (a *API) FetchLeague(ctx context.Context) (*models.League, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mTeam,mRoster,mMatchup,mSettings",
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching league: %w", err)
	}

	season := leagueResponse.SeasonID
	if season == 0 {
		season = a.client.Config.Year
	}
	if n := leagueResponse.Settings.ScheduleSettings.MatchupPeriodCount; n > 0 && n < models.RegularSeasonWeeks {
		slog.Warn("League schedule is shorter than a full regular season", "league", leagueResponse.ID, "matchupPeriods", n)
	}

	league := &models.League{
		ID:     leagueResponse.ID,
		Name:   leagueResponse.Settings.Name,
		Season: season,
		Teams:  make([]*models.Team, 0, len(leagueResponse.Teams)),
	}

	for _, entry := range leagueResponse.Teams {
		team := &models.Team{
			ID:            entry.ID,
			Name:          teamName(entry),
			Abbreviation:  entry.Abbreviation,
			Owners:        entry.Owners,
			PointsFor:     entry.Record.Overall.PointsFor,
			PointsAgainst: entry.Record.Overall.PointsAgainst,
		}
		if len(team.Owners) == 0 && entry.PrimaryOwner != "" {
			team.Owners = []string{entry.PrimaryOwner}
		}
		for _, re := range entry.Roster.Entries {
			team.Roster = append(team.Roster, toPlayer(re, season, seasonOnly))
		}
		team.Schedule = teamSchedule(leagueResponse.Schedule, entry.ID)
		league.Teams = append(league.Teams, team)
	}

	return league, nil
}

func teamName(entry models.TeamEntry) string {
	if entry.Name != "" {
		return entry.Name
	}
	name := strings.TrimSpace(entry.Location + " " + entry.Nickname)
	if name == "" {
		return fmt.Sprintf("Team %d", entry.ID)
	}
	return name
}

func teamSchedule(schedule []models.MatchupScore, teamID int) []models.Matchup {
	var matchups []models.Matchup
	for _, match := range schedule {
		if match.Home.TeamID != teamID && match.Away.TeamID != teamID {
			continue
		}
		matchups = append(matchups, models.Matchup{
			Week:       match.MatchupPeriodID,
			HomeTeamID: match.Home.TeamID,
			AwayTeamID: match.Away.TeamID,
			HomeScore:  match.Home.TotalPoints,
			AwayScore:  match.Away.TotalPoints,
			Winner:     toWinner(match.Winner),
		})
	}

	sort.SliceStable(matchups, func(i, j int) bool {
		return matchups[i].Week < matchups[j].Week
	})
	return matchups
}

func toWinner(w string) models.Winner {
	switch models.Winner(w) {
	case models.WinnerHome, models.WinnerAway, models.WinnerTie:
		return models.Winner(w)
	default:
		return models.WinnerUndecided
	}
}

// BoxScores returns every matchup's lineups for a single scoring period.
func (a *API) BoxScores(ctx context.Context, matchupPeriod, scoringPeriod int) ([]models.BoxScore, error) {
	var scoreboardResponse models.ScoreboardResponse

	params := map[string]string{
		"view":            "mMatchupScore,mScoreboard",
		"scoringPeriodId": fmt.Sprintf("%d", scoringPeriod),
	}

	headers, err := matchupPeriodFilter(matchupPeriod)
	if err != nil {
		return nil, err
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(), params, headers, &scoreboardResponse); err != nil {
		return nil, fmt.Errorf("fetching box scores for period %d/%d: %w", matchupPeriod, scoringPeriod, err)
	}

	var boxes []models.BoxScore
	for _, match := range scoreboardResponse.Schedule {
		if match.MatchupPeriodID != 0 && match.MatchupPeriodID != matchupPeriod {
			continue
		}
		homeLineup := toLineup(match.Home.RosterForCurrentScoringPeriod, a.client.Config.Year, scoringPeriod)
		awayLineup := toLineup(match.Away.RosterForCurrentScoringPeriod, a.client.Config.Year, scoringPeriod)

		boxes = append(boxes, models.BoxScore{
			MatchupPeriod: matchupPeriod,
			ScoringPeriod: scoringPeriod,
			HomeTeamID:    match.Home.TeamID,
			AwayTeamID:    match.Away.TeamID,
			HomeScore:     dayScore(match.Home.RosterForCurrentScoringPeriod, homeLineup),
			AwayScore:     dayScore(match.Away.RosterForCurrentScoringPeriod, awayLineup),
			HomeLineup:    homeLineup,
			AwayLineup:    awayLineup,
		})
	}
	return boxes, nil
}

func toLineup(roster models.RosterForPeriod, season, scoringPeriod int) []models.Player {
	lineup := make([]models.Player, 0, len(roster.Entries))
	for _, entry := range roster.Entries {
		lineup = append(lineup, toPlayer(entry, season, scoringPeriod))
	}
	return lineup
}

// dayScore prefers ESPN's own total and falls back to summing active slots.
func dayScore(roster models.RosterForPeriod, lineup []models.Player) float64 {
	if roster.AppliedStatTotal != 0 {
		return roster.AppliedStatTotal
	}
	var total float64
	for _, p := range lineup {
		if p.Slot.Active() {
			total += p.Points
		}
	}
	return total
}

const (
	splitSeason = 0
	splitDay    = 5
)

// seasonOnly skips per-period points when mapping league rosters.
const seasonOnly = -1

func toPlayer(entry models.RosterEntry, season, scoringPeriod int) models.Player {
	info := entry.PlayerPoolEntry.Player
	player := models.Player{
		ID:          info.ID,
		Name:        info.FullName,
		Slot:        getLineupSlot(entry.LineupSlotID),
		Acquisition: models.AcquisitionType(entry.AcquisitionType),
	}

	for _, stat := range info.Stats {
		switch {
		case stat.StatSplitTypeID == splitSeason && stat.SeasonID == season && stat.StatSourceID == 0:
			player.TotalPoints = stat.AppliedTotal
			player.AvgPoints = stat.AppliedAverage
		case stat.StatSplitTypeID == splitSeason && stat.SeasonID == season && stat.StatSourceID == 1:
			player.ProjectedTotalPoints = stat.AppliedTotal
			player.ProjectedAvgPoints = stat.AppliedAverage
		// Rolling last-7/15/30 splits (1-3) also report scoringPeriodId 0.
		case scoringPeriod != seasonOnly && stat.StatSplitTypeID == splitDay && stat.ScoringPeriodID == scoringPeriod && stat.StatSourceID == 0:
			player.Points = stat.AppliedTotal
		}
	}
	return player
}

func getLineupSlot(slotID int) models.SlotPosition {
	switch slotID {
	case 0:
		return models.SlotPointGuard
	case 1:
		return models.SlotShootingGuard
	case 2:
		return models.SlotSmallForward
	case 3:
		return models.SlotPowerForward
	case 4:
		return models.SlotCenter
	case 5:
		return models.SlotGuard
	case 6:
		return models.SlotForward
	case 7, 8, 9, 10, 11:
		return models.SlotUtility
	case 12:
		return models.SlotBench
	case 13:
		return models.SlotInjuredReserve
	default:
		return models.SlotUnknown
	}
}

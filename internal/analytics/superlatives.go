package analytics

import (
	"encoding/json"
	"sort"

	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

type OpponentRecord struct {
	TeamID   int    `json:"team_id" yaml:"team_id"`
	TeamName string `json:"team_name" yaml:"team_name"`
	Count    int    `json:"count" yaml:"count"`
}

type HeadToHead struct {
	Best  Result[OpponentRecord] `json:"best" yaml:"best"`
	Worst Result[OpponentRecord] `json:"worst" yaml:"worst"`
}

// HeadToHead returns the opponent beaten most often and the one lost to most
// often. Ties go to the opponent that reached the top tally first.
func (a *Analyzer) HeadToHead(team *models.Team) HeadToHead {
	return HeadToHead{
		Best:  a.opponentTally(team, models.OutcomeWin),
		Worst: a.opponentTally(team, models.OutcomeLoss),
	}
}

func (a *Analyzer) BestMatchup(team *models.Team) Result[OpponentRecord] {
	return a.opponentTally(team, models.OutcomeWin)
}

func (a *Analyzer) WorstMatchup(team *models.Team) Result[OpponentRecord] {
	return a.opponentTally(team, models.OutcomeLoss)
}

func (a *Analyzer) opponentTally(team *models.Team, outcome models.Outcome) Result[OpponentRecord] {
	counts := make(map[int]int)
	leader, leaderCount := 0, 0
	for _, m := range regularSeason(team) {
		if m.Outcome(team.ID) != outcome {
			continue
		}
		opponent := m.OpponentID(team.ID)
		if opponent == 0 {
			continue // bye
		}
		counts[opponent]++
		if counts[opponent] > leaderCount {
			leader = opponent
			leaderCount = counts[opponent]
		}
	}
	if leaderCount == 0 {
		return NoData[OpponentRecord]()
	}
	return Ok(OpponentRecord{TeamID: leader, TeamName: a.snap.teamName(leader), Count: leaderCount})
}

type Title string

const (
	TitleQuickHands        Title = "quick hands"
	TitleUnderdog          Title = "underdog"
	TitleOverrated         Title = "overrated"
	TitleCakewalk          Title = "cakewalk"
	TitleToughie           Title = "toughie"
	TitleLongestWinStreak  Title = "longest win streak"
	TitleLongestLossStreak Title = "longest loss streak"
	TitleParticipation     Title = "participation trophy"
)

// TitleSet is unordered; Sorted gives a stable presentation order.
type TitleSet map[Title]struct{}

func (s TitleSet) Has(t Title) bool {
	_, ok := s[t]
	return ok
}

func (s TitleSet) Sorted() []Title {
	titles := make([]Title, 0, len(s))
	for t := range s {
		titles = append(titles, t)
	}
	sort.Slice(titles, func(i, j int) bool { return titles[i] < titles[j] })
	return titles
}

func (s TitleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s TitleSet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

// leagueLeader tracks a strict extreme across the league; the first team
// reaching the extreme keeps it.
type leagueLeader struct {
	team  *models.Team
	value float64
}

func (l *leagueLeader) offer(team *models.Team, value float64) {
	if value > l.value {
		l.team = team
		l.value = value
	}
}

// BonusTitles compares the team against every team in the league.
func (a *Analyzer) BonusTitles(team *models.Team) TitleSet {
	var quickHands, underdog, overrated, cakewalk, toughie leagueLeader

	for _, t := range a.snap.League().Teams {
		adds := 0
		var total, projected float64
		for _, p := range t.Roster {
			total += p.TotalPoints
			projected += p.ProjectedTotalPoints
			if p.Acquisition == models.AcquisitionAdd {
				adds++
			}
		}
		quickHands.offer(t, float64(adds))
		underdog.offer(t, total-projected)
		overrated.offer(t, projected-total)
		cakewalk.offer(t, t.PointsFor-t.PointsAgainst)
		toughie.offer(t, t.PointsAgainst-t.PointsFor)
	}

	titles := make(TitleSet)
	award := func(title Title, l leagueLeader) {
		if l.team != nil && l.team.ID == team.ID {
			titles[title] = struct{}{}
		}
	}
	award(TitleQuickHands, quickHands)
	award(TitleUnderdog, underdog)
	award(TitleOverrated, overrated)
	award(TitleCakewalk, cakewalk)
	award(TitleToughie, toughie)

	mine := a.LongestStreaks(team)
	winBeaten, lossBeaten := false, false
	for _, t := range a.snap.League().Teams {
		if t.ID == team.ID {
			continue
		}
		other := a.LongestStreaks(t)
		winBeaten = winBeaten || other.Win > mine.Win
		lossBeaten = lossBeaten || other.Loss > mine.Loss
		if winBeaten && lossBeaten {
			break
		}
	}
	if !winBeaten {
		titles[TitleLongestWinStreak] = struct{}{}
	}
	if !lossBeaten {
		titles[TitleLongestLossStreak] = struct{}{}
	}

	if len(titles) == 0 {
		titles[TitleParticipation] = struct{}{}
	}
	return titles
}

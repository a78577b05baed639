package service

import (
	"fmt"
	"strings"

	"github.com/omarshaarawi/hoopswrapped/internal/analytics"
)

type Section string

const (
	SectionWrapped  Section = "wrapped"
	SectionWeeks    Section = "weeks"
	SectionStreaks  Section = "streaks"
	SectionPlayers  Section = "players"
	SectionClutch   Section = "clutch"
	SectionComeback Section = "comeback"
	SectionBench    Section = "bench"
	SectionRivals   Section = "rivals"
	SectionTitles   Section = "titles"
)

const noData = "nothing to report"

func FormatReport(r analytics.Report) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏀 *%s: %d Wrapped*\n\n", r.TeamName, r.Season))

	writeWeeks(&sb, r.WeeklyAverage, r.BestWeek, r.WorstWeek)
	sb.WriteString("\n")
	writeStreaks(&sb, r.Streaks)
	sb.WriteString("\n")
	writePlayers(&sb, r.Sleeper, r.Bust)
	sb.WriteString("\n")
	writeClutch(&sb, r.Clutch)
	writeComeback(&sb, r.Comeback)
	writeBench(&sb, r.MissingPoints)
	sb.WriteString("\n")
	writeRivals(&sb, r.HeadToHead)
	sb.WriteString("\n")
	writeTitles(&sb, r.Titles)

	if warnings := r.Warnings(); len(warnings) > 0 {
		sb.WriteString(fmt.Sprintf("\n⚠️ %d day(s) missing from box scores\n", len(warnings)))
	}
	return sb.String()
}

func header(sb *strings.Builder, emoji, title, team string) {
	sb.WriteString(fmt.Sprintf("%s *%s: %s*\n\n", emoji, team, title))
}

func formatWeeks(team string, avg float64, best, worst analytics.Result[analytics.WeekScore]) string {
	var sb strings.Builder
	header(&sb, "📅", "Weeks", team)
	writeWeeks(&sb, avg, best, worst)
	return sb.String()
}

func writeWeeks(sb *strings.Builder, avg float64, best, worst analytics.Result[analytics.WeekScore]) {
	sb.WriteString(fmt.Sprintf("Weekly average: %.2f\n", avg))
	if w, ok := best.Get(); ok {
		sb.WriteString(fmt.Sprintf("Best week: %d (%.2f)\n", w.Week, w.Score))
	} else {
		sb.WriteString("Best week: " + noData + "\n")
	}
	if w, ok := worst.Get(); ok {
		sb.WriteString(fmt.Sprintf("Worst week: %d (%.2f)\n", w.Week, w.Score))
	} else {
		sb.WriteString("Worst week: " + noData + "\n")
	}
}

func formatStreaks(team string, s analytics.Streaks) string {
	var sb strings.Builder
	header(&sb, "🔥", "Streaks", team)
	writeStreaks(&sb, s)
	return sb.String()
}

func writeStreaks(sb *strings.Builder, s analytics.Streaks) {
	sb.WriteString(fmt.Sprintf("Longest win streak: %d\n", s.Win))
	sb.WriteString(fmt.Sprintf("Longest loss streak: %d\n", s.Loss))
}

func formatPlayers(team string, sleeper, bust analytics.Result[analytics.PlayerDivergence]) string {
	var sb strings.Builder
	header(&sb, "📈", "Players", team)
	writePlayers(&sb, sleeper, bust)
	return sb.String()
}

func writePlayers(sb *strings.Builder, sleeper, bust analytics.Result[analytics.PlayerDivergence]) {
	if p, ok := sleeper.Get(); ok {
		sb.WriteString(fmt.Sprintf("Sleeper: %s (%.1f avg vs %.1f projected)\n", p.Name, p.AvgPoints, p.ProjectedAvgPoints))
	} else {
		sb.WriteString("Sleeper: " + noData + "\n")
	}
	if p, ok := bust.Get(); ok {
		sb.WriteString(fmt.Sprintf("Bust: %s (%.1f avg vs %.1f projected)\n", p.Name, p.AvgPoints, p.ProjectedAvgPoints))
	} else {
		sb.WriteString("Bust: " + noData + "\n")
	}
}

func formatClutch(team string, res analytics.Result[analytics.ClutchPlayer]) string {
	var sb strings.Builder
	header(&sb, "🎯", "Clutch", team)
	writeClutch(&sb, res)
	return sb.String()
}

func writeClutch(sb *strings.Builder, res analytics.Result[analytics.ClutchPlayer]) {
	if p, ok := res.Get(); ok {
		sb.WriteString(fmt.Sprintf("Clutch player: %s (%d close wins)\n", p.Name, p.Wins))
		return
	}
	sb.WriteString("Clutch player: " + noData + "\n")
}

func formatComeback(team string, res analytics.Result[analytics.Comeback]) string {
	var sb strings.Builder
	header(&sb, "🔄", "Comeback", team)
	writeComeback(&sb, res)
	return sb.String()
}

func writeComeback(sb *strings.Builder, res analytics.Result[analytics.Comeback]) {
	if c, ok := res.Get(); ok {
		sb.WriteString(fmt.Sprintf("Biggest comeback: down %.2f vs %s in week %d\n", c.Deficit, c.OpponentName, c.Week))
		return
	}
	sb.WriteString("Biggest comeback: " + noData + "\n")
}

func formatBench(team string, res analytics.Result[analytics.BenchPoints]) string {
	var sb strings.Builder
	header(&sb, "🪑", "Bench", team)
	writeBench(&sb, res)
	return sb.String()
}

func writeBench(sb *strings.Builder, res analytics.Result[analytics.BenchPoints]) {
	if b, ok := res.Get(); ok {
		sb.WriteString(fmt.Sprintf("Points left on the bench: %.2f over %d short days\n", b.Points, b.ShortDays))
		return
	}
	sb.WriteString("Points left on the bench: " + noData + "\n")
}

func formatRivals(team string, h2h analytics.HeadToHead) string {
	var sb strings.Builder
	header(&sb, "🤝", "Rivals", team)
	writeRivals(&sb, h2h)
	return sb.String()
}

func writeRivals(sb *strings.Builder, h2h analytics.HeadToHead) {
	if o, ok := h2h.Best.Get(); ok {
		sb.WriteString(fmt.Sprintf("Favorite opponent: %s (%d wins)\n", o.TeamName, o.Count))
	} else {
		sb.WriteString("Favorite opponent: " + noData + "\n")
	}
	if o, ok := h2h.Worst.Get(); ok {
		sb.WriteString(fmt.Sprintf("Nemesis: %s (%d losses)\n", o.TeamName, o.Count))
	} else {
		sb.WriteString("Nemesis: " + noData + "\n")
	}
}

func formatTitles(team string, titles analytics.TitleSet) string {
	var sb strings.Builder
	header(&sb, "🏆", "Titles", team)
	writeTitles(&sb, titles)
	return sb.String()
}

func writeTitles(sb *strings.Builder, titles analytics.TitleSet) {
	sb.WriteString("*Titles:*\n")
	for _, t := range titles.Sorted() {
		sb.WriteString(fmt.Sprintf("  • %s\n", t))
	}
}

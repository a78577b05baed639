package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/omarshaarawi/hoopswrapped/internal/analytics"
)

func sampleReport() analytics.Report {
	return analytics.Report{
		Season:        2025,
		TeamID:        3,
		TeamName:      "Splash",
		WeeklyAverage: 1012.5,
		BestWeek:      analytics.Ok(analytics.WeekScore{Week: 4, Score: 1320}),
		WorstWeek:     analytics.Ok(analytics.WeekScore{Week: 11, Score: 801.5}),
		Streaks:       analytics.Streaks{Win: 5, Loss: 2},
		Sleeper:       analytics.NoData[analytics.PlayerDivergence](),
		Titles:        analytics.TitleSet{analytics.TitleCakewalk: {}},
	}
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), "json"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Splash", decoded["team_name"])
	assert.Equal(t, map[string]interface{}{"status": "no_data"}, decoded["sleeper"])
	assert.Equal(t, []interface{}{"cakewalk"}, decoded["titles"])
}

func TestWriteReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), "YAML"))

	var decoded struct {
		TeamName string `yaml:"team_name"`
		BestWeek struct {
			Status string              `yaml:"status"`
			Value  analytics.WeekScore `yaml:"value"`
		} `yaml:"best_week"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Splash", decoded.TeamName)
	assert.Equal(t, "ok", decoded.BestWeek.Status)
	assert.Equal(t, analytics.WeekScore{Week: 4, Score: 1320}, decoded.BestWeek.Value)
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sampleReport(), "text"))
	assert.Contains(t, buf.String(), "Splash: 2025 Wrapped")
	assert.Contains(t, buf.String(), "Best week: 4 (1320.00)")
	assert.Contains(t, buf.String(), "Sleeper: nothing to report")
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("json"))
	assert.Error(t, validateFormat("csv"))
	assert.Error(t, writeReport(&bytes.Buffer{}, sampleReport(), "csv"))
}

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()
	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "report"}, names)

	report, _, err := root.Find([]string{"report"})
	require.NoError(t, err)
	assert.NotNil(t, report.Flags().Lookup("team"))
	assert.Equal(t, "text", report.Flags().Lookup("format").DefValue)
}

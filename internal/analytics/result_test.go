package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestResult_JSON(t *testing.T) {
	raw, err := json.Marshal(NoData[WeekScore]())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"no_data"}`, string(raw))

	raw, err = json.Marshal(Ok(WeekScore{Week: 3, Score: 120.5}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","value":{"week":3,"score":120.5}}`, string(raw))

	raw, err = json.Marshal(Ok(BenchPoints{}).withWarnings([]Warning{{Week: 2, ScoringPeriod: 9, Reason: reasonTeamMissing}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","value":{"points":0,"short_days":0},
		"warnings":[{"week":2,"scoring_period":9,"reason":"team not present in box scores"}]}`, string(raw))
}

func TestResult_YAML(t *testing.T) {
	out, err := yaml.Marshal(NoData[Comeback]())
	require.NoError(t, err)
	assert.Equal(t, "status: no_data\n", string(out))

	out, err = yaml.Marshal(Ok(ClutchPlayer{Name: "Alpha", Wins: 2}))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "ok", decoded["status"])
	assert.Equal(t, map[string]interface{}{"name": "Alpha", "wins": 2}, decoded["value"])
}

func TestUpstreamError(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("wrapped: %w", &UpstreamError{Op: "box scores", MatchupPeriod: 4, ScoringPeriod: 22, Err: cause})

	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTeamNotFound)
	assert.Contains(t, err.Error(), "matchup 4, scoring period 22")

	league := &UpstreamError{Op: "league", Err: cause}
	assert.Equal(t, "upstream league: connection reset", league.Error())
}

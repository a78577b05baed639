package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Status string

const (
	StatusOK     Status = "ok"
	StatusNoData Status = "no_data"
)

// Result is a metric outcome. NoData is a successful query with nothing to
// report and is never conflated with a zero value.
type Result[T any] struct {
	Status   Status    `json:"status" yaml:"status"`
	Value    T         `json:"value,omitempty" yaml:"value,omitempty"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Status: StatusOK, Value: v}
}

func NoData[T any]() Result[T] {
	return Result[T]{Status: StatusNoData}
}

func (r Result[T]) OK() bool {
	return r.Status == StatusOK
}

func (r Result[T]) Get() (T, bool) {
	return r.Value, r.OK()
}

func (r Result[T]) withWarnings(w []Warning) Result[T] {
	r.Warnings = w
	return r
}

// resultWire drops the value of a NoData result when encoded.
type resultWire[T any] struct {
	Status   Status    `json:"status" yaml:"status"`
	Value    *T        `json:"value,omitempty" yaml:"value,omitempty"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func (r Result[T]) wire() resultWire[T] {
	w := resultWire[T]{Status: r.Status, Warnings: r.Warnings}
	if r.OK() {
		w.Value = &r.Value
	}
	return w
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

func (r Result[T]) MarshalYAML() (interface{}, error) {
	return r.wire(), nil
}

// Warning marks a scoring period that contributed nothing to an aggregate
// because the team's box score could not be resolved.
type Warning struct {
	Week          int    `json:"week" yaml:"week"`
	ScoringPeriod int    `json:"scoring_period" yaml:"scoring_period"`
	Reason        string `json:"reason" yaml:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("week %d, scoring period %d: %s", w.Week, w.ScoringPeriod, w.Reason)
}

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrUpstream     = errors.New("upstream failure")
)

// UpstreamError wraps a provider failure. errors.Is(err, ErrUpstream) holds.
type UpstreamError struct {
	Op            string
	MatchupPeriod int
	ScoringPeriod int
	Err           error
}

func (e *UpstreamError) Error() string {
	if e.Op == "box scores" {
		return fmt.Sprintf("upstream %s (matchup %d, scoring period %d): %v", e.Op, e.MatchupPeriod, e.ScoringPeriod, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

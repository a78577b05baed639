package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors shared by the ESPN client, the analytics
// snapshots and the session registry. A nil *Metrics records nothing.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	BoxScoreLookups  *prometheus.CounterVec
	OpenSessions     prometheus.Gauge
	BreakerState     prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpstreamRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hoopswrapped",
			Name:      "upstream_requests_total",
			Help:      "ESPN API requests by view and outcome.",
		}, []string{"view", "outcome"}),
		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hoopswrapped",
			Name:      "upstream_request_seconds",
			Help:      "ESPN API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),
		BoxScoreLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hoopswrapped",
			Name:      "box_score_lookups_total",
			Help:      "Box score lookups by cache result.",
		}, []string{"result"}),
		OpenSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "hoopswrapped",
			Name:      "open_sessions",
			Help:      "Analytics sessions currently held in memory.",
		}),
		BreakerState: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "hoopswrapped",
			Name:      "upstream_breaker_state",
			Help:      "ESPN circuit breaker state: 0 closed, 1 half-open, 2 open.",
		}),
	}
}

func (m *Metrics) ObserveRequest(view string, seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(view, outcome).Inc()
	m.UpstreamLatency.WithLabelValues(view).Observe(seconds)
}

func (m *Metrics) ObserveBoxScoreLookup(cached bool) {
	if m == nil {
		return
	}
	result := "miss"
	if cached {
		result = "hit"
	}
	m.BoxScoreLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) SetOpenSessions(n int) {
	if m == nil {
		return
	}
	m.OpenSessions.Set(float64(n))
}

func (m *Metrics) SetBreakerState(state int) {
	if m == nil {
		return
	}
	m.BreakerState.Set(float64(state))
}

// Package metrics holds the Prometheus collectors shared by the crawler.
//
// A nil *Metrics is valid and records nothing, so components can be built
// without a registry in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "match_crawler"

type Metrics struct {
	gatherer prometheus.Gatherer

	upstreamRequests  *prometheus.CounterVec
	upstreamDuration  *prometheus.HistogramVec
	upstreamThrottled prometheus.Counter
	upstreamExhausted prometheus.Counter
	circuitState      *prometheus.GaugeVec

	crawlRuns            *prometheus.CounterVec
	activeCrawls         prometheus.Gauge
	matchesPersisted     prometheus.Counter
	matchesSkipped       *prometheus.CounterVec
	persistenceConflicts *prometheus.CounterVec
}

// New registers every collector on reg. Passing nil uses a fresh registry
// that also carries the Go and process collectors.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Upstream requests by route and HTTP status.",
		}, []string{"route", "status"}),
		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream request latency by route.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"route"}),
		upstreamThrottled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "throttle_waits_total",
			Help:      "Waits caused by throttling responses.",
		}),
		upstreamExhausted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "retry_exhausted_total",
			Help:      "Requests that gave up after the retry budget ran out.",
		}),
		circuitState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "circuit_state",
			Help:      "Riot circuit breaker state; the current state reads 1.",
		}, []string{"state"}),
		crawlRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crawl",
			Name:      "runs_total",
			Help:      "Finished crawl runs by outcome.",
		}, []string{"outcome"}),
		activeCrawls: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "crawl",
			Name:      "active",
			Help:      "Crawl runs currently executing.",
		}),
		matchesPersisted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crawl",
			Name:      "matches_persisted_total",
			Help:      "Matches normalized and written.",
		}),
		matchesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crawl",
			Name:      "matches_skipped_total",
			Help:      "Discovered matches that were not written, by reason.",
		}, []string{"reason"}),
		persistenceConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "persistence",
			Name:      "conflicts_total",
			Help:      "Entity writes that were rolled back, by entity.",
		}, []string{"entity"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveUpstreamRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.upstreamRequests.WithLabelValues(route, label).Inc()
	m.upstreamDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

var circuitStates = []string{"closed", "half_open", "open"}

// SetCircuitState marks state as the breaker's current state.
func (m *Metrics) SetCircuitState(state string) {
	if m == nil {
		return
	}
	for _, s := range circuitStates {
		v := 0.0
		if s == state {
			v = 1
		}
		m.circuitState.WithLabelValues(s).Set(v)
	}
}

func (m *Metrics) IncThrottleWait() {
	if m == nil {
		return
	}
	m.upstreamThrottled.Inc()
}

func (m *Metrics) IncRetryExhausted() {
	if m == nil {
		return
	}
	m.upstreamExhausted.Inc()
}

func (m *Metrics) CrawlStarted() {
	if m == nil {
		return
	}
	m.activeCrawls.Inc()
}

// CrawlFinished records the run outcome and releases the active slot.
func (m *Metrics) CrawlFinished(err error) {
	if m == nil {
		return
	}
	m.activeCrawls.Dec()
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.crawlRuns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncMatchPersisted() {
	if m == nil {
		return
	}
	m.matchesPersisted.Inc()
}

func (m *Metrics) IncMatchSkipped(reason string) {
	if m == nil {
		return
	}
	m.matchesSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncPersistenceConflict(entity string) {
	if m == nil {
		return
	}
	m.persistenceConflicts.WithLabelValues(entity).Inc()
}

package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read exposition: %v", err)
	}
	return string(body)
}

func assertSample(t *testing.T, exposition, sample string) {
	t.Helper()
	if !strings.Contains(exposition, sample) {
		t.Fatalf("expected sample %q in exposition:\n%s", sample, exposition)
	}
}

func TestMetrics_RecordsCounters(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.ObserveUpstreamRequest("match", 200, 10*time.Millisecond)
	m.ObserveUpstreamRequest("match", 429, 10*time.Millisecond)
	m.ObserveUpstreamRequest("match", 0, time.Millisecond)
	m.IncThrottleWait()
	m.IncPersistenceConflict("team")
	m.IncPersistenceConflict("team")
	m.IncMatchSkipped("existing")

	out := scrape(t, m)
	assertSample(t, out, `match_crawler_upstream_requests_total{route="match",status="429"} 1`)
	assertSample(t, out, `match_crawler_upstream_requests_total{route="match",status="error"} 1`)
	assertSample(t, out, `match_crawler_upstream_throttle_waits_total 1`)
	assertSample(t, out, `match_crawler_persistence_conflicts_total{entity="team"} 2`)
	assertSample(t, out, `match_crawler_crawl_matches_skipped_total{reason="existing"} 1`)
}

func TestMetrics_CrawlLifecycle(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.CrawlStarted()
	m.CrawlStarted()
	m.CrawlFinished(nil)
	m.CrawlFinished(errors.New("boom"))

	out := scrape(t, m)
	assertSample(t, out, "match_crawler_crawl_active 0")
	assertSample(t, out, `match_crawler_crawl_runs_total{outcome="failure"} 1`)
	assertSample(t, out, `match_crawler_crawl_runs_total{outcome="success"} 1`)
}

func TestMetrics_CircuitStateIsExclusive(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.SetCircuitState("open")
	m.SetCircuitState("half_open")

	out := scrape(t, m)
	assertSample(t, out, `match_crawler_upstream_circuit_state{state="half_open"} 1`)
	assertSample(t, out, `match_crawler_upstream_circuit_state{state="open"} 0`)
	assertSample(t, out, `match_crawler_upstream_circuit_state{state="closed"} 0`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveUpstreamRequest("match", 200, time.Second)
	m.IncThrottleWait()
	m.CrawlStarted()
	m.CrawlFinished(nil)
	m.SetCircuitState("open")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Fatalf("expected 404 from nil metrics handler, got=%d", rec.Code)
	}
}

func TestMetrics_DefaultRegistryCarriesRuntimeCollectors(t *testing.T) {
	t.Parallel()

	m := New(nil)
	m.IncMatchPersisted()

	out := scrape(t, m)
	assertSample(t, out, "match_crawler_crawl_matches_persisted_total 1")
	assertSample(t, out, "go_goroutines")
}

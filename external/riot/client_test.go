package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/match-crawler/internal/platform/logging"
	"github.com/riskibarqy/match-crawler/internal/platform/resilience"
	"github.com/riskibarqy/match-crawler/internal/usecase"
)

const testToken = "RGAPI-test-token"

type waitRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (w *waitRecorder) wait(ctx context.Context, d time.Duration) error {
	w.mu.Lock()
	w.waits = append(w.waits, d)
	w.mu.Unlock()
	return ctx.Err()
}

func (w *waitRecorder) recorded() []time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]time.Duration(nil), w.waits...)
}

func newTestClient(t *testing.T, srv *httptest.Server, policy RetryPolicy) (*Client, *waitRecorder) {
	t.Helper()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Token:      testToken,
		Retry:      policy,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          false,
			FailureThreshold: 1,
		},
	})
	recorder := &waitRecorder{}
	client.wait = recorder.wait
	return client, recorder
}

const matchBody = `{"gameId":4242,"platformId":"EUW1","gameMode":"CLASSIC","participants":[],"participantIdentities":[]}`

func TestClient_RetriesThrottledRequestUntilSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(matchBody))
	}))
	defer srv.Close()

	client, recorder := newTestClient(t, srv, DefaultRetryPolicy())
	got, err := client.GetMatch(context.Background(), 4242)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.GameID != 4242 || got.PlatformID != "EUW1" || got.GameMode != "CLASSIC" {
		t.Fatalf("unexpected match payload: %+v", got)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 upstream calls, got=%d", calls.Load())
	}
	waits := recorder.recorded()
	if len(waits) != 2 || waits[0] != DefaultRateLimitDelay || waits[1] != DefaultRateLimitDelay {
		t.Fatalf("expected two default waits, got=%v", waits)
	}
}

func TestClient_RetryAfterHeaderExtendsDelay(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(matchBody))
	}))
	defer srv.Close()

	client, recorder := newTestClient(t, srv, RetryPolicy{Delay: time.Second})
	if _, err := client.GetMatch(context.Background(), 4242); err != nil {
		t.Fatalf("get match: %v", err)
	}
	waits := recorder.recorded()
	if len(waits) != 1 || waits[0] != 7*time.Second {
		t.Fatalf("expected a single 7s wait, got=%v", waits)
	}
}

func TestClient_BoundedPolicyReturnsRateLimitExhausted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv, RetryPolicy{MaxAttempts: 2, Delay: time.Millisecond})
	_, err := client.GetMatch(context.Background(), 1)
	if !errors.Is(err, ErrRateLimitExhausted) {
		t.Fatalf("expected ErrRateLimitExhausted, got=%v", err)
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected wrapped 429 upstream error, got=%v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 upstream calls, got=%d", calls.Load())
	}
}

func TestClient_ElapsedBoundStopsBeforeWaiting(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, recorder := newTestClient(t, srv, RetryPolicy{MaxElapsed: 500 * time.Millisecond, Delay: time.Second})
	_, err := client.GetMatch(context.Background(), 1)
	if !errors.Is(err, ErrRateLimitExhausted) {
		t.Fatalf("expected ErrRateLimitExhausted, got=%v", err)
	}
	if calls.Load() != 1 || len(recorder.recorded()) != 0 {
		t.Fatalf("expected one call and no waits, calls=%d waits=%v", calls.Load(), recorder.recorded())
	}
}

func TestClient_NonThrottleStatusIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":{"message":"Data not found","status_code":404}}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv, DefaultRetryPolicy())
	_, err := client.GetSummonerByName(context.Background(), "Nobody Here")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got=%v", err)
	}
	if upstream.StatusCode != http.StatusNotFound || !strings.Contains(upstream.Reason, "Data not found") {
		t.Fatalf("unexpected upstream error: %+v", upstream)
	}
	if !IsNotFound(err) || !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected not-found classification, got=%v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single call, got=%d", calls.Load())
	}
}

func TestClient_ContextCancelInterruptsUnboundedRetry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv, RetryPolicy{Delay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	client.wait = func(waitCtx context.Context, d time.Duration) error {
		cancel()
		return sleepContext(waitCtx, d)
	}

	done := make(chan error, 1)
	go func() {
		_, err := client.GetMatch(ctx, 1)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got=%v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("retry loop did not observe cancellation")
	}
}

func TestClient_CancelledCallerDoesNotFailSharedMatchFetch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	arrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(arrived)
		}
		<-release
		_, _ = w.Write([]byte(matchBody))
	}))
	defer srv.Close()
	defer close(release)

	client, _ := newTestClient(t, srv, DefaultRetryPolicy())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := client.GetMatch(firstCtx, 4242)
		firstErr <- err
	}()
	<-arrived

	secondDone := make(chan error, 1)
	go func() {
		got, err := client.GetMatch(context.Background(), 4242)
		if err == nil && got.GameID != 4242 {
			err = errors.New("unexpected game id")
		}
		secondDone <- err
	}()

	// Let the second caller join the in-flight request before the first leaves.
	time.Sleep(50 * time.Millisecond)
	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected first caller to see context.Canceled, got %v", err)
	}

	release <- struct{}{}
	if err := <-secondDone; err != nil {
		t.Fatalf("second caller failed after first caller cancelled: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one upstream request, got %d", got)
	}
}

func TestClient_SendsTokenHeaderAndQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Riot-Token"); got != testToken {
			t.Errorf("expected token header, got=%q", got)
		}
		if r.URL.Path != "/lol/match/v4/matchlists/by-account/acc-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("beginIndex") != "100" || r.URL.Query().Get("endIndex") != "200" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"matches":[{"gameId":1,"platformId":"EUW1","timestamp":1500000000000}],"startIndex":100,"endIndex":101,"totalGames":101}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv, DefaultRetryPolicy())
	got, err := client.GetMatchlist(context.Background(), "acc-1", 100, 200)
	if err != nil {
		t.Fatalf("get matchlist: %v", err)
	}
	if len(got.Matches) != 1 || got.Matches[0].GameID != 1 {
		t.Fatalf("unexpected matchlist: %+v", got)
	}
}

func TestClient_ErrorDoesNotLeakToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("forbidden for " + r.Header.Get("X-Riot-Token")))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv, DefaultRetryPolicy())
	err := client.Fetch(context.Background(), http.MethodGet, "/lol/match/v4/matches/1", nil, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 upstream error, got=%v", err)
	}
	if strings.Contains(upstream.URL, testToken) {
		t.Fatalf("token leaked in url: %s", upstream.URL)
	}
}

func TestClient_CircuitBreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	_, err := client.GetMatch(context.Background(), 1)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 upstream error, got=%v", err)
	}

	_, err = client.GetMatch(context.Background(), 1)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once open, got=%v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected breaker to short-circuit second call, calls=%d", calls.Load())
	}
}

func TestRouteLabel(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/lol/match/v4/matches/4242":                 "/lol/match/v4/matches",
		"/lol/summoner/v4/summoners/by-name/Faker":   "/lol/summoner/v4/summoners/by-name",
		"/lol/match/v4/matchlists/by-account/acc-1/": "/lol/match/v4/matchlists/by-account",
	}
	for in, want := range cases {
		if got := routeLabel(in); got != want {
			t.Fatalf("routeLabel(%q)=%q want=%q", in, got, want)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	if got := parseRetryAfter("3"); got != 3*time.Second {
		t.Fatalf("expected 3s, got=%v", got)
	}
	if got := parseRetryAfter(""); got != 0 {
		t.Fatalf("expected 0 for empty header, got=%v", got)
	}
	if got := parseRetryAfter("soon"); got != 0 {
		t.Fatalf("expected 0 for garbage header, got=%v", got)
	}
}

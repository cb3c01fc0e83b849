package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	idgen "github.com/riskibarqy/match-crawler/internal/platform/id"
	"github.com/riskibarqy/match-crawler/internal/platform/logging"
)

type runnerFunc func(ctx context.Context, input CrawlInput) error

func (f runnerFunc) RunCrawl(ctx context.Context, input CrawlInput) error {
	return f(ctx, input)
}

func newTestDispatcher(t *testing.T, runner CrawlRunner, cfg DispatcherConfig) *Dispatcher {
	t.Helper()

	d, err := NewDispatcher(runner, idgen.NewSequenceGenerator("run"), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	return d
}

func TestDispatcher_RunBatchKeepsInputOrder(t *testing.T) {
	t.Parallel()

	var peak, current atomic.Int64
	runner := runnerFunc(func(_ context.Context, input CrawlInput) error {
		n := current.Add(1)
		defer current.Add(-1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		if strings.HasPrefix(input.PlayerName, "bad") {
			return ErrNotFound
		}
		if input.Range == nil || input.Range.End != 10 {
			return errors.New("range not forwarded")
		}
		return nil
	})
	d := newTestDispatcher(t, runner, DispatcherConfig{BatchConcurrency: 2})
	defer func() { _ = d.Close(context.Background()) }()

	names := []string{"alpha", "bad-bravo", "charlie", "delta", "bad-echo"}
	got := d.RunBatch(context.Background(), names, &MatchRange{End: 10})
	if len(got) != len(names) {
		t.Fatalf("expected %d outcomes, got %d", len(names), len(got))
	}
	for i, outcome := range got {
		if outcome.PlayerName != names[i] {
			t.Fatalf("outcome %d is for %s, want %s", i, outcome.PlayerName, names[i])
		}
		wantFailed := strings.HasPrefix(names[i], "bad")
		if wantFailed != (outcome.Status == crawlStatusFailed) {
			t.Fatalf("unexpected status for %s: %s (%s)", names[i], outcome.Status, outcome.Message)
		}
		if wantFailed && !errors.Is(outcome.Err, ErrNotFound) {
			t.Fatalf("failed outcome must carry the error, got %v", outcome.Err)
		}
	}
	if peak.Load() > 2 {
		t.Fatalf("batch concurrency exceeded: %d", peak.Load())
	}
}

func TestDispatcher_SubmitOutlivesRequestContext(t *testing.T) {
	t.Parallel()

	done := make(chan error, 1)
	runner := runnerFunc(func(ctx context.Context, input CrawlInput) error {
		time.Sleep(10 * time.Millisecond)
		done <- ctx.Err()
		return nil
	})
	d := newTestDispatcher(t, runner, DispatcherConfig{})

	reqCtx, cancel := context.WithCancel(context.Background())
	runID, err := d.Submit(reqCtx, CrawlInput{PlayerName: "Faker"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	cancel()
	if runID == "" {
		t.Fatalf("expected a run id")
	}

	select {
	case ctxErr := <-done:
		if ctxErr != nil {
			t.Fatalf("crawl must not inherit request cancellation, got %v", ctxErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("submitted crawl did not run")
	}

	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := d.Submit(context.Background(), CrawlInput{PlayerName: "Faker"}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("submit after close must fail, got %v", err)
	}
}

func TestDispatcher_SubmitRejectsWhenWorkersBusy(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	runner := runnerFunc(func(ctx context.Context, input CrawlInput) error {
		started <- struct{}{}
		<-release
		return nil
	})
	d := newTestDispatcher(t, runner, DispatcherConfig{Workers: 1})

	if _, err := d.Submit(context.Background(), CrawlInput{PlayerName: "first"}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	<-started
	if d.Active() != 1 {
		t.Fatalf("expected one active crawl, got %d", d.Active())
	}
	if _, err := d.Submit(context.Background(), CrawlInput{PlayerName: "second"}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	close(release)
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if d.Active() != 0 {
		t.Fatalf("expected no active crawl after close, got %d", d.Active())
	}
}

func TestDispatcher_CloseCancelsRunningCrawls(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	cancelled := make(chan struct{})
	runner := runnerFunc(func(ctx context.Context, input CrawlInput) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})
	d := newTestDispatcher(t, runner, DispatcherConfig{})

	if _, err := d.Submit(context.Background(), CrawlInput{PlayerName: "Faker"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	select {
	case <-cancelled:
	default:
		t.Fatalf("running crawl was not cancelled")
	}
}

func TestDispatcher_SubmitValidatesInput(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, runnerFunc(func(context.Context, CrawlInput) error { return nil }), DispatcherConfig{})
	defer func() { _ = d.Close(context.Background()) }()

	if _, err := d.Submit(context.Background(), CrawlInput{PlayerName: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDispatcher_CloseWaitsForEveryAcceptedSubmit(t *testing.T) {
	t.Parallel()

	var finished atomic.Int64
	runner := runnerFunc(func(ctx context.Context, input CrawlInput) error {
		time.Sleep(time.Millisecond)
		finished.Add(1)
		return nil
	})
	d := newTestDispatcher(t, runner, DispatcherConfig{Workers: 64})

	const submitters = 32
	var accepted atomic.Int64
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(submitters)
	for i := 0; i < submitters; i++ {
		go func() {
			defer wg.Done()
			<-start
			if _, err := d.Submit(context.Background(), CrawlInput{PlayerName: "Faker"}); err == nil {
				accepted.Add(1)
			} else if !errors.Is(err, ErrDependencyUnavailable) {
				t.Errorf("unexpected submit error: %v", err)
			}
		}()
	}

	close(start)
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Anything accepted before Close flipped the flag has already run.
	got := finished.Load()
	wg.Wait()
	if want := accepted.Load(); got != want {
		t.Fatalf("close returned with %d of %d accepted crawls finished", got, want)
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	idgen "github.com/riskibarqy/match-crawler/internal/platform/id"
	"github.com/riskibarqy/match-crawler/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	crawlStatusSuccess = "success"
	crawlStatusFailed  = "failed"

	defaultCrawlWorkers     = 4
	defaultBatchConcurrency = 2
)

// CrawlRunner runs one crawl to completion.
type CrawlRunner interface {
	RunCrawl(ctx context.Context, input CrawlInput) error
}

type DispatcherConfig struct {
	// Workers bounds concurrently running async crawls. Submissions beyond it are rejected.
	Workers int
	// BatchConcurrency bounds players crawled at once by RunBatch.
	BatchConcurrency int
}

type CrawlOutcome struct {
	PlayerName string `json:"player_name"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	Err        error  `json:"-"`
}

// Dispatcher starts crawls independently of the caller's lifetime.
// Each crawl keeps its own state; the runner is the only shared collaborator.
type Dispatcher struct {
	runner           CrawlRunner
	ids              idgen.Generator
	logger           *logging.Logger
	pool             *ants.Pool
	batchConcurrency int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	active atomic.Int64

	// mu orders Submit's wg.Add against Close's wg.Wait.
	mu     sync.Mutex
	closed bool
}

func NewDispatcher(runner CrawlRunner, ids idgen.Generator, cfg DispatcherConfig, logger *logging.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = idgen.NewUUIDGenerator()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultCrawlWorkers
	}
	batch := cfg.BatchConcurrency
	if batch <= 0 {
		batch = defaultBatchConcurrency
	}

	p, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create crawl worker pool: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		runner:           runner,
		ids:              ids,
		logger:           logger,
		pool:             p,
		batchConcurrency: batch,
		ctx:              ctx,
		cancel:           cancel,
	}, nil
}

// Submit queues one crawl and returns its run id immediately. The crawl keeps
// the request's values but not its cancellation; Close cancels it.
func (d *Dispatcher) Submit(ctx context.Context, input CrawlInput) (string, error) {
	if strings.TrimSpace(input.PlayerName) == "" {
		return "", fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	runID, err := d.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return "", fmt.Errorf("%w: crawl dispatcher is closed", ErrDependencyUnavailable)
	}
	d.wg.Add(1)
	d.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(d.ctx, cancel)

	err = d.pool.Submit(func() {
		defer d.wg.Done()
		defer cancel()
		defer stop()

		outcome := d.run(runCtx, input)
		if outcome.Err != nil {
			d.logger.ErrorContext(runCtx, "async crawl failed", "run_id", runID, "player", input.PlayerName, "error", outcome.Err)
			return
		}
		d.logger.InfoContext(runCtx, "async crawl finished", "run_id", runID, "player", input.PlayerName, "duration_ms", outcome.DurationMs)
	})
	if err != nil {
		d.wg.Done()
		stop()
		cancel()
		if errors.Is(err, ants.ErrPoolOverload) {
			return "", fmt.Errorf("%w: all crawl workers are busy", ErrDependencyUnavailable)
		}
		return "", fmt.Errorf("submit crawl to worker pool: %w", err)
	}

	d.logger.InfoContext(ctx, "crawl submitted", "run_id", runID, "player", input.PlayerName)
	return runID, nil
}

// Run executes one crawl on the caller's goroutine.
func (d *Dispatcher) Run(ctx context.Context, input CrawlInput) CrawlOutcome {
	return d.run(ctx, input)
}

// RunBatch crawls several players, at most BatchConcurrency at a time, and
// returns one outcome per name in input order.
func (d *Dispatcher) RunBatch(ctx context.Context, names []string, matchRange *MatchRange) []CrawlOutcome {
	ctx, span := startUsecaseSpan(ctx, "usecase.Dispatcher.RunBatch")
	defer span.End()

	type indexed struct {
		index   int
		outcome CrawlOutcome
	}

	workers := pool.NewWithResults[indexed]().WithMaxGoroutines(d.batchConcurrency)
	for i, name := range names {
		workers.Go(func() indexed {
			return indexed{index: i, outcome: d.run(ctx, CrawlInput{PlayerName: name, Range: matchRange})}
		})
	}

	out := make([]CrawlOutcome, len(names))
	for _, item := range workers.Wait() {
		out[item.index] = item.outcome
	}
	return out
}

func (d *Dispatcher) run(ctx context.Context, input CrawlInput) CrawlOutcome {
	d.active.Add(1)
	defer d.active.Add(-1)

	started := time.Now()
	err := d.runner.RunCrawl(ctx, input)
	outcome := CrawlOutcome{
		PlayerName: input.PlayerName,
		Status:     crawlStatusSuccess,
		DurationMs: time.Since(started).Milliseconds(),
		Err:        err,
	}
	if err != nil {
		outcome.Status = crawlStatusFailed
		outcome.Message = err.Error()
	}
	return outcome
}

// Active returns the number of crawls currently running through the dispatcher.
func (d *Dispatcher) Active() int {
	return int(d.active.Load())
}

// Close stops accepting work and waits for running crawls until ctx is done,
// then cancels whatever is still running.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	d.cancel()
	<-done
	d.pool.Release()
	return err
}

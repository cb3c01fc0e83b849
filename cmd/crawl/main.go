// Command crawl runs one synchronous crawl for a single player and exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/riskibarqy/match-crawler/internal/app"
	"github.com/riskibarqy/match-crawler/internal/config"
	"github.com/riskibarqy/match-crawler/internal/platform/logging"
	"github.com/riskibarqy/match-crawler/internal/usecase"
)

func main() {
	name := flag.String("name", "", "summoner name to crawl (required)")
	begin := flag.Int("begin", 0, "first discovered match index to crawl")
	end := flag.Int("end", 0, "discovered match index to stop before; 0 crawls to the last one")
	timeout := flag.Duration("timeout", 0, "abort the crawl after this long; 0 waits until done")
	flag.Parse()

	if strings.TrimSpace(*name) == "" {
		flag.Usage()
		os.Exit(2)
	}

	var matchRange *usecase.MatchRange
	if *begin != 0 || *end != 0 {
		matchRange = &usecase.MatchRange{Begin: *begin, End: *end}
	}

	if err := run(usecase.CrawlInput{PlayerName: *name, Range: matchRange}, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "crawl: %v\n", err)
		os.Exit(1)
	}
}

func run(input usecase.CrawlInput, timeout time.Duration) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Fields: []any{"service", cfg.ServiceName, "version", cfg.ServiceVersion, "command", "crawl"},
	})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			logger.Warn("close app failed", "error", err)
		}
	}()

	outcome := a.Dispatcher.Run(ctx, input)
	logger.Info("crawl done",
		"player", outcome.PlayerName,
		"status", outcome.Status,
		"duration_ms", outcome.DurationMs,
	)
	if outcome.Err != nil && errors.Is(outcome.Err, context.Canceled) {
		return fmt.Errorf("crawl interrupted: %w", outcome.Err)
	}
	return outcome.Err
}

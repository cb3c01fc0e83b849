package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/match-crawler/internal/domain/match"
	"github.com/riskibarqy/match-crawler/internal/domain/rawmatch"
	"github.com/riskibarqy/match-crawler/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultPageSize = 100

// Paginator walks the matchlist in fixed windows until a short page.
type Paginator struct {
	source   MatchlistSource
	pageSize int
	logger   *logging.Logger
}

func NewPaginator(source MatchlistSource, pageSize int, logger *logging.Logger) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Paginator{source: source, pageSize: pageSize, logger: logger}
}

// Discover requests [i, i+pageSize) from resumeOffset onward and returns every
// reference seen. It stops on the first window whose length is not a multiple
// of the page size, so an empty window ends discovery.
func (p *Paginator) Discover(ctx context.Context, accountID string, resumeOffset int) ([]match.Reference, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Paginator.Discover",
		attribute.Int("crawl.resume_offset", resumeOffset))
	defer span.End()

	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	if resumeOffset < 0 {
		return nil, fmt.Errorf("%w: resume offset must be >= 0", ErrInvalidInput)
	}

	var out []match.Reference
	for begin := resumeOffset; ; begin += p.pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		window, err := p.window(ctx, accountID, begin)
		if err != nil {
			return nil, err
		}
		out = append(out, window.References...)

		p.logger.DebugContext(ctx, "matchlist window fetched",
			"account_id", accountID,
			"begin", window.Begin,
			"end", window.End,
			"count", len(window.References),
		)
		if len(window.References)%p.pageSize != 0 || len(window.References) == 0 {
			break
		}
	}

	p.logger.InfoContext(ctx, "match discovery finished", "account_id", accountID, "resume_offset", resumeOffset, "discovered", len(out))
	return out, nil
}

func (p *Paginator) window(ctx context.Context, accountID string, begin int) (match.Window, error) {
	end := begin + p.pageSize
	raw, err := p.source.GetMatchlist(ctx, accountID, begin, end)
	if err != nil {
		return match.Window{}, fmt.Errorf("discover matches begin=%d: %w", begin, err)
	}

	refs := make([]match.Reference, 0, len(raw.Matches))
	for _, item := range raw.Matches {
		refs = append(refs, mapMatchReference(item))
	}
	return match.Window{Begin: begin, End: end, References: refs}, nil
}

func mapMatchReference(item rawmatch.MatchReference) match.Reference {
	return match.Reference{
		GameID:     item.GameID,
		PlatformID: item.PlatformID,
		Champion:   item.Champion,
		Queue:      item.Queue,
		Season:     item.Season,
		Timestamp:  millisToTime(item.Timestamp),
		Lane:       item.Lane,
		Role:       item.Role,
	}
}

func millisToTime(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

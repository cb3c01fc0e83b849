package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/match-crawler/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

type createCrawlRequest struct {
	SummonerName string `json:"summoner_name" validate:"required,max=64"`
	BeginIndex   *int   `json:"begin_index" validate:"omitempty,min=0"`
	EndIndex     *int   `json:"end_index" validate:"omitempty,min=0"`
	Wait         bool   `json:"wait"`
}

type createCrawlBatchRequest struct {
	SummonerNames []string `json:"summoner_names" validate:"required,min=1,max=50,dive,required,max=64"`
	BeginIndex    *int     `json:"begin_index" validate:"omitempty,min=0"`
	EndIndex      *int     `json:"end_index" validate:"omitempty,min=0"`
}

// CreateCrawl starts a crawl. Without wait it answers 202 with the run id
// while the crawl continues in the background.
func (h *Handler) CreateCrawl(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCrawl")
	defer span.End()

	var req createCrawlRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	matchRange, err := rangeFromRequest(req.BeginIndex, req.EndIndex)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input := usecase.CrawlInput{PlayerName: strings.TrimSpace(req.SummonerName), Range: matchRange}
	span.SetAttributes(attribute.String("crawl.player", input.PlayerName), attribute.Bool("crawl.wait", req.Wait))

	if !req.Wait {
		runID, err := h.crawls.Submit(ctx, input)
		if err != nil {
			h.logger.WarnContext(ctx, "submit crawl failed", "player", input.PlayerName, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusAccepted, crawlAcceptedDTO{RunID: runID, PlayerName: input.PlayerName})
		return
	}

	outcome := h.crawls.Run(ctx, input)
	if isRequestError(outcome.Err) {
		h.logger.WarnContext(ctx, "crawl rejected", "player", input.PlayerName, "error", outcome.Err)
		writeError(ctx, w, outcome.Err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, crawlOutcomeToDTO(outcome))
}

// CreateCrawlBatch crawls several players synchronously and reports one
// outcome per name.
func (h *Handler) CreateCrawlBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCrawlBatch")
	defer span.End()

	var req createCrawlBatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	matchRange, err := rangeFromRequest(req.BeginIndex, req.EndIndex)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	names := make([]string, 0, len(req.SummonerNames))
	for _, name := range req.SummonerNames {
		names = append(names, strings.TrimSpace(name))
	}

	outcomes := h.crawls.RunBatch(ctx, names, matchRange)
	items := make([]crawlOutcomeDTO, 0, len(outcomes))
	for _, outcome := range outcomes {
		items = append(items, crawlOutcomeToDTO(outcome))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func rangeFromRequest(begin, end *int) (*usecase.MatchRange, error) {
	if begin == nil && end == nil {
		return nil, nil
	}
	out := &usecase.MatchRange{}
	if begin != nil {
		out.Begin = *begin
	}
	if end != nil {
		out.End = *end
	}
	if out.End > 0 && out.End < out.Begin {
		return nil, fmt.Errorf("%w: end_index must not be lower than begin_index", usecase.ErrInvalidInput)
	}
	return out, nil
}

// isRequestError reports failures that mean the crawl never started, as
// opposed to a finished crawl that hit a bad match along the way. A 404 or a
// tripped breaker on one match still yields a 200 with status=failed.
func isRequestError(err error) bool {
	return errors.Is(err, usecase.ErrCrawlNotStarted)
}

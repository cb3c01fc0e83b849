package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-crawler/internal/domain/player"
	"github.com/riskibarqy/match-crawler/internal/platform/logging"
	"github.com/riskibarqy/match-crawler/internal/usecase"
)

const maxRequestBody = 1 << 20

// CrawlDispatcher starts crawls for the trigger endpoints.
type CrawlDispatcher interface {
	Submit(ctx context.Context, input usecase.CrawlInput) (string, error)
	Run(ctx context.Context, input usecase.CrawlInput) usecase.CrawlOutcome
	RunBatch(ctx context.Context, names []string, matchRange *usecase.MatchRange) []usecase.CrawlOutcome
	Active() int
}

type PlayerFinder interface {
	GetByName(ctx context.Context, name string) (player.Player, bool, error)
}

type ServiceInfo struct {
	Name    string
	Version string
}

type Handler struct {
	crawls    CrawlDispatcher
	players   PlayerFinder
	info      ServiceInfo
	startedAt time.Time
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(crawls CrawlDispatcher, players PlayerFinder, info ServiceInfo, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		crawls:    crawls,
		players:   players,
		info:      info,
		startedAt: time.Now(),
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Status")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, statusDTO{
		Service:       h.info.Name,
		Version:       h.info.Version,
		CPUs:          runtime.NumCPU(),
		Goroutines:    runtime.NumGoroutine(),
		ActiveCrawls:  h.crawls.Active(),
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
	})
}

func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

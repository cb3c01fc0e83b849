package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/match-crawler/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	span.SetAttributes(attribute.String("crawl.player", name))
	if name == "" {
		writeError(ctx, w, fmt.Errorf("%w: player name is required", usecase.ErrInvalidInput))
		return
	}

	p, found, err := h.players.GetByName(ctx, name)
	if err != nil {
		h.logger.ErrorContext(ctx, "get player failed", "player", name, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: player %q has not been crawled", usecase.ErrNotFound, name))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-crawler/external/riot"
	"github.com/riskibarqy/match-crawler/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_CrawlFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{name: "unknown player", err: fmt.Errorf("resolve player: %w", &riot.UpstreamError{StatusCode: http.StatusNotFound}), status: http.StatusNotFound, reason: "notFound"},
		{name: "upstream failure", err: fmt.Errorf("crawl match: %w", &riot.UpstreamError{StatusCode: http.StatusForbidden}), status: http.StatusBadGateway, reason: "upstreamError"},
		{name: "rate limit", err: fmt.Errorf("%w: %w", riot.ErrRateLimitExhausted, &riot.UpstreamError{StatusCode: http.StatusTooManyRequests}), status: http.StatusTooManyRequests, reason: "rateLimitExceeded"},
		{name: "malformed", err: fmt.Errorf("%w: 9 participants", usecase.ErrMalformedMatch), status: http.StatusBadGateway, reason: "upstreamError"},
		{name: "workers busy", err: fmt.Errorf("%w: all crawl workers are busy", usecase.ErrDependencyUnavailable), status: http.StatusServiceUnavailable, reason: "dependencyUnavailable"},
		{name: "token", err: fmt.Errorf("%w: invalid crawl token", usecase.ErrUnauthorized), status: http.StatusUnauthorized, reason: "unauthorized"},
		{name: "unexpected", err: fmt.Errorf("boom"), status: http.StatusInternalServerError, reason: "internalError"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := mapError(context.Background(), tc.err)
			if got.HTTPStatus != tc.status || got.Reason != tc.reason {
				t.Fatalf("mapError(%v) = %+v, want status=%d reason=%s", tc.err, got, tc.status, tc.reason)
			}
		})
	}
}

func TestWriteError_HidesUnmappedMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("pq: password authentication failed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "password") {
		t.Fatalf("internal error detail leaked: %s", body)
	}
}

package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-crawler/external/riot"
	"github.com/riskibarqy/match-crawler/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "match-crawler"
)

// envelope follows the Google JSON style guide: data on success, error otherwise.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorRules is evaluated in order; the first match wins. Upstream 404s
// satisfy ErrNotFound, so that rule sits ahead of the generic upstream one.
var errorRules = []struct {
	match  func(error) bool
	mapped mappedError
}{
	{
		match:  func(err error) bool { return errors.Is(err, usecase.ErrInvalidInput) },
		mapped: mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	},
	{
		match:  func(err error) bool { return errors.Is(err, usecase.ErrNotFound) },
		mapped: mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	},
	{
		match:  func(err error) bool { return errors.Is(err, usecase.ErrUnauthorized) },
		mapped: mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"},
	},
	{
		match:  func(err error) bool { return errors.Is(err, usecase.ErrDependencyUnavailable) },
		mapped: mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
	},
	{
		match:  func(err error) bool { return errors.Is(err, riot.ErrRateLimitExhausted) },
		mapped: mappedError{HTTPStatus: http.StatusTooManyRequests, Reason: "rateLimitExceeded", Status: "RESOURCE_EXHAUSTED"},
	},
	{
		match: func(err error) bool {
			var upstream *riot.UpstreamError
			return errors.As(err, &upstream) || errors.Is(err, usecase.ErrMalformedMatch)
		},
		mapped: mappedError{HTTPStatus: http.StatusBadGateway, Reason: "upstreamError", Status: "UNAVAILABLE"},
	},
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, rule := range errorRules {
		if rule.match(err) {
			return rule.mapped
		}
	}
	return internalError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError maps err onto an HTTP status. Unmapped errors are reported
// without their message.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	msg := err.Error()
	if mapped == internalError {
		msg = "internal server error"
	}
	writeMappedError(w, mapped, msg)
}

func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeMappedError(w, internalError, "internal server error")
}

func writeMappedError(w http.ResponseWriter, mapped mappedError, msg string) {
	writeJSON(w, mapped.HTTPStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: msg}},
		},
	})
}

package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"httpapi.Handler.CreateCrawl": true,
		"httpapi.Handler.GetPlayer":   true,
		"httpapi.RequestLogging":      false,
		"httpapi.writeError":          false,
	}
	for in, want := range tests {
		if got := shouldCreateHTTPAPISpan(in); got != want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", in, got, want)
		}
	}
}

func TestStartSpan_NoParentIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.CreateCrawl")
	if got != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() || trace.SpanFromContext(got).SpanContext().IsValid() {
		t.Fatalf("expected a non-recording span without a parent")
	}
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz ", "/metrics"} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/v1/crawls", "/v1/status", "/v1/players/Faker", "/"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

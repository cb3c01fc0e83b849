package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-crawler/internal/config"
	"github.com/riskibarqy/match-crawler/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "match-crawler",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	base := logging.NewNop()
	logger, shutdown, err := InitUptrace(cfg, base)
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if logger != base {
		t.Fatalf("expected logger to be returned unchanged when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestOTelLogCore_LevelAndFields(t *testing.T) {
	core := newOTelLogCore("test", zapcore.WarnLevel)
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("info must be below the configured level")
	}

	child := core.With([]zapcore.Field{zap.String("player", "Faker")})
	if len(core.fields) != 0 {
		t.Fatalf("With must not mutate the parent core")
	}
	err := child.Write(zapcore.Entry{Level: zapcore.WarnLevel, Time: time.Now(), Message: "match crawl failed"},
		[]zapcore.Field{zap.Int64("game_id", 4242), zap.Error(errors.New("boom"))})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes(map[string]any{
		"player":  "Faker",
		"attempt": int64(2),
		"payload": nil,
	})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	// sorted by key
	if attrs[0].Key != "attempt" || attrs[0].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "payload" || attrs[1].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "player" || attrs[2].Value.AsString() != "Faker" {
		t.Fatalf("unexpected player attribute: %+v", attrs[2])
	}
}

func TestToOTelLogValue_Nested(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"kills": int64(11),
		"items": []any{int64(3089), "boots"},
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 || items[0].Key != "items" || items[0].Value.Kind() != otellog.KindSlice {
		t.Fatalf("unexpected nested map: %+v", items)
	}
	if got := toOTelLogValue(1500*time.Millisecond, 0).AsString(); got != "1.5s" {
		t.Fatalf("unexpected duration rendering %q", got)
	}
}

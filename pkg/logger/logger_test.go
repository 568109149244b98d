package logger

import (
	"context"
	"path/filepath"
	"testing"

	"shopping-api/config"
	"shopping-api/infrastructure/persistence"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNilLoggerSafety(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")

	if With(zap.String("key", "value")) == nil {
		t.Error("With() returned nil logger")
	}
	if WithRequestID("test-id") == nil {
		t.Error("WithRequestID() returned nil logger")
	}
	if FromContext(context.Background()) == nil {
		t.Error("FromContext() returned nil logger")
	}
}

func TestInitFileOutput(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	cfg := &config.LogConfig{Level: "debug", Format: "json", Output: "file", FilePath: path}

	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Failed to initialize file logger: %v", err)
	}
	defer Sync()

	Info("file logger initialized", zap.String("path", path))
	if !Get().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}
}

func TestUpdateLevel(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	if err := Init(&config.LogConfig{Level: "info", Output: "stdout"}, "development"); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	defer Sync()

	if Get().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be disabled at info level")
	}
	UpdateLevel("debug")
	if !Get().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled after UpdateLevel")
	}
	UpdateLevel("info")
}

func TestFromContextCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	ctx := persistence.ContextWithRequestID(context.Background(), "req-42")
	FromContext(ctx).Info("tagged")

	entries := logs.FilterMessage("tagged").All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-42" {
		t.Errorf("request_id = %v, want req-42", got)
	}
}

package log

import (
	"context"
	"testing"

	"judgeengine/pkg/utils/contextkey"
)

func TestNewRejectsInvalidLevel(t *testing.T) {
	if _, err := New(Config{Level: "not-a-level"}); err == nil {
		t.Fatal("expected an error for an invalid log level")
	}
}

func TestWithContextExtractsTraceFields(t *testing.T) {
	l, err := New(Config{Level: "info", Format: "json"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.WithValue(context.Background(), contextkey.TraceID, "trace-123")
	zl := l.WithContext(ctx)
	if zl == nil {
		t.Fatal("WithContext returned nil")
	}
}

func TestGlobalLoggerLazyInit(t *testing.T) {
	global = nil
	Info(context.Background(), "message without Init")
	if global == nil {
		t.Fatal("ensure() should lazily create a global logger")
	}
}

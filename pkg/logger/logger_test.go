package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"development", zapcore.DebugLevel},
		{"production", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitAndGet(t *testing.T) {
	if err := Init(&Config{Level: "info", ServiceName: "event-console"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Get() == nil {
		t.Fatal("Get() returned nil after Init")
	}
	Sync()
}

func TestLogger_ContextWithoutSpan(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := &Logger{zap: zap.New(core)}

	l.With(zap.String("component", "test")).InfoContext(context.Background(), "hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "test" {
		t.Errorf("expected component field, got %v", fields)
	}
	if _, ok := fields["trace_id"]; ok {
		t.Error("trace_id should not be set without a span")
	}
}

package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogger_SetLevel(t *testing.T) {
	l := New(ErrorLevel)
	if l.Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be disabled at error level")
	}
	l.SetLevel(DebugLevel)
	if !l.Desugar().Core().Enabled(zapcore.DebugLevel) || l.Level() != zapcore.DebugLevel {
		t.Fatal("debug should be enabled after SetLevel")
	}
}

func TestNewFromCore_StructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewFromCore(core)

	l.Infow("todo_created", "todo_id", int64(7))
	l.Debugw("dropped")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "todo_created" || entries[0].ContextMap()["todo_id"] != int64(7) {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Errorw("ignored", "k", "v")
	if l.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("nop logger should not be enabled")
	}
}

package adt

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWarnForwardsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))

	l.Warn("orphan MCNK", F("tile", "42"), F("reason", "no containing tile payload"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Message != "orphan MCNK" {
		t.Fatalf("Message = %q", entry.Message)
	}
	ctx := entry.ContextMap()
	if ctx["tile"] != "42" {
		t.Fatalf("ctx[tile] = %v, want \"42\"", ctx["tile"])
	}
	if ctx["reason"] != "no containing tile payload" {
		t.Fatalf("ctx[reason] = %v", ctx["reason"])
	}
}

func TestZapLoggerNilLoggerIsNoOp(t *testing.T) {
	l := NewZapLogger(nil)
	l.Warn("should not panic", F("k", "v"))

	var nilLogger *ZapLogger
	nilLogger.Warn("also should not panic")
}

func TestWarnHelperNilLoggerIsNoOp(t *testing.T) {
	warn(nil, "no logger configured", F("k", "v"))
}

func TestWarnHelperForwardsToLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))

	warn(l, "sub-chunk decode failed", F("tag", "MCSH"))

	if logs.Len() != 1 {
		t.Fatalf("logs.Len() = %d, want 1", logs.Len())
	}
	if logs.All()[0].Message != "sub-chunk decode failed" {
		t.Fatalf("Message = %q", logs.All()[0].Message)
	}
}

func TestNewDefaultLoggerIsUsable(t *testing.T) {
	l := NewDefaultLogger()
	if l == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
	l.Warn("exercised without panicking")
}

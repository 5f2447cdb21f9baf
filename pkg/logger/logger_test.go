package logger

import (
	"log/slog"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expect    slog.Level
		expectErr bool
	}{
		{"debug", "debug", slog.LevelDebug, false},
		{"default-info", "", slog.LevelInfo, false},
		{"warn", "warn", slog.LevelWarn, false},
		{"warning-alias", "warning", slog.LevelWarn, false},
		{"error", "error", slog.LevelError, false},
		{"invalid", "verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := levelFromString(tt.input)
			if tt.expectErr && err == nil {
				t.Fatalf("expected error for input %q", tt.input)
			}
			if !tt.expectErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("level mismatch: got %v want %v", got, tt.expect)
			}
		})
	}
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestInitReturnsSameInstance(t *testing.T) {
	first, err := Init(Config{Level: "info"})
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	second, err := Init(Config{Level: "debug"})
	if err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if first != second {
		t.Fatal("Init should return the first logger on repeated calls")
	}
	if L() != first {
		t.Fatal("L should return the initialized global logger")
	}
}

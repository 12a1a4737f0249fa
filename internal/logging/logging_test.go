package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, control, err := New(Options{Level: "info", Environment: "production"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil || control == nil {
		t.Fatalf("expected logger and control instances")
	}
	_ = logger.Sync()
	if err := control.Close(); err != nil {
		t.Fatalf("expected close without a file to succeed, got %v", err)
	}
}

func TestNewHonoursLevel(t *testing.T) {
	logger, _, err := New(Options{Level: "warn", Environment: "development"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("expected warn to be enabled")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.log")

	logger, control, err := New(Options{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("file sink check")
	_ = logger.Sync()
	if err := control.Close(); err != nil {
		t.Fatalf("expected log file to close cleanly, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "file sink check") {
		t.Fatalf("expected log line in file, got %q", data)
	}
}

func TestControlSetLevel(t *testing.T) {
	logger, control, err := New(Options{Level: "info"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug to be disabled at info level")
	}

	control.SetLevel("debug")
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug to be enabled after SetLevel")
	}
	if control.Level() != zapcore.DebugLevel {
		t.Fatalf("expected control to report debug, got %s", control.Level())
	}

	control.SetLevel("nonsense")
	if control.Level() != zapcore.InfoLevel {
		t.Fatalf("expected unknown level to fall back to info, got %s", control.Level())
	}
}

func TestControlCloseIsNilSafe(t *testing.T) {
	var control *Control
	if err := control.Close(); err != nil {
		t.Fatalf("expected nil control to close cleanly, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	testCases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for raw, want := range testCases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", raw, got, want)
		}
	}
}

package logging

import (
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatalf("expected logger instance")
	}
	_ = logger.Sync()
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "chatty"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewWithFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logconf.log")
	logger, err := New(Options{Level: "debug", FilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("file sink smoke test")
	_ = logger.Sync()
}

func TestNewRollingFileDefaults(t *testing.T) {
	rolling := newRollingFile(Options{FilePath: "/tmp/logconf.log"})
	if rolling.MaxSize != 50 || rolling.MaxBackups != 3 || rolling.MaxAge != 28 {
		t.Fatalf("unexpected rotation defaults: %+v", rolling)
	}

	rolling = newRollingFile(Options{FilePath: "/tmp/logconf.log", MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 7})
	if rolling.MaxSize != 10 || rolling.MaxBackups != 1 || rolling.MaxAge != 7 {
		t.Fatalf("expected explicit rotation settings to win: %+v", rolling)
	}
}

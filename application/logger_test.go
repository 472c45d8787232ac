package application

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	logger, err := NewLogger(&LoggerConfig{Environment: "production", Path: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden message")
	logger.Info("visible message", "tree", "accounts")
	logger.Warn("warning message")
	logger.Sync()

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "hidden message") {
		t.Error("Debug entries must be dropped in production")
	}
	for _, want := range []string{"INFO", "visible message", "accounts", "WARN"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Expect %q in the log, got %q", want, out)
		}
	}
}

func TestLoggerEnvironment(t *testing.T) {
	if _, err := NewLogger(&LoggerConfig{Environment: "staging"}); err == nil {
		t.Fatal("Expect an error for an unknown environment")
	}
	if _, err := NewLogger(&LoggerConfig{Environment: "Development"}); err != nil {
		t.Fatal(err)
	}
	logger, err := NewLogger(nil)
	if err != nil {
		t.Fatal(err)
	}
	logger.Error("discarded")
	if logger.Sugar() == nil {
		t.Fatal("Expect a logger")
	}
}

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Errorf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInitWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meshkit.log")

	if err := Init("debug", path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Log.Info("log file smoke test")
	Sync()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected log file at %s: %v", path, err)
	}
}

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger("warn", FileConfig{}, true, &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message", zap.Int("frame", 3))
	log.Error("error message")
	Sync(log)

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Error("entries below warn level should be filtered")
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("missing entries at or above warn level: %q", output)
	}
	if !strings.Contains(output, "frame") {
		t.Error("structured field not written")
	}
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "sweep.log")
	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false
	log, err := New("debug", cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("extruded mesh", zap.Int("segments", 4))
	Sync(log)

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "extruded mesh") {
		t.Errorf("log file missing entry: %q", data)
	}
	if !strings.Contains(string(data), "DEBUG") {
		t.Errorf("file entries should carry plain level names: %q", data)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"", zapcore.InfoLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error on unknown level")
	}
}

func TestNoOutputIsNop(t *testing.T) {
	log, err := New("info", FileConfig{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without outputs should discard entries")
	}
}

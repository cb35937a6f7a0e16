package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"garbage", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestProductionDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "production"})

	log.Info("server starting", "port", "8080")

	line := buf.String()
	if !strings.HasPrefix(line, "{") {
		t.Fatalf("production output should be JSON, got: %s", line)
	}
	if !strings.Contains(line, `"port":"8080"`) {
		t.Errorf("attribute missing from JSON output: %s", line)
	}
}

func TestDevHandlerLineFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development"})

	log.Warn("index rebuild", "places", 12)

	line := buf.String()
	for _, want := range []string{"WARN", "index rebuild", "places=12"} {
		if !strings.Contains(line, want) {
			t.Errorf("dev output missing %q: %s", want, line)
		}
	}
}

func TestDevHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development", Level: slog.LevelWarn})

	log.Info("too quiet to matter")
	if buf.Len() != 0 {
		t.Errorf("info record should be suppressed at warn level: %s", buf.String())
	}

	log.Error("this one counts")
	if !strings.Contains(buf.String(), "this one counts") {
		t.Error("error record should pass the level filter")
	}
}

func TestDevHandlerCarriesWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Environment: "development"})

	log.With("request_id", "req-1").Info("handled")

	if !strings.Contains(buf.String(), "request_id=req-1") {
		t.Errorf("With attributes should appear on every record: %s", buf.String())
	}
}

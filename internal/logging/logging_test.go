package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"error":   slog.LevelError,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "component=test") {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestComponentToleratesNilLogger(t *testing.T) {
	t.Parallel()

	Component(nil, "extractor").Info("dropped")

	var buf bytes.Buffer
	Component(NewWithWriter(&buf, "info"), "generator").Info("built")
	if !strings.Contains(buf.String(), "component=generator") {
		t.Fatalf("expected component attribute, got %q", buf.String())
	}
}

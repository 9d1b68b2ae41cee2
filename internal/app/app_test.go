package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"DocPipeline/internal/config"
)

func TestNewWiresPipelineWithoutOptionalBackends(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Config{
		Logging:   config.LoggingConfig{Level: "error"},
		Artifacts: config.ArtifactConfig{OutputDir: filepath.Join(dir, "out"), DownloadPrefix: "/dl/"},
		Metrics:   config.MetricsConfig{TextfilePath: filepath.Join(dir, "metrics.prom")},
	}

	application, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	artifact, err := application.Pipeline().DetectAndGenerate(context.Background(), "| A | B |\n|---|---|\n| 1 | 2 |", "u")
	if err != nil || artifact == nil {
		t.Fatalf("DetectAndGenerate: %v %v", artifact, err)
	}
	if !strings.HasPrefix(artifact.DownloadURL, "/dl/") {
		t.Fatalf("unexpected download url %q", artifact.DownloadURL)
	}

	if err := application.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	raw, err := os.ReadFile(cfg.Metrics.TextfilePath)
	if err != nil {
		t.Fatalf("metrics not written: %v", err)
	}
	if !strings.Contains(string(raw), "docpipeline_generations_total") {
		t.Fatalf("metrics dump missing generations:\n%s", raw)
	}
}

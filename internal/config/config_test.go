package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMergesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
logging:
  level: warn
artifacts:
  outputDir: /srv/generated
charts:
  timeout: 5s
images:
  model: dall-e-2
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(openAIAPIKeyEnv, "sk-test")
	t.Setenv(chartRendererEnv, "http://charts.local/chart")

	cfg := Load("")
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected file level, got %q", cfg.Logging.Level)
	}
	if cfg.Artifacts.OutputDir != "/srv/generated" || cfg.Artifacts.DownloadPrefix != "/api/files/download/generated/" {
		t.Fatalf("unexpected artifacts config %+v", cfg.Artifacts)
	}
	if cfg.Charts.Timeout != 5*time.Second || cfg.Charts.RendererURL != "http://charts.local/chart" {
		t.Fatalf("unexpected charts config %+v", cfg.Charts)
	}
	if cfg.Images.Model != "dall-e-2" || cfg.Images.APIKey != "sk-test" {
		t.Fatalf("unexpected images config %+v", cfg.Images)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(logLevelEnv, "")

	cfg := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.Logging.Level != "info" || cfg.Charts.CacheSize != 128 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Database.DSN != "" {
		t.Fatalf("ledger must be disabled by default, got %q", cfg.Database.DSN)
	}
}

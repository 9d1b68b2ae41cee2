package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "DOCPIPELINE_CONFIG"
	logLevelEnv       = "LOG_LEVEL"
	databaseDSNEnv    = "DATABASE_DSN"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	openAIBaseURLEnv  = "OPENAI_BASE_URL"
	imageModelEnv     = "IMAGE_MODEL"
	chartRendererEnv  = "CHART_RENDERER_URL"
	artifactOutputEnv = "ARTIFACT_OUTPUT_DIR"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig  `yaml:"logging"`
	Database  DatabaseConfig `yaml:"database"`
	Artifacts ArtifactConfig `yaml:"artifacts"`
	Charts    ChartConfig    `yaml:"charts"`
	Images    ImageConfig    `yaml:"images"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes the optional Postgres artifact ledger. Empty DSN disables it.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ArtifactConfig locates generated files on disk and in download links.
type ArtifactConfig struct {
	OutputDir      string `yaml:"outputDir"`
	DownloadPrefix string `yaml:"downloadPrefix"`
}

// ChartConfig points at a QuickChart-compatible renderer. Empty URL disables charts.
type ChartConfig struct {
	RendererURL string        `yaml:"rendererUrl"`
	APIKey      string        `yaml:"apiKey"`
	Timeout     time.Duration `yaml:"timeout"`
	CacheSize   int           `yaml:"cacheSize"`
}

// ImageConfig defines how to reach the image generation API. Empty key disables images.
type ImageConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// MetricsConfig enables a Prometheus textfile dump after each command.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfilePath"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
// An explicit path wins over DOCPIPELINE_CONFIG.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.Images.APIKey = v
	}

	if v := os.Getenv(openAIBaseURLEnv); v != "" {
		c.Images.BaseURL = v
	}

	if v := os.Getenv(imageModelEnv); v != "" {
		c.Images.Model = v
	}

	if v := os.Getenv(chartRendererEnv); v != "" {
		c.Charts.RendererURL = v
	}

	if v := os.Getenv(artifactOutputEnv); v != "" {
		c.Artifacts.OutputDir = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Artifacts.OutputDir != "" {
		base.Artifacts.OutputDir = override.Artifacts.OutputDir
	}
	if override.Artifacts.DownloadPrefix != "" {
		base.Artifacts.DownloadPrefix = override.Artifacts.DownloadPrefix
	}

	if override.Charts.RendererURL != "" {
		base.Charts.RendererURL = override.Charts.RendererURL
	}
	if override.Charts.APIKey != "" {
		base.Charts.APIKey = override.Charts.APIKey
	}
	if override.Charts.Timeout > 0 {
		base.Charts.Timeout = override.Charts.Timeout
	}
	if override.Charts.CacheSize > 0 {
		base.Charts.CacheSize = override.Charts.CacheSize
	}

	if override.Images.APIKey != "" {
		base.Images.APIKey = override.Images.APIKey
	}
	if override.Images.BaseURL != "" {
		base.Images.BaseURL = override.Images.BaseURL
	}
	if override.Images.Model != "" {
		base.Images.Model = override.Images.Model
	}
	if override.Images.Timeout > 0 {
		base.Images.Timeout = override.Images.Timeout
	}

	if override.Metrics.TextfilePath != "" {
		base.Metrics.TextfilePath = override.Metrics.TextfilePath
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Artifacts: ArtifactConfig{
			OutputDir:      "uploads/generated",
			DownloadPrefix: "/api/files/download/generated/",
		},
		Charts: ChartConfig{
			RendererURL: "https://quickchart.io/chart",
			Timeout:     15 * time.Second,
			CacheSize:   128,
		},
		Images: ImageConfig{
			Model:   "dall-e-3",
			Timeout: 60 * time.Second,
		},
	}
}

package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"DocPipeline/internal/config"
	"DocPipeline/internal/extractor"
	"DocPipeline/internal/generator"
	"DocPipeline/internal/infrastructure/chartrender"
	"DocPipeline/internal/infrastructure/imagegen"
	"DocPipeline/internal/infrastructure/storage"
	"DocPipeline/internal/logging"
	"DocPipeline/internal/metrics"
	"DocPipeline/internal/ports"
	"DocPipeline/internal/usecase"
)

// Application wires configs to use cases and owns their resources.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	metrics  *metrics.Recorder
	db       *sql.DB
	logger   *slog.Logger
}

// New builds the application. Optional backends left unconfigured are disabled, not errors.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	recorder, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	var charts ports.ChartRenderer
	if cfg.Charts.RendererURL != "" {
		qc, err := chartrender.NewQuickChart(cfg.Charts.RendererURL, cfg.Charts.APIKey, cfg.Charts.Timeout, cfg.Charts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("init chart renderer: %w", err)
		}
		charts = qc
	}

	var images ports.ImageGenerator
	if cfg.Images.APIKey != "" {
		gen, err := imagegen.NewOpenAI(cfg.Images.APIKey, cfg.Images.BaseURL, cfg.Images.Model, cfg.Images.Timeout)
		if err != nil {
			return nil, fmt.Errorf("init image generator: %w", err)
		}
		images = gen
	} else {
		baseLogger.Debug("image generation disabled: no API key")
	}

	store, err := storage.NewFileStore(cfg.Artifacts.OutputDir, cfg.Artifacts.DownloadPrefix)
	if err != nil {
		return nil, fmt.Errorf("init artifact store: %w", err)
	}

	application := &Application{cfg: cfg, metrics: recorder, logger: baseLogger}

	deps := usecase.PipelineDeps{
		Extractor:      extractor.New(logging.Component(baseLogger, "extractor")),
		Generator:      generator.New(charts, images, logging.Component(baseLogger, "generator")),
		Store:          store,
		Metrics:        recorder,
		DownloadPrefix: cfg.Artifacts.DownloadPrefix,
		Logger:         logging.Component(baseLogger, "pipeline"),
	}

	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prepare artifact ledger: %w", err)
		}
		application.db = db
		deps.Repository = repo
	}

	application.pipeline = usecase.NewPipeline(deps)
	return application, nil
}

// Pipeline exposes the configured use case.
func (a *Application) Pipeline() *usecase.Pipeline {
	return a.pipeline
}

// Close flushes metrics (when configured) and releases the database.
func (a *Application) Close() error {
	var errs []error
	if path := a.cfg.Metrics.TextfilePath; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

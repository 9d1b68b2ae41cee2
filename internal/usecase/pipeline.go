package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"DocPipeline/internal/classifier"
	"DocPipeline/internal/detector"
	"DocPipeline/internal/domain"
	"DocPipeline/internal/extractor"
	"DocPipeline/internal/generator"
	"DocPipeline/internal/metrics"
	"DocPipeline/internal/ports"
)

const defaultListLimit = 50

// PipelineDeps wires the content components and driven adapters.
type PipelineDeps struct {
	Extractor      *extractor.Extractor
	Generator      *generator.Generator
	Store          ports.ArtifactStore
	Repository     ports.ArtifactRepository
	Metrics        *metrics.Recorder
	DownloadPrefix string
	Logger         *slog.Logger
}

// Pipeline is the two-directional content flow: uploads in, artifacts out.
type Pipeline struct {
	extractor      *extractor.Extractor
	generator      *generator.Generator
	store          ports.ArtifactStore
	repository     ports.ArtifactRepository
	metrics        *metrics.Recorder
	downloadPrefix string
	logger         *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ext := deps.Extractor
	if ext == nil {
		ext = extractor.New(logger.With("component", "extractor"))
	}
	gen := deps.Generator
	if gen == nil {
		gen = generator.New(nil, nil, logger.With("component", "generator"))
	}
	return &Pipeline{
		extractor:      ext,
		generator:      gen,
		store:          deps.Store,
		repository:     deps.Repository,
		metrics:        deps.Metrics,
		downloadPrefix: deps.DownloadPrefix,
		logger:         logger,
	}
}

// ClassifyAndExtract validates an upload and returns its normalized text.
// Rejections return *domain.UnsupportedTypeError and no extraction is attempted.
func (p *Pipeline) ClassifyAndExtract(ctx context.Context, data []byte, filename, mimeType string) (domain.ExtractionResult, error) {
	verdict, err := classifier.Validate(filename, mimeType)
	if err != nil {
		p.metrics.Classification(verdict.Category.String(), metrics.OutcomeRejected)
		p.logger.Info("upload rejected", "file", filename, "mime", mimeType, "reason", verdict.Reason)
		f := domain.NewUploadedFile(data, filename, mimeType)
		metadata := domain.BaseMetadata(f, time.Now())
		metadata["category"] = verdict.Category.String()
		return domain.ExtractionResult{Success: false, Metadata: metadata, Error: err.Error()}, err
	}
	p.metrics.Classification(verdict.Category.String(), metrics.OutcomeOK)

	result := p.extractor.Extract(ctx, domain.NewUploadedFile(data, filename, mimeType))
	if !result.Success {
		p.metrics.Extraction(verdict.Category.String(), metrics.OutcomeFailed)
		p.logger.Warn("extraction degraded", "file", filename, "category", verdict.Category.String(), "error", result.Error)
		return result, nil
	}

	p.metrics.Extraction(verdict.Category.String(), metrics.OutcomeOK)
	p.logger.Debug("extracted", "file", filename, "category", verdict.Category.String(), "chars", len(result.Content))
	return result, nil
}

// DetectAndGenerate builds the artifact a model reply asks for. Generation
// failures yield nil, nil; persistence failures yield a *domain.IOError.
func (p *Pipeline) DetectAndGenerate(ctx context.Context, reply, requesterID string) (*domain.GeneratedArtifact, error) {
	outcome := detector.Detect(reply)
	if !outcome.Detected {
		return nil, nil
	}

	artifact, err := p.generate(ctx, reply, outcome, requesterID)
	if err != nil {
		var ioErr *domain.IOError
		if errors.As(err, &ioErr) {
			return nil, err
		}
		p.logger.Warn("artifact generation failed", "kind", outcome.Kind.String(), "error", err)
		return nil, nil
	}
	return artifact, nil
}

// GenerateKind builds an explicitly requested artifact and reports why it failed.
func (p *Pipeline) GenerateKind(ctx context.Context, text string, kind domain.ArtifactKind, requesterID string) (*domain.GeneratedArtifact, error) {
	outcome := domain.DetectionOutcome{Detected: true, Kind: kind}
	return p.generate(ctx, text, outcome, requesterID)
}

func (p *Pipeline) generate(ctx context.Context, text string, outcome domain.DetectionOutcome, requesterID string) (*domain.GeneratedArtifact, error) {
	start := time.Now()
	kind := outcome.Kind.String()

	artifact, err := p.generator.Generate(ctx, text, outcome, requesterID)
	if err != nil {
		p.metrics.Generation(kind, metrics.OutcomeFailed, time.Since(start))
		return nil, err
	}

	if err := p.persist(ctx, artifact); err != nil {
		p.metrics.Generation(kind, metrics.OutcomeFailed, time.Since(start))
		p.logger.Error("artifact persistence failed", "file", artifact.Filename, "error", err)
		return nil, err
	}

	p.metrics.Generation(kind, metrics.OutcomeOK, time.Since(start))
	p.logger.Info("artifact generated", "kind", kind, "file", artifact.Filename, "size", artifact.Size)
	return artifact, nil
}

func (p *Pipeline) persist(ctx context.Context, a *domain.GeneratedArtifact) error {
	if p.store == nil {
		return nil
	}

	path, err := p.store.Write(ctx, a.Filename, a.Payload)
	if err != nil {
		return asIOError("write artifact", a.Filename, err)
	}
	a.Path = path
	a.DownloadURL = p.downloadPrefix + a.Filename

	if p.repository != nil {
		if err := p.repository.Save(ctx, *a); err != nil {
			return asIOError("record artifact", a.Filename, err)
		}
	}
	return nil
}

// OpenArtifact resolves a download name. Invalid names never reach the store.
func (p *Pipeline) OpenArtifact(ctx context.Context, name string) (io.ReadCloser, domain.StoredArtifact, error) {
	if p.store == nil {
		return nil, domain.StoredArtifact{}, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	rc, size, err := p.store.Open(ctx, name)
	if err != nil {
		return nil, domain.StoredArtifact{}, err
	}
	return rc, domain.StoredArtifact{
		Filename:    name,
		MIMEType:    domain.MIMETypeForName(name),
		Size:        size,
		DownloadURL: p.downloadPrefix + name,
	}, nil
}

// ListArtifacts lists stored artifacts; with a requester and a ledger, only theirs.
func (p *Pipeline) ListArtifacts(ctx context.Context, requesterID string) ([]domain.StoredArtifact, error) {
	if requesterID != "" && p.repository != nil {
		rows, err := p.repository.ListByRequester(ctx, requesterID, defaultListLimit)
		if err != nil {
			return nil, err
		}
		out := make([]domain.StoredArtifact, 0, len(rows))
		for _, a := range rows {
			out = append(out, domain.StoredArtifact{
				Filename:     a.Filename,
				OriginalName: a.OriginalName,
				MIMEType:     a.MIMEType,
				Size:         a.Size,
				CreatedAt:    a.CreatedAt,
				DownloadURL:  a.DownloadURL,
			})
		}
		return out, nil
	}
	if p.store == nil {
		return nil, nil
	}
	return p.store.List(ctx)
}

// DeleteArtifact removes the stored file and its ledger row.
func (p *Pipeline) DeleteArtifact(ctx context.Context, name string) error {
	if p.store == nil {
		return fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	if err := p.store.Delete(ctx, name); err != nil {
		return err
	}
	if p.repository != nil {
		if err := p.repository.Delete(ctx, name); err != nil {
			return err
		}
	}
	p.logger.Info("artifact deleted", "file", name)
	return nil
}

func asIOError(op, path string, err error) error {
	var ioErr *domain.IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &domain.IOError{Op: op, Path: path, Err: err}
}

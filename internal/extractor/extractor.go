// Package extractor turns an accepted upload into bounded, normalized text.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"DocPipeline/internal/classifier"
	"DocPipeline/internal/domain"
)

// Extractor dispatches uploads to the strategy registered for their category.
type Extractor struct {
	registry *Registry
	logger   *slog.Logger
	now      func() time.Time
}

// New builds an extractor over the default registry.
func New(logger *slog.Logger) *Extractor {
	return NewWithRegistry(DefaultRegistry(), logger)
}

// NewWithRegistry builds an extractor over a custom registry.
func NewWithRegistry(registry *Registry, logger *slog.Logger) *Extractor {
	return &Extractor{registry: registry, logger: logger, now: time.Now}
}

// Extract never panics: every failure comes back as Success=false.
func (e *Extractor) Extract(ctx context.Context, f domain.UploadedFile) domain.ExtractionResult {
	metadata := domain.BaseMetadata(f, e.now())

	verdict, err := classifier.Validate(f.OriginalName, f.DeclaredMIME)
	metadata["category"] = verdict.Category.String()
	if err != nil {
		e.debug("upload rejected", "file", f.OriginalName, "mime", f.DeclaredMIME, "reason", verdict.Reason)
		return failure(metadata, err)
	}

	if err := ctx.Err(); err != nil {
		return failure(metadata, fmt.Errorf("extraction cancelled: %w", err))
	}

	strategy, err := e.registry.Resolve(verdict.Category)
	if err != nil {
		return failure(metadata, err)
	}

	e.debug("extract", "file", f.OriginalName, "category", verdict.Category.String(), "size", f.Size)

	out, err := runStrategy(ctx, strategy, f)
	if err != nil {
		e.debug("extraction failed", "file", f.OriginalName, "category", verdict.Category.String(), "error", err)
		return failure(metadata, err)
	}

	for k, v := range out.Metadata {
		metadata[k] = v
	}

	content := strings.TrimSpace(out.Content)
	truncated := false
	if !out.Structured {
		content, truncated = Truncate(content)
	}
	metadata["truncated"] = truncated

	e.debug("extraction done", "file", f.OriginalName, "chars", len(content), "truncated", truncated)

	return domain.ExtractionResult{
		Success:    true,
		Content:    content,
		Metadata:   metadata,
		Attachment: out.Attachment,
	}
}

// runStrategy converts panics inside a format branch into errors.
func runStrategy(ctx context.Context, s Strategy, f domain.UploadedFile) (out Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = Output{}
			err = fmt.Errorf("%s extraction crashed: %v", s.Category(), r)
		}
	}()
	return s.Extract(ctx, f)
}

func failure(metadata map[string]any, err error) domain.ExtractionResult {
	return domain.ExtractionResult{
		Success:  false,
		Metadata: metadata,
		Error:    err.Error(),
	}
}

func (e *Extractor) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func sizeKB(n int) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

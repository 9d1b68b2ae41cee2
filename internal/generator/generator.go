// Package generator synthesizes downloadable artifacts from model replies.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"DocPipeline/internal/domain"
	"DocPipeline/internal/ports"
)

var (
	errNoRenderer  = errors.New("chart rendering is not configured")
	errNoImageGen  = errors.New("image generation is not configured")
	errEmptyOutput = errors.New("nothing left to write after cleaning")
)

// Generator builds artifact payloads. It does not persist them.
type Generator struct {
	charts ports.ChartRenderer
	images ports.ImageGenerator
	logger *slog.Logger
	now    func() time.Time
	stamp  *Stamp
}

// New wires optional chart and image backends; nil disables that kind.
func New(charts ports.ChartRenderer, images ports.ImageGenerator, logger *slog.Logger) *Generator {
	return &Generator{
		charts: charts,
		images: images,
		logger: logger,
		now:    time.Now,
		stamp:  &Stamp{},
	}
}

// Generate produces the artifact requested by outcome. Every failure is a *domain.GenerationError.
func (g *Generator) Generate(ctx context.Context, text string, outcome domain.DetectionOutcome, requesterID string) (*domain.GeneratedArtifact, error) {
	kind := outcome.Kind
	if !outcome.Detected || kind.Extension() == "" {
		return nil, &domain.GenerationError{Kind: kind, Err: fmt.Errorf("no artifact requested")}
	}

	now := g.now()
	base := SuggestFilename(text, now)

	payload, err := g.render(ctx, kind, text, base)
	if err != nil {
		g.debug("render failed", "kind", kind.String(), "error", err)
		return nil, &domain.GenerationError{Kind: kind, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &domain.GenerationError{Kind: kind, Err: err}
	}

	ext := kind.Extension()

	return &domain.GeneratedArtifact{
		ID:           uuid.NewString(),
		Kind:         kind,
		Filename:     UniqueName(g.stamp.Next(now), base, ext),
		OriginalName: base + "." + ext,
		MIMEType:     kind.MIMEType(),
		Size:         int64(len(payload)),
		RequesterID:  requesterID,
		CreatedAt:    now.UTC(),
		Payload:      payload,
	}, nil
}

func (g *Generator) render(ctx context.Context, kind domain.ArtifactKind, text, base string) ([]byte, error) {
	switch kind {
	case domain.KindExcel:
		return excelFromText(text)
	case domain.KindCsv:
		return csvFromText(text)
	case domain.KindChart:
		return g.chart(ctx, text)
	case domain.KindImage:
		return g.image(ctx, text)
	case domain.KindPdf:
		return pdfFromText(text, base)
	case domain.KindMarkdown, domain.KindPlainText:
		return plainFromText(text)
	case domain.KindJson:
		return jsonFromText(text)
	default:
		return nil, fmt.Errorf("unsupported artifact kind %s", kind)
	}
}

func (g *Generator) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}

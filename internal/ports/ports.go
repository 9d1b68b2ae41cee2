package ports

import (
	"context"
	"io"

	"DocPipeline/internal/domain"
)

// ChartRenderer turns a chart configuration into PNG bytes.
type ChartRenderer interface {
	Render(ctx context.Context, spec domain.ChartSpec) ([]byte, error)
}

// ImageGenerator produces a PNG from a text prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// ArtifactStore keeps generated artifact bytes addressable by unique name.
type ArtifactStore interface {
	Write(ctx context.Context, name string, payload []byte) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
	List(ctx context.Context) ([]domain.StoredArtifact, error)
	Delete(ctx context.Context, name string) error
}

// ArtifactRepository records who generated which artifact.
type ArtifactRepository interface {
	Save(ctx context.Context, artifact domain.GeneratedArtifact) error
	ListByRequester(ctx context.Context, requesterID string, limit uint64) ([]domain.GeneratedArtifact, error)
	Delete(ctx context.Context, filename string) error
}

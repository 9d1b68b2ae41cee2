package extractor

import (
	"context"
	"fmt"

	"DocPipeline/internal/domain"
)

// Output is what a strategy hands back before the shared cap is applied.
type Output struct {
	Content    string
	Metadata   map[string]any
	Attachment *domain.Attachment

	// Structured marks payloads (the image envelope) that carry their own bound
	// and must not be cut by the text cap.
	Structured bool
}

// Strategy extracts one category. Implementations must not retain f.Data.
type Strategy interface {
	Category() domain.Category
	Extract(ctx context.Context, f domain.UploadedFile) (Output, error)
}

// Registry holds exactly one strategy per accepted category.
type Registry struct {
	strategies [domain.CategoryCount]Strategy
}

// NewRegistry fails unless every accepted category is covered exactly once.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	r := &Registry{}
	for _, s := range strategies {
		c := s.Category()
		if !c.Accepted() {
			return nil, fmt.Errorf("strategy for %s cannot be registered", c)
		}
		if r.strategies[c] != nil {
			return nil, fmt.Errorf("duplicate strategy for %s", c)
		}
		r.strategies[c] = s
	}
	for _, c := range domain.AcceptedCategories() {
		if r.strategies[c] == nil {
			return nil, fmt.Errorf("no strategy registered for %s", c)
		}
	}
	return r, nil
}

// DefaultRegistry wires the built-in strategies.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		TextStrategy{},
		PDFStrategy{},
		SpreadsheetStrategy{},
		CSVStrategy{},
		BibliographyStrategy{},
		NotebookStrategy{},
		ArchiveStrategy{},
		ImageStrategy{},
		OfficeStrategy{},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the strategy for an accepted category.
func (r *Registry) Resolve(c domain.Category) (Strategy, error) {
	if c < domain.CategoryCount {
		if s := r.strategies[c]; s != nil {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no strategy for category %s", c)
}

package extractor

import (
	"context"
	"fmt"
	"regexp"

	"DocPipeline/internal/domain"
)

var (
	bibtexEntry = regexp.MustCompile(`@\w+\s*\{`)
	risEntry    = regexp.MustCompile(`(?m)^TY\s*-`)
)

// BibliographyStrategy counts BibTeX/RIS entries and keeps the raw text.
type BibliographyStrategy struct{}

func (BibliographyStrategy) Category() domain.Category { return domain.CategoryBibliography }

func (BibliographyStrategy) Extract(_ context.Context, f domain.UploadedFile) (Output, error) {
	text, err := decodeText(f.Data)
	if err != nil {
		return Output{}, fmt.Errorf("could not read bibliography: %w", err)
	}

	format := f.Extension()
	if format != "bib" && format != "ris" {
		format = "bib"
		if len(risEntry.FindAllStringIndex(text, -1)) > len(bibtexEntry.FindAllStringIndex(text, -1)) {
			format = "ris"
		}
	}

	var (
		entries int
		banner  string
	)
	if format == "ris" {
		entries = len(risEntry.FindAllStringIndex(text, -1))
		banner = "RIS REFERENCES"
	} else {
		entries = len(bibtexEntry.FindAllStringIndex(text, -1))
		banner = "BIBTEX REFERENCES"
	}

	header := fmt.Sprintf("=== BIBLIOGRAPHY %s: %s ===\n=== %s ===\nTotal references: %d\n\n",
		format, f.OriginalName, banner, entries)

	return Output{
		Content: header + text,
		Metadata: map[string]any{
			"isBibliography":     true,
			"bibliographyFormat": format,
			"entries":            entries,
		},
	}, nil
}

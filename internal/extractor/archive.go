package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"DocPipeline/internal/domain"
)

const (
	archiveInlineEntries = 5
	archiveInlineMaxSize = 100 * 1024
	archiveInlineChars   = 1000
)

var archiveTextExts = map[string]bool{
	"txt": true, "md": true, "json": true, "py": true, "r": true,
	"yaml": true, "yml": true, "csv": true, "xml": true, "tex": true,
}

// ArchiveStrategy lists a zip and inlines a few small text entries.
type ArchiveStrategy struct{}

func (ArchiveStrategy) Category() domain.Category { return domain.CategoryArchive }

func (ArchiveStrategy) Extract(ctx context.Context, f domain.UploadedFile) (Output, error) {
	zr, err := zip.NewReader(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		return Output{}, fmt.Errorf("could not open archive: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== ZIP ARCHIVE: %s ===\n", f.OriginalName)
	fmt.Fprintf(&b, "Entries: %d\n\n", len(zr.File))

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s)\n", entry.Name, sizeKB(int(entry.UncompressedSize64)))
	}

	inlined := 0
	for _, entry := range zr.File {
		if inlined == archiveInlineEntries {
			break
		}
		if err := ctx.Err(); err != nil {
			return Output{}, fmt.Errorf("archive extraction cancelled: %w", err)
		}
		if entry.FileInfo().IsDir() || entry.UncompressedSize64 >= archiveInlineMaxSize {
			continue
		}
		if !archiveTextExts[domain.ExtensionOf(entry.Name)] {
			continue
		}

		text, err := readEntry(entry)
		if err != nil {
			continue
		}
		inlined++
		fmt.Fprintf(&b, "\n=== %s ===\n%s\n", entry.Name, text)
	}

	return Output{
		Content: b.String(),
		Metadata: map[string]any{
			"entries": len(zr.File),
			"inlined": inlined,
		},
	}, nil
}

func readEntry(entry *zip.File) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, archiveInlineMaxSize))
	if err != nil {
		return "", err
	}
	text, err := decodeText(data)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(text) > archiveInlineChars {
		head, _ := headChars(text, archiveInlineChars)
		text = head + "\n... (truncated)"
	}
	return text, nil
}

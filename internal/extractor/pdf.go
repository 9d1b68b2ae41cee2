package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"DocPipeline/internal/domain"
)

// PDFStrategy reads the text layer only; scanned pages yield nothing (no OCR).
type PDFStrategy struct{}

func (PDFStrategy) Category() domain.Category { return domain.CategoryPdf }

func (PDFStrategy) Extract(ctx context.Context, f domain.UploadedFile) (Output, error) {
	reader, err := pdf.NewReader(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		return Output{}, fmt.Errorf("could not read PDF: %w", err)
	}

	pages := reader.NumPage()
	var (
		b             strings.Builder
		unreadable    int
		pagesWithText int
	)
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return Output{}, fmt.Errorf("pdf extraction cancelled: %w", err)
		}
		text, ok := pageText(reader, i)
		if !ok {
			unreadable++
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pagesWithText++
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
	}

	metadata := map[string]any{
		"pages":           pages,
		"pagesWithText":   pagesWithText,
		"unreadablePages": unreadable,
		"textLayer":       pagesWithText > 0,
	}

	header := fmt.Sprintf("=== PDF DOCUMENT: %s ===\nPages: %d\n\n", f.OriginalName, pages)
	if pagesWithText == 0 {
		return Output{
			Content:  header + "No text layer was found in this PDF. It may be a scanned document; OCR is not performed.",
			Metadata: metadata,
		}, nil
	}
	return Output{Content: header + b.String(), Metadata: metadata}, nil
}

// pageText isolates parser panics to a single page.
func pageText(reader *pdf.Reader, index int) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()
	page := reader.Page(index)
	if page.V.IsNull() {
		return "", true
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return text, true
}

package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"DocPipeline/internal/domain"
)

const officePartLimit = 8 << 20

var slidePart = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// OfficeStrategy reads the text of OOXML/ODF documents and degrades to a
// notice for binary Word/PowerPoint containers.
type OfficeStrategy struct{}

func (OfficeStrategy) Category() domain.Category { return domain.CategoryOfficeDocument }

func (OfficeStrategy) Extract(ctx context.Context, f domain.UploadedFile) (Output, error) {
	ext := f.Extension()
	banner, kind := officeBanner(ext)

	text, parts, err := officeText(ctx, ext, f.Data)
	if err != nil || strings.TrimSpace(text) == "" {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Output{}, fmt.Errorf("office extraction cancelled: %w", ctxErr)
		}
		return limitedNotice(f, banner, kind), nil
	}

	header := fmt.Sprintf("=== %s: %s ===\n", banner, f.OriginalName)
	return Output{
		Content: header + text,
		Metadata: map[string]any{
			"limited": false,
			"parts":   parts,
		},
	}, nil
}

func officeBanner(ext string) (banner, kind string) {
	switch ext {
	case "ppt", "pptx", "odp":
		return "POWERPOINT PRESENTATION", "PowerPoint"
	default:
		return "WORD DOCUMENT", "Word"
	}
}

// limitedNotice is the accepted-but-not-parsed result.
func limitedNotice(f domain.UploadedFile, banner, kind string) Output {
	content := fmt.Sprintf("=== %s: %s ===\n%s file detected. For a complete analysis, convert it to PDF or plain text.\nSize: %s",
		banner, f.OriginalName, kind, sizeKB(len(f.Data)))
	return Output{
		Content:  content,
		Metadata: map[string]any{"limited": true},
	}
}

var errNoOfficeText = errors.New("no readable text parts")

func officeText(ctx context.Context, ext string, data []byte) (string, int, error) {
	switch ext {
	case "docx", "pptx", "odt", "odp":
	default:
		return "", 0, errNoOfficeText
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, err
	}

	var parts []*zip.File
	switch ext {
	case "docx":
		parts = zipParts(zr, func(name string) bool { return name == "word/document.xml" })
	case "pptx":
		parts = zipParts(zr, slidePart.MatchString)
		sort.Slice(parts, func(i, j int) bool { return slideIndex(parts[i].Name) < slideIndex(parts[j].Name) })
	default:
		parts = zipParts(zr, func(name string) bool { return name == "content.xml" })
	}
	if len(parts) == 0 {
		return "", 0, errNoOfficeText
	}

	var b strings.Builder
	for i, part := range parts {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		text, err := xmlPartText(part)
		if err != nil {
			return "", 0, err
		}
		if ext == "pptx" {
			fmt.Fprintf(&b, "--- Slide %d ---\n", i+1)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), len(parts), nil
}

func zipParts(zr *zip.Reader, match func(string) bool) []*zip.File {
	var out []*zip.File
	for _, f := range zr.File {
		if match(f.Name) {
			out = append(out, f)
		}
	}
	return out
}

func slideIndex(name string) int {
	m := slidePart.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// xmlPartText concatenates character data, breaking lines at paragraphs.
func xmlPartText(part *zip.File) (string, error) {
	rc, err := part.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(io.LimitReader(rc, officePartLimit))
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			switch t.Name.Local {
			case "br", "line-break":
				b.WriteString("\n")
			case "tab":
				b.WriteString(" ")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p", "h":
				b.WriteString("\n")
			}
		}
	}
	return blankRuns.ReplaceAllString(strings.TrimSpace(b.String()), "\n\n"), nil
}

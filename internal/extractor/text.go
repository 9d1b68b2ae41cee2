package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"

	"DocPipeline/internal/domain"
)

var blankRuns = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+`)

// TextStrategy handles plain text, markup and source code.
type TextStrategy struct{}

func (TextStrategy) Category() domain.Category { return domain.CategoryPlainText }

func (TextStrategy) Extract(_ context.Context, f domain.UploadedFile) (Output, error) {
	text, err := decodeText(f.Data)
	if err != nil {
		return Output{}, fmt.Errorf("could not read text file: %w", err)
	}

	ext := f.Extension()
	label := strings.ToUpper(ext)
	if label == "" {
		label = "TEXT"
	}
	metadata := map[string]any{}

	var banner string
	switch ext {
	case "py":
		banner = "PYTHON CODE"
	case "r":
		banner = "R CODE"
	case "m":
		banner = "MATLAB CODE"
	case "tex":
		banner = "LATEX CODE"
	case "json":
		banner = "JSON DATA"
		var buf bytes.Buffer
		if json.Indent(&buf, []byte(text), "", "  ") == nil {
			text = buf.String()
			metadata["validJson"] = true
		} else {
			metadata["validJson"] = false
		}
	case "xml", "svg":
		banner = "XML DATA"
	case "yaml", "yml":
		banner = "YAML DATA"
		var node yaml.Node
		metadata["validYaml"] = yaml.Unmarshal([]byte(text), &node) == nil
	case "md", "markdown":
		banner = "MARKDOWN"
	case "html", "htm":
		banner = "HTML PAGE"
		visible, title, err := htmlText(text)
		if err != nil {
			return Output{}, fmt.Errorf("could not parse html: %w", err)
		}
		if title != "" {
			metadata["title"] = title
			visible = "Title: " + title + "\n\n" + visible
		}
		text = visible
	default:
		banner = "CONTENT"
	}

	header := fmt.Sprintf("=== FILE %s: %s ===\n=== %s ===\n", label, f.OriginalName, banner)
	return Output{Content: header + text, Metadata: metadata}, nil
}

// htmlText keeps the visible text of a page, dropping scripts and styles.
func htmlText(page string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", "", err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style, noscript, template, head").Remove()

	body := doc.Find("body")
	var raw string
	if body.Length() > 0 {
		raw = body.Text()
	} else {
		raw = doc.Text()
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text), title, nil
}

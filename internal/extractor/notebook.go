package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"DocPipeline/internal/domain"
)

// multiline is the nbformat "string or list of strings" field.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = multiline(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("expected string or string list: %w", err)
	}
	*m = multiline(strings.Join(parts, ""))
	return nil
}

type notebook struct {
	Metadata struct {
		KernelSpec struct {
			DisplayName string `json:"display_name"`
			Language    string `json:"language"`
		} `json:"kernelspec"`
	} `json:"metadata"`
	NBFormat int            `json:"nbformat"`
	Cells    []notebookCell `json:"cells"`
}

type notebookCell struct {
	CellType string           `json:"cell_type"`
	Source   multiline        `json:"source"`
	Outputs  []notebookOutput `json:"outputs"`
}

type notebookOutput struct {
	OutputType string               `json:"output_type"`
	Text       multiline            `json:"text"`
	Data       map[string]multiline `json:"data"`
	EName      string               `json:"ename"`
	EValue     string               `json:"evalue"`
}

func (o notebookOutput) text() string {
	switch {
	case o.Text != "":
		return string(o.Text)
	case o.Data["text/plain"] != "":
		return string(o.Data["text/plain"])
	case o.EName != "":
		return o.EName + ": " + o.EValue
	}
	return ""
}

// NotebookStrategy prints every cell in order along with its textual outputs.
type NotebookStrategy struct{}

func (NotebookStrategy) Category() domain.Category { return domain.CategoryNotebook }

func (NotebookStrategy) Extract(ctx context.Context, f domain.UploadedFile) (Output, error) {
	var nb notebook
	if err := json.Unmarshal(f.Data, &nb); err != nil {
		return Output{}, fmt.Errorf("invalid notebook JSON: %w", err)
	}

	kernel := nb.Metadata.KernelSpec.DisplayName
	if kernel == "" {
		kernel = "unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== JUPYTER NOTEBOOK: %s ===\n", f.OriginalName)
	fmt.Fprintf(&b, "Kernel: %s\nCells: %d\n\n", kernel, len(nb.Cells))

	codeCells := 0
	for i, cell := range nb.Cells {
		if err := ctx.Err(); err != nil {
			return Output{}, fmt.Errorf("notebook extraction cancelled: %w", err)
		}
		if cell.CellType == "code" {
			codeCells++
		}
		fmt.Fprintf(&b, "=== CELL %d (%s) ===\n", i+1, cell.CellType)
		b.WriteString(strings.TrimRight(string(cell.Source), "\n"))
		b.WriteString("\n")

		var outputs []string
		for _, out := range cell.Outputs {
			if t := strings.TrimRight(out.text(), "\n"); t != "" {
				outputs = append(outputs, t)
			}
		}
		if len(outputs) > 0 {
			b.WriteString("--- OUTPUT ---\n")
			b.WriteString(strings.Join(outputs, "\n"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return Output{
		Content: b.String(),
		Metadata: map[string]any{
			"cells":     len(nb.Cells),
			"codeCells": codeCells,
			"kernel":    kernel,
		},
	}, nil
}

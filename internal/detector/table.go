package detector

import (
	"fmt"
	"strings"

	"DocPipeline/internal/domain"
)

// Table is the first Markdown table found in a reply.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ParseTable returns the first header/separator/body table in text.
// Rows are padded to the header width; extra cells are dropped.
func ParseTable(text string) (Table, error) {
	m := markdownTbl.FindStringSubmatch(normalizeNewlines(text))
	if m == nil {
		return Table{}, domain.ErrNoTable
	}

	headers := splitRow(m[1])
	for i, h := range headers {
		if h == "" {
			headers[i] = fmt.Sprintf("Column %d", i+1)
		}
	}

	var rows [][]string
	for _, line := range strings.Split(m[3], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cells := splitRow(strings.TrimSuffix(strings.TrimPrefix(line, "|"), "|"))
		row := make([]string, len(headers))
		copy(row, cells)
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return Table{}, domain.ErrNoTable
	}
	return Table{Headers: headers, Rows: rows}, nil
}

// Records maps each row onto the header names.
func (t Table) Records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			rec[h] = row[i]
		}
		out = append(out, rec)
	}
	return out
}

// splitRow splits the inside of a pipe row. Escaped pipes are not handled.
func splitRow(inner string) []string {
	parts := strings.Split(inner, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

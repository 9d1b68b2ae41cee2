package extractor

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"DocPipeline/internal/domain"
)

const csvSampleRecords = 10

// CSVStrategy summarizes the header, the record count and a sample of records.
type CSVStrategy struct{}

func (CSVStrategy) Category() domain.Category { return domain.CategoryCsv }

func (CSVStrategy) Extract(_ context.Context, f domain.UploadedFile) (Output, error) {
	text, err := decodeText(f.Data)
	if err != nil {
		return Output{}, fmt.Errorf("could not read CSV: %w", err)
	}

	records, err := readCSV(text, ',')
	if err != nil {
		return Output{}, fmt.Errorf("could not parse CSV: %w", err)
	}
	// Spreadsheet exports in pt-BR locales use semicolons.
	if len(records) > 0 && len(records[0]) == 1 && strings.Contains(records[0][0], ";") {
		if alt, altErr := readCSV(text, ';'); altErr == nil {
			records = alt
		}
	}

	if len(records) == 0 {
		return Output{
			Content:  fmt.Sprintf("Empty CSV file: %s", f.OriginalName),
			Metadata: map[string]any{"columns": 0, "records": 0},
		}, nil
	}

	columns := make([]string, len(records[0]))
	for i, col := range records[0] {
		columns[i] = strings.TrimSpace(col)
	}
	body := records[1:]

	var b strings.Builder
	fmt.Fprintf(&b, "=== CSV FILE: %s ===\n", f.OriginalName)
	fmt.Fprintf(&b, "Columns (%d): %s\n", len(columns), strings.Join(columns, " | "))
	fmt.Fprintf(&b, "Total records: %d\n\n", len(body))

	sample := body
	if len(sample) > csvSampleRecords {
		sample = sample[:csvSampleRecords]
	}
	b.WriteString("=== FIRST RECORDS ===\n")
	for i, record := range sample {
		fmt.Fprintf(&b, "Record %d:\n", i+1)
		for c, col := range columns {
			value := ""
			if c < len(record) {
				value = strings.TrimSpace(record[c])
			}
			fmt.Fprintf(&b, "  %s: %s\n", col, value)
		}
		b.WriteString("\n")
	}
	if omitted := len(body) - len(sample); omitted > 0 {
		fmt.Fprintf(&b, "... and %d more records\n", omitted)
	}

	return Output{
		Content: b.String(),
		Metadata: map[string]any{
			"columns":     len(columns),
			"columnNames": columns,
			"records":     len(body),
		},
	}, nil
}

func readCSV(text string, comma rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"DocPipeline/internal/domain"
)

// SpreadsheetStrategy renders every sheet row by row.
type SpreadsheetStrategy struct{}

func (SpreadsheetStrategy) Category() domain.Category { return domain.CategorySpreadsheet }

func (SpreadsheetStrategy) Extract(ctx context.Context, f domain.UploadedFile) (Output, error) {
	book, err := excelize.OpenReader(bytes.NewReader(f.Data))
	if err != nil {
		// excelize only reads OOXML; legacy .xls and .ods are accepted but not parsed.
		switch f.Extension() {
		case "xls", "ods":
			return limitedNotice(f, "SPREADSHEET", "Spreadsheet"), nil
		}
		return Output{}, fmt.Errorf("could not read spreadsheet: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	var (
		b        strings.Builder
		rowCount int
	)
	for i, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return Output{}, fmt.Errorf("spreadsheet extraction cancelled: %w", err)
		}
		rows, err := book.GetRows(sheet)
		if err != nil {
			return Output{}, fmt.Errorf("could not read sheet %s: %w", sheet, err)
		}

		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "=== SHEET: %s ===\n", sheet)
		for idx, row := range rows {
			if !hasValue(row) {
				continue
			}
			rowCount++
			fmt.Fprintf(&b, "Row %d: %s\n", idx+1, strings.Join(row, " | "))
		}
	}

	return Output{
		Content: b.String(),
		Metadata: map[string]any{
			"sheets":    len(sheets),
			"sheetList": sheets,
			"rows":      rowCount,
		},
	}, nil
}

func hasValue(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}

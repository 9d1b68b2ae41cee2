package generator

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"DocPipeline/internal/detector"
)

// SheetName is the single worksheet of generated workbooks.
const SheetName = "Dados"

func excelFromText(text string) ([]byte, error) {
	table, err := detector.ParseTable(text)
	if err != nil {
		return nil, err
	}

	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := book.SetSheetRow(SheetName, "A1", toCells(table.Headers)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := book.SetSheetRow(SheetName, cell, toCells(row)); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	style, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(table.Headers), 1)
		_ = book.SetCellStyle(SheetName, "A1", last, style)
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func toCells(values []string) *[]any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return &cells
}

func csvFromText(text string) ([]byte, error) {
	table, err := detector.ParseTable(text)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return nil, fmt.Errorf("write rows: %w", err)
	}
	return buf.Bytes(), nil
}

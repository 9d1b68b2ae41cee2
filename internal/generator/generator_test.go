package generator

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"DocPipeline/internal/detector"
	"DocPipeline/internal/domain"
)

var fixedNow = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

type fakeCharts struct {
	got domain.ChartSpec
	err error
}

func (f *fakeCharts) Render(_ context.Context, spec domain.ChartSpec) ([]byte, error) {
	f.got = spec
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG\r\n\x1a\nchart"), nil
}

type fakeImages struct {
	prompt string
}

func (f *fakeImages) Generate(_ context.Context, prompt string) ([]byte, error) {
	f.prompt = prompt
	return []byte("\x89PNG\r\n\x1a\nimage"), nil
}

func newTestGenerator(charts *fakeCharts, images *fakeImages) *Generator {
	g := New(nil, nil, nil)
	if charts != nil {
		g.charts = charts
	}
	if images != nil {
		g.images = images
	}
	g.now = func() time.Time { return fixedNow }
	return g
}

func generate(t *testing.T, g *Generator, text string) *domain.GeneratedArtifact {
	t.Helper()
	outcome := detector.Detect(text)
	artifact, err := g.Generate(context.Background(), text, outcome, "user-1")
	if err != nil {
		t.Fatalf("Generate(%s): %v", outcome.Kind, err)
	}
	return artifact
}

func sheetRows(t *testing.T, payload []byte) [][]string {
	t.Helper()
	book, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer book.Close()

	if got := book.GetSheetList(); !reflect.DeepEqual(got, []string{SheetName}) {
		t.Fatalf("expected single sheet %q, got %v", SheetName, got)
	}
	rows, err := book.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return rows
}

func TestGenerateExcelFromReplyTable(t *testing.T) {
	t.Parallel()

	reply := "aqui está sua tabela:\n| A | B |\n|---|---|\n| 1 | 2 |"
	artifact := generate(t, newTestGenerator(nil, nil), reply)

	if artifact.Kind != domain.KindExcel || artifact.MIMEType != domain.KindExcel.MIMEType() {
		t.Fatalf("unexpected artifact %+v", artifact)
	}
	rows := sheetRows(t, artifact.Payload)
	want := [][]string{{"A", "B"}, {"1", "2"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("expected %v, got %v", want, rows)
	}
	if artifact.OriginalName != "relatorio-2026-03-09.xlsx" {
		t.Fatalf("unexpected original name %q", artifact.OriginalName)
	}
	if !strings.HasSuffix(artifact.Filename, "-relatorio-2026-03-09.xlsx") {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
	if artifact.RequesterID != "user-1" || artifact.Size != int64(len(artifact.Payload)) || artifact.ID == "" {
		t.Fatalf("artifact fields not populated: %+v", artifact)
	}
}

func TestGenerateExcelRoundTripMatchesParsedRecords(t *testing.T) {
	t.Parallel()

	reply := "Sales by region:\n\n| Region | Q1 | Q2 |\n|:--|--:|--:|\n| North | 10 | 12 |\n| South | 7 | |\n| East | 3 | 4 |\n\nLet me know."
	table, err := detector.ParseTable(reply)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}

	rows := sheetRows(t, generate(t, newTestGenerator(nil, nil), reply).Payload)
	if !reflect.DeepEqual(rows[0], table.Headers) {
		t.Fatalf("header mismatch: %v vs %v", rows[0], table.Headers)
	}
	for i, rec := range table.Records() {
		row := rows[i+1]
		for c, h := range table.Headers {
			got := ""
			if c < len(row) {
				got = row[c]
			}
			if got != rec[h] {
				t.Fatalf("row %d column %s: expected %q, got %q", i+1, h, rec[h], got)
			}
		}
	}
}

func TestGenerateCSV(t *testing.T) {
	t.Parallel()

	reply := "| name | note |\n|---|---|\n| a, b | say \"hi\" |\n"
	g := newTestGenerator(nil, nil)
	artifact, err := g.Generate(context.Background(), reply, domain.DetectionOutcome{Detected: true, Kind: domain.KindCsv}, "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(artifact.Payload)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := [][]string{{"name", "note"}, {"a, b", `say "hi"`}}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("expected %v, got %v", want, records)
	}
}

func TestGenerateTabularWithoutTableFails(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(nil, nil)
	_, err := g.Generate(context.Background(), "please make a planilha", domain.DetectionOutcome{Detected: true, Kind: domain.KindExcel}, "")

	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !errors.Is(err, domain.ErrNoTable) {
		t.Fatalf("expected ErrNoTable, got %v", err)
	}
}

func TestGenerateChartUsesRenderer(t *testing.T) {
	t.Parallel()

	charts := &fakeCharts{}
	reply := "```json\n{\"type\":\"line\",\"data\":{\"labels\":[\"x\"],\"datasets\":[]}}\n```\nsave as \"growth.png\""
	artifact := generate(t, newTestGenerator(charts, nil), reply)

	if artifact.Kind != domain.KindChart || artifact.MIMEType != "image/png" {
		t.Fatalf("unexpected artifact %+v", artifact)
	}
	if charts.got.Type() != "line" {
		t.Fatalf("renderer got %+v", charts.got)
	}
	if artifact.OriginalName != "growth.png" {
		t.Fatalf("unexpected original name %q", artifact.OriginalName)
	}
}

func TestGenerateChartRendererFailure(t *testing.T) {
	t.Parallel()

	charts := &fakeCharts{err: errors.New("renderer down")}
	g := newTestGenerator(charts, nil)
	reply := "```json\n{\"type\":\"bar\",\"data\":{}}\n```"

	_, err := g.Generate(context.Background(), reply, detector.Detect(reply), "")
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != domain.KindChart {
		t.Fatalf("expected chart GenerationError, got %v", err)
	}
}

func TestGenerateWithoutBackends(t *testing.T) {
	t.Parallel()

	g := New(nil, nil, nil)
	for _, reply := range []string{
		"```json\n{\"type\":\"bar\",\"data\":{}}\n```",
		"[PROMPT: a boat]",
	} {
		if _, err := g.Generate(context.Background(), reply, detector.Detect(reply), ""); err == nil {
			t.Fatalf("%q: expected error without backend", reply)
		}
	}
}

func TestGenerateImageUsesPrompt(t *testing.T) {
	t.Parallel()

	images := &fakeImages{}
	artifact := generate(t, newTestGenerator(nil, images), "Here you go [PROMPT: a lighthouse at dusk]")

	if images.prompt != "a lighthouse at dusk" {
		t.Fatalf("unexpected prompt %q", images.prompt)
	}
	if artifact.Kind != domain.KindImage {
		t.Fatalf("unexpected kind %s", artifact.Kind)
	}
}

func TestGeneratePDF(t *testing.T) {
	t.Parallel()

	reply := "Segue o conteúdo do pdf, arquivo chamado 'plano-de-aula':\n\n# Aula 1\n\nIntrodução ao tema.\n\n- item um\n- item dois\n\n1. primeiro\n2. segundo\n"
	artifact := generate(t, newTestGenerator(nil, nil), reply)

	if artifact.Kind != domain.KindPdf {
		t.Fatalf("expected pdf, got %s", artifact.Kind)
	}
	if !bytes.HasPrefix(artifact.Payload, []byte("%PDF-")) {
		t.Fatalf("payload is not a pdf")
	}
	if artifact.OriginalName != "plano-de-aula.pdf" {
		t.Fatalf("unexpected original name %q", artifact.OriginalName)
	}
}

func TestGeneratePassthroughKinds(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(nil, nil)
	ctx := context.Background()

	md, err := g.Generate(ctx, "Aqui está o resumo:\n\n## Notes\n\nbody\n\n\n\nend", domain.DetectionOutcome{Detected: true, Kind: domain.KindMarkdown}, "")
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	if string(md.Payload) != "## Notes\n\nbody\n\nend\n" {
		t.Fatalf("unexpected markdown payload %q", md.Payload)
	}

	js, err := g.Generate(ctx, "```json\n{\"a\":[1,2]}\n```", domain.DetectionOutcome{Detected: true, Kind: domain.KindJson}, "")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if string(js.Payload) != "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n" {
		t.Fatalf("unexpected json payload %q", js.Payload)
	}
	if js.MIMEType != "application/json" {
		t.Fatalf("unexpected mime %q", js.MIMEType)
	}
}

func TestGenerateRejectsUndetected(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, nil, nil).Generate(context.Background(), "hi", domain.DetectionOutcome{}, ""); err == nil {
		t.Fatal("expected error for undetected outcome")
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reply := "| A |\n|---|\n| 1 |"
	_, err := newTestGenerator(nil, nil).Generate(ctx, reply, detector.Detect(reply), "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

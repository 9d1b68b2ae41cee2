package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	t.Parallel()

	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.Classification("csv", OutcomeOK)
	r.Classification("csv", OutcomeOK)
	r.Extraction("pdf", OutcomeFailed)
	r.Generation("excel", OutcomeOK, 10*time.Millisecond)

	if got := testutil.ToFloat64(r.classifications.WithLabelValues("csv", OutcomeOK)); got != 2 {
		t.Fatalf("expected 2 classifications, got %v", got)
	}
	if got := testutil.ToFloat64(r.extractions.WithLabelValues("pdf", OutcomeFailed)); got != 1 {
		t.Fatalf("expected 1 failed extraction, got %v", got)
	}
	if got := testutil.ToFloat64(r.generations.WithLabelValues("excel", OutcomeOK)); got != 1 {
		t.Fatalf("expected 1 generation, got %v", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	t.Parallel()

	var r *Recorder
	r.Classification("x", OutcomeOK)
	r.Extraction("x", OutcomeOK)
	r.Generation("x", OutcomeOK, time.Second)
	if err := r.WriteTextfile("unused"); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Generation("chart", OutcomeFailed, time.Millisecond)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), `docpipeline_generations_total{kind="chart",outcome="failed"} 1`) {
		t.Fatalf("metric missing from dump:\n%s", raw)
	}
}

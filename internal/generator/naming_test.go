package generator

import (
	"sync"
	"testing"
	"time"

	"DocPipeline/internal/infrastructure/storage"
)

func TestSuggestFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		text string
		want string
	}{
		{"Gerei o arquivo chamado 'vendas-2025.xlsx' para você", "vendas-2025"},
		{"I created a file called \"budget\"", "budget"},
		{"com o nome `clientes`", "clientes"},
		{"You can save it as 'summary.report.pdf'", "summary.report"},
		{"download \"data.csv\" below", "data"},
		{"no hint at all", "relatorio-2026-01-02"},
		{"o arquivo chamado '../../etc/passwd'", "passwd"},
		{"o arquivo chamado '...'", "relatorio-2026-01-02"},
	}

	for _, tc := range cases {
		if got := SuggestFilename(tc.text, now); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.text, tc.want, got)
		}
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"report.xlsx.csv":   "report",
		"My Report (v2)":    "My-Report-v2",
		`C:\tmp\evil.pdf`:   "evil",
		"dir/sub/name.json": "name",
		"plain":             "plain",
		"sales..2024":       "sales.2024",
		"a...b....xlsx":     "a.b",
	}
	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Fatalf("Sanitize(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestSanitizedNamesPassStoreValidation(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"sales..2024",
		"..hidden",
		"trail..",
		"a. .b",
		"%2e%2e",
		"x..xlsx..csv",
		"ok.name",
	}
	for _, in := range inputs {
		base := Sanitize(in)
		if base == "" {
			continue
		}
		name := UniqueName(1, base, "xlsx")
		if err := storage.ValidateName(name); err != nil {
			t.Fatalf("Sanitize(%q) produced %q rejected by the store: %v", in, name, err)
		}
	}
}

func TestStampStrictlyIncreasing(t *testing.T) {
	t.Parallel()

	var s Stamp
	now := time.UnixMilli(1_000)

	const workers, per = 8, 200
	var (
		mu   sync.Mutex
		seen = make(map[int64]bool, workers*per)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				v := s.Next(now)
				mu.Lock()
				if seen[v] {
					mu.Unlock()
					t.Errorf("duplicate stamp %d", v)
					return
				}
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if got := s.Next(time.UnixMilli(0)); got != 1_000+workers*per {
		t.Fatalf("expected stamp to keep increasing past clock, got %d", got)
	}
}

func TestUniqueName(t *testing.T) {
	t.Parallel()

	if got := UniqueName(1700000000000, "report", "xlsx"); got != "1700000000000-report.xlsx" {
		t.Fatalf("unexpected name %q", got)
	}
}

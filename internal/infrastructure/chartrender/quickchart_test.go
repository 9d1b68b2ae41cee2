package chartrender

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"DocPipeline/internal/domain"
)

func TestRenderPostsSpecAndCaches(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		var payload struct {
			Chart  map[string]any `json:"chart"`
			Width  int            `json:"width"`
			Height int            `json:"height"`
			Format string         `json:"format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.Width != ChartWidth || payload.Height != ChartHeight || payload.Format != "png" {
			t.Errorf("unexpected payload %+v", payload)
		}
		if payload.Chart["type"] != "bar" {
			t.Errorf("chart type not forwarded: %+v", payload.Chart)
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(append(append([]byte(nil), pngSignature...), "body"...))
	}))
	defer srv.Close()

	renderer, err := NewQuickChart(srv.URL, "", time.Second, 4)
	if err != nil {
		t.Fatalf("NewQuickChart: %v", err)
	}

	spec := domain.ChartSpec{"type": "bar", "data": map[string]any{"labels": []any{"a"}}}
	for i := 0; i < 3; i++ {
		png, err := renderer.Render(context.Background(), spec)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if string(png[:len(pngSignature)]) != string(pngSignature) {
			t.Fatalf("expected png bytes")
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single upstream call, got %d", got)
	}
}

func TestRenderRejectsNonPNG(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>error</html>"))
	}))
	defer srv.Close()

	renderer, err := NewQuickChart(srv.URL, "", time.Second, 0)
	if err != nil {
		t.Fatalf("NewQuickChart: %v", err)
	}
	if _, err := renderer.Render(context.Background(), domain.ChartSpec{"type": "pie"}); err == nil {
		t.Fatal("expected error for non-png response")
	}
}

func TestRenderStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad chart", http.StatusBadRequest)
	}))
	defer srv.Close()

	renderer, err := NewQuickChart(srv.URL, "", time.Second, 0)
	if err != nil {
		t.Fatalf("NewQuickChart: %v", err)
	}
	if _, err := renderer.Render(context.Background(), domain.ChartSpec{"type": "pie"}); err == nil {
		t.Fatal("expected status error")
	}
}

func TestRenderHonorsCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	renderer, err := NewQuickChart(srv.URL, "", 5*time.Second, 0)
	if err != nil {
		t.Fatalf("NewQuickChart: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := renderer.Render(ctx, domain.ChartSpec{"type": "bar"}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestRenderCancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	var releaseOnce sync.Once
	unblock := func() { releaseOnce.Do(func() { close(release) }) }

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case started <- struct{}{}:
		default:
		}
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		_, _ = w.Write(append(append([]byte(nil), pngSignature...), "body"...))
	}))
	defer srv.Close()
	defer unblock()

	renderer, err := NewQuickChart(srv.URL, "", 5*time.Second, 0)
	if err != nil {
		t.Fatalf("NewQuickChart: %v", err)
	}
	spec := domain.ChartSpec{"type": "line", "data": map[string]any{"labels": []any{"q1"}}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	first := make(chan error, 1)
	go func() {
		_, err := renderer.Render(ctx, spec)
		first <- err
	}()
	<-started

	type result struct {
		png []byte
		err error
	}
	second := make(chan result, 1)
	go func() {
		png, err := renderer.Render(context.Background(), spec)
		second <- result{png, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	if err := <-first; err == nil {
		t.Fatal("expected the cancelled caller to fail")
	}
	time.Sleep(50 * time.Millisecond)
	unblock()

	res := <-second
	if res.err != nil {
		t.Fatalf("live caller failed: %v", res.err)
	}
	if len(res.png) < len(pngSignature) || string(res.png[:len(pngSignature)]) != string(pngSignature) {
		t.Fatalf("expected png bytes, got %q", res.png)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one shared upstream call, got %d", got)
	}
}

func TestNewQuickChartRequiresEndpoint(t *testing.T) {
	t.Parallel()

	if _, err := NewQuickChart("", "", 0, 0); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}

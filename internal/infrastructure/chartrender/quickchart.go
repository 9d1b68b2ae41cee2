package chartrender

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"DocPipeline/internal/domain"
	"DocPipeline/internal/ports"
)

const (
	ChartWidth      = 800
	ChartHeight     = 600
	maxResponseSize = 10 << 20
	defaultCache    = 128
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// QuickChart renders chart configurations through a QuickChart-compatible HTTP service.
type QuickChart struct {
	endpoint   string
	apiKey     string
	background string
	timeout    time.Duration
	http       *http.Client
	cache      *lru.Cache[string, []byte]
	group      singleflight.Group
}

var _ ports.ChartRenderer = (*QuickChart)(nil)

// NewQuickChart creates a renderer; cacheSize <= 0 uses the default.
func NewQuickChart(endpoint, apiKey string, timeout time.Duration, cacheSize int) (*QuickChart, error) {
	if endpoint == "" {
		return nil, errors.New("chart renderer endpoint is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if cacheSize <= 0 {
		cacheSize = defaultCache
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("chart cache: %w", err)
	}
	return &QuickChart{
		endpoint:   endpoint,
		apiKey:     apiKey,
		background: "white",
		timeout:    timeout,
		http:       &http.Client{Timeout: timeout},
		cache:      cache,
	}, nil
}

// Render returns a PNG of the chart. Identical specs share one in-flight request and a cached result.
func (c *QuickChart) Render(ctx context.Context, spec domain.ChartSpec) ([]byte, error) {
	body, err := json.Marshal(map[string]any{
		"chart":           spec,
		"width":           ChartWidth,
		"height":          ChartHeight,
		"backgroundColor": c.background,
		"format":          "png",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	sum := sha256.Sum256(body)
	key := hex.EncodeToString(sum[:])
	if png, ok := c.cache.Get(key); ok {
		return png, nil
	}

	// The shared request outlives any single caller; each caller only stops waiting.
	ch := c.group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		png, err := c.post(shared, body)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, png)
		return png, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("render chart: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *QuickChart) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	png, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(png) > maxResponseSize {
		return nil, fmt.Errorf("chart image exceeds %d bytes", maxResponseSize)
	}
	if !bytes.HasPrefix(png, pngSignature) {
		return nil, errors.New("renderer did not return a PNG")
	}
	return png, nil
}

package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"DocPipeline/internal/ports"
)

const (
	defaultModel = "dall-e-3"
	maxImageSize = 20 << 20
)

// OpenAI generates images through the OpenAI Images API.
type OpenAI struct {
	client openai.Client
	model  string
	http   *http.Client
}

var _ ports.ImageGenerator = (*OpenAI)(nil)

// NewOpenAI builds the adapter; baseURL is optional (proxies, compatible gateways).
func NewOpenAI(apiKey, baseURL, model string, timeout time.Duration) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key not configured for image generation")
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
		http:   httpClient,
	}, nil
}

// Generate returns the PNG bytes for prompt.
func (o *OpenAI) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := o.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(o.model),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize1024x1024,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("openai image generation: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no image returned from openai")
	}

	img := resp.Data[0]
	if img.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return data, nil
	}
	if img.URL != "" {
		return o.download(ctx, img.URL)
	}
	return nil, errors.New("openai returned an empty image")
}

func (o *OpenAI) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	resp, err := o.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}
	return data, nil
}

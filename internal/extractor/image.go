package extractor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"DocPipeline/internal/domain"
)

// MaxImageBase64 bounds the encoded payload inside the image envelope.
const MaxImageBase64 = 1_000_000

type imageEnvelope struct {
	Type         string `json:"type"`
	OriginalName string `json:"originalName"`
	MIMEType     string `json:"mimeType"`
	Base64       string `json:"base64"`
}

// ImageStrategy emits the JSON envelope and a binary attachment for vision consumers.
type ImageStrategy struct{}

func (ImageStrategy) Category() domain.Category { return domain.CategoryImage }

func (ImageStrategy) Extract(_ context.Context, f domain.UploadedFile) (Output, error) {
	if len(f.Data) == 0 {
		return Output{}, fmt.Errorf("empty image file")
	}

	mimeType := mimetype.Detect(f.Data).String()
	if mimeType == "application/octet-stream" && f.DeclaredMIME != "" {
		mimeType = f.DeclaredMIME
	}

	encoded := base64.StdEncoding.EncodeToString(f.Data)
	truncated := false
	if len(encoded) > MaxImageBase64 {
		encoded = encoded[:MaxImageBase64] + "..."
		truncated = true
	}

	payload, err := json.Marshal(imageEnvelope{
		Type:         "image",
		OriginalName: f.OriginalName,
		MIMEType:     mimeType,
		Base64:       encoded,
	})
	if err != nil {
		return Output{}, fmt.Errorf("encode image envelope: %w", err)
	}

	metadata := map[string]any{
		"isImage":         true,
		"needsVision":     true,
		"detectedMime":    mimeType,
		"base64Truncated": truncated,
	}
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(f.Data)); err == nil {
		metadata["width"] = cfg.Width
		metadata["height"] = cfg.Height
		metadata["imageFormat"] = format
	}

	return Output{
		Content:    string(payload),
		Metadata:   metadata,
		Attachment: &domain.Attachment{MIMEType: mimeType, Data: slices.Clone(f.Data)},
		Structured: true,
	}, nil
}

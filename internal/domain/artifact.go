package domain

import (
	"strings"
	"time"
)

// ArtifactKind enumerates the files that can be generated from a model reply.
type ArtifactKind uint8

const (
	KindUnknown ArtifactKind = iota
	KindChart
	KindImage
	KindExcel
	KindCsv
	KindPdf
	KindMarkdown
	KindJson
	KindPlainText
)

type kindInfo struct {
	name string
	ext  string
	mime string
}

var kinds = map[ArtifactKind]kindInfo{
	KindChart:     {name: "chart", ext: "png", mime: "image/png"},
	KindImage:     {name: "image", ext: "png", mime: "image/png"},
	KindExcel:     {name: "excel", ext: "xlsx", mime: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	KindCsv:       {name: "csv", ext: "csv", mime: "text/csv"},
	KindPdf:       {name: "pdf", ext: "pdf", mime: "application/pdf"},
	KindMarkdown:  {name: "markdown", ext: "md", mime: "text/markdown"},
	KindJson:      {name: "json", ext: "json", mime: "application/json"},
	KindPlainText: {name: "text", ext: "txt", mime: "text/plain"},
}

func (k ArtifactKind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return "unknown"
}

func (k ArtifactKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Extension is the file extension appended to generated names.
func (k ArtifactKind) Extension() string {
	return kinds[k].ext
}

// MIMEType is the content type served for the generated file.
func (k ArtifactKind) MIMEType() string {
	return kinds[k].mime
}

// MIMETypeForName maps a stored file name to the MIME type it is served with.
func MIMETypeForName(name string) string {
	ext := ExtensionOf(name)
	for _, info := range kinds {
		if info.ext == ext {
			return info.mime
		}
	}
	return "application/octet-stream"
}

// ParseArtifactKind maps user-facing names ("xlsx", "md", "txt", ...) to a kind.
func ParseArtifactKind(value string) (ArtifactKind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "chart", "grafico", "gráfico":
		return KindChart, true
	case "image", "imagem", "png":
		return KindImage, true
	case "excel", "xlsx", "planilha":
		return KindExcel, true
	case "csv":
		return KindCsv, true
	case "pdf":
		return KindPdf, true
	case "md", "markdown":
		return KindMarkdown, true
	case "json":
		return KindJson, true
	case "txt", "text", "texto":
		return KindPlainText, true
	default:
		return KindUnknown, false
	}
}

// DetectionOutcome is the artifact request inferred from model text.
type DetectionOutcome struct {
	Detected bool
	Kind     ArtifactKind
	Snippet  string
}

// GeneratedArtifact is a file produced from model output, written once and immutable.
type GeneratedArtifact struct {
	ID           string       `json:"id"`
	Kind         ArtifactKind `json:"kind"`
	Filename     string       `json:"filename"`
	OriginalName string       `json:"originalName"`
	MIMEType     string       `json:"mimeType"`
	Size         int64        `json:"size"`
	Path         string       `json:"path,omitempty"`
	DownloadURL  string       `json:"downloadUrl,omitempty"`
	RequesterID  string       `json:"requesterId,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	Payload      []byte       `json:"-"`
}

// StoredArtifact describes a generated file found in the artifact store.
type StoredArtifact struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName,omitempty"`
	MIMEType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"createdAt"`
	DownloadURL  string    `json:"downloadUrl"`
}

// ChartSpec is a chart-library configuration object (type, data, options).
type ChartSpec map[string]any

// Type returns the declared chart type, "" when absent.
func (s ChartSpec) Type() string {
	t, _ := s["type"].(string)
	return t
}

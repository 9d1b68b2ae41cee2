package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Category is the closed classification assigned to an uploaded file before extraction.
type Category uint8

const (
	CategoryUnsupported Category = iota
	CategoryPlainText
	CategoryPdf
	CategorySpreadsheet
	CategoryCsv
	CategoryBibliography
	CategoryNotebook
	CategoryArchive
	CategoryImage
	CategoryOfficeDocument

	// CategoryCount bounds arrays indexed by Category.
	CategoryCount
)

var categoryNames = [CategoryCount]string{
	CategoryUnsupported:    "unsupported",
	CategoryPlainText:      "plain_text",
	CategoryPdf:            "pdf",
	CategorySpreadsheet:    "spreadsheet",
	CategoryCsv:            "csv",
	CategoryBibliography:   "bibliography",
	CategoryNotebook:       "notebook",
	CategoryArchive:        "archive",
	CategoryImage:          "image",
	CategoryOfficeDocument: "office_document",
}

func (c Category) String() string {
	if c >= CategoryCount {
		return "unknown"
	}
	return categoryNames[c]
}

// Accepted reports whether files of this category may reach extraction.
func (c Category) Accepted() bool {
	return c > CategoryUnsupported && c < CategoryCount
}

// AcceptedCategories lists every category that has an extraction strategy.
func AcceptedCategories() []Category {
	out := make([]Category, 0, CategoryCount-1)
	for c := CategoryPlainText; c < CategoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// UploadedFile is an ephemeral upload built per request. Data is borrowed from the caller.
type UploadedFile struct {
	OriginalName string
	DeclaredMIME string
	Size         int64
	Data         []byte
}

// NewUploadedFile wraps caller bytes without copying them.
func NewUploadedFile(data []byte, originalName, mimeType string) UploadedFile {
	return UploadedFile{
		OriginalName: originalName,
		DeclaredMIME: mimeType,
		Size:         int64(len(data)),
		Data:         data,
	}
}

// Extension returns the lowercased extension without the dot ("" when absent).
func (f UploadedFile) Extension() string {
	return ExtensionOf(f.OriginalName)
}

// ExtensionOf lowercases the last extension of name, without the dot.
func ExtensionOf(name string) string {
	ext := filepath.Ext(strings.TrimSpace(name))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Classification is the classifier verdict for a (name, MIME) pair.
type Classification struct {
	Category  Category
	Extension string
	MIMEType  string
	Blocked   bool
	Reason    string
}

// Attachment carries binary content next to the text context (images).
type Attachment struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
}

// ExtractionResult is what the extractor returns for every call.
type ExtractionResult struct {
	Success    bool           `json:"success"`
	Content    string         `json:"content,omitempty"`
	Metadata   map[string]any `json:"metadata"`
	Error      string         `json:"error,omitempty"`
	Attachment *Attachment    `json:"attachment,omitempty"`
}

// BaseMetadata builds the metadata shared by every extraction result.
func BaseMetadata(f UploadedFile, processedAt time.Time) map[string]any {
	return map[string]any{
		"originalName":  f.OriginalName,
		"mimeType":      f.DeclaredMIME,
		"fileExtension": f.Extension(),
		"size":          f.Size,
		"processedAt":   processedAt,
	}
}

// Package classifier maps an upload's (filename, declared MIME) pair to a Category.
//
// The allow and block tables are built once at package init and never mutated,
// so classification is safe for concurrent use without locking.
package classifier

import (
	"fmt"
	"mime"
	"strings"

	"DocPipeline/internal/domain"
)

const genericMIME = "application/octet-stream"

type index struct {
	allowByMIME map[string]domain.Category
	allowByExt  map[string]domain.Category
	blockByMIME map[string]string
	blockByExt  map[string]string
}

var tables = buildIndex()

func buildIndex() index {
	idx := index{
		allowByMIME: map[string]domain.Category{},
		allowByExt:  map[string]domain.Category{},
		blockByMIME: map[string]string{},
		blockByExt:  map[string]string{},
	}

	for _, entry := range allowTable {
		if _, exists := idx.allowByMIME[entry.mime]; !exists {
			idx.allowByMIME[entry.mime] = entry.category
		}
		for _, ext := range entry.exts {
			if _, exists := idx.allowByExt[ext]; !exists {
				idx.allowByExt[ext] = entry.category
			}
		}
	}

	for _, entry := range blockTable {
		// application/octet-stream is too generic to block on its own.
		if entry.mime != genericMIME {
			if _, exists := idx.blockByMIME[entry.mime]; !exists {
				idx.blockByMIME[entry.mime] = entry.reason
			}
		}
		for _, ext := range entry.exts {
			idx.blockByExt[ext] = entry.reason
		}
	}

	return idx
}

// Classify is total and deterministic: every pair maps to exactly one category.
// No file content is consulted.
func Classify(originalName, declaredMIME string) domain.Classification {
	ext := domain.ExtensionOf(originalName)
	mimeType := NormalizeMIME(declaredMIME)

	result := domain.Classification{
		Category:  domain.CategoryUnsupported,
		Extension: ext,
		MIMEType:  mimeType,
	}

	if reason, blocked := blockedReason(mimeType, ext); blocked {
		result.Blocked = true
		result.Reason = reason
		return result
	}

	// The extension wins over the declared MIME: uploads often arrive as
	// application/octet-stream or text/plain regardless of their format.
	if category, ok := tables.allowByExt[ext]; ok {
		result.Category = category
		return result
	}
	if category, ok := tables.allowByMIME[mimeType]; ok {
		result.Category = category
		return result
	}
	if isTextLikeMIME(mimeType) {
		result.Category = domain.CategoryPlainText
		return result
	}

	result.Reason = describeExtension(ext)
	return result
}

// Validate classifies and converts rejections into *domain.UnsupportedTypeError.
func Validate(originalName, declaredMIME string) (domain.Classification, error) {
	c := Classify(originalName, declaredMIME)
	if c.Category.Accepted() {
		return c, nil
	}
	return c, &domain.UnsupportedTypeError{
		Name:    originalName,
		Reason:  c.Reason,
		Blocked: c.Blocked,
	}
}

// NormalizeMIME lowercases and strips parameters such as "; charset=utf-8".
func NormalizeMIME(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	if parsed, _, err := mime.ParseMediaType(value); err == nil {
		return parsed
	}
	if semi := strings.IndexByte(value, ';'); semi >= 0 {
		return strings.TrimSpace(value[:semi])
	}
	return value
}

// Icon returns the emoji the upload response shows next to a file.
func Icon(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if icon, ok := icons[ext]; ok {
		return icon
	}
	return "📎"
}

func blockedReason(mimeType, ext string) (string, bool) {
	if reason, ok := tables.blockByExt[ext]; ok {
		return reason, true
	}
	if reason, ok := tables.blockByMIME[mimeType]; ok {
		return reason, true
	}

	family, subtype, found := strings.Cut(mimeType, "/")
	if !found {
		return "", false
	}
	switch family {
	case "audio", "video":
		return fmt.Sprintf("%s (%s)", family, strings.ToUpper(strings.TrimPrefix(subtype, "x-"))), true
	}
	return "", false
}

func isTextLikeMIME(mimeType string) bool {
	if strings.HasPrefix(mimeType, "text/") {
		return true
	}
	return strings.HasSuffix(mimeType, "+json") ||
		strings.HasSuffix(mimeType, "+xml") ||
		strings.HasSuffix(mimeType, "+yaml")
}

func describeExtension(ext string) string {
	if ext == "" {
		return "file without extension"
	}
	return "file ." + ext
}

package generator

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

const maxBaseLen = 100

var nameHints = []*regexp.Regexp{
	regexp.MustCompile("(?i)(?:arquivo|file)\\b.*?(?:chamado|called)\\s+[\"'`]([^\"'`]+)[\"'`]"),
	regexp.MustCompile("(?i)\\b(?:nome|named)\\s+[\"'`]([^\"'`]+)[\"'`]"),
	regexp.MustCompile("(?i)\\b(?:salvar|save)\\b.*?\\b(?:como|as)\\s+[\"'`]([^\"'`]+)[\"'`]"),
	regexp.MustCompile("(?i)[\"'`]([^\"'`]+\\.(?:xlsx|csv|txt|json|md|pdf|docx|png))[\"'`]"),
}

var (
	formatExt  = regexp.MustCompile(`(?i)\.(xlsx|xls|csv|txt|json|md|pdf|docx|png|jpe?g)$`)
	unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	dotRun     = regexp.MustCompile(`\.{2,}`)
)

// SuggestFilename returns a sanitized base name (no extension) for the reply.
func SuggestFilename(text string, now time.Time) string {
	for _, hint := range nameHints {
		if m := hint.FindStringSubmatch(text); m != nil {
			if base := Sanitize(m[1]); base != "" {
				return base
			}
		}
	}
	return fallbackName(now)
}

func fallbackName(now time.Time) string {
	return "relatorio-" + now.Format("2006-01-02")
}

// Sanitize keeps the base name, replaces unsafe runs with '-', collapses dot
// runs and strips format extensions. The result never contains "..".
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == "/" {
		return ""
	}
	name = unsafeName.ReplaceAllString(name, "-")
	name = dotRun.ReplaceAllString(name, ".")
	for {
		stripped := formatExt.ReplaceAllString(name, "")
		if stripped == name {
			break
		}
		name = stripped
	}
	name = strings.Trim(name, "-.")
	if len(name) > maxBaseLen {
		name = strings.Trim(name[:maxBaseLen], "-.")
	}
	return name
}

// UniqueName formats the stored file name.
func UniqueName(stamp int64, base, ext string) string {
	return fmt.Sprintf("%d-%s.%s", stamp, base, ext)
}

// Stamp hands out strictly increasing millisecond stamps.
type Stamp struct {
	last atomic.Int64
}

// Next returns now in unix milliseconds, bumped past the previous value when needed.
func (s *Stamp) Next(now time.Time) int64 {
	ms := now.UnixMilli()
	for {
		prev := s.last.Load()
		next := ms
		if next <= prev {
			next = prev + 1
		}
		if s.last.CompareAndSwap(prev, next) {
			return next
		}
	}
}

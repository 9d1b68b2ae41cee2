package extractor

import "unicode/utf8"

const (
	// MaxContentChars caps every normalized text result, marker included.
	MaxContentChars = 10000

	// TruncationMarker ends any content that exceeded MaxContentChars.
	TruncationMarker = "\n\n[... content truncated ...]"
)

// Truncate cuts s to MaxContentChars code points, ending with TruncationMarker.
func Truncate(s string) (string, bool) {
	if utf8.RuneCountInString(s) <= MaxContentChars {
		return s, false
	}
	head, _ := headChars(s, MaxContentChars-utf8.RuneCountInString(TruncationMarker))
	return head + TruncationMarker, true
}

// headChars keeps the first n code points of s.
func headChars(s string, n int) (string, bool) {
	if n < 0 {
		n = 0
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

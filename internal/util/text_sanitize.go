package util

import (
	"strings"
	"unicode"
)

// SanitizeText removes NUL bytes and non-printing control characters that
// PDF text layers and OCR output sometimes carry.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")

	// Drop other non-printing controls except common whitespace.
	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if ch < 0x20 {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}

// Snippet truncates s to maxRunes for previews, appending an ellipsis when cut.
func Snippet(s string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = 3000
	}
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= maxRunes {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "..."
}

// CountAlnum counts letters and digits; used by the OCR per-page quality gate.
func CountAlnum(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

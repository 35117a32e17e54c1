package stock

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

var keyFolder = cases.Fold()

// Blank reports whether s is empty or whitespace only.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// CoerceInt parses s tolerantly: integer first, then float truncated toward
// zero, then def. Blank input also yields def. This is the fallback chain the
// create/edit forms and the order views rely on; it never fails.
func CoerceInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}

// ParseIntStrict parses s as an integer, failing on anything else. The CSV
// import uses it so a malformed row is skipped instead of silently zeroed.
func ParseIntStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// FoldKey normalizes a match-key component: trimmed and case-folded.
func FoldKey(s string) string {
	return keyFolder.String(strings.TrimSpace(s))
}

package render

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	displayDateLayout      = "Jan 2, 2006"
	displayTimestampLayout = "Jan 2, 2006 15:04"
	placeholder            = "-"
)

// FormatDate renders a published date for display. Values that do not parse
// are shown as-is.
func FormatDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return placeholder
	}
	t, ok := types.ParseDate(trimmed)
	if !ok {
		return raw
	}
	switch {
	case len(trimmed) == len("2006"):
		return t.Format("2006")
	case len(trimmed) == len("2006-01"):
		return t.Format("Jan 2006")
	}
	return t.Format(displayDateLayout)
}

// FormatTimestamp renders a record timestamp in local time.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Local().Format(displayTimestampLayout)
}

// orDash substitutes a placeholder for blank optional values.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

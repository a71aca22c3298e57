// ABOUTME: Small formatting helpers for tables and detail views
// ABOUTME: Truncation, dates, and separators sized to their heading

package main

import (
	"io"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"
)

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}

func dashes(s string) string {
	return strings.Repeat("-", utf8.RuneCountInString(s))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 02 2006")
}

// formatDate renders an API date string, leaving unknown formats as is.
func formatDate(s string) string {
	if s == "" {
		return "-"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 02 2006")
		}
	}
	return s
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

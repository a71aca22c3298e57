// ABOUTME: Percentage figure extraction and bar rendering
// ABOUTME: Accepts both "72%" and the Turkish "%72" notation

package report

import (
	"regexp"
	"strconv"
	"strings"
)

const defaultBarWidth = 20

var percentPattern = regexp.MustCompile(`%(\d+)|(\d+)\s?%`)

// Percentages returns every percentage figure in s in order of appearance,
// clamped to 0..100.
func Percentages(s string) []int {
	var out []int
	for _, m := range percentPattern.FindAllStringSubmatch(s, -1) {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		v, err := strconv.Atoi(digits)
		if err != nil {
			// Too many digits for an int; well past 100 either way.
			v = 100
		}
		out = append(out, clamp(v))
	}
	return out
}

func clamp(v int) int {
	return min(max(v, 0), 100)
}

// Bar draws a fixed-width progress bar for a 0..100 value.
func Bar(value, width int) string {
	if width <= 0 {
		width = defaultBarWidth
	}
	filled := clamp(value) * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

package utils

import (
	"strings"
	"unicode"
)

// Truncate shortens s to limit runes, appending an ellipsis when something was cut.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// SplitList splits a comma-separated list, trimming items and dropping empty ones.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TitleCase upper-cases the first letter of every word, lower-casing the rest.
func TitleCase(s string) string {
	runes := []rune(strings.ToLower(s))
	start := true
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if start {
				runes[i] = unicode.ToUpper(r)
			}
			start = false
			continue
		}
		start = true
	}
	return string(runes)
}

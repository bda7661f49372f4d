// Package tagtext holds the text rules shared by the tag widget: the placeholder
// sentinel, trimming and title-case normalisation.
package tagtext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Placeholder is the label shown for a tag that has no confirmed value yet.
const Placeholder = "New Tag"

// Normalize trims surrounding whitespace. An empty result maps to Placeholder.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Placeholder
	}
	return s
}

// IsPlaceholder reports whether s is the placeholder sentinel.
func IsPlaceholder(s string) bool {
	return s == Placeholder
}

// TitleCase upper-cases the first letter of every whitespace-separated token and
// lower-cases the rest of the token. Whitespace runs are kept as they are.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	atStart := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			atStart = true
			b.WriteRune(r)
		case atStart:
			atStart = false
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// SuffixFrom returns s from character index n to the end, or "" when s is shorter.
func SuffixFrom(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[pos:]
		}
		i++
	}
	return ""
}

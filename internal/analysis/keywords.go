package analysis

import "strings"

// shortKeywordLen is the longest keyword that must match as a whole word.
// Longer keywords match as substrings so "kubernetes" still hits "kubernetes (eks)".
const shortKeywordLen = 3

// containsKeyword reports whether lowered text contains a lowered keyword
func containsKeyword(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	if len(keyword) > shortKeywordLen {
		return strings.Contains(text, keyword)
	}
	for from := 0; from < len(text); {
		idx := strings.Index(text[from:], keyword)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(keyword)
		if (start == 0 || !isWordByte(text[start-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		from = start + 1
	}
	return false
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if containsKeyword(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func countKeywords(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if containsKeyword(text, strings.ToLower(kw)) {
			count++
		}
	}
	return count
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// words splits lowered text into tokens with surrounding punctuation removed
func words(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]{}\"'")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

package matching

import (
	"slices"
	"strings"
)

// techKeywords is the technology vocabulary looked for in job and candidate text
var techKeywords = []string{
	"python", "java", "javascript", "react", "angular", "vue", "node.js",
	"sql", "mongodb", "postgresql", "mysql", "aws", "azure", "gcp",
	"docker", "kubernetes", "jenkins", "git", "linux", "windows",
	"machine learning", "artificial intelligence", "data science",
	"tensorflow", "pytorch", "hadoop", "spark", "kafka", "redis", "elasticsearch",
	"html", "css", "bootstrap", "jquery", "php", "ruby", "c++", "c#",
	"swift", "kotlin", "flutter", "react native", "django", "flask",
	"spring", "express", "laravel", "rails", "asp.net", "xamarin",
}

// techAliases maps alternative spellings onto a techKeywords entry
var techAliases = map[string]string{
	"node":   "node.js",
	"nodejs": "node.js",
	"ai":     "artificial intelligence",
	"ml":     "machine learning",
}

// findTechnologies returns the techKeywords entries mentioned in text, in
// vocabulary order
func findTechnologies(text string) []string {
	text = strings.ToLower(text)
	seen := make(map[string]bool)
	var found []string
	add := func(tech string) {
		if !seen[tech] {
			seen[tech] = true
			found = append(found, tech)
		}
	}
	for _, tech := range techKeywords {
		if containsTerm(text, tech) {
			add(tech)
		}
	}
	for alias, tech := range techAliases {
		if containsTerm(text, alias) {
			add(tech)
		}
	}
	return orderLike(found, techKeywords)
}

// containsTerm reports whether term occurs in text (both lower-case) without
// being glued to a longer word. "java" does not match "javascript".
func containsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; start <= len(text)-len(term); {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(term)
		if (idx == 0 || !isWordByte(text[idx-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		start = idx + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || b == '+' || b == '#' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// orderLike sorts items by their position in reference
func orderLike(items, reference []string) []string {
	out := make([]string, 0, len(items))
	for _, ref := range reference {
		if slices.Contains(items, ref) {
			out = append(out, ref)
		}
	}
	return out
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}

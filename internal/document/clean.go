package document

import (
	"regexp"
	"strings"
)

var (
	pageMarkerPattern   = regexp.MustCompile(`--- Page \d+ ---`)
	bulletPattern       = regexp.MustCompile(`[•·▪▫◦‣⁃\x{F0B7}]`)
	dashPattern         = regexp.MustCompile(`[–—−]`)
	horizontalSpace     = regexp.MustCompile(`[ \t\x{00A0}]+`)
	anyWhitespace       = regexp.MustCompile(`\s+`)
	excessiveBlankLines = regexp.MustCompile(`\n\n\n+`)
	camelBoundary       = regexp.MustCompile(`([a-z])([A-Z])`)
	yearLetterBoundary  = regexp.MustCompile(`(\d{4})([A-Za-z])`)
	ocrPipeRuns         = regexp.MustCompile(`\|{2,}`)
	ocrUnderscoreRuns   = regexp.MustCompile(`_{3,}`)
	ocrEllipsisRuns     = regexp.MustCompile(`\.{3,}`)
	unsupportedSymbols  = regexp.MustCompile(`[^\p{L}\p{N}_\s@.,;%/\-+#():&'|•]`)
)

// mixedCaseTerms are tokens whose internal capitals must survive word splitting
var mixedCaseTerms = map[string]bool{
	"javascript": true, "typescript": true, "github": true, "gitlab": true,
	"bitbucket": true, "postgresql": true, "mysql": true, "mongodb": true,
	"nosql": true, "graphql": true, "linkedin": true, "ios": true,
	"macos": true, "devops": true, "mlops": true, "fastapi": true,
	"pytorch": true, "tensorflow": true, "numpy": true, "scipy": true,
	"jquery": true, "dynamodb": true, "cloudformation": true, "powerpoint": true,
	"sharepoint": true, "powershell": true, "youtube": true, "iphone": true,
	"openai": true, "chatgpt": true, "sqlite": true, "mariadb": true,
	"redshift": true, "bigquery": true, "jenkins": true, "webpack": true,
	"nextjs": true, "nodejs": true, "phd": true, "msc": true, "bsc": true,
	"btech": true, "mtech": true, "bca": true, "mca": true, "elasticsearch": true,
	"rabbitmq": true, "hubspot": true, "salesforce": true, "quickbooks": true,
}

// CleanText normalizes extracted text while preserving line structure.
// Page markers and form feeds become line breaks, bullet glyphs collapse to
// a single canonical bullet and dashes become hyphens. Merged words are
// split, horizontal whitespace collapses and blank lines are capped at two.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\f", "\n")
	content = pageMarkerPattern.ReplaceAllString(content, "\n")
	content = bulletPattern.ReplaceAllString(content, "•")
	content = dashPattern.ReplaceAllString(content, "-")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessiveBlankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}

	tokens := strings.Split(line, " ")
	for i, token := range tokens {
		tokens[i] = splitMergedWords(token)
	}
	return strings.Join(tokens, " ")
}

// splitMergedWords separates words glued together by PDF text extraction,
// e.g. "EngineerGoogle" or "2019Present". URLs, emails and known mixed-case
// terms are left untouched.
func splitMergedWords(token string) string {
	if strings.ContainsAny(token, "@/") || strings.Contains(token, "www.") {
		return token
	}
	bare := strings.ToLower(strings.Trim(token, ".,;:()'\"•-"))
	if mixedCaseTerms[bare] {
		return token
	}
	token = camelBoundary.ReplaceAllString(token, "$1 $2")
	return yearLetterBoundary.ReplaceAllString(token, "$1 $2")
}

// CleanOCRText flattens recognizer output and strips common scan artifacts
func CleanOCRText(text string) string {
	if text == "" {
		return ""
	}
	text = anyWhitespace.ReplaceAllString(text, " ")
	text = ocrPipeRuns.ReplaceAllString(text, "")
	text = ocrUnderscoreRuns.ReplaceAllString(text, "")
	text = ocrEllipsisRuns.ReplaceAllString(text, "...")
	return strings.TrimSpace(text)
}

// StripSymbols removes characters that carry no meaning for field extraction.
// Word characters, whitespace and punctuation used in contact details, skill
// names (C++, C#) and dates are kept.
func StripSymbols(text string) string {
	return unsupportedSymbols.ReplaceAllString(text, "")
}

// IsBulletLine reports whether a line starts with a list marker
func IsBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "·")
}

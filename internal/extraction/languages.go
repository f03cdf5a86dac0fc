package extraction

import (
	"context"
	"regexp"
	"strings"
)

var spokenLanguages = []string{
	"English", "Spanish", "French", "German", "Chinese", "Mandarin", "Cantonese", "Japanese",
	"Korean", "Hindi", "Arabic", "Portuguese", "Russian", "Italian", "Dutch", "Swedish",
	"Norwegian", "Danish", "Finnish", "Polish", "Turkish", "Greek", "Hebrew", "Bengali",
	"Urdu", "Tamil", "Telugu", "Marathi", "Vietnamese", "Thai", "Indonesian", "Malay",
}

var (
	languagePattern        = regexp.MustCompile(`\b(?:` + strings.Join(spokenLanguages, "|") + `)\b`)
	languagePatternAnyCase = regexp.MustCompile(`(?i)\b(?:` + strings.Join(spokenLanguages, "|") + `)\b`)
)

// patternLanguages lists spoken languages, title-cased and deduplicated. A
// LANGUAGES section is matched case-insensitively; elsewhere only the
// capitalized spelling counts.
func patternLanguages(text string) []string {
	var matches []string
	if section := sections(text)["languages"]; section != "" {
		matches = languagePatternAnyCase.FindAllString(section, -1)
	} else {
		matches = languagePattern.FindAllString(text, -1)
	}

	out := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, match := range matches {
		lang := strings.ToUpper(match[:1]) + strings.ToLower(match[1:])
		if seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}
	return out
}

func (p *Pipeline) extractLanguages(ctx context.Context, r *run) {
	strategies := []Strategy[[]string]{{
		Name: "patterns",
		Try: func(context.Context) ([]string, error) {
			return patternLanguages(r.in.searchText()), nil
		},
	}}

	languages, source := runStrategies(ctx, r, StageLanguages, strategies, nonEmpty[string])
	if languages == nil {
		languages = []string{}
	}
	r.profile.Languages = languages
	r.sources[StageLanguages] = source
}

package extraction

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

const personalPromptChars = 2000

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(\+?1?[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
	urlPattern      = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s,;|()]+`)
	locationPattern = regexp.MustCompile(`(?im)^\s*(?:location|address|based in)\s*:?\s*(.+)$`)
	namePunctuation = strings.NewReplacer(".", "", "'", "", "-", "")
)

// patternPersonalInfo extracts contact details with regular expressions
func patternPersonalInfo(text string) types.PersonalInfo {
	var info types.PersonalInfo

	info.Email = emailPattern.FindString(text)
	if phone := phonePattern.FindString(text); phone != "" {
		info.Phone = strings.TrimSpace(phone)
	}
	if m := linkedinPattern.FindString(text); m != "" {
		info.LinkedIn = "https://" + strings.ToLower(m[:len("linkedin.com")]) + m[len("linkedin.com"):]
	}
	if m := githubPattern.FindString(text); m != "" {
		info.GitHub = "https://" + strings.ToLower(m[:len("github.com")]) + m[len("github.com"):]
	}
	for _, u := range urlPattern.FindAllString(text, -1) {
		lower := strings.ToLower(u)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		info.Portfolio = strings.TrimRight(u, ".")
		break
	}
	if m := locationPattern.FindStringSubmatch(text); m != nil {
		info.Location = strings.TrimSpace(m[1])
	}
	info.Name = sniffName(text, 5)
	return info
}

// sniffName looks for a line of 2 to 4 alphabetic words in the first
// maxLines non-empty lines
func sniffName(text string, maxLines int) string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if seen == maxLines {
			break
		}
		seen++
		if looksLikeName(line) {
			return line
		}
	}
	return ""
}

func looksLikeName(line string) bool {
	if len(line) < 3 || len(line) > 50 || strings.Contains(line, "@") {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, word := range words {
		word = namePunctuation.Replace(word)
		if word == "" {
			return false
		}
		for _, r := range word {
			if !unicode.IsLetter(r) {
				return false
			}
		}
	}
	if _, heading := sectionHeadings[normalizeHeading(line)]; heading {
		return false
	}
	return true
}

// mergePersonalInfo fills empty fields of primary from fallback
func mergePersonalInfo(primary, fallback types.PersonalInfo) types.PersonalInfo {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&primary.Name, fallback.Name)
	fill(&primary.Email, fallback.Email)
	fill(&primary.Phone, fallback.Phone)
	fill(&primary.Location, fallback.Location)
	fill(&primary.LinkedIn, fallback.LinkedIn)
	fill(&primary.GitHub, fallback.GitHub)
	fill(&primary.Portfolio, fallback.Portfolio)
	return primary
}

func hasContact(info types.PersonalInfo) bool {
	return info.Name != "" || info.Email != "" || info.Phone != ""
}

func (p *Pipeline) extractPersonal(ctx context.Context, r *run) {
	var strategies []Strategy[types.PersonalInfo]

	if r.enhanced.hasName() {
		strategies = append(strategies, Strategy[types.PersonalInfo]{
			Name: "enhancement",
			Try: func(context.Context) (types.PersonalInfo, error) {
				return *r.enhanced.PersonalInfo, nil
			},
		})
	}

	if r.oracleUsable() {
		strategies = append(strategies, Strategy[types.PersonalInfo]{
			Name: "oracle",
			Try: func(ctx context.Context) (types.PersonalInfo, error) {
				var info types.PersonalInfo
				head := r.in.CleanedText
				if len(head) > personalPromptChars {
					head = strings.ToValidUTF8(head[:personalPromptChars], "")
				}
				if err := p.askOracle(ctx, r, "extract-personal-info", schemas.PersonalInfo, head, &info); err != nil {
					return types.PersonalInfo{}, err
				}
				if isPlaceholderName(info.Name) {
					info.Name = ""
				}
				return info, nil
			},
		})
	}

	strategies = append(strategies, Strategy[types.PersonalInfo]{
		Name: "patterns",
		Try: func(context.Context) (types.PersonalInfo, error) {
			return patternPersonalInfo(r.in.CleanedText), nil
		},
	})

	info, source := runStrategies(ctx, r, StagePersonal, strategies, hasContact)
	if source == "oracle" {
		// Regex contact details fill whatever the winning strategy left blank.
		info = mergePersonalInfo(info, patternPersonalInfo(r.in.CleanedText))
	}
	r.profile.PersonalInfo = info
	r.sources[StagePersonal] = source
}

package extraction

import (
	"strings"
	"unicode"
)

// sectionHeadings maps normalized heading text to a section name
var sectionHeadings = map[string]string{
	"summary":                     "summary",
	"professional summary":        "summary",
	"career summary":              "summary",
	"profile":                     "summary",
	"professional profile":        "summary",
	"objective":                   "summary",
	"career objective":            "summary",
	"about":                       "summary",
	"about me":                    "summary",
	"overview":                    "summary",
	"experience":                  "experience",
	"work experience":             "experience",
	"professional experience":     "experience",
	"employment":                  "experience",
	"employment history":          "experience",
	"work history":                "experience",
	"career history":              "experience",
	"education":                   "education",
	"academic background":         "education",
	"academics":                   "education",
	"qualifications":              "education",
	"educational qualifications":  "education",
	"academic qualifications":     "education",
	"skills":                      "skills",
	"technical skills":            "skills",
	"key skills":                  "skills",
	"core competencies":           "skills",
	"competencies":                "skills",
	"technologies":                "skills",
	"tools":                       "skills",
	"tools and technologies":      "skills",
	"projects":                    "projects",
	"personal projects":           "projects",
	"academic projects":           "projects",
	"key projects":                "projects",
	"selected projects":           "projects",
	"portfolio":                   "projects",
	"certifications":              "certifications",
	"certification":               "certifications",
	"certificates":                "certifications",
	"licenses":                    "certifications",
	"licenses and certifications": "certifications",
	"credentials":                 "certifications",
	"achievements":                "achievements",
	"awards":                      "achievements",
	"honors":                      "achievements",
	"honors and awards":           "achievements",
	"accomplishments":             "achievements",
	"languages":                   "languages",
}

// sections splits resume text on recognized heading lines. Only the first
// occurrence of each section is kept. A heading followed by ":" may carry
// inline content ("Skills: Go, SQL").
func sections(text string) map[string]string {
	result := make(map[string]string)
	current := ""
	var body []string

	flush := func() {
		if current == "" {
			return
		}
		if _, seen := result[current]; !seen {
			result[current] = strings.TrimSpace(strings.Join(body, "\n"))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		// "Label: items" lines inside a skills list are sub-labels, not headings.
		if name, inline, ok := headingOf(line); ok && !(current == "skills" && inline != "") {
			flush()
			current = name
			body = body[:0]
			if inline != "" {
				body = append(body, inline)
			}
			continue
		}
		if current != "" {
			body = append(body, line)
		}
	}
	flush()
	return result
}

// headingOf reports whether line is a section heading and returns any inline content
func headingOf(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 60 {
		return "", "", false
	}

	head, inline := trimmed, ""
	if idx := strings.Index(trimmed, ":"); idx >= 0 {
		head, inline = trimmed[:idx], strings.TrimSpace(trimmed[idx+1:])
	}

	key := normalizeHeading(head)
	name, ok := sectionHeadings[key]
	if !ok {
		return "", "", false
	}
	if inline != "" && (key == "portfolio" || strings.Contains(inline, "http") || strings.Contains(inline, "www.") || strings.Contains(inline, "@")) {
		return "", "", false
	}
	return name, inline, true
}

func normalizeHeading(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

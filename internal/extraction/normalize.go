package extraction

import (
	"strings"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":                "Go",
	"go lang":               "Go",
	"javascript":            "JavaScript",
	"js":                    "JavaScript",
	"typescript":            "TypeScript",
	"ts":                    "TypeScript",
	"k8s":                   "Kubernetes",
	"kubernetes":            "Kubernetes",
	"react.js":              "React",
	"reactjs":               "React",
	"vue":                   "Vue.js",
	"vuejs":                 "Vue.js",
	"node":                  "Node.js",
	"nodejs":                "Node.js",
	"postgres":              "PostgreSQL",
	"postgresql":            "PostgreSQL",
	"mongo":                 "MongoDB",
	"amazon web services":   "AWS",
	"google cloud":          "GCP",
	"google cloud platform": "GCP",
	"ml":                    "Machine Learning",
	"sklearn":               "Scikit-learn",
	"scikit learn":          "Scikit-learn",
	"ci cd":                 "CI/CD",
	"cicd":                  "CI/CD",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	normalized = strings.Trim(normalized, ".,;:-•* ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}
	if canonical, ok := canonicalSkills[skillKey(normalized)]; ok {
		return canonical
	}

	// Single lowercase words are capitalized; anything with capitals is kept,
	// acronyms included.
	if normalized == lower && !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}
	return normalized
}

// dedupeSkills normalizes names and drops case-insensitive duplicates,
// keeping the first occurrence.
func dedupeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		name := NormalizeSkillName(skill)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// skillKey folds case, spaces and dots so "Node JS", "nodejs" and "Node.js" collide
func skillKey(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, ".", "")
}

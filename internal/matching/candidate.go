package matching

import (
	"strings"
	"time"

	"github.com/jonathan/talent-matcher/internal/types"
)

// CandidateSummary is the flattened view of a profile that scoring works on
type CandidateSummary struct {
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experience_years"`
	EducationLevel  string   `json:"education_level"`
	Technologies    []string `json:"technologies"`
	Titles          []string `json:"titles"`
	Certifications  []string `json:"certifications"`
	Narrative       string   `json:"narrative"`
}

// Summarize flattens a profile. Experience years are summed across dated
// positions with now closing open-ended ones.
func Summarize(profile *types.CandidateProfile, now time.Time) *CandidateSummary {
	summary := &CandidateSummary{EducationLevel: EducationOther}
	if profile == nil {
		return summary
	}

	for _, skill := range profile.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			summary.Skills = append(summary.Skills, skill)
		}
	}

	descriptions := make([]string, 0, len(profile.Experience)+1)
	for _, exp := range profile.Experience {
		if years, ok := exp.YearsSpanned(now); ok {
			summary.ExperienceYears += years
		}
		if exp.Title != "" {
			summary.Titles = append(summary.Titles, strings.ToLower(exp.Title))
		}
		if strings.TrimSpace(exp.Description) != "" {
			descriptions = append(descriptions, exp.Description)
		}
	}
	if strings.TrimSpace(profile.Summary) != "" {
		descriptions = append(descriptions, profile.Summary)
	}
	summary.Narrative = strings.Join(descriptions, " ")

	summary.EducationLevel = educationLevelOf(profile.Education)

	for _, cert := range profile.Certifications {
		if cert.Name != "" {
			summary.Certifications = append(summary.Certifications, cert.Name)
		}
	}

	summary.Technologies = findTechnologies(strings.Join(summary.Skills, " ") + " " + summary.Narrative)
	return summary
}

// degreeAbbreviations are too ambiguous for job prose but safe in a degree field
var degreeAbbreviations = []struct {
	level string
	terms []string
}{
	{EducationDoctorate, []string{"dphil", "d.phil"}},
	{EducationMasters, []string{"ms", "ma", "m.a", "meng", "m.eng"}},
	{EducationBachelors, []string{"bs", "ba", "b.a", "be", "beng", "b.eng", "btech"}},
}

// DegreeLevel maps a degree name onto the hierarchy, "" when unknown
func DegreeLevel(degree string) string {
	if level := DetectEducationLevel(degree); level != "" {
		return level
	}
	degree = strings.TrimLeft(strings.ToLower(degree), " \t•*·-(")
	for _, abbr := range degreeAbbreviations {
		for _, term := range abbr.terms {
			if leadsWithTerm(degree, term) {
				return abbr.level
			}
		}
	}
	return ""
}

// leadsWithTerm reports whether text starts with term as a whole word.
// Abbreviations elsewhere in the text are usually state codes ("Cambridge, MA").
func leadsWithTerm(text, term string) bool {
	if !strings.HasPrefix(text, term) {
		return false
	}
	return len(text) == len(term) || !isWordByte(text[len(term)])
}

// educationLevelOf returns the highest hierarchy level across all degrees
func educationLevelOf(education []types.Education) string {
	best := EducationOther
	for _, edu := range education {
		level := DegreeLevel(edu.Degree)
		if level != "" && educationRank[level] > educationRank[best] {
			best = level
		}
	}
	return best
}

package matching

import (
	"fmt"
	"strings"
)

// minPartialLen is the shortest skill that can take part in a substring match
const minPartialLen = 3

// SkillMatch is the outcome of comparing candidate skills with required ones
type SkillMatch struct {
	Score    float64
	Matching []string
	Gaps     []string
}

// MatchSkills scores candidate skills against required skills. An exact
// case-insensitive match counts 1, a substring match between skills of three
// or more characters counts 0.5. A job that names no skills scores 0.5.
func MatchSkills(candidate, required []string) SkillMatch {
	if len(required) == 0 {
		return SkillMatch{Score: 0.5, Matching: []string{}, Gaps: []string{}}
	}

	have := make(map[string]bool, len(candidate))
	for _, skill := range lowerAll(candidate) {
		have[skill] = true
	}

	exact := make(map[string]bool)
	partial := make(map[string]bool)
	gaps := make([]string, 0)
	seenRequired := make(map[string]bool, len(required))
	for _, req := range required {
		key := strings.ToLower(strings.TrimSpace(req))
		if key == "" || seenRequired[key] {
			continue
		}
		seenRequired[key] = true

		switch {
		case have[key]:
			exact[key] = true
		case overlapsAny(key, have):
			partial[key] = true
		default:
			gaps = append(gaps, req)
		}
	}

	matching := make([]string, 0)
	seenMatching := make(map[string]bool)
	for _, skill := range candidate {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" || seenMatching[key] {
			continue
		}
		if exact[key] || overlapsAny(key, partial) {
			seenMatching[key] = true
			matching = append(matching, skill)
		}
	}

	total := float64(len(exact)) + 0.5*float64(len(partial))
	return SkillMatch{
		Score:    clamp01(total / float64(len(seenRequired))),
		Matching: matching,
		Gaps:     gaps,
	}
}

// overlapsAny reports whether skill is a substring of, or contains, any key of set
func overlapsAny(skill string, set map[string]bool) bool {
	if len(skill) < minPartialLen {
		return false
	}
	for other := range set {
		if len(other) < minPartialLen {
			continue
		}
		if strings.Contains(other, skill) || strings.Contains(skill, other) {
			return true
		}
	}
	return false
}

// ExperienceMatch is 1 inside [minYears, maxYears], loses 0.2 per missing
// year down to 0 and 0.05 per extra year down to 0.7
func ExperienceMatch(years, minYears, maxYears float64) float64 {
	switch {
	case years < minYears:
		return clamp01(1 - 0.2*(minYears-years))
	case years > maxYears:
		return max(0.7, 1-0.05*(years-maxYears))
	default:
		return 1
	}
}

// TechnologyMatch is the share of job technologies the candidate lists. A
// job that names no technology scores 0.5.
func TechnologyMatch(candidate, job []string) float64 {
	if len(job) == 0 {
		return 0.5
	}
	have := make(map[string]bool, len(candidate))
	for _, tech := range lowerAll(candidate) {
		have[tech] = true
	}
	wanted := make(map[string]bool, len(job))
	matches := 0
	for _, tech := range lowerAll(job) {
		if wanted[tech] {
			continue
		}
		wanted[tech] = true
		if have[tech] {
			matches++
		}
	}
	return clamp01(float64(matches) / float64(len(wanted)))
}

// EducationMatch is 1 when the candidate meets the required level, otherwise
// the level ratio with a floor of 0.3. Unknown levels rank as other and
// bachelors respectively.
func EducationMatch(candidate, required string) float64 {
	have, ok := educationRank[candidate]
	if !ok {
		have = educationRank[EducationOther]
	}
	want, ok := educationRank[required]
	if !ok {
		want = educationRank[EducationBachelors]
	}
	if have >= want {
		return 1
	}
	return max(0.3, float64(have)/float64(want))
}

// jobReason explains a job score in one line
func jobReason(breakdown map[string]float64, matchingCount int) string {
	var reasons []string

	switch skills := breakdown[ComponentSkills]; {
	case skills > 0.7:
		reasons = append(reasons, fmt.Sprintf("Strong skills match (%d matching skills)", matchingCount))
	case skills > 0.4:
		reasons = append(reasons, fmt.Sprintf("Good skills match (%d matching skills)", matchingCount))
	}

	switch exp := breakdown[ComponentExperience]; {
	case exp > 0.8:
		reasons = append(reasons, "Experience level aligns well")
	case exp < 0.5:
		reasons = append(reasons, "May need additional experience")
	}

	if breakdown[ComponentTechnology] > 0.6 {
		reasons = append(reasons, "Good technology stack match")
	}
	if breakdown[ComponentEducation] > 0.8 {
		reasons = append(reasons, "Education requirements met")
	}
	if breakdown[ComponentText] > 0.3 {
		reasons = append(reasons, "Experience description matches job requirements")
	}

	if len(reasons) == 0 {
		return "Basic qualifications match"
	}
	return strings.Join(reasons, "; ")
}

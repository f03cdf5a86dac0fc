package matching

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Education levels on the matching hierarchy
const (
	EducationOther     = "other"
	EducationBachelors = "bachelors"
	EducationMasters   = "masters"
	EducationDoctorate = "doctorate"
)

var educationRank = map[string]int{
	EducationDoctorate: 4,
	EducationMasters:   3,
	EducationBachelors: 2,
	EducationOther:     1,
}

const (
	defaultMinExperience = 0.0
	defaultMaxExperience = 20.0
)

var experienceRange = regexp.MustCompile(`(?i)(\d+)\s*(?:(\+)|(?:-|to)\s*(\d+))?\s*years?\s*(?:of\s*)?(?:experience|exp)`)

var degreeTerms = []struct {
	level string
	terms []string
}{
	{EducationDoctorate, []string{"phd", "ph.d", "doctorate", "doctoral"}},
	{EducationMasters, []string{"master", "masters", "master's", "mba", "msc", "m.sc", "m.s", "m.tech", "mca"}},
	{EducationBachelors, []string{"bachelor", "bachelors", "bachelor's", "bsc", "b.sc", "b.s", "b.tech", "b.e", "bca", "undergraduate"}},
}

// Requirements is what a job asks of a candidate
type Requirements struct {
	Skills         []string `json:"skills"`
	Technologies   []string `json:"technologies"`
	MinExperience  float64  `json:"min_experience"`
	MaxExperience  float64  `json:"max_experience"`
	EducationLevel string   `json:"education_level"`
}

// ParseRequirements reads structured requirements off the opportunity and
// falls back to its free text for anything missing
func ParseRequirements(opp types.Opportunity) Requirements {
	text := strings.ToLower(strings.Join([]string{
		opp.Responsibilities, opp.Description, strings.Join(opp.RequiredSkills, " "),
	}, " "))

	req := Requirements{
		Skills:         opp.RequiredSkills,
		Technologies:   findTechnologies(text),
		MinExperience:  defaultMinExperience,
		MaxExperience:  defaultMaxExperience,
		EducationLevel: EducationBachelors,
	}
	if len(req.Skills) == 0 {
		req.Skills = req.Technologies
	}

	if lower, upper, ok := ExperienceRange(text); ok {
		req.MinExperience, req.MaxExperience = lower, upper
	}
	if opp.MinExperienceYears != nil {
		req.MinExperience = *opp.MinExperienceYears
	}
	if opp.MaxExperienceYears != nil {
		req.MaxExperience = *opp.MaxExperienceYears
	}
	if req.MaxExperience < req.MinExperience {
		req.MaxExperience = req.MinExperience
	}

	if opp.EducationLevel != "" {
		req.EducationLevel = opp.EducationLevel
	} else if level := DetectEducationLevel(text); level != "" {
		req.EducationLevel = level
	}
	return req
}

// ExperienceRange finds "N years of experience" style phrases. Single numbers
// and "N+" are lower bounds; only "N-M" and "N to M" set an upper bound.
func ExperienceRange(text string) (lower, upper float64, ok bool) {
	matches := experienceRange.FindAllStringSubmatch(text, -1)
	lower, upper = -1, -1
	for _, m := range matches {
		from, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if lower < 0 || float64(from) < lower {
			lower = float64(from)
		}
		if m[3] != "" {
			if to, err := strconv.Atoi(m[3]); err == nil && float64(to) > upper {
				upper = float64(to)
			}
		}
	}
	if lower < 0 {
		return 0, 0, false
	}
	if upper < lower {
		upper = math.Max(defaultMaxExperience, lower)
	}
	return lower, upper, true
}

// DetectEducationLevel returns the highest degree named in text, or "" when
// none is mentioned
func DetectEducationLevel(text string) string {
	text = strings.ToLower(text)
	for _, degree := range degreeTerms {
		for _, term := range degree.terms {
			if containsTerm(text, term) {
				return degree.level
			}
		}
	}
	return ""
}

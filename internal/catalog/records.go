package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/talent-matcher/internal/types"
)

// catalogNamespace seeds the deterministic IDs given to records without one
var catalogNamespace = uuid.MustParse("5b6e1a8e-2f0c-4d6b-9a53-7d1f4c2e8b10")

// SkillList accepts either a list of skills or a comma-separated string
type SkillList []string

// UnmarshalJSON implements json.Unmarshaler
func (s *SkillList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = cleanSkills(list)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("skills must be a list or a comma-separated string: %w", err)
	}
	*s = splitSkills(text)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *SkillList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = cleanSkills(list)
	case yaml.ScalarNode:
		*s = splitSkills(node.Value)
	default:
		return fmt.Errorf("line %d: skills must be a list or a comma-separated string", node.Line)
	}
	return nil
}

func splitSkills(text string) []string {
	return cleanSkills(strings.Split(text, ","))
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}

// RecordID accepts numeric or string identifiers
type RecordID string

// UnmarshalJSON implements json.Unmarshaler
func (id *RecordID) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*id = RecordID(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = RecordID(number.String())
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (id *RecordID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", node.Line)
	}
	*id = RecordID(node.Value)
	return nil
}

// JobRecord is a job as catalogs publish it
type JobRecord struct {
	ID                  RecordID  `json:"id" yaml:"id"`
	Title               string    `json:"title" yaml:"title"`
	Company             string    `json:"company" yaml:"company"`
	JobType             string    `json:"job_type" yaml:"job_type"`
	Location            string    `json:"location" yaml:"location"`
	SalaryRange         string    `json:"salary_range" yaml:"salary_range"`
	Description         string    `json:"description" yaml:"description"`
	Responsibilities    string    `json:"responsibilities" yaml:"responsibilities"`
	SkillsRequired      SkillList `json:"skills_required" yaml:"skills_required"`
	ExperienceLevel     string    `json:"experience_level" yaml:"experience_level"`
	MinExperienceYears  *float64  `json:"min_experience_years" yaml:"min_experience_years"`
	MaxExperienceYears  *float64  `json:"max_experience_years" yaml:"max_experience_years"`
	EducationLevel      string    `json:"education_level" yaml:"education_level"`
	ApplicationDeadline string    `json:"application_deadline" yaml:"application_deadline"`
	Visibility          string    `json:"visibility" yaml:"visibility"`
}

// CourseRecord is a course as catalogs publish it
type CourseRecord struct {
	ID                  RecordID  `json:"id" yaml:"id"`
	Name                string    `json:"name" yaml:"name"`
	Provider            string    `json:"provider" yaml:"provider"`
	Duration            string    `json:"duration" yaml:"duration"`
	Mode                string    `json:"mode" yaml:"mode"`
	Fees                string    `json:"fees" yaml:"fees"`
	Description         string    `json:"description" yaml:"description"`
	SkillsRequired      SkillList `json:"skills_required" yaml:"skills_required"`
	Category            string    `json:"category" yaml:"category"`
	Difficulty          string    `json:"difficulty" yaml:"difficulty"`
	ApplicationDeadline string    `json:"application_deadline" yaml:"application_deadline"`
	Visibility          string    `json:"visibility" yaml:"visibility"`
}

// File is the on-disk catalog layout
type File struct {
	Jobs    []JobRecord    `json:"jobs" yaml:"jobs"`
	Courses []CourseRecord `json:"courses" yaml:"courses"`
}

// Opportunity flattens a job record
func (r JobRecord) Opportunity() types.Opportunity {
	return types.Opportunity{
		ID:                 recordID(r.ID, types.KindJob, r.Title, r.Company),
		Kind:               types.KindJob,
		Title:              strings.TrimSpace(r.Title),
		Organization:       strings.TrimSpace(r.Company),
		RequiredSkills:     nonNil(r.SkillsRequired),
		Description:        r.Description,
		Responsibilities:   r.Responsibilities,
		ExperienceLevel:    r.ExperienceLevel,
		MinExperienceYears: r.MinExperienceYears,
		MaxExperienceYears: r.MaxExperienceYears,
		EducationLevel:     strings.ToLower(strings.TrimSpace(r.EducationLevel)),
		Location:           r.Location,
		Deadline:           r.ApplicationDeadline,
		Salary:             r.SalaryRange,
	}
}

// Opportunity flattens a course record
func (r CourseRecord) Opportunity() types.Opportunity {
	return types.Opportunity{
		ID:             recordID(r.ID, types.KindCourse, r.Name, r.Provider),
		Kind:           types.KindCourse,
		Title:          strings.TrimSpace(r.Name),
		Organization:   strings.TrimSpace(r.Provider),
		RequiredSkills: nonNil(r.SkillsRequired),
		Description:    r.Description,
		Category:       r.Category,
		Difficulty:     strings.ToLower(strings.TrimSpace(r.Difficulty)),
		Provider:       r.Provider,
		Duration:       r.Duration,
		Fees:           r.Fees,
		Deadline:       r.ApplicationDeadline,
	}
}

// recordID keeps a declared id and otherwise derives a stable one from the
// record's kind, title and organization
func recordID(id RecordID, kind types.OpportunityKind, title, org string) string {
	if s := strings.TrimSpace(string(id)); s != "" {
		return s
	}
	name := strings.ToLower(strings.Join([]string{string(kind), strings.TrimSpace(title), strings.TrimSpace(org)}, "|"))
	return uuid.NewSHA1(catalogNamespace, []byte(name)).String()
}

func nonNil(skills SkillList) []string {
	if skills == nil {
		return []string{}
	}
	return []string(skills)
}

// isPublic treats an empty visibility as public
func isPublic(visibility string) bool {
	v := strings.ToLower(strings.TrimSpace(visibility))
	return v == "" || v == "public"
}

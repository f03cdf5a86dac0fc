// Package types provides type definitions for structured data used throughout the talent-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// OpportunityKind distinguishes jobs from courses
type OpportunityKind string

const (
	// KindJob is a job posting
	KindJob OpportunityKind = "job"
	// KindCourse is a learning course
	KindCourse OpportunityKind = "course"
)

// Opportunity is the minimal shape the matching engine consumes. Richer catalog
// records are flattened to this before matching.
type Opportunity struct {
	ID               string          `json:"id" yaml:"id" validate:"required"`
	Kind             OpportunityKind `json:"kind" yaml:"kind" validate:"required,oneof=job course"`
	Title            string          `json:"title" yaml:"title" validate:"required"`
	Organization     string          `json:"organization,omitempty" yaml:"organization,omitempty"`
	RequiredSkills   []string        `json:"required_skills" yaml:"required_skills" validate:"dive,required"`
	Description      string          `json:"description,omitempty" yaml:"description,omitempty"`
	Responsibilities string          `json:"responsibilities,omitempty" yaml:"responsibilities,omitempty"`

	// Job metadata
	ExperienceLevel    string   `json:"experience_level,omitempty" yaml:"experience_level,omitempty"`
	MinExperienceYears *float64 `json:"min_experience_years,omitempty" yaml:"min_experience_years,omitempty" validate:"omitempty,gte=0"`
	MaxExperienceYears *float64 `json:"max_experience_years,omitempty" yaml:"max_experience_years,omitempty" validate:"omitempty,gte=0"`
	EducationLevel     string   `json:"education_level,omitempty" yaml:"education_level,omitempty" validate:"omitempty,oneof=other bachelors masters doctorate"`
	Location           string   `json:"location,omitempty" yaml:"location,omitempty"`
	Deadline           string   `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Salary             string   `json:"salary,omitempty" yaml:"salary,omitempty"`

	// Course metadata
	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	Provider   string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Duration   string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Fees       string `json:"fees,omitempty" yaml:"fees,omitempty"`
}

// MatchResult is one scored opportunity. Score is always within [0,1].
type MatchResult struct {
	OpportunityID  string             `json:"opportunity_id"`
	Title          string             `json:"title"`
	Kind           OpportunityKind    `json:"kind"`
	Score          float64            `json:"score"`
	MatchingSkills []string           `json:"matching_skills"`
	SkillGaps      []string           `json:"skill_gaps"`
	Reason         string             `json:"reason"`
	Breakdown      map[string]float64 `json:"breakdown"`
	CareerImpact   string             `json:"career_impact,omitempty"`
}

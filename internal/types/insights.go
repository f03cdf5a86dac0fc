// Package types provides type definitions for structured data used throughout the talent-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateInsights is the read-only annotation layer derived from a completed
// CandidateProfile.
type CandidateInsights struct {
	SeniorityLevel        string                `json:"seniority_level"`
	Trajectory            CareerTrajectory      `json:"career_trajectory"`
	Skills                SkillInsights         `json:"skill_analysis"`
	Experience            ExperienceInsights    `json:"experience_insights"`
	Education             EducationInsights     `json:"education_insights"`
	Personality           PersonalityIndicators `json:"personality_traits"`
	OverallScore          float64               `json:"overall_score"`
	Strengths             []string              `json:"strengths"`
	ImprovementAreas      []string              `json:"areas_for_improvement"`
	CareerRecommendations []string              `json:"career_recommendations"`
}

// CareerTrajectory describes progression across positions
type CareerTrajectory struct {
	SeniorityLevel   string  `json:"seniority_level"`
	Progression      string  `json:"career_progression"`
	IndustryFocus    string  `json:"industry_focus"`
	YearsExperience  float64 `json:"years_experience"`
	RoleDiversity    string  `json:"role_diversity"`
	TrajectoryScore  float64 `json:"trajectory_score"`
	DistinctLevels   int     `json:"distinct_levels"`
	UniqueRoleTitles int     `json:"unique_role_titles"`
}

// SkillInsights is the categorization and marketability of the skill set
type SkillInsights struct {
	TotalSkills        int                 `json:"total_skills"`
	Categories         map[string][]string `json:"skill_categories"`
	SkillDensity       float64             `json:"skill_density"`
	EmergingSkills     []string            `json:"emerging_skills"`
	CoreCompetencies   []string            `json:"core_competencies"`
	MarketabilityScore float64             `json:"marketability_score"`
}

// ExperienceInsights are quality signals mined from position descriptions
type ExperienceInsights struct {
	TotalPositions       int     `json:"total_positions"`
	Diversity            string  `json:"experience_diversity"`
	LeadershipIndicators int     `json:"leadership_indicators"`
	LeadershipDensity    float64 `json:"leadership_density"`
	AchievementDensity   float64 `json:"achievement_density"`
	ResponsibilityGrowth bool    `json:"responsibility_growth"`
	QualityScore         float64 `json:"experience_quality_score"`
}

// EducationInsights summarizes degrees and continued learning
type EducationInsights struct {
	HighestLevel       string  `json:"education_level"`
	FieldRelevance     string  `json:"field_relevance"`
	ContinuousLearning bool    `json:"continuous_learning"`
	CertificationCount int     `json:"certification_count"`
	EducationScore     float64 `json:"education_score"`
}

// PersonalityIndicators holds per-trait word fractions and the top traits
type PersonalityIndicators struct {
	Traits         map[string]float64 `json:"traits"`
	DominantTraits []string           `json:"dominant_traits"`
}

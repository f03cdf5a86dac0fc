// Package matching scores job and course opportunities against a candidate profile.
package matching

import "fmt"

const (
	// ScoreFloor excludes opportunities scoring at or below it
	ScoreFloor = 0.1

	// DefaultJobLimit is the number of job matches returned when the caller passes no limit
	DefaultJobLimit = 20
	// DefaultCourseLimit is the number of course matches returned when the caller passes no limit
	DefaultCourseLimit = 15

	defaultWorkers = 4
)

// Breakdown keys for job matches
const (
	ComponentSkills     = "skills"
	ComponentExperience = "experience"
	ComponentTechnology = "technology"
	ComponentText       = "text"
	ComponentEducation  = "education"
)

// Breakdown keys for course matches
const (
	ComponentGapCoverage      = "gap_coverage"
	ComponentCareerAlignment  = "career_alignment"
	ComponentLearningPriority = "learning_priority"
	ComponentExperienceFit    = "experience_fit"
)

// JobWeights weights the job sub-scores. They are expected to sum to 1.
type JobWeights struct {
	Skills     float64 `json:"skills" yaml:"skills"`
	Experience float64 `json:"experience" yaml:"experience"`
	Technology float64 `json:"technology" yaml:"technology"`
	Text       float64 `json:"text" yaml:"text"`
	Education  float64 `json:"education" yaml:"education"`
}

// DefaultJobWeights returns the standard job weighting
func DefaultJobWeights() JobWeights {
	return JobWeights{
		Skills:     0.35,
		Experience: 0.25,
		Technology: 0.20,
		Text:       0.15,
		Education:  0.05,
	}
}

// Validate rejects negative weights and weights that do not sum to 1
func (w JobWeights) Validate() error {
	return checkWeights(w.Skills, w.Experience, w.Technology, w.Text, w.Education)
}

// CourseWeights weights the course sub-scores. They are expected to sum to 1.
type CourseWeights struct {
	GapCoverage      float64 `json:"gap_coverage" yaml:"gap_coverage"`
	CareerAlignment  float64 `json:"career_alignment" yaml:"career_alignment"`
	LearningPriority float64 `json:"learning_priority" yaml:"learning_priority"`
	ExperienceFit    float64 `json:"experience_fit" yaml:"experience_fit"`
}

// DefaultCourseWeights returns the standard course weighting
func DefaultCourseWeights() CourseWeights {
	return CourseWeights{
		GapCoverage:      0.35,
		CareerAlignment:  0.30,
		LearningPriority: 0.20,
		ExperienceFit:    0.15,
	}
}

// Validate rejects negative weights and weights that do not sum to 1
func (w CourseWeights) Validate() error {
	return checkWeights(w.GapCoverage, w.CareerAlignment, w.LearningPriority, w.ExperienceFit)
}

func checkWeights(weights ...float64) error {
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("negative weight %.3f", w)
		}
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("weights sum to %.3f, want 1", sum)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

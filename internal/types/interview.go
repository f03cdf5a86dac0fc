// Package types provides type definitions for structured data used throughout the talent-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// SessionStatus is the lifecycle state of an interview session
type SessionStatus string

const (
	// SessionActive accepts answers and is awaiting evaluation
	SessionActive SessionStatus = "active"
	// SessionCompleted has been evaluated successfully (terminal)
	SessionCompleted SessionStatus = "completed"
	// SessionFailed could not be evaluated (terminal)
	SessionFailed SessionStatus = "failed"
)

// Question is a generated interview question with its reference answer
type Question struct {
	ID          int      `json:"id"`
	Text        string   `json:"question"`
	Type        string   `json:"type"`
	IdealAnswer string   `json:"ideal_answer"`
	KeyPoints   []string `json:"key_points"`
}

// Answer is a candidate's free-text response to a question
type Answer struct {
	QuestionID int    `json:"question_id"`
	Text       string `json:"answer"`
}

// AnswerEvaluation is the 0-10 score for a single answer
type AnswerEvaluation struct {
	QuestionID    int      `json:"question_id"`
	Score         float64  `json:"score"`
	Feedback      string   `json:"feedback"`
	CoveredPoints []string `json:"covered_points"`
	MissingPoints []string `json:"missing_points"`
}

// Resource is a suggested study resource
type Resource struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Recommendations is the qualitative feedback attached to an evaluated session
type Recommendations struct {
	Strengths            []string   `json:"strengths"`
	Weaknesses           []string   `json:"weaknesses"`
	Recommendations      []string   `json:"recommendations"`
	SuggestedResources   []Resource `json:"suggested_resources,omitempty"`
	NextLevelReadiness   bool       `json:"next_level_readiness"`
	ReadinessExplanation string     `json:"readiness_explanation,omitempty"`
	FocusAreas           []string   `json:"focus_areas,omitempty"`
	EstimatedStudyTime   string     `json:"estimated_study_time,omitempty"`
	Source               string     `json:"source"`
}

// InterviewResult is the aggregated outcome of an evaluated session
type InterviewResult struct {
	OverallScore      float64            `json:"overall_score"`
	AccuracyRate      float64            `json:"accuracy_rate"`
	Grade             string             `json:"grade"`
	TotalQuestions    int                `json:"total_questions"`
	AnsweredQuestions int                `json:"answered_questions"`
	Evaluations       []AnswerEvaluation `json:"evaluations"`
	Recommendations   Recommendations    `json:"recommendations"`
}

// InterviewSession tracks one interview from generation to evaluation
type InterviewSession struct {
	ID                string           `json:"id"`
	Domain            string           `json:"domain"`
	Difficulty        string           `json:"difficulty"`
	ExperienceYears   float64          `json:"experience_years"`
	Questions         []Question       `json:"questions"`
	Answers           []Answer         `json:"answers"`
	PerQuestionScores []float64        `json:"per_question_scores"`
	OverallScore      float64          `json:"overall_score"`
	Status            SessionStatus    `json:"status"`
	Result            *InterviewResult `json:"result,omitempty"`
	FailureReason     string           `json:"failure_reason,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	CompletedAt       *time.Time       `json:"completed_at,omitempty"`
}

package interview

import (
	"math"

	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	maxAnswerScore = 10.0
	// passingScore is the per-question score counted toward the accuracy rate
	passingScore = 6.0
	// readinessScore is the overall percentage that marks a candidate ready for the next tier
	readinessScore = 70.0
)

// Summary is the aggregate over a session's answer evaluations
type Summary struct {
	OverallScore    float64
	AccuracyRate    float64
	Grade           string
	TotalQuestions  int
	QuestionsPassed int
}

// Aggregate computes the overall percentage, the share of questions scoring
// at least 6, and the letter grade. Percentages are rounded to 2 decimals.
func Aggregate(evaluations []types.AnswerEvaluation) Summary {
	if len(evaluations) == 0 {
		return Summary{Grade: Grade(0)}
	}

	total := 0.0
	passed := 0
	for _, e := range evaluations {
		total += e.Score
		if e.Score >= passingScore {
			passed++
		}
	}
	n := float64(len(evaluations))
	overall := round2(100 * total / (maxAnswerScore * n))
	return Summary{
		OverallScore:    overall,
		AccuracyRate:    round2(100 * float64(passed) / n),
		Grade:           Grade(overall),
		TotalQuestions:  len(evaluations),
		QuestionsPassed: passed,
	}
}

var gradeBands = []struct {
	min   float64
	grade string
}{
	{95, "A+"},
	{90, "A"},
	{85, "A-"},
	{80, "B+"},
	{75, "B"},
	{70, "B-"},
	{65, "C+"},
	{60, "C"},
	{55, "C-"},
	{50, "D"},
}

// Grade converts a percentage into a letter grade
func Grade(percentage float64) string {
	for _, band := range gradeBands {
		if percentage >= band.min {
			return band.grade
		}
	}
	return "F"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(maxAnswerScore, v))
}

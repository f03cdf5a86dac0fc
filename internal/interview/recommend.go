package interview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/prompts"
	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Recommendation sources
const (
	SourceOracle = "oracle"
	SourceRules  = "rules"
)

const summaryQuestionChars = 100

// recommend asks the oracle for feedback and falls back to the rule-based
// templates on any failure. Readiness always follows the overall score.
func (e *Engine) recommend(ctx context.Context, session *types.InterviewSession, evaluations []types.AnswerEvaluation, summary Summary) types.Recommendations {
	logger := observability.LoggerFromContext(ctx)

	recs, err := e.oracleRecommendations(ctx, session, evaluations, summary)
	if err != nil {
		logger.Warn("oracle recommendations unavailable, using rules",
			"session_id", session.ID, "error", err)
		recs = RuleRecommendations(evaluations, summary.OverallScore, Domain(session.Domain))
	}
	recs.NextLevelReadiness = summary.OverallScore >= readinessScore
	return recs
}

type oracleRecommendationPayload struct {
	Strengths            []string         `json:"strengths"`
	Weaknesses           []string         `json:"weaknesses"`
	Recommendations      []string         `json:"recommendations"`
	SuggestedResources   []types.Resource `json:"suggested_resources"`
	ReadinessExplanation string           `json:"readiness_explanation"`
	FocusAreas           []string         `json:"focus_areas"`
	EstimatedStudyTime   string           `json:"estimated_study_time"`
}

type questionSummary struct {
	Question      string   `json:"question"`
	Score         float64  `json:"score"`
	CoveredPoints []string `json:"covered_points"`
	MissingPoints []string `json:"missing_points"`
}

func (e *Engine) oracleRecommendations(ctx context.Context, session *types.InterviewSession, evaluations []types.AnswerEvaluation, summary Summary) (types.Recommendations, error) {
	if !llm.IsEnabled(e.oracle) {
		return types.Recommendations{}, fmt.Errorf("recommendations: %w", llm.ErrOracleUnavailable)
	}

	text := make(map[int]string, len(session.Questions))
	for _, q := range session.Questions {
		text[q.ID] = q.Text
	}
	rows := make([]questionSummary, 0, len(evaluations))
	for _, ev := range evaluations {
		rows = append(rows, questionSummary{
			Question:      truncate(text[ev.QuestionID], summaryQuestionChars),
			Score:         ev.Score,
			CoveredPoints: ev.CoveredPoints,
			MissingPoints: ev.MissingPoints,
		})
	}
	summaryJSON, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return types.Recommendations{}, fmt.Errorf("failed to encode question summary: %w", err)
	}

	prompt, err := prompts.Render("interview.json", "recommendations", map[string]string{
		"Domain":          Domain(session.Domain).Title(),
		"Difficulty":      session.Difficulty,
		"ExperienceYears": formatYears(session.ExperienceYears),
		"OverallScore":    fmt.Sprintf("%.2f", summary.OverallScore),
		"Summary":         string(summaryJSON),
	})
	if err != nil {
		return types.Recommendations{}, err
	}

	var payload oracleRecommendationPayload
	if err := llm.ExtractInto(ctx, e.oracle, prompt, schemas.MustOracleSchema(schemas.Recommendations), &payload); err != nil {
		return types.Recommendations{}, err
	}

	return types.Recommendations{
		Strengths:            nonEmpty(payload.Strengths),
		Weaknesses:           nonEmpty(payload.Weaknesses),
		Recommendations:      nonEmpty(payload.Recommendations),
		SuggestedResources:   payload.SuggestedResources,
		ReadinessExplanation: payload.ReadinessExplanation,
		FocusAreas:           payload.FocusAreas,
		EstimatedStudyTime:   payload.EstimatedStudyTime,
		Source:               SourceOracle,
	}, nil
}

// RuleRecommendations builds feedback from score buckets: 8 and above is a
// strength, below 5 a knowledge gap
func RuleRecommendations(evaluations []types.AnswerEvaluation, overallScore float64, domain Domain) types.Recommendations {
	var high, medium, low int
	for _, ev := range evaluations {
		switch {
		case ev.Score >= 8:
			high++
		case ev.Score >= 5:
			medium++
		default:
			low++
		}
	}

	var strengths, weaknesses, recommendations []string
	if high > 0 {
		strengths = append(strengths, "Strong understanding of key concepts")
		if float64(high) >= float64(len(evaluations))*0.6 {
			strengths = append(strengths, "Consistent performance across topics")
		}
	}
	if medium > 0 {
		strengths = append(strengths, "Good foundation with room for improvement")
	}
	if low > 0 {
		weaknesses = append(weaknesses,
			"Some knowledge gaps identified",
			"Need more practice with fundamental concepts")
		recommendations = append(recommendations,
			fmt.Sprintf("Focus on strengthening %s fundamentals", domain.label()))
	}

	switch {
	case overallScore >= 80:
		strengths = append(strengths, "Excellent technical knowledge")
		recommendations = append(recommendations, "Ready for advanced topics and challenges")
	case overallScore >= 60:
		recommendations = append(recommendations,
			"Continue practicing and studying key concepts",
			"Focus on areas with lower scores")
	default:
		recommendations = append(recommendations,
			"Recommend comprehensive study of fundamentals",
			"Practice more problems and examples")
	}

	if len(strengths) == 0 {
		strengths = []string{"Shows willingness to learn"}
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{"Minor areas for improvement"}
	}
	return types.Recommendations{
		Strengths:          strengths,
		Weaknesses:         weaknesses,
		Recommendations:    recommendations,
		SuggestedResources: []types.Resource{},
		Source:             SourceRules,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func nonEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

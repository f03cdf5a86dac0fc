package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/types"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{95, "A+"},
		{94.99, "A"},
		{90, "A"},
		{85, "A-"},
		{80, "B+"},
		{75, "B"},
		{70, "B-"},
		{65, "C+"},
		{60, "C"},
		{55, "C-"},
		{50, "D"},
		{49.99, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Grade(tt.score))
		})
	}
}

func TestGrade_BandsAreMonotonic(t *testing.T) {
	order := map[string]int{"F": 0, "D": 1, "C-": 2, "C": 3, "C+": 4, "B-": 5, "B": 6, "B+": 7, "A-": 8, "A": 9, "A+": 10}
	prev := -1
	for s := 0.0; s <= 100; s += 0.25 {
		rank := order[Grade(s)]
		require.GreaterOrEqual(t, rank, prev, "grade dropped at %.2f", s)
		prev = rank
		assert.Equal(t, s < 50, Grade(s) == "F")
		assert.Equal(t, s >= 95, Grade(s) == "A+")
	}
}

func TestAggregate(t *testing.T) {
	evals := func(scores ...float64) []types.AnswerEvaluation {
		out := make([]types.AnswerEvaluation, len(scores))
		for i, s := range scores {
			out[i] = types.AnswerEvaluation{QuestionID: i + 1, Score: s}
		}
		return out
	}

	tests := []struct {
		name     string
		evals    []types.AnswerEvaluation
		overall  float64
		accuracy float64
		passed   int
		grade    string
	}{
		{"empty", nil, 0, 0, 0, "F"},
		{"all perfect", evals(10, 10), 100, 100, 2, "A+"},
		{"mixed", evals(6, 5.9, 8), 66.33, 66.67, 2, "C+"},
		{"boundary pass", evals(6), 60, 100, 1, "C"},
		{"all zero", evals(0, 0, 0), 0, 0, 0, "F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.evals)
			assert.InDelta(t, tt.overall, got.OverallScore, 1e-9)
			assert.InDelta(t, tt.accuracy, got.AccuracyRate, 1e-9)
			assert.Equal(t, tt.passed, got.QuestionsPassed)
			assert.Equal(t, tt.grade, got.Grade)
			assert.Equal(t, len(tt.evals), got.TotalQuestions)
		})
	}
}

func TestRuleRecommendations(t *testing.T) {
	t.Run("high scores", func(t *testing.T) {
		recs := RuleRecommendations([]types.AnswerEvaluation{{Score: 9}, {Score: 8}, {Score: 7}}, 80, DomainCloudComputing)
		assert.Equal(t, []string{
			"Strong understanding of key concepts",
			"Consistent performance across topics",
			"Good foundation with room for improvement",
			"Excellent technical knowledge",
		}, recs.Strengths)
		assert.Equal(t, []string{"Minor areas for improvement"}, recs.Weaknesses)
		assert.Equal(t, []string{"Ready for advanced topics and challenges"}, recs.Recommendations)
		assert.Equal(t, SourceRules, recs.Source)
	})

	t.Run("low scores", func(t *testing.T) {
		recs := RuleRecommendations([]types.AnswerEvaluation{{Score: 2}, {Score: 0}}, 10, DomainDataScience)
		assert.Equal(t, []string{"Shows willingness to learn"}, recs.Strengths)
		assert.Equal(t, []string{
			"Focus on strengthening data science fundamentals",
			"Recommend comprehensive study of fundamentals",
			"Practice more problems and examples",
		}, recs.Recommendations)
	})

	t.Run("middling", func(t *testing.T) {
		recs := RuleRecommendations([]types.AnswerEvaluation{{Score: 6}, {Score: 7}}, 65, DomainJava)
		assert.Equal(t, []string{"Good foundation with room for improvement"}, recs.Strengths)
		assert.Contains(t, recs.Recommendations, "Focus on areas with lower scores")
	})
}

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		years float64
		want  Difficulty
	}{
		{0, DifficultyFresher},
		{1, DifficultyFresher},
		{1.5, DifficultyJunior},
		{3, DifficultyJunior},
		{4, DifficultyIntermediate},
		{5, DifficultyIntermediate},
		{8, DifficultySenior},
		{8.5, DifficultyExpert},
		{20, DifficultyExpert},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DifficultyFor(tt.years), "years=%v", tt.years)
	}
	assert.Equal(t, "basic concepts and fundamentals", DifficultyFresher.Focus())
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("Machine Learning")
	require.NoError(t, err)
	assert.Equal(t, DomainMachineLearning, d)

	d, err = ParseDomain("web-development")
	require.NoError(t, err)
	assert.Equal(t, DomainWebDevelopment, d)

	_, err = ParseDomain("gardening")
	assert.Error(t, err)

	assert.Len(t, Domains(), 12)
	assert.Equal(t, "Ai Ml", DomainAIML.Title())
	assert.Equal(t, "Cloud Computing", DomainCloudComputing.Title())
	for _, d := range Domains() {
		assert.NotEqual(t, string(d), d.Context(), "%s has no context", d)
	}
}

func TestTransitions(t *testing.T) {
	assert.True(t, IsTransitionAllowed(types.SessionActive, types.SessionCompleted))
	assert.True(t, IsTransitionAllowed(types.SessionActive, types.SessionFailed))
	assert.False(t, IsTransitionAllowed(types.SessionCompleted, types.SessionFailed))
	assert.False(t, IsTransitionAllowed(types.SessionFailed, types.SessionActive))
	assert.False(t, IsTransitionAllowed(types.SessionCompleted, types.SessionActive))
}

func TestRecordAnswers_ReplacesAndDrops(t *testing.T) {
	session := &types.InterviewSession{
		Status:    types.SessionActive,
		Questions: []types.Question{{ID: 1}, {ID: 2}},
		Answers:   []types.Answer{},
	}
	require.NoError(t, RecordAnswers(session, []types.Answer{{QuestionID: 1, Text: "a"}, {QuestionID: 3, Text: "x"}}))
	require.NoError(t, RecordAnswers(session, []types.Answer{{QuestionID: 1, Text: "b"}, {QuestionID: 2, Text: "c"}}))
	assert.Equal(t, []types.Answer{{QuestionID: 1, Text: "b"}, {QuestionID: 2, Text: "c"}}, session.Answers)
}

package interview

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/prompts"
	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	// DefaultQuestionCount is used when a caller asks for zero questions
	DefaultQuestionCount = 10
	// MaxQuestions caps every generated set
	MaxQuestions = 20

	defaultWorkers      = 4
	defaultQuestionType = "conceptual"
	noFeedback          = "No feedback available"
	noAnswer            = "No answer provided"
)

// Engine generates and evaluates interview sessions. Question generation and
// answer scoring require the oracle; recommendations fall back to rules.
type Engine struct {
	oracle       llm.Oracle
	maxQuestions int
	workers      int
	now          func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithMaxQuestions lowers the per-session question cap
func WithMaxQuestions(n int) Option {
	return func(e *Engine) {
		if n > 0 && n < MaxQuestions {
			e.maxQuestions = n
		}
	}
}

// WithWorkers bounds concurrent answer scoring calls
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithClock replaces time.Now for session timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine around an oracle. A nil oracle is treated as disabled.
func NewEngine(oracle llm.Oracle, opts ...Option) *Engine {
	if oracle == nil {
		oracle = llm.Disabled()
	}
	e := &Engine{
		oracle:       oracle,
		maxQuestions: MaxQuestions,
		workers:      defaultWorkers,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type oracleQuestion struct {
	Question    string   `json:"question"`
	Type        string   `json:"type"`
	IdealAnswer string   `json:"ideal_answer"`
	KeyPoints   []string `json:"key_points"`
}

// Generate requests count questions calibrated to the candidate's experience
// and opens an active session. It fails when the oracle is unavailable or
// returns no questions.
func (e *Engine) Generate(ctx context.Context, domain Domain, years float64, count int) (*types.InterviewSession, error) {
	if _, ok := domainContext[domain]; !ok {
		return nil, fmt.Errorf("unknown interview domain %q", domain)
	}
	if years < 0 {
		return nil, fmt.Errorf("years of experience must be non-negative, got %v", years)
	}
	if count <= 0 {
		count = DefaultQuestionCount
	}
	count = min(count, e.maxQuestions)

	difficulty := DifficultyFor(years)
	prompt, err := prompts.Render("interview.json", "generate-questions", map[string]string{
		"Count":           strconv.Itoa(count),
		"Domain":          domain.Title(),
		"DomainContext":   domain.Context(),
		"Difficulty":      titleCase(string(difficulty)),
		"DifficultyFocus": difficulty.Focus(),
		"ExperienceYears": formatYears(years),
	})
	if err != nil {
		return nil, err
	}

	var raw []oracleQuestion
	if err := llm.ExtractInto(ctx, e.oracle, prompt, schemas.MustOracleSchema(schemas.Questions), &raw); err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	questions := cleanQuestions(raw, count)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	session := newSession(domain, difficulty, years, questions, e.now())
	observability.LoggerFromContext(ctx).Info("interview questions generated",
		"session_id", session.ID, "domain", domain, "difficulty", difficulty, "count", len(questions))
	return session, nil
}

// cleanQuestions drops blank questions, fills defaults and numbers the set 1..N
func cleanQuestions(raw []oracleQuestion, limit int) []types.Question {
	out := make([]types.Question, 0, min(len(raw), limit))
	for _, q := range raw {
		if len(out) == limit {
			break
		}
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		qType := strings.TrimSpace(q.Type)
		if qType == "" {
			qType = defaultQuestionType
		}
		keyPoints := q.KeyPoints
		if keyPoints == nil {
			keyPoints = []string{}
		}
		out = append(out, types.Question{
			ID:          len(out) + 1,
			Text:        text,
			Type:        qType,
			IdealAnswer: strings.TrimSpace(q.IdealAnswer),
			KeyPoints:   keyPoints,
		})
	}
	return out
}

// Evaluate records answers, scores every question and completes the session.
// Empty or missing answers score 0 without an oracle call. When a scoring
// call fails the session moves to failed and the returned error matches
// ErrEvaluationFailure. A canceled context leaves the session active.
func (e *Engine) Evaluate(ctx context.Context, session *types.InterviewSession, answers []types.Answer) (*types.InterviewSession, error) {
	if session == nil {
		return nil, errors.New("session is required")
	}
	if err := RecordAnswers(session, answers); err != nil {
		return session, err
	}
	logger := observability.LoggerFromContext(ctx).With("session_id", session.ID)

	byQuestion := make(map[int]string, len(session.Answers))
	for _, a := range session.Answers {
		byQuestion[a.QuestionID] = a.Text
	}

	evaluations := make([]types.AnswerEvaluation, len(session.Questions))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, q := range session.Questions {
		answer := strings.TrimSpace(byQuestion[q.ID])
		if answer == "" {
			evaluations[i] = emptyAnswerEvaluation(q)
			continue
		}
		g.Go(func() error {
			ev, err := e.scoreAnswer(gCtx, q, answer)
			if err != nil {
				return &EvaluationError{SessionID: session.ID, QuestionID: q.ID, Cause: err}
			}
			evaluations[i] = ev
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return session, fmt.Errorf("interview evaluation interrupted: %w", ctx.Err())
		}
		session.FailureReason = err.Error()
		if terr := transition(session, types.SessionFailed, e.now()); terr != nil {
			return session, terr
		}
		logger.Error("interview evaluation failed", "error", err)
		return session, err
	}

	summary := Aggregate(evaluations)
	recs := e.recommend(ctx, session, evaluations, summary)

	scores := make([]float64, len(evaluations))
	for i, ev := range evaluations {
		scores[i] = ev.Score
	}
	session.PerQuestionScores = scores
	session.OverallScore = summary.OverallScore
	session.Result = &types.InterviewResult{
		OverallScore:      summary.OverallScore,
		AccuracyRate:      summary.AccuracyRate,
		Grade:             summary.Grade,
		TotalQuestions:    summary.TotalQuestions,
		AnsweredQuestions: answeredCount(session.Questions, byQuestion),
		Evaluations:       evaluations,
		Recommendations:   recs,
	}
	if err := transition(session, types.SessionCompleted, e.now()); err != nil {
		return session, err
	}

	logger.Info("interview evaluated",
		"overall_score", summary.OverallScore, "grade", summary.Grade,
		"accuracy_rate", summary.AccuracyRate, "recommendations", recs.Source)
	return session, nil
}

type oracleScore struct {
	Score         float64  `json:"score"`
	Feedback      string   `json:"feedback"`
	CoveredPoints []string `json:"covered_points"`
	MissingPoints []string `json:"missing_points"`
}

func (e *Engine) scoreAnswer(ctx context.Context, q types.Question, answer string) (types.AnswerEvaluation, error) {
	if err := ctx.Err(); err != nil {
		return types.AnswerEvaluation{}, err
	}
	prompt, err := prompts.Render("interview.json", "evaluate-answer", map[string]string{
		"Question":    q.Text,
		"IdealAnswer": q.IdealAnswer,
		"KeyPoints":   strings.Join(q.KeyPoints, "; "),
		"Answer":      answer,
	})
	if err != nil {
		return types.AnswerEvaluation{}, err
	}

	var raw oracleScore
	if err := llm.ExtractInto(ctx, e.oracle, prompt, schemas.MustOracleSchema(schemas.AnswerScore), &raw); err != nil {
		return types.AnswerEvaluation{}, err
	}

	feedback := strings.TrimSpace(raw.Feedback)
	if feedback == "" {
		feedback = noFeedback
	}
	return types.AnswerEvaluation{
		QuestionID:    q.ID,
		Score:         clampScore(raw.Score),
		Feedback:      feedback,
		CoveredPoints: nonEmpty(raw.CoveredPoints),
		MissingPoints: nonEmpty(raw.MissingPoints),
	}, nil
}

func emptyAnswerEvaluation(q types.Question) types.AnswerEvaluation {
	return types.AnswerEvaluation{
		QuestionID:    q.ID,
		Score:         0,
		Feedback:      noAnswer,
		CoveredPoints: []string{},
		MissingPoints: append([]string{}, q.KeyPoints...),
	}
}

func answeredCount(questions []types.Question, answers map[int]string) int {
	n := 0
	for _, q := range questions {
		if strings.TrimSpace(answers[q.ID]) != "" {
			n++
		}
	}
	return n
}

func formatYears(years float64) string {
	return strconv.FormatFloat(years, 'f', -1, 64)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

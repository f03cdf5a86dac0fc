package interview

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/types"
)

// validTransitions lists every allowed (from → to) pair
var validTransitions = map[types.SessionStatus][]types.SessionStatus{
	types.SessionActive: {types.SessionCompleted, types.SessionFailed},
	// completed and failed are terminal
}

// IsTransitionAllowed reports whether a session may move from → to
func IsTransitionAllowed(from, to types.SessionStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func isTerminal(s types.SessionStatus) bool {
	return s == types.SessionCompleted || s == types.SessionFailed
}

// newSession opens an active session over a validated, non-empty question set
func newSession(domain Domain, difficulty Difficulty, years float64, questions []types.Question, now time.Time) *types.InterviewSession {
	observability.InterviewSessionsTotal.WithLabelValues(string(types.SessionActive)).Inc()
	return &types.InterviewSession{
		ID:                uuid.NewString(),
		Domain:            string(domain),
		Difficulty:        string(difficulty),
		ExperienceYears:   years,
		Questions:         questions,
		Answers:           []types.Answer{},
		PerQuestionScores: []float64{},
		Status:            types.SessionActive,
		CreatedAt:         now,
	}
}

func transition(session *types.InterviewSession, to types.SessionStatus, now time.Time) error {
	if !IsTransitionAllowed(session.Status, to) {
		return &TransitionError{From: session.Status, To: to}
	}
	session.Status = to
	if isTerminal(to) {
		at := now
		session.CompletedAt = &at
	}
	observability.InterviewSessionsTotal.WithLabelValues(string(to)).Inc()
	return nil
}

// RecordAnswers stores answers on an active session. An answer for a question
// that already has one replaces it; answers for unknown questions are dropped.
func RecordAnswers(session *types.InterviewSession, answers []types.Answer) error {
	if session.Status != types.SessionActive {
		return &TransitionError{From: session.Status, To: types.SessionActive}
	}

	known := make(map[int]bool, len(session.Questions))
	for _, q := range session.Questions {
		known[q.ID] = true
	}
	position := make(map[int]int, len(session.Answers))
	for i, a := range session.Answers {
		position[a.QuestionID] = i
	}

	for _, a := range answers {
		if !known[a.QuestionID] {
			continue
		}
		if i, ok := position[a.QuestionID]; ok {
			session.Answers[i] = a
			continue
		}
		position[a.QuestionID] = len(session.Answers)
		session.Answers = append(session.Answers, a)
	}
	return nil
}

// EstimatedMinutes is the time budget for a session at three minutes per question
func EstimatedMinutes(session *types.InterviewSession) int {
	return len(session.Questions) * minutesPerQuestion
}

const minutesPerQuestion = 3

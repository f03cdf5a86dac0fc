package interview

import (
	"errors"
	"fmt"

	"github.com/jonathan/talent-matcher/internal/types"
)

var (
	// ErrEvaluationFailure is matched by errors.Is when answer scoring failed
	// and the session moved to failed
	ErrEvaluationFailure = errors.New("interview evaluation failed")
	// ErrSessionClosed is returned for writes to a completed or failed session
	ErrSessionClosed = errors.New("interview session is closed")
	// ErrNoQuestions is returned when generation produced an empty set
	ErrNoQuestions = errors.New("no interview questions generated")
)

// EvaluationError carries the question whose scoring call failed
type EvaluationError struct {
	SessionID  string
	QuestionID int
	Cause      error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation of question %d in session %s failed: %v", e.QuestionID, e.SessionID, e.Cause)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

// Is matches ErrEvaluationFailure
func (e *EvaluationError) Is(target error) bool {
	return target == ErrEvaluationFailure
}

// Kind is always EvaluationFailure
func (e *EvaluationError) Kind() types.ErrorKind {
	return types.ErrorEvaluationFailure
}

// TransitionError is returned when a session is asked to make a move its
// status graph does not allow
type TransitionError struct {
	From types.SessionStatus
	To   types.SessionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid session transition from %s to %s", e.From, e.To)
}

// Is matches ErrSessionClosed when the session was already terminal
func (e *TransitionError) Is(target error) bool {
	return target == ErrSessionClosed && isTerminal(e.From)
}

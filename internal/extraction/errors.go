package extraction

import (
	"errors"
	"fmt"

	"github.com/jonathan/talent-matcher/internal/types"
)

// errOracleSkipped marks oracle calls suppressed after the oracle became
// unavailable earlier in the same run. It is never recorded as a stage error.
var errOracleSkipped = errors.New("oracle skipped for the remainder of the run")

// StageError records a strategy failure that its stage recovered from
type StageError struct {
	Stage    Stage
	Strategy string
	Cause    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Message())
}

// Message is the text stored in processing_errors after the stage prefix
func (e *StageError) Message() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s strategy failed: %v", e.Strategy, e.Cause)
	}
	return fmt.Sprintf("%s strategy failed", e.Strategy)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Kind is always StageExtractionFailure
func (e *StageError) Kind() types.ErrorKind {
	return types.ErrorStageExtraction
}

// TransitionError is returned when the pipeline state machine is asked to move backwards
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid pipeline transition from %s to %s", e.From, e.To)
}

package extraction

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Strategy is one named way of producing a stage value. An empty result means
// nothing was found and the next strategy runs; an error is recorded against
// the stage and the next strategy runs.
type Strategy[T any] struct {
	Name string
	Try  func(ctx context.Context) (T, error)
}

// Input is the read-only material every stage extracts from
type Input struct {
	RawText     string
	CleanedText string
	OCRText     string
	Tables      []types.Table
	HasImages   bool
}

// searchText is the cleaned text plus OCR output, used by keyword stages
func (in *Input) searchText() string {
	if in.OCRText == "" {
		return in.CleanedText
	}
	return in.CleanedText + "\n" + in.OCRText
}

// run is the mutable state of one pipeline invocation. It is never shared.
type run struct {
	in         *Input
	profile    *types.CandidateProfile
	enhanced   *Enhancement
	oracle     *guardedOracle
	machine    *machine
	sources    map[Stage]string
	stageFails map[Stage]bool
}

// fail records a strategy failure against its stage
func (r *run) fail(ctx context.Context, stage Stage, strategy string, err error) {
	if errors.Is(err, errOracleSkipped) {
		observability.LoggerFromContext(ctx).Debug("oracle strategy skipped", "stage", stage, "strategy", strategy)
		return
	}
	stageErr := &StageError{Stage: stage, Strategy: strategy, Cause: err}
	observability.LoggerFromContext(ctx).Warn("strategy failed, falling back", "stage", stage, "strategy", strategy, "error", err)
	r.profile.AddError(string(stage), stageErr.Message())
	r.stageFails[stage] = true
}

// oracleUsable reports whether oracle strategies should be attempted at all
func (r *run) oracleUsable() bool {
	return r.oracle != nil && !r.oracle.down
}

// runStrategies tries each strategy in order and returns the first usable
// result with the winning strategy's name. It returns the zero value and ""
// when no strategy produced anything.
func runStrategies[T any](ctx context.Context, r *run, stage Stage, strategies []Strategy[T], usable func(T) bool) (T, string) {
	lg := observability.LoggerFromContext(ctx)
	for _, strategy := range strategies {
		value, err := strategy.Try(ctx)
		if err != nil {
			r.fail(ctx, stage, strategy.Name, err)
			continue
		}
		if usable(value) {
			lg.Debug("strategy accepted", "stage", stage, "strategy", strategy.Name)
			observability.StrategyWinsTotal.WithLabelValues(string(stage), strategy.Name).Inc()
			return value, strategy.Name
		}
		lg.Debug("strategy found nothing", "stage", stage, "strategy", strategy.Name)
	}
	var zero T
	return zero, ""
}

func nonEmpty[T any](values []T) bool {
	return len(values) > 0
}

// guardedOracle downgrades every later oracle call in a run once the oracle
// reports itself unavailable. Parse failures only affect the failing call.
type guardedOracle struct {
	inner llm.Oracle
	down  bool
}

func newGuardedOracle(o llm.Oracle) *guardedOracle {
	if !llm.IsEnabled(o) {
		return nil
	}
	return &guardedOracle{inner: o}
}

func (g *guardedOracle) Extract(ctx context.Context, prompt string) (json.RawMessage, error) {
	if g.down {
		return nil, errOracleSkipped
	}
	raw, err := g.inner.Extract(ctx, prompt)
	if errors.Is(err, llm.ErrOracleUnavailable) {
		g.down = true
	}
	return raw, err
}

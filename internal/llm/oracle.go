package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

var (
	// ErrOracleUnavailable is matched by errors.Is for unreachable or unconfigured oracles
	ErrOracleUnavailable = errors.New("oracle unavailable")
	// ErrParseFailure is matched by errors.Is when the oracle returns non-conforming output
	ErrParseFailure = errors.New("oracle output parse failure")
)

// OracleError is returned by every Oracle implementation in this package
type OracleError struct {
	Kind    types.ErrorKind
	Message string
	Cause   error
}

func (e *OracleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *OracleError) Unwrap() error {
	return e.Cause
}

// Is maps the error kind onto the package sentinels
func (e *OracleError) Is(target error) bool {
	switch target {
	case ErrOracleUnavailable:
		return e.Kind == types.ErrorOracleUnavailable
	case ErrParseFailure:
		return e.Kind == types.ErrorParseFailure
	}
	return false
}

// Oracle turns a prompt into a JSON value. Implementations block until the
// provider responds; concurrency is the caller's choice.
type Oracle interface {
	Extract(ctx context.Context, prompt string) (json.RawMessage, error)
}

// OracleFunc adapts a plain function to the Oracle interface
type OracleFunc func(ctx context.Context, prompt string) (json.RawMessage, error)

// Extract calls f(ctx, prompt)
func (f OracleFunc) Extract(ctx context.Context, prompt string) (json.RawMessage, error) {
	return f(ctx, prompt)
}

type disabledOracle struct{}

func (disabledOracle) Extract(context.Context, string) (json.RawMessage, error) {
	return nil, &OracleError{Kind: types.ErrorOracleUnavailable, Message: "oracle is not configured"}
}

// Disabled returns an Oracle that always reports ErrOracleUnavailable
func Disabled() Oracle {
	return disabledOracle{}
}

// IsEnabled reports whether o can be called at all
func IsEnabled(o Oracle) bool {
	if o == nil {
		return false
	}
	_, disabled := o.(disabledOracle)
	return !disabled
}

// ClientOracle issues JSON generation requests against a provider Client
type ClientOracle struct {
	client Client
	tier   ModelTier
}

// NewOracle wraps a provider client at a fixed model tier
func NewOracle(client Client, tier ModelTier) *ClientOracle {
	return &ClientOracle{client: client, tier: tier}
}

// Extract generates JSON and verifies it is syntactically valid
func (o *ClientOracle) Extract(ctx context.Context, prompt string) (json.RawMessage, error) {
	resp, err := o.client.GenerateJSON(ctx, prompt, o.tier)
	if err != nil {
		observability.OracleCallsTotal.WithLabelValues(string(o.tier), "unavailable").Inc()
		return nil, &OracleError{Kind: types.ErrorOracleUnavailable, Message: "generation failed", Cause: err}
	}

	cleaned := CleanJSONBlock(resp)
	if !json.Valid([]byte(cleaned)) {
		observability.OracleCallsTotal.WithLabelValues(string(o.tier), "parse_failure").Inc()
		return nil, &OracleError{Kind: types.ErrorParseFailure, Message: "response is not valid JSON"}
	}

	observability.OracleCallsTotal.WithLabelValues(string(o.tier), "ok").Inc()
	return json.RawMessage(cleaned), nil
}

// Connect builds an oracle for the configured provider. An empty API key yields
// a disabled oracle so every caller degrades to its deterministic fallback.
func Connect(ctx context.Context, config *Config, apiKey string, tier ModelTier) (Oracle, func() error, error) {
	if apiKey == "" {
		return Disabled(), func() error { return nil }, nil
	}

	client, err := NewClient(ctx, config, apiKey)
	if err != nil {
		return nil, nil, err
	}
	return NewOracle(client, tier), client.Close, nil
}

// ExtractInto calls the oracle, validates the response against schema (when
// non-empty), and decodes it into out. Schema violations are parse failures.
func ExtractInto(ctx context.Context, oracle Oracle, prompt, schema string, out any) error {
	if oracle == nil {
		return &OracleError{Kind: types.ErrorOracleUnavailable, Message: "oracle is nil"}
	}

	raw, err := oracle.Extract(ctx, prompt)
	if err != nil {
		return err
	}

	if schema != "" {
		if err := schemas.ValidateJSONString(schema, string(raw)); err != nil {
			return &OracleError{Kind: types.ErrorParseFailure, Message: "response violates schema", Cause: err}
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &OracleError{Kind: types.ErrorParseFailure, Message: "failed to decode response", Cause: err}
	}
	return nil
}

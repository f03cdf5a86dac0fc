package extraction

import (
	"context"
	"strings"

	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Enhancement is a partial record produced before the field stages run.
// Stages accept any group it populated with non-trivial content.
type Enhancement struct {
	PersonalInfo *types.PersonalInfo `json:"personal_info"`
	Summary      string              `json:"summary"`
	Skills       []string            `json:"skills"`
	Experience   []types.Experience  `json:"experience"`
	Education    []types.Education   `json:"education"`
	Projects     []types.Project     `json:"projects"`
}

// Enhancer pre-populates field groups from the full resume text
type Enhancer interface {
	Enhance(ctx context.Context, text string) (*Enhancement, error)
}

// EnhancerFunc adapts a function to the Enhancer interface
type EnhancerFunc func(ctx context.Context, text string) (*Enhancement, error)

// Enhance calls f(ctx, text)
func (f EnhancerFunc) Enhance(ctx context.Context, text string) (*Enhancement, error) {
	return f(ctx, text)
}

// OracleEnhancer asks the oracle for every field group in a single request
type OracleEnhancer struct {
	oracle      llm.Oracle
	tokenBudget int
}

// NewOracleEnhancer creates an enhancer over oracle. A positive tokenBudget
// truncates the resume text embedded in the prompt.
func NewOracleEnhancer(oracle llm.Oracle, tokenBudget int) *OracleEnhancer {
	return &OracleEnhancer{oracle: oracle, tokenBudget: tokenBudget}
}

func (e *OracleEnhancer) Enhance(ctx context.Context, text string) (*Enhancement, error) {
	prompt := llm.BuildExtractionPrompt(ctx, llm.ResumeEnhancementSchema(), text, e.tokenBudget)

	var enhanced Enhancement
	if err := llm.ExtractInto(ctx, e.oracle, prompt, schemas.MustOracleSchema(schemas.Enhancement), &enhanced); err != nil {
		return nil, err
	}
	return &enhanced, nil
}

// placeholderNames are values an extractor returns when it found no name
var placeholderNames = map[string]bool{
	"":               true,
	"unknown":        true,
	"n/a":            true,
	"na":             true,
	"none":           true,
	"name":           true,
	"full name":      true,
	"candidate":      true,
	"your name":      true,
	"john doe":       true,
	"first last":     true,
	"candidate name": true,
}

func isPlaceholderName(name string) bool {
	return placeholderNames[strings.ToLower(strings.TrimSpace(name))]
}

// hasName reports whether the enhancement carries a usable candidate name
func (e *Enhancement) hasName() bool {
	return e != nil && e.PersonalInfo != nil && !isPlaceholderName(e.PersonalInfo.Name)
}

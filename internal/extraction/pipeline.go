package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/talent-matcher/internal/document"
	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/prompts"
	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

const promptFile = "extraction.json"

// Options configures a Pipeline. A nil or disabled Oracle runs every stage
// on its deterministic strategies only.
type Options struct {
	Oracle llm.Oracle
	// Enhancer overrides the default oracle-backed enhancement step
	Enhancer Enhancer
	// TokenBudget caps the resume text embedded in each oracle prompt; zero disables truncation
	TokenBudget int
	// Now is the clock used for open-ended date ranges
	Now func() time.Time
}

// Pipeline converts document text into a CandidateProfile. It holds no
// per-run state and is safe for concurrent use.
type Pipeline struct {
	oracle      llm.Oracle
	enhancer    Enhancer
	tokenBudget int
	now         func() time.Time
}

// Result is the outcome of one pipeline run
type Result struct {
	Profile *types.CandidateProfile
	// States lists the states the run passed through, in order
	States []State
	// Sources names the strategy that produced each stage's value; empty when none did
	Sources map[Stage]string
}

// NewPipeline creates a pipeline from options
func NewPipeline(opts Options) *Pipeline {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		oracle:      opts.Oracle,
		enhancer:    opts.Enhancer,
		tokenBudget: opts.TokenBudget,
		now:         now,
	}
}

type stageStep struct {
	stage Stage
	state State
	run   func(ctx context.Context, r *run)
}

func (p *Pipeline) steps() []stageStep {
	return []stageStep{
		{StagePersonal, StatePersonalExtracted, p.extractPersonal},
		{StageSkills, StateSkillsExtracted, p.extractSkills},
		{StageExperience, StateExperienceExtracted, p.extractExperience},
		{StageEducation, StateEducationExtracted, p.extractEducation},
		{StageCertifications, StateCertificationsExtracted, p.extractCertifications},
		{StageProjects, StateProjectsExtracted, p.extractProjects},
		{StageLanguages, StateLanguagesExtracted, p.extractLanguages},
	}
}

// RunText runs the pipeline over plain text
func (p *Pipeline) RunText(ctx context.Context, text string) (*Result, error) {
	return p.Run(ctx, &types.Document{Text: text})
}

// Run extracts a profile from doc. It fails only when doc carries no text at
// all or ctx is cancelled; stage failures are recorded in processing_errors.
func (p *Pipeline) Run(ctx context.Context, doc *types.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("extraction: no document: %w", document.ErrUnreadableDocument)
	}

	in := prepareInput(doc)
	if strings.TrimSpace(in.CleanedText) == "" && strings.TrimSpace(in.OCRText) == "" {
		return nil, fmt.Errorf("extraction: no extractable text: %w", document.ErrUnreadableDocument)
	}

	lg := observability.LoggerFromContext(ctx)
	r := &run{
		in:         in,
		profile:    types.NewCandidateProfile(),
		oracle:     newGuardedOracle(p.oracle),
		machine:    newMachine(),
		sources:    make(map[Stage]string),
		stageFails: make(map[Stage]bool),
	}

	if err := r.machine.advance(StateTextCleaned); err != nil {
		return nil, err
	}

	if enhancer := p.enhancerFor(r); enhancer != nil {
		enhanced, err := enhancer.Enhance(ctx, in.CleanedText)
		if err != nil {
			r.fail(ctx, StageEnhance, "enhancement", err)
		} else if enhanced != nil {
			r.enhanced = enhanced
			if err := r.machine.advance(StateEnhanced); err != nil {
				return nil, err
			}
		}
	}

	for _, step := range p.steps() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step.run(ctx, r)
		if step.stage == StagePersonal {
			p.extractSummary(r)
		}
		recordStageOutcome(r, step.stage)
		if err := r.machine.advance(step.state); err != nil {
			return nil, err
		}
	}

	p.validate(ctx, r)
	if err := r.machine.advance(StateCompleted); err != nil {
		return nil, err
	}

	lg.Info("profile extracted",
		"name", r.profile.PersonalInfo.Name,
		"skills", len(r.profile.Skills),
		"experience", len(r.profile.Experience),
		"education", len(r.profile.Education),
		"processing_errors", len(r.profile.ProcessingErrors))

	return &Result{Profile: r.profile, States: r.machine.history, Sources: r.sources}, nil
}

// prepareInput builds the immutable stage input. Table text joins the main
// text before cleaning; OCR text stays separate.
func prepareInput(doc *types.Document) *Input {
	parts := []string{doc.Text}
	for _, table := range doc.Tables {
		if table.Text != "" {
			parts = append(parts, table.Text)
		}
	}
	raw := strings.Join(parts, "\n\n")

	return &Input{
		RawText:     raw,
		CleanedText: document.StripSymbols(document.CleanText(raw)),
		OCRText:     document.CleanOCRText(doc.OCRText),
		Tables:      doc.Tables,
		HasImages:   len(doc.Images) > 0 || doc.Structure.HasImages,
	}
}

// enhancerFor returns the injected enhancer, or an oracle-backed one when
// the oracle is enabled
func (p *Pipeline) enhancerFor(r *run) Enhancer {
	if p.enhancer != nil {
		return p.enhancer
	}
	if r.oracle == nil {
		return nil
	}
	return NewOracleEnhancer(r.oracle, p.tokenBudget)
}

// extractSummary takes the enhancement summary or the SUMMARY section
func (p *Pipeline) extractSummary(r *run) {
	if r.enhanced != nil && strings.TrimSpace(r.enhanced.Summary) != "" {
		r.profile.Summary = strings.TrimSpace(r.enhanced.Summary)
		return
	}
	r.profile.Summary = sections(r.in.CleanedText)["summary"]
}

// askOracle renders a prompt from the extraction templates and decodes the
// schema-checked response into out
func (p *Pipeline) askOracle(ctx context.Context, r *run, key, schemaName, text string, out any) error {
	prompt, err := prompts.Render(promptFile, key, map[string]string{
		"Text": llm.TruncateToTokens(ctx, text, p.tokenBudget),
	})
	if err != nil {
		return err
	}
	return llm.ExtractInto(ctx, r.oracle, prompt, schemas.MustOracleSchema(schemaName), out)
}

func recordStageOutcome(r *run, stage Stage) {
	outcome := "ok"
	switch {
	case r.sources[stage] == "":
		outcome = "empty"
	case r.stageFails[stage]:
		outcome = "recovered"
	}
	observability.StageOutcomesTotal.WithLabelValues(string(stage), outcome).Inc()
}

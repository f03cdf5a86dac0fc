package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/schemas"
)

// maxKeywordsPerCategory bounds what a keyword source may contribute per table entry
const maxKeywordsPerCategory = 30

// RefreshCategories are the skill categories requested from a keyword source
var RefreshCategories = []string{
	"programming", "data_science", "cloud_devops", "web_development",
	"mobile_development", "blockchain", "cybersecurity", "ai_ml",
}

// KeywordSet is a batch of fresh keyword tables
type KeywordSet struct {
	SkillCategories      map[string][]string `json:"skill_categories"`
	EmergingTechnologies []string            `json:"emerging_technologies"`
	IndustryKeywords     map[string][]string `json:"industry_keywords"`
}

// KeywordSource produces keyword tables for the requested skill categories
type KeywordSource interface {
	Name() string
	Keywords(ctx context.Context, categories []string) (*KeywordSet, error)
}

// OracleKeywordSource asks the oracle for current market keywords
type OracleKeywordSource struct {
	oracle llm.Oracle
}

// NewOracleKeywordSource wraps an oracle as a keyword source
func NewOracleKeywordSource(oracle llm.Oracle) *OracleKeywordSource {
	return &OracleKeywordSource{oracle: oracle}
}

// Name identifies the source in DynamicSources
func (s *OracleKeywordSource) Name() string { return "oracle" }

// Keywords requests one combined keyword extraction
func (s *OracleKeywordSource) Keywords(ctx context.Context, categories []string) (*KeywordSet, error) {
	prompt := llm.BuildExtractionPrompt(ctx, llm.SkillKeywordsSchema(categories), strings.Join(categories, "\n"), 0)

	var set KeywordSet
	if err := llm.ExtractInto(ctx, s.oracle, prompt, schemas.MustOracleSchema(schemas.Keywords), &set); err != nil {
		return nil, fmt.Errorf("keyword generation failed: %w", err)
	}
	return &set, nil
}

// StaticKeywordSource serves the built-in tables. It never fails.
type StaticKeywordSource struct{}

// Name identifies the source in DynamicSources
func (StaticKeywordSource) Name() string { return "builtin" }

// Keywords returns the default tables restricted to the requested categories
func (StaticKeywordSource) Keywords(_ context.Context, categories []string) (*KeywordSet, error) {
	defaults := DefaultConfig()
	set := &KeywordSet{
		SkillCategories:      make(map[string][]string, len(categories)),
		EmergingTechnologies: defaults.EmergingSkills,
		IndustryKeywords:     defaults.IndustryKeywords,
	}
	for _, category := range categories {
		if keywords, ok := defaults.SkillCategories[category]; ok {
			set.SkillCategories[category] = keywords
		}
	}
	return set, nil
}

// Refresh builds a new config from source layered over current. current is
// left untouched; on error the caller keeps using it.
func Refresh(ctx context.Context, current *AnalysisConfig, source KeywordSource, now time.Time) (*AnalysisConfig, error) {
	logger := observability.LoggerFromContext(ctx)

	set, err := source.Keywords(ctx, RefreshCategories)
	if err != nil {
		logger.Warn("keyword refresh failed, keeping current config", "source", source.Name(), "error", err)
		return nil, err
	}

	fresh := &AnalysisConfig{
		SkillCategories:  normalizeTable(set.SkillCategories),
		IndustryKeywords: normalizeTable(set.IndustryKeywords),
		EmergingSkills:   normalizeKeywords(set.EmergingTechnologies),
		LastUpdated:      stamp(now),
		DynamicSources:   []string{source.Name()},
	}

	merged := Merge(current, fresh)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	logger.Info("analysis config refreshed",
		"source", source.Name(),
		"categories", len(fresh.SkillCategories),
		"industries", len(fresh.IndustryKeywords),
		"emerging", len(fresh.EmergingSkills))
	return merged, nil
}

func normalizeTable(table map[string][]string) map[string][]string {
	out := make(map[string][]string, len(table))
	for key, keywords := range table {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if normalized := normalizeKeywords(keywords); len(normalized) > 0 {
			out[key] = normalized
		}
	}
	return out
}

func normalizeKeywords(keywords []string) []string {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		lowered = append(lowered, strings.ToLower(kw))
	}
	out := unionLists(lowered)
	if len(out) > maxKeywordsPerCategory {
		out = out[:maxKeywordsPerCategory]
	}
	return out
}

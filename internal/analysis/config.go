// Package analysis derives read-only insights (seniority, skill categories,
// marketability, experience quality, personality signals) from a completed
// candidate profile.
package analysis

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Weight keys understood by the analyzer
const (
	WeightSkill          = "skill_weight"
	WeightExperience     = "experience_weight"
	WeightEducation      = "education_weight"
	WeightDiversityBonus = "diversity_bonus"
	WeightEmergingBonus  = "emerging_bonus"
	WeightTechnicalBonus = "technical_bonus"
)

// Threshold keys understood by the analyzer
const (
	ThresholdDiverseCategories    = "min_diverse_categories"
	ThresholdTechnicalSkills      = "min_technical_skills"
	ThresholdAchievementDensity   = "min_achievement_density"
	ThresholdHighMarketability    = "high_marketability"
	ThresholdLowTrajectory        = "low_trajectory_score"
	ThresholdDiverseSkillSetCount = "diverse_skill_set"
	ThresholdNarrowSkillSetCount  = "narrow_skill_set"
)

// Seniority levels in ascending order. Titles matching nothing are "entry".
var seniorityOrder = []string{"entry", "junior", "mid", "senior", "executive"}

// Education levels in ascending order
var educationOrder = []string{"high_school", "bachelor", "master", "phd"}

// AnalysisConfig holds every keyword table and weight the analyzer reads. A
// config is never modified after construction: Merge and Refresh return new
// values, so one config can be shared by concurrent analyses.
type AnalysisConfig struct {
	SkillCategories     map[string][]string `json:"skill_categories" yaml:"skill_categories"`
	SeniorityIndicators map[string][]string `json:"seniority_indicators" yaml:"seniority_indicators"`
	IndustryKeywords    map[string][]string `json:"industry_keywords" yaml:"industry_keywords"`
	PersonalityTraits   map[string][]string `json:"personality_traits" yaml:"personality_traits"`
	AchievementKeywords []string            `json:"achievement_keywords" yaml:"achievement_keywords"`
	LeadershipKeywords  []string            `json:"leadership_keywords" yaml:"leadership_keywords"`
	EducationLevels     map[string][]string `json:"education_levels" yaml:"education_levels"`
	RelevantFields      []string            `json:"relevant_fields" yaml:"relevant_fields"`
	EmergingSkills      []string            `json:"emerging_skills" yaml:"emerging_skills"`
	Weights             map[string]float64  `json:"weights" yaml:"weights" validate:"dive,gte=0,lte=1"`
	Thresholds          map[string]float64  `json:"thresholds" yaml:"thresholds" validate:"dive,gte=0"`
	LastUpdated         string              `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	DynamicSources      []string            `json:"dynamic_sources" yaml:"dynamic_sources"`
}

// DefaultConfig returns the built-in keyword tables used when no file or
// keyword source is configured.
func DefaultConfig() *AnalysisConfig {
	return &AnalysisConfig{
		SkillCategories: map[string][]string{
			"programming":        {"python", "java", "javascript", "typescript", "go", "golang", "rust", "c++", "c#", "ruby", "kotlin", "scala"},
			"data_science":       {"machine learning", "deep learning", "pandas", "numpy", "tensorflow", "pytorch", "scikit-learn", "statistics"},
			"cloud_devops":       {"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins", "ci/cd"},
			"web_development":    {"react", "angular", "vue", "node.js", "express", "django", "flask", "html", "css"},
			"mobile_development": {"android", "ios", "react native", "flutter", "swift", "kotlin"},
			"databases":          {"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch"},
			"blockchain":         {"blockchain", "ethereum", "smart contracts", "web3", "solidity"},
			"cybersecurity":      {"cybersecurity", "penetration testing", "ethical hacking", "encryption"},
			"soft_skills":        {"communication", "leadership", "teamwork", "problem solving", "collaboration", "mentoring"},
		},
		SeniorityIndicators: map[string][]string{
			"junior":    {"junior", "entry level", "graduate", "intern", "trainee", "associate"},
			"mid":       {"mid level", "intermediate", "experienced", "regular"},
			"senior":    {"senior", "lead", "principal", "expert", "specialist", "staff"},
			"executive": {"director", "vp", "cto", "ceo", "head of", "chief", "executive"},
		},
		IndustryKeywords: map[string][]string{
			"fintech":    {"banking", "finance", "payment", "trading", "fintech"},
			"healthcare": {"medical", "healthcare", "hospital", "pharmaceutical", "clinical"},
			"ecommerce":  {"retail", "ecommerce", "marketplace", "shopping"},
			"ai_ml":      {"artificial intelligence", "machine learning", "nlp", "computer vision"},
			"education":  {"edtech", "university", "learning platform", "school"},
			"gaming":     {"game", "gaming", "unity", "unreal"},
		},
		PersonalityTraits: map[string][]string{
			"analytical":    {"analytical", "logical", "systematic", "methodical", "detail-oriented", "analyzed"},
			"creative":      {"creative", "innovative", "artistic", "imaginative", "original", "designed"},
			"leadership":    {"leadership", "decisive", "confident", "inspiring", "motivational", "led"},
			"collaborative": {"collaborative", "team player", "cooperative", "supportive", "diplomatic", "collaborated"},
			"adaptive":      {"adaptable", "flexible", "agile", "versatile", "quick learner"},
		},
		AchievementKeywords: []string{
			"achieved", "accomplished", "delivered", "implemented", "developed",
			"created", "built", "designed", "launched", "improved", "increased",
			"decreased", "reduced", "optimized", "streamlined", "automated",
			"completed", "successful",
		},
		LeadershipKeywords: []string{
			"led", "managed", "supervised", "directed", "coordinated", "mentored",
			"guided", "trained", "leadership", "team lead", "project manager",
			"scrum master", "tech lead",
		},
		EducationLevels: map[string][]string{
			"high_school": {"high school", "secondary", "diploma"},
			"bachelor":    {"bachelor", "b.sc", "b.tech", "b.e", "bs", "ba", "bsc", "btech", "bca", "undergraduate"},
			"master":      {"master", "m.sc", "m.tech", "ms", "ma", "msc", "mtech", "mca", "mba"},
			"phd":         {"phd", "ph.d", "doctorate", "doctoral"},
		},
		RelevantFields: []string{
			"computer science", "software engineering", "data science", "information technology",
			"electrical engineering", "mathematics", "statistics", "physics", "business",
			"management", "marketing", "finance", "economics",
		},
		EmergingSkills: []string{"ai", "machine learning", "blockchain", "kubernetes", "react", "vue", "docker", "llm", "generative ai"},
		Weights: map[string]float64{
			WeightSkill:          0.4,
			WeightExperience:     0.4,
			WeightEducation:      0.2,
			WeightDiversityBonus: 0.2,
			WeightEmergingBonus:  0.2,
			WeightTechnicalBonus: 0.1,
		},
		Thresholds: map[string]float64{
			ThresholdDiverseCategories:    3,
			ThresholdTechnicalSkills:      3,
			ThresholdAchievementDensity:   0.05,
			ThresholdHighMarketability:    0.7,
			ThresholdLowTrajectory:        0.6,
			ThresholdDiverseSkillSetCount: 10,
			ThresholdNarrowSkillSetCount:  8,
		},
		DynamicSources: []string{"builtin"},
	}
}

// LoadConfigFile reads an AnalysisConfig from a YAML or JSON file and merges
// it over the built-in defaults.
func LoadConfigFile(path string) (*AnalysisConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("analysis config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis config %s: %w", path, err)
	}

	var override AnalysisConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &override)
	default:
		err = yaml.Unmarshal(data, &override)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis config %s: %w", path, err)
	}

	merged := Merge(DefaultConfig(), &override)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// SaveConfigFile writes the config as YAML, or JSON when the path ends in .json
func SaveConfigFile(cfg *AnalysisConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to encode analysis config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write analysis config %s: %w", path, err)
	}
	return nil
}

var configValidator = validator.New()

// Validate checks weights and thresholds for out-of-range values
func (c *AnalysisConfig) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid analysis config: %w", err)
	}
	return nil
}

// Merge returns a new config with override layered over base. Keyword tables
// merge per key with override winning, keyword lists are unioned, and weights
// and thresholds merge per key. Neither input is modified.
func Merge(base, override *AnalysisConfig) *AnalysisConfig {
	if base == nil {
		base = &AnalysisConfig{}
	}
	if override == nil {
		override = &AnalysisConfig{}
	}

	merged := &AnalysisConfig{
		SkillCategories:     mergeTables(base.SkillCategories, override.SkillCategories),
		SeniorityIndicators: mergeTables(base.SeniorityIndicators, override.SeniorityIndicators),
		IndustryKeywords:    mergeTables(base.IndustryKeywords, override.IndustryKeywords),
		PersonalityTraits:   mergeTables(base.PersonalityTraits, override.PersonalityTraits),
		EducationLevels:     mergeTables(base.EducationLevels, override.EducationLevels),
		AchievementKeywords: unionLists(base.AchievementKeywords, override.AchievementKeywords),
		LeadershipKeywords:  unionLists(base.LeadershipKeywords, override.LeadershipKeywords),
		RelevantFields:      unionLists(base.RelevantFields, override.RelevantFields),
		EmergingSkills:      unionLists(base.EmergingSkills, override.EmergingSkills),
		DynamicSources:      unionLists(base.DynamicSources, override.DynamicSources),
		Weights:             mergeNumbers(base.Weights, override.Weights),
		Thresholds:          mergeNumbers(base.Thresholds, override.Thresholds),
		LastUpdated:         base.LastUpdated,
	}
	if override.LastUpdated != "" {
		merged.LastUpdated = override.LastUpdated
	}
	return merged
}

// Summary reports table sizes for display
func (c *AnalysisConfig) Summary() map[string]int {
	return map[string]int{
		"skill_categories":     len(c.SkillCategories),
		"industries":           len(c.IndustryKeywords),
		"seniority_levels":     len(c.SeniorityIndicators),
		"personality_traits":   len(c.PersonalityTraits),
		"achievement_keywords": len(c.AchievementKeywords),
		"leadership_keywords":  len(c.LeadershipKeywords),
		"relevant_fields":      len(c.RelevantFields),
		"emerging_skills":      len(c.EmergingSkills),
	}
}

func (c *AnalysisConfig) weight(key string, fallback float64) float64 {
	if v, ok := c.Weights[key]; ok {
		return v
	}
	return fallback
}

func (c *AnalysisConfig) threshold(key string, fallback float64) float64 {
	if v, ok := c.Thresholds[key]; ok {
		return v
	}
	return fallback
}

// orderedKeys returns the keys of a table following a preferred order, with
// any extra keys appended alphabetically.
func orderedKeys(table map[string][]string, preferred []string) []string {
	keys := make([]string, 0, len(table))
	for _, k := range preferred {
		if _, ok := table[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range table {
		if !slices.Contains(preferred, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	sort.Strings(keys)
	return keys
}

func mergeTables(base, override map[string][]string) map[string][]string {
	out := make(map[string][]string, len(base)+len(override))
	for k, v := range base {
		out[k] = slices.Clone(v)
	}
	for k, v := range override {
		out[k] = slices.Clone(v)
	}
	return out
}

func mergeNumbers(base, override map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

// unionLists keeps first-seen order and drops case-insensitive duplicates
func unionLists(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, list := range lists {
		for _, item := range list {
			key := strings.ToLower(strings.TrimSpace(item))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimSpace(item))
		}
	}
	return out
}

func stamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}

// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Defaults for values left unset by the file, the environment and flags
const (
	DefaultMatchLimit        = 20
	DefaultCourseLimit       = 15
	DefaultMaxQuestions      = 20
	DefaultQuestionCount     = 10
	DefaultPromptTokenBudget = 6000
	DefaultMatchWorkers      = 4
)

// Config represents the CLI configuration. Values come from a JSON file,
// then the environment, then command-line flags, each overriding the last.
type Config struct {
	// Paths
	Resume         string `json:"resume,omitempty"`          // Path to the resume document
	Catalog        string `json:"catalog,omitempty"`         // Path to a JSON or YAML job/course catalog
	AnalysisConfig string `json:"analysis_config,omitempty" env:"TALENT_ANALYSIS_CONFIG"`
	MetricsFile    string `json:"metrics_file,omitempty" env:"TALENT_METRICS_FILE"` // Prometheus textfile written on exit

	// Behavior
	APIKey         string `json:"api_key,omitempty" env:"GEMINI_API_KEY"`
	DatabaseURL    string `json:"database_url,omitempty" env:"TALENT_DATABASE_URL" validate:"omitempty,url"`
	OracleDisabled bool   `json:"oracle_disabled,omitempty" env:"TALENT_ORACLE_DISABLED"`
	Verbose        bool   `json:"verbose,omitempty"`

	// Limits
	MatchLimit        int `json:"match_limit,omitempty" env:"TALENT_MATCH_LIMIT" validate:"gte=0,lte=100"`
	CourseLimit       int `json:"course_limit,omitempty" env:"TALENT_COURSE_LIMIT" validate:"gte=0,lte=100"`
	MaxQuestions      int `json:"max_questions,omitempty" env:"TALENT_MAX_QUESTIONS" validate:"gte=0,lte=20"`
	QuestionCount     int `json:"question_count,omitempty" validate:"gte=0,lte=20"`
	PromptTokenBudget int `json:"prompt_token_budget,omitempty" env:"TALENT_PROMPT_TOKEN_BUDGET" validate:"gte=0"`
	MatchWorkers      int `json:"match_workers,omitempty" env:"TALENT_MATCH_WORKERS" validate:"gte=0,lte=64"`
}

var configValidator = validator.New()

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		MatchLimit:        DefaultMatchLimit,
		CourseLimit:       DefaultCourseLimit,
		MaxQuestions:      DefaultMaxQuestions,
		QuestionCount:     DefaultQuestionCount,
		PromptTokenBudget: DefaultPromptTokenBudget,
		MatchWorkers:      DefaultMatchWorkers,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv overlays environment variables onto c. Unset variables leave
// the existing value alone.
func (c *Config) LoadFromEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.QuestionCount > 0 && c.MaxQuestions > 0 && c.QuestionCount > c.MaxQuestions {
		return fmt.Errorf("config error: 'question_count' %d exceeds 'max_questions' %d", c.QuestionCount, c.MaxQuestions)
	}

	for name, path := range map[string]string{
		"resume":          c.Resume,
		"catalog":         c.Catalog,
		"analysis_config": c.AnalysisConfig,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.AnalysisConfig == "" {
		result.AnalysisConfig = defaults.AnalysisConfig
	}
	if result.MetricsFile == "" {
		result.MetricsFile = defaults.MetricsFile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.MatchLimit == 0 {
		result.MatchLimit = defaults.MatchLimit
	}
	if result.CourseLimit == 0 {
		result.CourseLimit = defaults.CourseLimit
	}
	if result.MaxQuestions == 0 {
		result.MaxQuestions = defaults.MaxQuestions
	}
	if result.QuestionCount == 0 {
		result.QuestionCount = defaults.QuestionCount
	}
	if result.PromptTokenBudget == 0 {
		result.PromptTokenBudget = defaults.PromptTokenBudget
	}
	if result.MatchWorkers == 0 {
		result.MatchWorkers = defaults.MatchWorkers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"catalog": "catalog.yaml",
		"database_url": "postgres://localhost:5432/talent",
		"match_limit": 10,
		"max_questions": 15,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "catalog.yaml", cfg.Catalog)
	assert.Equal(t, "postgres://localhost:5432/talent", cfg.DatabaseURL)
	assert.Equal(t, 10, cfg.MatchLimit)
	assert.Equal(t, 15, cfg.MaxQuestions)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("TALENT_MATCH_LIMIT", "7")
	t.Setenv("TALENT_ORACLE_DISABLED", "true")
	t.Setenv("TALENT_MATCH_WORKERS", "2")

	cfg := Config{MatchLimit: 30, CourseLimit: 5, APIKey: "file-key"}
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 7, cfg.MatchLimit)
	assert.Equal(t, 5, cfg.CourseLimit, "unset variables keep the file value")
	assert.Equal(t, 2, cfg.MatchWorkers)
	assert.True(t, cfg.OracleDisabled)
}

func TestLoadFromEnv_BadValue(t *testing.T) {
	t.Setenv("TALENT_MATCH_LIMIT", "lots")

	var cfg Config
	err := cfg.LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse environment")
}

func TestValidate(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(existing, []byte(`{}`), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "existing catalog", cfg: Config{Catalog: existing}},
		{name: "missing catalog", cfg: Config{Catalog: "/nonexistent/catalog.json"}, wantErr: "catalog file not found"},
		{name: "missing resume", cfg: Config{Resume: "/nonexistent/cv.pdf"}, wantErr: "resume file not found"},
		{name: "negative limit", cfg: Config{MatchLimit: -1}, wantErr: "MatchLimit"},
		{name: "too many questions", cfg: Config{MaxQuestions: 25}, wantErr: "MaxQuestions"},
		{name: "count above cap", cfg: Config{QuestionCount: 12, MaxQuestions: 10}, wantErr: "exceeds"},
		{name: "bad database url", cfg: Config{DatabaseURL: "not a url"}, wantErr: "DatabaseURL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Catalog: "mine.json", MatchLimit: 5}
	defaults := Defaults()
	defaults.Catalog = "default.json"
	defaults.DatabaseURL = "postgres://localhost/db"

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "mine.json", merged.Catalog)
	assert.Equal(t, "postgres://localhost/db", merged.DatabaseURL)
	assert.Equal(t, 5, merged.MatchLimit)
	assert.Equal(t, DefaultCourseLimit, merged.CourseLimit)
	assert.Equal(t, DefaultMaxQuestions, merged.MaxQuestions)
	assert.Equal(t, DefaultQuestionCount, merged.QuestionCount)
	assert.Equal(t, DefaultPromptTokenBudget, merged.PromptTokenBudget)
	assert.Equal(t, DefaultMatchWorkers, merged.MatchWorkers)
	assert.Equal(t, Config{Catalog: "mine.json", MatchLimit: 5}, cfg, "receiver is not modified")
}

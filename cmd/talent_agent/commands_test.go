package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/analysis"
	"github.com/jonathan/talent-matcher/internal/types"
)

func TestExtract_Offline(t *testing.T) {
	stdout, _, err := executeCommand(t, "extract", sampleResume, "--no-oracle")
	require.NoError(t, err)

	var profile types.CandidateProfile
	require.NoError(t, json.Unmarshal([]byte(stdout), &profile))
	assert.Equal(t, "Jane Doe", profile.PersonalInfo.Name)
	assert.Equal(t, "jane.doe@example.com", profile.PersonalInfo.Email)
	assert.Contains(t, profile.Skills, "Python")
	assert.NotEmpty(t, profile.Experience)
}

func TestExtract_WritesOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "profile.json")
	stdout, stderr, err := executeCommand(t, "extract", "--resume", sampleResume, "--out", out, "--verbose")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Jane Doe", "verbose mode prints the profile box")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"personal_info"`)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no resume", args: []string{"extract"}, wantErr: "resume"},
		{name: "missing file", args: []string{"extract", "/nonexistent/cv.pdf"}, wantErr: "cv.pdf"},
		{name: "bad database url", args: []string{"extract", sampleResume, "--db-url", "not a url"}, wantErr: "DatabaseURL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAnalyze_Report(t *testing.T) {
	stdout, _, err := executeCommand(t, "analyze", "--profile", sampleProfile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "CAREER INSIGHTS REPORT")
	assert.Contains(t, stdout, "Seniority Level")
}

func TestAnalyze_JSONFromResume(t *testing.T) {
	stdout, _, err := executeCommand(t, "analyze", "--resume", sampleResume, "--json", "--no-oracle")
	require.NoError(t, err)

	var insights types.CandidateInsights
	require.NoError(t, json.Unmarshal([]byte(stdout), &insights))
	assert.Positive(t, insights.Skills.TotalSkills)
}

func TestAnalyze_RequiresProfile(t *testing.T) {
	_, _, err := executeCommand(t, "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--profile")

	_, _, err = executeCommand(t, "analyze", "--profile-id", "0b6f9a7e-4a3b-4a41-9a43-0f4bb9d0f3c1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires --db-url")
}

func TestMatchJobs(t *testing.T) {
	stdout, _, err := executeCommand(t, "match-jobs", "--profile", sampleProfile, "--catalog", sampleCatalog)
	require.NoError(t, err)

	var results []types.MatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.NotEmpty(t, results)
	assert.Equal(t, "Backend Engineer", results[0].Title)
	for i, r := range results {
		assert.Equal(t, types.KindJob, r.Kind)
		assert.NotEqual(t, "Internal Tools Engineer", r.Title, "private jobs are not matched")
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].Score, r.Score)
		}
	}
}

func TestMatchJobs_Limit(t *testing.T) {
	stdout, _, err := executeCommand(t, "match-jobs", "-p", sampleProfile, "-c", sampleCatalog, "-n", "1")
	require.NoError(t, err)

	var results []types.MatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	assert.LessOrEqual(t, len(results), 1)
}

func TestMatchJobs_NoJobs(t *testing.T) {
	_, _, err := executeCommand(t, "match-jobs", "--profile", sampleProfile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no jobs to match")
}

func TestMatchCourses(t *testing.T) {
	out := filepath.Join(t.TempDir(), "courses.json")
	_, _, err := executeCommand(t, "match-courses", "--profile", sampleProfile, "--catalog", sampleCatalog, "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var results []types.MatchResult
	require.NoError(t, json.Unmarshal(data, &results))
	for _, r := range results {
		assert.Equal(t, types.KindCourse, r.Kind)
	}
}

func TestInterviewDomains(t *testing.T) {
	stdout, _, err := executeCommand(t, "interview", "domains")
	require.NoError(t, err)
	assert.Contains(t, stdout, "python")
	assert.Contains(t, stdout, "data_science")
}

func TestInterviewGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown domain", args: []string{"interview", "generate", "--domain", "astrology"}, wantErr: "astrology"},
		{name: "no oracle", args: []string{"interview", "generate", "--domain", "python", "--no-oracle"}, wantErr: "failed to generate questions"},
		{name: "count above cap", args: []string{"interview", "generate", "--domain", "python", "--count", "30"}, wantErr: "QuestionCount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

const pendingSession = `{
  "id": "6f1c2a9e-3d4b-4c5a-8e7f-9a0b1c2d3e4f",
  "domain": "python",
  "difficulty": "junior",
  "experience_years": 2,
  "questions": [
    {"id": 1, "question": "What is a list comprehension?", "type": "conceptual", "key_points": ["syntax", "readability"]},
    {"id": 2, "question": "Explain the GIL.", "type": "conceptual", "key_points": ["threads"]}
  ],
  "answers": [],
  "status": "active",
  "created_at": "2026-01-10T09:00:00Z"
}`

func TestInterviewEvaluate_UnansweredOffline(t *testing.T) {
	session := writeFile(t, "session.json", pendingSession)
	answers := writeFile(t, "answers.json", `[{"question_id": 1, "answer": "  "}]`)

	stdout, _, err := executeCommand(t, "interview", "evaluate", "--session", session, "--answers", answers, "--no-oracle")
	require.NoError(t, err)

	var evaluated types.InterviewSession
	require.NoError(t, json.Unmarshal([]byte(stdout), &evaluated))
	assert.Equal(t, types.SessionCompleted, evaluated.Status)
	require.NotNil(t, evaluated.Result)
	assert.Equal(t, "F", evaluated.Result.Grade)
	assert.Zero(t, evaluated.Result.AnsweredQuestions)
	assert.Equal(t, []string{"threads"}, evaluated.Result.Evaluations[1].MissingPoints)
}

func TestInterviewEvaluate_AnswerWithoutOracleFails(t *testing.T) {
	session := writeFile(t, "session.json", pendingSession)
	answers := writeFile(t, "answers.json", `[{"question_id": 1, "answer": "A compact loop expression."}]`)
	out := filepath.Join(t.TempDir(), "evaluated.json")

	_, _, err := executeCommand(t, "interview", "evaluate", "-s", session, "-a", answers, "-o", out, "--no-oracle")
	require.Error(t, err)

	var evaluated types.InterviewSession
	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr, "failed sessions are still written")
	require.NoError(t, json.Unmarshal(data, &evaluated))
	assert.Equal(t, types.SessionFailed, evaluated.Status)
	assert.NotEmpty(t, evaluated.FailureReason)
}

func TestInterviewEvaluate_RequiresSession(t *testing.T) {
	answers := writeFile(t, "answers.json", `[]`)
	_, _, err := executeCommand(t, "interview", "evaluate", "--answers", answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--session")
}

func TestRefreshConfig_Static(t *testing.T) {
	out := filepath.Join(t.TempDir(), "analysis.yaml")
	stdout, _, err := executeCommand(t, "refresh-config", "--static", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "from builtin")

	cfg, err := analysis.LoadConfigFile(out)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.SkillCategories)
	assert.NotEmpty(t, cfg.LastUpdated)
}

func TestRefreshConfig_RequiresOutput(t *testing.T) {
	_, _, err := executeCommand(t, "refresh-config", "--static")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output path is required")
}

func TestMetricsFile(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "talent.prom")
	_, _, err := executeCommand(t, "extract", sampleResume, "--no-oracle", "--metrics-file", metrics)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "talent_documents_extracted_total")
}

func TestConfigFile(t *testing.T) {
	cfgPath := writeFile(t, "config.json", `{"catalog": "`+sampleCatalog+`", "match_limit": 1, "oracle_disabled": true}`)
	stdout, _, err := executeCommand(t, "match-jobs", "--config", cfgPath, "--profile", sampleProfile)
	require.NoError(t, err)

	var results []types.MatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	assert.LessOrEqual(t, len(results), 1)
}

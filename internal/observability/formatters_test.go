package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/talent-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintCandidateProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := types.NewCandidateProfile()
	profile.PersonalInfo.Name = "Jane Doe"
	profile.PersonalInfo.Email = "jane@example.com"
	profile.Skills = []string{"Go", "Python", "SQL", "Docker", "AWS", "Kafka"}
	profile.Experience = []types.Experience{
		{Title: "Senior Engineer", Company: "Acme", StartDate: "01/2021", EndDate: "Present"},
	}
	profile.Education = []types.Education{{Degree: "B.Sc Computer Science", Institution: "MIT"}}

	p.PrintCandidateProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED CANDIDATE PROFILE")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "... and 1 more")
	assert.Contains(t, output, "Senior Engineer @ Acme")
	assert.Contains(t, output, "B.Sc Computer Science, MIT")
}

func TestPrinter_NilInputs(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCandidateProfile(nil)
	p.PrintProcessingErrors(nil)
	p.PrintInsights(nil)
	p.PrintMatches("JOB MATCHES", nil)
	p.PrintInterviewSession(nil)
	p.PrintInterviewResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintProcessingErrors(t *testing.T) {
	tests := []struct {
		name     string
		errors   []string
		expected []string
	}{
		{
			name:     "no errors",
			errors:   []string{},
			expected: []string{"NO PROCESSING ERRORS"},
		},
		{
			name:     "with errors",
			errors:   []string{"skills: oracle unavailable", "education: no entries found"},
			expected: []string{"PROCESSING ERRORS", "Recovered from 2 stage errors", "⚠ skills: oracle unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			profile := types.NewCandidateProfile()
			profile.ProcessingErrors = tt.errors

			NewPrinter(&buf).PrintProcessingErrors(profile)
			for _, want := range tt.expected {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestPrintInsights(t *testing.T) {
	var buf bytes.Buffer
	insights := &types.CandidateInsights{
		SeniorityLevel: "senior",
		OverallScore:   0.72,
		Trajectory:     types.CareerTrajectory{IndustryFocus: "fintech"},
		Skills: types.SkillInsights{
			MarketabilityScore: 0.9,
			CoreCompetencies:   []string{"programming", "cloud_devops"},
		},
		Strengths: []string{"High market demand skills"},
	}

	NewPrinter(&buf).PrintInsights(insights)
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE INSIGHTS")
	assert.Contains(t, output, "72%")
	assert.Contains(t, output, "fintech")
	assert.Contains(t, output, "cloud_devops")
	assert.Contains(t, output, "High market demand skills")
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	matches := []types.MatchResult{
		{OpportunityID: "job-1", Title: "Backend Engineer", Score: 0.62, MatchingSkills: []string{"python", "sql"}, SkillGaps: []string{"fastapi"}, Reason: "Strong skills match (2 matching skills)"},
		{OpportunityID: "job-2", Title: "Data Engineer", Score: 0.41, Reason: "Basic qualifications match"},
	}

	NewPrinter(&buf).PrintMatches("JOB MATCHES", matches)
	output := buf.String()

	assert.Contains(t, output, "JOB MATCHES")
	assert.Contains(t, output, "#1  Backend Engineer")
	assert.Contains(t, output, "0.62")
	assert.Contains(t, output, "python, sql")
	assert.Contains(t, output, "Gaps: fastapi")
	assert.Contains(t, output, "Basic qualifications match")
}

func TestPrintInterviewResult(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		var buf bytes.Buffer
		session := &types.InterviewSession{
			Status: types.SessionCompleted,
			Result: &types.InterviewResult{
				Grade:             "B+",
				OverallScore:      82.5,
				AccuracyRate:      75,
				TotalQuestions:    4,
				AnsweredQuestions: 4,
				Recommendations: types.Recommendations{
					Strengths: []string{"Strong understanding of key concepts"},
				},
			},
		}
		NewPrinter(&buf).PrintInterviewResult(session)
		assert.Contains(t, buf.String(), "Grade:    B+")
		assert.Contains(t, buf.String(), "82.50%")
		assert.Contains(t, buf.String(), "Answered: 4/4")
	})

	t.Run("failed", func(t *testing.T) {
		var buf bytes.Buffer
		session := &types.InterviewSession{Status: types.SessionFailed, FailureReason: "oracle unavailable"}
		NewPrinter(&buf).PrintInterviewResult(session)
		assert.Contains(t, buf.String(), "Status: failed")
		assert.Contains(t, buf.String(), "oracle unavailable")
	})
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

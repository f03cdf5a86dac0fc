package analysis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/types"
)

var fixedNow = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func sampleProfile() *types.CandidateProfile {
	p := types.NewCandidateProfile()
	p.PersonalInfo.Name = "Jane Doe"
	p.Skills = []string{
		"Python", "Go", "JavaScript", "React", "AWS", "Docker", "Kubernetes",
		"Machine Learning", "SQL", "Communication", "Leadership",
	}
	p.Experience = []types.Experience{
		{
			Title:       "Senior Software Engineer",
			Company:     "Acme Payments",
			StartDate:   "Jan 2021",
			EndDate:     "Present",
			Description: "Led a team of 5 engineers and mentored juniors. Delivered a payment and banking platform and improved latency by 40%.",
		},
		{
			Title:       "Software Engineer",
			Company:     "Beta Health",
			StartDate:   "Jun 2018",
			EndDate:     "Dec 2020",
			Description: "Developed hospital scheduling services.",
		},
	}
	p.Education = []types.Education{
		{Degree: "Master of Science", Field: "Computer Science", Institution: "Stanford University"},
		{Degree: "B.Sc Computer Science", Institution: "MIT"},
	}
	return p
}

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(nil).WithClock(func() time.Time { return fixedNow })
}

func TestAnalyze_FullProfile(t *testing.T) {
	insights := newTestAnalyzer().Analyze(context.Background(), sampleProfile())

	assert.Equal(t, "senior", insights.SeniorityLevel)
	assert.Equal(t, "ascending", insights.Trajectory.Progression)
	assert.Equal(t, "medium", insights.Trajectory.RoleDiversity)
	assert.Equal(t, "fintech", insights.Trajectory.IndustryFocus)
	assert.InDelta(t, 0.7, insights.Trajectory.TrajectoryScore, 1e-9)
	assert.InDelta(t, 7.9, insights.Trajectory.YearsExperience, 0.1)

	assert.Equal(t, 11, insights.Skills.TotalSkills)
	assert.Equal(t, []string{"python", "go", "javascript"}, insights.Skills.Categories["programming"])
	assert.Equal(t, []string{"cloud_devops", "programming", "soft_skills"}, insights.Skills.CoreCompetencies)
	assert.Equal(t, []string{"react", "docker", "kubernetes", "machine learning"}, insights.Skills.EmergingSkills)
	assert.InDelta(t, 1.0, insights.Skills.MarketabilityScore, 1e-9)

	assert.Equal(t, 2, insights.Experience.TotalPositions)
	assert.Equal(t, 2, insights.Experience.LeadershipIndicators)
	assert.InDelta(t, 3.0/24.0, insights.Experience.AchievementDensity, 1e-4)
	assert.True(t, insights.Experience.ResponsibilityGrowth)
	assert.InDelta(t, 1.0, insights.Experience.QualityScore, 1e-9)

	assert.Equal(t, "master", insights.Education.HighestLevel)
	assert.Equal(t, "high", insights.Education.FieldRelevance)
	assert.True(t, insights.Education.ContinuousLearning)
	assert.InDelta(t, 0.9, insights.Education.EducationScore, 1e-9)

	assert.InDelta(t, 0.98, insights.OverallScore, 1e-9)
	assert.Len(t, insights.Strengths, 6)
	assert.Equal(t, []string{"Continue learning and staying updated with industry trends"}, insights.ImprovementAreas)
	assert.Equal(t, []string{
		"Pursue Cloud Solutions Architect or DevOps Team Lead positions",
		"Leverage your knowledge of emerging technologies (react, docker, kubernetes) for roles in innovative startups or R&D divisions",
		"Develop your leadership skills further to qualify for senior technical or management positions",
		"Your advanced degree positions you well for specialized roles in research, consulting, or senior technical positions at top-tier companies",
		"Your skill set is highly marketable - consider opportunities at high-growth companies for maximum career acceleration",
	}, insights.CareerRecommendations)
}

func TestAnalyze_DoesNotMutateProfile(t *testing.T) {
	profile := sampleProfile()
	before, err := json.Marshal(profile)
	require.NoError(t, err)

	newTestAnalyzer().Analyze(context.Background(), profile)

	after, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestAnalyze_EmptyProfile(t *testing.T) {
	insights := newTestAnalyzer().Analyze(context.Background(), types.NewCandidateProfile())

	assert.Equal(t, "entry", insights.SeniorityLevel)
	assert.Equal(t, "generalist", insights.Trajectory.IndustryFocus)
	assert.InDelta(t, 0.5, insights.Skills.MarketabilityScore, 1e-9)
	assert.InDelta(t, 0.5, insights.Experience.QualityScore, 1e-9)
	assert.Equal(t, "none", insights.Education.HighestLevel)
	assert.InDelta(t, 0.3, insights.Education.EducationScore, 1e-9)
	// 0.5*0.4 + 0.5*0.4 + 0.3*0.2
	assert.InDelta(t, 0.46, insights.OverallScore, 1e-9)
	assert.Equal(t, []string{"Solid foundation for career growth"}, insights.Strengths)
	assert.Empty(t, insights.Personality.DominantTraits)
	assert.NotEmpty(t, insights.CareerRecommendations)
}

func TestSeniorityOf(t *testing.T) {
	a := newTestAnalyzer()
	tests := []struct {
		title string
		want  string
	}{
		{"Software Engineer", "entry"},
		{"Software Engineering Intern", "junior"},
		{"Senior Associate", "senior"},
		{"Team Lead", "senior"},
		{"VP of Engineering", "executive"},
		{"Head of Data", "executive"},
		{"Mid Level Developer", "mid"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, a.SeniorityOf(tt.title))
		})
	}
}

func TestSeniority_HighestAcrossJobs(t *testing.T) {
	p := types.NewCandidateProfile()
	p.Experience = []types.Experience{
		{Title: "Junior Developer"},
		{Title: "Director of Engineering"},
		{Title: "Senior Developer"},
	}
	insights := newTestAnalyzer().Analyze(context.Background(), p)
	assert.Equal(t, "executive", insights.SeniorityLevel)
	assert.Equal(t, 3, insights.Trajectory.DistinctLevels)
	assert.Equal(t, "high", insights.Trajectory.RoleDiversity)
	assert.InDelta(t, 0.8, insights.Trajectory.TrajectoryScore, 1e-9)
}

func TestCategorizeSkills(t *testing.T) {
	a := newTestAnalyzer()
	got := a.CategorizeSkills([]string{"Google Sheets", "Go", "PostgreSQL", "Email Marketing"})

	assert.Equal(t, []string{"go"}, got["programming"])
	assert.Equal(t, []string{"postgresql"}, got["databases"])
	_, hasBlockchain := got["blockchain"]
	assert.False(t, hasBlockchain)
}

func TestMarketability_Bonuses(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		want   float64
	}{
		{"no skills", nil, 0.5},
		{"single category no bonus", []string{"Excel"}, 0.5},
		{"emerging only", []string{"Docker"}, 0.7},
		{"three programming languages", []string{"Python", "Java", "Rust"}, 0.6},
		{"diverse categories", []string{"Python", "SQL", "Terraform"}, 0.7},
		{"all bonuses clamp", []string{"Python", "Java", "Rust", "SQL", "Kubernetes"}, 1.0},
	}
	a := newTestAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := a.skillInsights(tt.skills, "")
			assert.InDelta(t, tt.want, insights.MarketabilityScore, 1e-9)
		})
	}
}

func TestEducationLevelOf(t *testing.T) {
	a := newTestAnalyzer()
	tests := []struct {
		degree string
		want   string
	}{
		{"Bachelor of Science", "bachelor"},
		{"B.Tech", "bachelor"},
		{"MBA", "master"},
		{"Ph.D in Physics", "phd"},
		{"High School Diploma", "high_school"},
		{"Master of Business Administration", "master"},
		{"Certificate in Pottery", ""},
	}
	for _, tt := range tests {
		t.Run(tt.degree, func(t *testing.T) {
			assert.Equal(t, tt.want, a.EducationLevelOf(tt.degree))
		})
	}
}

func TestPersonality_DominantTraits(t *testing.T) {
	a := newTestAnalyzer()
	got := a.personality("analytical and logical thinker, a creative team player, systematic")

	assert.Equal(t, []string{"analytical", "collaborative", "creative"}, got.DominantTraits)
	assert.Greater(t, got.Traits["analytical"], got.Traits["creative"])
	assert.Zero(t, got.Traits["adaptive"])
}

func TestAnalyzer_UsesConfigWeights(t *testing.T) {
	cfg := Merge(DefaultConfig(), &AnalysisConfig{
		Weights: map[string]float64{WeightSkill: 1, WeightExperience: 0, WeightEducation: 0},
	})
	insights := NewAnalyzer(cfg).Analyze(context.Background(), types.NewCandidateProfile())
	assert.InDelta(t, 0.5, insights.OverallScore, 1e-9)
}

func TestReport(t *testing.T) {
	report := Report(newTestAnalyzer().Analyze(context.Background(), sampleProfile()))

	assert.Contains(t, report, "Overall Profile Score: 98.0%")
	assert.Contains(t, report, "Seniority Level: Senior")
	assert.Contains(t, report, "Industry Focus: Fintech")
	assert.Contains(t, report, "Core Competencies: cloud_devops, programming, soft_skills")
	assert.Contains(t, report, "Education Level: Master")
	assert.Empty(t, Report(nil))
}

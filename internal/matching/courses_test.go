package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/types"
)

func cloudProfile() *types.CandidateProfile {
	p := types.NewCandidateProfile()
	p.Skills = []string{"Docker", "Kubernetes", "AWS", "Terraform", "Python"}
	p.Experience = []types.Experience{
		{Title: "Cloud Engineer", StartDate: "2020-01", EndDate: "2023-01"},
	}
	return p
}

func azureCourse() types.Opportunity {
	return types.Opportunity{
		ID:          "c-azure",
		Kind:        types.KindCourse,
		Title:       "Azure DevOps Pipelines",
		Description: "Learn ci/cd with Jenkins and Azure.",
		Difficulty:  "intermediate",
	}
}

func TestBuildLearningProfile(t *testing.T) {
	lp := BuildLearningProfile(Summarize(cloudProfile(), fixedNow))

	assert.Equal(t, LevelMid, lp.ExperienceLevel)
	assert.Equal(t, []string{"cloud_computing", "devops"}, lp.CareerFocus)
	assert.Equal(t, []string{
		"ansible", "azure", "bash", "ci/cd", "cloud architecture", "cloud security", "devops",
		"gcp", "git", "infrastructure as code", "jenkins", "linux", "microservices", "monitoring", "serverless",
	}, lp.SkillGaps)
	assert.Equal(t, []string{"advanced concepts", "cloud computing", "devops", "leadership", "system design"}, lp.Priorities)
	assert.Contains(t, lp.TargetRoles, "devops_engineer")
	assert.NotContains(t, lp.TargetRoles, "data_analyst")
}

func TestExperienceLevel(t *testing.T) {
	assert.Equal(t, LevelEntry, ExperienceLevel(0))
	assert.Equal(t, LevelEntry, ExperienceLevel(1.9))
	assert.Equal(t, LevelMid, ExperienceLevel(2))
	assert.Equal(t, LevelSenior, ExperienceLevel(5))
}

func TestCourseScore(t *testing.T) {
	r := NewCourseRecommender(WithCourseClock(fixedClock))
	lp := BuildLearningProfile(Summarize(cloudProfile(), fixedNow))

	result := r.Score(lp, azureCourse())

	assert.Equal(t, types.KindCourse, result.Kind)
	assert.InDelta(t, 4.0/15.0, result.Breakdown[ComponentGapCoverage], 1e-9)
	assert.InDelta(t, 0.5+3.0/24.0+3.0/28.0, result.Breakdown[ComponentCareerAlignment], 1e-9)
	assert.InDelta(t, 0.3, result.Breakdown[ComponentLearningPriority], 1e-9)
	assert.InDelta(t, 1.0, result.Breakdown[ComponentExperienceFit], 1e-9)
	assert.InDelta(t, 0.523, result.Score, 1e-3)

	assert.Equal(t, []string{"azure", "ci/cd", "devops", "jenkins"}, result.SkillGaps)
	assert.Empty(t, result.MatchingSkills)
	assert.Equal(t, "Build modern cloud architecture skills; Advance to senior-level responsibilities; Improve infrastructure and deployment skills", result.CareerImpact)
	assert.Equal(t, result.CareerImpact, result.Reason)
}

func TestCourseRecommend_FloorAndKindFilter(t *testing.T) {
	r := NewCourseRecommender(WithCourseClock(fixedClock), WithCourseWorkers(1))
	painting := types.Opportunity{
		ID:          "c-paint",
		Kind:        types.KindCourse,
		Title:       "Watercolor Painting",
		Description: "Brush techniques",
		Difficulty:  "expert",
	}
	job := fastAPIJob()

	results, err := r.Recommend(context.Background(), cloudProfile(), []types.Opportunity{painting, job, azureCourse()}, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c-azure", results[0].OpportunityID)
}

func TestCourseCategory(t *testing.T) {
	tests := []struct {
		name   string
		course types.Opportunity
		want   string
	}{
		{"declared wins", types.Opportunity{Title: "Intro to AWS", Category: "Cloud"}, "cloud"},
		{"programming keywords", types.Opportunity{Title: "Software Craftsmanship"}, "programming"},
		{"data keywords", types.Opportunity{Title: "Applied Statistics"}, "data science"},
		{"security", types.Opportunity{Title: "Ethical Hacking Bootcamp"}, "cybersecurity"},
		{"nothing matches", types.Opportunity{Title: "Pottery"}, "general"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CourseCategory(tt.course))
		})
	}
}

func TestExperienceFit(t *testing.T) {
	tests := []struct {
		level      string
		difficulty string
		want       float64
	}{
		{LevelMid, "", 0.7},
		{LevelMid, "Intermediate", 1},
		{LevelEntry, "intermediate", 0.8},
		{LevelEntry, "advanced", 0.5},
		{LevelEntry, "expert", 0.2},
		{LevelSenior, "unknown", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.difficulty, func(t *testing.T) {
			assert.InDelta(t, tt.want, experienceFit(tt.level, tt.difficulty), 1e-9)
		})
	}
}

func TestCareerImpact_EntryLevelNoFocus(t *testing.T) {
	assert.Equal(t, "Strengthen technical expertise; Build foundational skills for career growth",
		careerImpact("web development", nil, LevelEntry))
}

func TestGapCoverage_NoGapsIsNeutral(t *testing.T) {
	assert.InDelta(t, 0.3, gapCoverage(nil, []string{"python"}), 1e-9)
	assert.InDelta(t, 0.5, careerAlignment(nil, nil, "general"), 1e-9)
	assert.InDelta(t, 0.5, priorityMatch(nil, nil, "general"), 1e-9)
}

package matching

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/talent-matcher/internal/types"
)

// JobRecommender ranks job opportunities for a candidate
type JobRecommender struct {
	weights JobWeights
	workers int
	now     func() time.Time
}

// JobOption configures a JobRecommender
type JobOption func(*JobRecommender)

// WithJobWeights replaces the default job weights
func WithJobWeights(w JobWeights) JobOption {
	return func(r *JobRecommender) { r.weights = w }
}

// WithJobWorkers bounds how many jobs are scored concurrently
func WithJobWorkers(n int) JobOption {
	return func(r *JobRecommender) { r.workers = n }
}

// WithJobClock fixes the time used to close open-ended positions
func WithJobClock(now func() time.Time) JobOption {
	return func(r *JobRecommender) { r.now = now }
}

// NewJobRecommender builds a recommender with the default weights
func NewJobRecommender(opts ...JobOption) *JobRecommender {
	r := &JobRecommender{
		weights: DefaultJobWeights(),
		workers: defaultWorkers,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend scores every job in jobs and returns the best limit results.
// Non-job opportunities are ignored. limit <= 0 means DefaultJobLimit.
func (r *JobRecommender) Recommend(ctx context.Context, profile *types.CandidateProfile, jobs []types.Opportunity, limit int) ([]types.MatchResult, error) {
	if limit <= 0 {
		limit = DefaultJobLimit
	}
	candidate := Summarize(profile, r.now())
	return rankOpportunities(ctx, types.KindJob, jobs, r.workers, limit, func(opp types.Opportunity) (types.MatchResult, bool) {
		if opp.Kind != types.KindJob {
			return types.MatchResult{}, false
		}
		return r.Score(candidate, opp), true
	})
}

// Score computes the weighted job score and its explanation
func (r *JobRecommender) Score(candidate *CandidateSummary, job types.Opportunity) types.MatchResult {
	req := ParseRequirements(job)

	skills := MatchSkills(candidate.Skills, req.Skills)
	breakdown := map[string]float64{
		ComponentSkills:     skills.Score,
		ComponentExperience: ExperienceMatch(candidate.ExperienceYears, req.MinExperience, req.MaxExperience),
		ComponentTechnology: TechnologyMatch(candidate.Technologies, req.Technologies),
		ComponentText:       TextSimilarity(candidate.Narrative, jobText(job)),
		ComponentEducation:  EducationMatch(candidate.EducationLevel, req.EducationLevel),
	}

	w := r.weights
	score := breakdown[ComponentSkills]*w.Skills +
		breakdown[ComponentExperience]*w.Experience +
		breakdown[ComponentTechnology]*w.Technology +
		breakdown[ComponentText]*w.Text +
		breakdown[ComponentEducation]*w.Education

	return types.MatchResult{
		OpportunityID:  job.ID,
		Title:          job.Title,
		Kind:           types.KindJob,
		Score:          clamp01(score),
		MatchingSkills: skills.Matching,
		SkillGaps:      skills.Gaps,
		Reason:         jobReason(breakdown, len(skills.Matching)),
		Breakdown:      breakdown,
	}
}

// jobText is the posting prose compared against the candidate narrative
func jobText(job types.Opportunity) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{job.Responsibilities, job.Description, job.Title} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

package analysis

import (
	"context"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	baseMarketability    = 0.5
	baseTrajectoryScore  = 0.5
	baseExperienceScore  = 0.5
	baseEducationScore   = 0.3
	yearsPerPositionHint = 1.5
	maxRecommendations   = 6
	maxCoreCompetencies  = 3
	maxDominantTraits    = 3
)

// Analyzer computes insights from completed profiles. It holds an immutable
// config and is safe for concurrent use.
type Analyzer struct {
	cfg *AnalysisConfig
	now func() time.Time
}

// NewAnalyzer builds an analyzer over cfg, or the defaults when cfg is nil
func NewAnalyzer(cfg *AnalysisConfig) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Analyzer{cfg: cfg, now: time.Now}
}

// WithClock returns a copy that uses now for open-ended date spans
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	return &Analyzer{cfg: a.cfg, now: now}
}

// Config returns the configuration this analyzer was built with
func (a *Analyzer) Config() *AnalysisConfig {
	return a.cfg
}

// Analyze derives the full insight set. The profile is only read.
func (a *Analyzer) Analyze(ctx context.Context, profile *types.CandidateProfile) *types.CandidateInsights {
	if profile == nil {
		profile = types.NewCandidateProfile()
	}

	allText := strings.ToLower(profile.AllText())

	trajectory := a.careerTrajectory(profile)
	skills := a.skillInsights(profile.Skills, allText)
	experience := a.experienceInsights(profile.Experience)
	education := a.educationInsights(profile.Education, profile.Certifications)
	personality := a.personality(allText)

	insights := &types.CandidateInsights{
		SeniorityLevel:        trajectory.SeniorityLevel,
		Trajectory:            trajectory,
		Skills:                skills,
		Experience:            experience,
		Education:             education,
		Personality:           personality,
		OverallScore:          a.overallScore(skills, experience, education),
		Strengths:             a.strengths(skills, experience),
		ImprovementAreas:      a.improvementAreas(skills, trajectory),
		CareerRecommendations: a.recommendations(skills, experience, education),
	}

	observability.LoggerFromContext(ctx).Debug("profile analyzed",
		"seniority", insights.SeniorityLevel,
		"overall_score", insights.OverallScore,
		"core_competencies", skills.CoreCompetencies)
	return insights
}

// SeniorityOf returns the highest level whose indicators appear in title
func (a *Analyzer) SeniorityOf(title string) string {
	title = strings.ToLower(title)
	levels := orderedKeys(a.cfg.SeniorityIndicators, seniorityOrder)
	for i := len(levels) - 1; i >= 0; i-- {
		if containsAnyKeyword(title, a.cfg.SeniorityIndicators[levels[i]]) {
			return levels[i]
		}
	}
	return "entry"
}

func seniorityRank(level string) int {
	if idx := slices.Index(seniorityOrder, level); idx >= 0 {
		return idx
	}
	return 0
}

func (a *Analyzer) careerTrajectory(profile *types.CandidateProfile) types.CareerTrajectory {
	trajectory := types.CareerTrajectory{
		SeniorityLevel:  "entry",
		Progression:     "stable",
		IndustryFocus:   "generalist",
		RoleDiversity:   "low",
		TrajectoryScore: baseTrajectoryScore,
	}
	if len(profile.Experience) == 0 {
		return trajectory
	}

	levels := make(map[string]bool)
	titles := make(map[string]bool)
	for _, exp := range profile.Experience {
		level := a.SeniorityOf(exp.Title)
		levels[level] = true
		if seniorityRank(level) > seniorityRank(trajectory.SeniorityLevel) {
			trajectory.SeniorityLevel = level
		}
		titles[strings.ToLower(strings.TrimSpace(exp.Title))] = true
	}
	trajectory.DistinctLevels = len(levels)
	trajectory.UniqueRoleTitles = len(titles)

	if len(levels) > 1 {
		trajectory.Progression = "ascending"
		trajectory.TrajectoryScore += 0.2
	}
	switch {
	case len(titles) > 2:
		trajectory.RoleDiversity = "high"
		trajectory.TrajectoryScore += 0.1
	case len(titles) > 1:
		trajectory.RoleDiversity = "medium"
	}

	trajectory.IndustryFocus = a.industryFocus(profile.Experience)
	trajectory.YearsExperience = a.estimateYears(profile.Experience)
	trajectory.TrajectoryScore = round2(math.Min(trajectory.TrajectoryScore, 1.0))
	return trajectory
}

// industryFocus returns the industry with the most keyword hits across
// positions; ties go to the alphabetically first industry.
func (a *Analyzer) industryFocus(experience []types.Experience) string {
	counts := make(map[string]int)
	for _, exp := range experience {
		text := strings.ToLower(exp.Company + " " + exp.Title + " " + exp.Description)
		for industry, keywords := range a.cfg.IndustryKeywords {
			counts[industry] += countKeywords(text, keywords)
		}
	}

	best, bestCount := "generalist", 0
	for _, industry := range sortedKeys(counts) {
		if counts[industry] > bestCount {
			best, bestCount = industry, counts[industry]
		}
	}
	return best
}

// estimateYears sums dated spans and falls back to a per-position estimate
// for positions without a parseable start date.
func (a *Analyzer) estimateYears(experience []types.Experience) float64 {
	now := a.now()
	total := 0.0
	for _, exp := range experience {
		if years, ok := exp.YearsSpanned(now); ok {
			total += years
		} else {
			total += yearsPerPositionHint
		}
	}
	return round2(total)
}

func (a *Analyzer) skillInsights(skills []string, allText string) types.SkillInsights {
	insights := types.SkillInsights{
		Categories:         map[string][]string{},
		EmergingSkills:     []string{},
		CoreCompetencies:   []string{},
		MarketabilityScore: baseMarketability,
	}
	if len(skills) == 0 {
		return insights
	}
	insights.TotalSkills = len(skills)

	lowered := make([]string, 0, len(skills))
	for _, s := range skills {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(s)))
	}

	insights.Categories = a.CategorizeSkills(skills)

	if wordCount := len(strings.Fields(allText)); wordCount > 0 {
		insights.SkillDensity = round4(float64(len(skills)) / float64(wordCount))
	}

	categories := sortedKeys(insights.Categories)
	sort.SliceStable(categories, func(i, j int) bool {
		return len(insights.Categories[categories[i]]) > len(insights.Categories[categories[j]])
	})
	if len(categories) > maxCoreCompetencies {
		categories = categories[:maxCoreCompetencies]
	}
	insights.CoreCompetencies = categories

	for _, skill := range lowered {
		if containsAnyKeyword(skill, a.cfg.EmergingSkills) {
			insights.EmergingSkills = append(insights.EmergingSkills, skill)
		}
	}

	insights.MarketabilityScore = a.marketability(insights)
	return insights
}

// CategorizeSkills assigns each skill to every category whose keywords it contains
func (a *Analyzer) CategorizeSkills(skills []string) map[string][]string {
	out := make(map[string][]string)
	for _, category := range sortedKeys(a.cfg.SkillCategories) {
		for _, skill := range skills {
			lowered := strings.ToLower(strings.TrimSpace(skill))
			if containsAnyKeyword(lowered, a.cfg.SkillCategories[category]) {
				out[category] = append(out[category], lowered)
			}
		}
	}
	return out
}

func (a *Analyzer) marketability(insights types.SkillInsights) float64 {
	score := baseMarketability
	if float64(len(insights.Categories)) >= a.cfg.threshold(ThresholdDiverseCategories, 3) {
		score += a.cfg.weight(WeightDiversityBonus, 0.2)
	}
	if len(insights.EmergingSkills) > 0 {
		score += a.cfg.weight(WeightEmergingBonus, 0.2)
	}
	if float64(len(insights.Categories["programming"])) >= a.cfg.threshold(ThresholdTechnicalSkills, 3) {
		score += a.cfg.weight(WeightTechnicalBonus, 0.1)
	}
	return round2(math.Min(score, 1.0))
}

func (a *Analyzer) experienceInsights(experience []types.Experience) types.ExperienceInsights {
	insights := types.ExperienceInsights{
		Diversity:    "low",
		QualityScore: baseExperienceScore,
	}
	if len(experience) == 0 {
		return insights
	}
	insights.TotalPositions = len(experience)

	switch {
	case len(experience) > 3:
		insights.Diversity = "high"
	case len(experience) > 1:
		insights.Diversity = "medium"
	}

	achievements := wordSet(a.cfg.AchievementKeywords)
	leadershipWords := wordSet(a.cfg.LeadershipKeywords)
	totalWords, achievementHits, leadershipHits := 0, 0, 0
	for _, exp := range experience {
		desc := strings.ToLower(exp.Description)
		insights.LeadershipIndicators += countKeywords(desc, a.cfg.LeadershipKeywords)

		for _, w := range words(desc) {
			totalWords++
			if achievements[w] {
				achievementHits++
			}
			if leadershipWords[w] {
				leadershipHits++
			}
		}
	}
	if totalWords > 0 {
		insights.AchievementDensity = round4(float64(achievementHits) / float64(totalWords))
		insights.LeadershipDensity = round4(float64(leadershipHits) / float64(totalWords))
	}

	// experience is newest first after validation
	if len(experience) >= 2 {
		newest := countKeywords(strings.ToLower(experience[0].Description), a.cfg.LeadershipKeywords)
		oldest := countKeywords(strings.ToLower(experience[len(experience)-1].Description), a.cfg.LeadershipKeywords)
		insights.ResponsibilityGrowth = newest > oldest
	}

	score := baseExperienceScore
	if insights.LeadershipIndicators > 0 {
		score += 0.2
	}
	if insights.AchievementDensity > a.cfg.threshold(ThresholdAchievementDensity, 0.05) {
		score += 0.2
	}
	if insights.ResponsibilityGrowth {
		score += 0.1
	}
	insights.QualityScore = round2(math.Min(score, 1.0))
	return insights
}

func (a *Analyzer) educationInsights(education []types.Education, certs []types.Certification) types.EducationInsights {
	insights := types.EducationInsights{
		HighestLevel:       "none",
		FieldRelevance:     "low",
		CertificationCount: len(certs),
		ContinuousLearning: len(certs) > 0,
		EducationScore:     baseEducationScore,
	}
	if len(education) == 0 && len(certs) == 0 {
		return insights
	}

	highest := -1
	for _, edu := range education {
		if level := a.EducationLevelOf(edu.Degree); level != "" {
			if rank := slices.Index(educationOrder, level); rank > highest {
				highest = rank
				insights.HighestLevel = level
			} else if highest < 0 && insights.HighestLevel == "none" {
				insights.HighestLevel = level
			}
		}
		if containsAnyKeyword(strings.ToLower(edu.Field), a.cfg.RelevantFields) {
			insights.FieldRelevance = "high"
		}
	}
	if len(education) > 1 {
		insights.ContinuousLearning = true
	}

	score := baseEducationScore
	switch insights.HighestLevel {
	case "bachelor":
		score += 0.2
	case "master":
		score += 0.3
	case "phd":
		score += 0.4
	}
	if insights.FieldRelevance == "high" {
		score += 0.2
	}
	if insights.ContinuousLearning {
		score += 0.1
	}
	insights.EducationScore = round2(math.Min(score, 1.0))
	return insights
}

// EducationLevelOf returns the first configured level, lowest first, whose
// keywords appear in degree, or "" when none do.
func (a *Analyzer) EducationLevelOf(degree string) string {
	degree = strings.ToLower(degree)
	for _, level := range orderedKeys(a.cfg.EducationLevels, educationOrder) {
		if containsAnyKeyword(degree, a.cfg.EducationLevels[level]) {
			return level
		}
	}
	return ""
}

func (a *Analyzer) personality(allText string) types.PersonalityIndicators {
	indicators := types.PersonalityIndicators{
		Traits:         make(map[string]float64, len(a.cfg.PersonalityTraits)),
		DominantTraits: []string{},
	}
	tokens := words(allText)
	for _, trait := range sortedKeys(a.cfg.PersonalityTraits) {
		indicators.Traits[trait] = 0
	}
	if len(tokens) == 0 {
		return indicators
	}

	for trait, keywords := range a.cfg.PersonalityTraits {
		count := 0
		for _, kw := range keywords {
			kw = strings.ToLower(kw)
			if strings.Contains(kw, " ") {
				count += strings.Count(allText, kw)
				continue
			}
			for _, token := range tokens {
				if containsKeyword(token, kw) {
					count++
				}
			}
		}
		indicators.Traits[trait] = round4(float64(count) / float64(len(tokens)))
	}

	traits := sortedKeys(indicators.Traits)
	sort.SliceStable(traits, func(i, j int) bool {
		return indicators.Traits[traits[i]] > indicators.Traits[traits[j]]
	})
	for _, trait := range traits {
		if len(indicators.DominantTraits) == maxDominantTraits || indicators.Traits[trait] <= 0 {
			break
		}
		indicators.DominantTraits = append(indicators.DominantTraits, trait)
	}
	return indicators
}

func (a *Analyzer) overallScore(skills types.SkillInsights, exp types.ExperienceInsights, edu types.EducationInsights) float64 {
	score := skills.MarketabilityScore*a.cfg.weight(WeightSkill, 0.4) +
		exp.QualityScore*a.cfg.weight(WeightExperience, 0.4) +
		edu.EducationScore*a.cfg.weight(WeightEducation, 0.2)
	return round2(math.Min(math.Max(score, 0), 1))
}

func (a *Analyzer) strengths(skills types.SkillInsights, exp types.ExperienceInsights) []string {
	var out []string
	if float64(skills.TotalSkills) > a.cfg.threshold(ThresholdDiverseSkillSetCount, 10) {
		out = append(out, "Diverse technical skill set")
	}
	if skills.MarketabilityScore > a.cfg.threshold(ThresholdHighMarketability, 0.7) {
		out = append(out, "High market demand skills")
	}
	if len(skills.EmergingSkills) > 0 {
		out = append(out, "Up-to-date with emerging technologies")
	}
	if exp.LeadershipIndicators > 0 {
		out = append(out, "Demonstrated leadership capabilities")
	}
	if exp.AchievementDensity > a.cfg.threshold(ThresholdAchievementDensity, 0.05) {
		out = append(out, "Strong track record of achievements")
	}
	if exp.ResponsibilityGrowth {
		out = append(out, "Clear career progression")
	}
	if len(out) == 0 {
		out = append(out, "Solid foundation for career growth")
	}
	return out
}

func (a *Analyzer) improvementAreas(skills types.SkillInsights, trajectory types.CareerTrajectory) []string {
	var out []string
	if len(skills.Categories["soft_skills"]) < 2 {
		out = append(out, "Develop and highlight soft skills")
	}
	if float64(skills.TotalSkills) < a.cfg.threshold(ThresholdNarrowSkillSetCount, 8) {
		out = append(out, "Expand technical skill set")
	}
	if trajectory.RoleDiversity == "low" {
		out = append(out, "Gain experience in diverse roles or projects")
	}
	if trajectory.TrajectoryScore < a.cfg.threshold(ThresholdLowTrajectory, 0.6) {
		out = append(out, "Focus on career progression and skill advancement")
	}
	if len(out) == 0 {
		out = append(out, "Continue learning and staying updated with industry trends")
	}
	return out
}

func (a *Analyzer) recommendations(skills types.SkillInsights, exp types.ExperienceInsights, edu types.EducationInsights) []string {
	core := skills.CoreCompetencies
	var out []string

	if slices.Contains(core, "data_science") || slices.Contains(core, "ai_ml") {
		if slices.Contains(core, "programming") {
			out = append(out, "Consider Machine Learning Engineer or AI Engineer roles with your combined programming and data science skills")
		} else {
			out = append(out, "Explore Data Scientist or ML Research positions, consider strengthening programming skills")
		}
	}
	if slices.Contains(core, "programming") && slices.Contains(core, "web_development") {
		out = append(out, "Target Senior Full-Stack Developer or Solution Architect roles in growing tech companies")
	}
	if slices.Contains(core, "cloud_devops") {
		if exp.LeadershipIndicators > 1 {
			out = append(out, "Pursue Cloud Solutions Architect or DevOps Team Lead positions")
		} else {
			out = append(out, "Focus on Cloud Engineer or Site Reliability Engineer roles")
		}
	}
	if len(skills.EmergingSkills) > 0 {
		top := skills.EmergingSkills[:min(3, len(skills.EmergingSkills))]
		out = append(out, "Leverage your knowledge of emerging technologies ("+strings.Join(top, ", ")+") for roles in innovative startups or R&D divisions")
	}

	switch {
	case exp.LeadershipIndicators > 2 && exp.QualityScore > 0.6:
		out = append(out, "Consider transitioning to Engineering Manager or Technical Lead roles to leverage your proven leadership experience")
	case exp.LeadershipIndicators > 0:
		out = append(out, "Develop your leadership skills further to qualify for senior technical or management positions")
	}

	switch edu.HighestLevel {
	case "master":
		out = append(out, "Your advanced degree positions you well for specialized roles in research, consulting, or senior technical positions at top-tier companies")
	case "phd":
		out = append(out, "Consider research scientist, principal engineer, or CTO track positions that leverage your doctoral expertise")
	}

	switch {
	case skills.MarketabilityScore > a.cfg.threshold(ThresholdHighMarketability, 0.7):
		out = append(out, "Your skill set is highly marketable - consider opportunities at high-growth companies for maximum career acceleration")
	case skills.MarketabilityScore > baseMarketability:
		out = append(out, "Focus on building expertise in 1-2 core areas to increase your competitive advantage in the job market")
	default:
		out = append(out, "Invest in developing in-demand skills like cloud technologies, AI/ML, or modern web frameworks to improve marketability")
	}

	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out
}

func wordSet(keywords []string) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		if !strings.Contains(kw, " ") {
			set[strings.ToLower(kw)] = true
		}
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

package matching

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Experience levels used for course calibration
const (
	LevelEntry  = "entry"
	LevelMid    = "mid"
	LevelSenior = "senior"
)

// careerFocusThreshold is the share of an industry's skills a candidate must
// hold for that industry to count as a focus area
const careerFocusThreshold = 0.2

// IndustrySkills lists the skills each industry expects
var IndustrySkills = map[string][]string{
	"software_development": {
		"python", "java", "javascript", "react", "angular", "vue", "node.js",
		"sql", "mongodb", "postgresql", "git", "docker", "kubernetes",
		"aws", "azure", "gcp", "machine learning", "data structures",
		"algorithms", "system design", "agile", "scrum",
	},
	"data_science": {
		"python", "r", "sql", "machine learning", "deep learning",
		"tensorflow", "pytorch", "pandas", "numpy", "matplotlib",
		"tableau", "power bi", "hadoop", "spark", "kafka",
		"statistics", "data visualization", "big data",
	},
	"devops": {
		"docker", "kubernetes", "jenkins", "git", "aws", "azure",
		"terraform", "ansible", "linux", "bash", "python",
		"monitoring", "ci/cd", "infrastructure as code",
	},
	"cybersecurity": {
		"network security", "penetration testing", "ethical hacking",
		"cissp", "ceh", "security+", "firewall", "intrusion detection",
		"risk assessment", "compliance", "incident response",
	},
	"web_development": {
		"html", "css", "javascript", "react", "angular", "vue",
		"php", "python", "node.js", "sql", "mongodb", "git",
		"responsive design", "web accessibility", "seo",
	},
	"mobile_development": {
		"swift", "kotlin", "flutter", "react native", "xamarin",
		"ios development", "android development", "mobile ui/ux",
		"app store optimization", "mobile testing",
	},
	"cloud_computing": {
		"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
		"serverless", "microservices", "cloud architecture",
		"cloud security", "devops", "ci/cd",
	},
	"ai_ml": {
		"machine learning", "deep learning", "neural networks",
		"tensorflow", "pytorch", "python", "r", "statistics",
		"computer vision", "nlp", "reinforcement learning",
	},
}

// CareerPaths maps target roles onto the industries they draw from
var CareerPaths = map[string][]string{
	"junior_developer":     {"software_development", "web_development"},
	"senior_developer":     {"software_development", "cloud_computing", "devops"},
	"data_analyst":         {"data_science", "ai_ml"},
	"data_scientist":       {"data_science", "ai_ml", "cloud_computing"},
	"devops_engineer":      {"devops", "cloud_computing", "cybersecurity"},
	"security_analyst":     {"cybersecurity", "devops"},
	"mobile_developer":     {"mobile_development", "cloud_computing"},
	"full_stack_developer": {"web_development", "software_development", "cloud_computing"},
}

var courseCategoryKeywords = []struct {
	category string
	keywords []string
}{
	{"programming", []string{"programming", "coding", "software", "development"}},
	{"data science", []string{"data", "analytics", "machine learning", "ai", "statistics"}},
	{"web development", []string{"web", "frontend", "backend", "html", "css", "javascript"}},
	{"cloud", []string{"cloud", "aws", "azure", "gcp", "devops"}},
	{"cybersecurity", []string{"security", "cyber", "ethical hacking", "penetration"}},
	{"mobile", []string{"mobile", "android", "ios", "app development"}},
	{"business", []string{"business", "management", "leadership", "marketing"}},
	{"design", []string{"design", "ui", "ux", "graphic"}},
}

var highDemandSkills = []string{
	"cloud computing", "machine learning", "cybersecurity",
	"devops", "data science", "mobile development",
}

var difficultyRank = map[string]int{"beginner": 1, "intermediate": 2, "advanced": 3, "expert": 4}

var levelRank = map[string]int{LevelEntry: 1, LevelMid: 2, LevelSenior: 3}

// LearningProfile is the candidate view used to score courses
type LearningProfile struct {
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experience_years"`
	ExperienceLevel string   `json:"experience_level"`
	CareerFocus     []string `json:"career_focus"`
	SkillGaps       []string `json:"skill_gaps"`
	Priorities      []string `json:"learning_priorities"`
	TargetRoles     []string `json:"target_roles"`
}

// BuildLearningProfile derives level, focus areas, gaps and priorities from a
// candidate summary
func BuildLearningProfile(candidate *CandidateSummary) *LearningProfile {
	lp := &LearningProfile{
		Skills:          lowerAll(candidate.Skills),
		ExperienceYears: candidate.ExperienceYears,
		ExperienceLevel: ExperienceLevel(candidate.ExperienceYears),
	}
	lp.CareerFocus = careerFocus(lp.Skills)
	lp.SkillGaps = skillGaps(lp.Skills, lp.CareerFocus)
	lp.Priorities = learningPriorities(lp.ExperienceLevel, lp.CareerFocus, lp.SkillGaps)
	lp.TargetRoles = targetRoles(lp.CareerFocus)
	return lp
}

// ExperienceLevel buckets years: 5 or more is senior, 2 or more mid
func ExperienceLevel(years float64) string {
	switch {
	case years >= 5:
		return LevelSenior
	case years >= 2:
		return LevelMid
	default:
		return LevelEntry
	}
}

func careerFocus(skills []string) []string {
	have := toSet(skills...)
	var focus []string
	for _, industry := range sortedIndustries() {
		required := IndustrySkills[industry]
		matches := 0
		for _, skill := range required {
			if have[skill] {
				matches++
			}
		}
		if float64(matches)/float64(len(required)) > careerFocusThreshold {
			focus = append(focus, industry)
		}
	}
	return focus
}

func skillGaps(skills, focus []string) []string {
	have := toSet(skills...)
	seen := make(map[string]bool)
	var gaps []string
	for _, industry := range focus {
		for _, skill := range IndustrySkills[industry] {
			if !have[skill] && !seen[skill] {
				seen[skill] = true
				gaps = append(gaps, skill)
			}
		}
	}
	sort.Strings(gaps)
	return gaps
}

func learningPriorities(level string, focus, gaps []string) []string {
	var priorities []string
	switch level {
	case LevelEntry:
		priorities = append(priorities, "fundamentals", "programming basics", "version control")
	case LevelMid:
		priorities = append(priorities, "advanced concepts", "system design", "leadership")
	default:
		priorities = append(priorities, "architecture", "team leadership", "emerging technologies")
	}
	for _, industry := range focus {
		priorities = append(priorities, strings.ReplaceAll(industry, "_", " "))
	}
	for _, gap := range gaps {
		if slices.Contains(highDemandSkills, gap) {
			priorities = append(priorities, gap)
		}
	}
	sort.Strings(priorities)
	return slices.Compact(priorities)
}

func targetRoles(focus []string) []string {
	var roles []string
	for role, industries := range CareerPaths {
		for _, industry := range industries {
			if slices.Contains(focus, industry) {
				roles = append(roles, role)
				break
			}
		}
	}
	sort.Strings(roles)
	return roles
}

func sortedIndustries() []string {
	industries := make([]string, 0, len(IndustrySkills))
	for industry := range IndustrySkills {
		industries = append(industries, industry)
	}
	sort.Strings(industries)
	return industries
}

// CourseRecommender ranks courses by how well they close a candidate's gaps
type CourseRecommender struct {
	weights CourseWeights
	workers int
	now     func() time.Time
}

// CourseOption configures a CourseRecommender
type CourseOption func(*CourseRecommender)

// WithCourseWeights replaces the default course weights
func WithCourseWeights(w CourseWeights) CourseOption {
	return func(r *CourseRecommender) { r.weights = w }
}

// WithCourseWorkers bounds how many courses are scored concurrently
func WithCourseWorkers(n int) CourseOption {
	return func(r *CourseRecommender) { r.workers = n }
}

// WithCourseClock fixes the time used to close open-ended positions
func WithCourseClock(now func() time.Time) CourseOption {
	return func(r *CourseRecommender) { r.now = now }
}

// NewCourseRecommender builds a recommender with the default weights
func NewCourseRecommender(opts ...CourseOption) *CourseRecommender {
	r := &CourseRecommender{
		weights: DefaultCourseWeights(),
		workers: defaultWorkers,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend scores every course in courses and returns the best limit
// results. Non-course opportunities are ignored. limit <= 0 means
// DefaultCourseLimit.
func (r *CourseRecommender) Recommend(ctx context.Context, profile *types.CandidateProfile, courses []types.Opportunity, limit int) ([]types.MatchResult, error) {
	if limit <= 0 {
		limit = DefaultCourseLimit
	}
	learner := BuildLearningProfile(Summarize(profile, r.now()))
	observability.LoggerFromContext(ctx).Debug("learning profile built",
		"level", learner.ExperienceLevel,
		"focus", learner.CareerFocus,
		"gaps", len(learner.SkillGaps),
		"target_roles", learner.TargetRoles)

	return rankOpportunities(ctx, types.KindCourse, courses, r.workers, limit, func(opp types.Opportunity) (types.MatchResult, bool) {
		if opp.Kind != types.KindCourse {
			return types.MatchResult{}, false
		}
		return r.Score(learner, opp), true
	})
}

// Score computes the weighted course relevance and its career impact
func (r *CourseRecommender) Score(learner *LearningProfile, course types.Opportunity) types.MatchResult {
	taught := CourseSkills(course)
	category := CourseCategory(course)

	breakdown := map[string]float64{
		ComponentGapCoverage:      gapCoverage(learner.SkillGaps, taught),
		ComponentCareerAlignment:  careerAlignment(learner.CareerFocus, taught, category),
		ComponentLearningPriority: priorityMatch(learner.Priorities, taught, category),
		ComponentExperienceFit:    experienceFit(learner.ExperienceLevel, course.Difficulty),
	}

	w := r.weights
	score := breakdown[ComponentGapCoverage]*w.GapCoverage +
		breakdown[ComponentCareerAlignment]*w.CareerAlignment +
		breakdown[ComponentLearningPriority]*w.LearningPriority +
		breakdown[ComponentExperienceFit]*w.ExperienceFit

	addressed := make([]string, 0)
	for _, gap := range learner.SkillGaps {
		if overlapsSkill(gap, taught) {
			addressed = append(addressed, gap)
		}
	}
	already := make([]string, 0)
	have := toSet(learner.Skills...)
	for _, skill := range taught {
		if have[skill] {
			already = append(already, skill)
		}
	}

	impact := careerImpact(category, learner.CareerFocus, learner.ExperienceLevel)
	return types.MatchResult{
		OpportunityID:  course.ID,
		Title:          course.Title,
		Kind:           types.KindCourse,
		Score:          clamp01(score),
		MatchingSkills: already,
		SkillGaps:      addressed,
		Reason:         impact,
		Breakdown:      breakdown,
		CareerImpact:   impact,
	}
}

// CourseSkills lists the known skills a course mentions plus the skills it
// declares, lower-cased and sorted
func CourseSkills(course types.Opportunity) []string {
	text := strings.ToLower(course.Title + " " + course.Description)
	found := make(map[string]bool)
	for _, industry := range sortedIndustries() {
		for _, skill := range IndustrySkills[industry] {
			if containsTerm(text, skill) {
				found[skill] = true
			}
		}
	}
	for _, skill := range lowerAll(course.RequiredSkills) {
		found[skill] = true
	}
	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

// CourseCategory is the declared category or one inferred from the title and
// description, "general" when nothing matches
func CourseCategory(course types.Opportunity) string {
	if c := strings.TrimSpace(course.Category); c != "" {
		return strings.ToLower(c)
	}
	text := strings.ToLower(course.Title + " " + course.Description)
	for _, entry := range courseCategoryKeywords {
		for _, kw := range entry.keywords {
			if containsTerm(text, kw) {
				return entry.category
			}
		}
	}
	return "general"
}

func overlapsSkill(skill string, taught []string) bool {
	for _, t := range taught {
		if strings.Contains(t, skill) || strings.Contains(skill, t) {
			return true
		}
	}
	return false
}

func gapCoverage(gaps, taught []string) float64 {
	if len(gaps) == 0 {
		return 0.3
	}
	covered := 0
	for _, gap := range gaps {
		if overlapsSkill(gap, taught) {
			covered++
		}
	}
	return clamp01(float64(covered) / float64(len(gaps)))
}

func careerAlignment(focus, taught []string, category string) float64 {
	if len(focus) == 0 {
		return 0.5
	}
	score := 0.0
	category = strings.ReplaceAll(category, "_", " ")
	taughtSet := toSet(taught...)
	for _, industry := range focus {
		area := strings.ReplaceAll(industry, "_", " ")
		if category != "" && (strings.Contains(category, area) || strings.Contains(area, category)) {
			score += 0.5
		}
		required := IndustrySkills[industry]
		matches := 0
		for _, skill := range required {
			if taughtSet[skill] {
				matches++
			}
		}
		if len(required) > 0 {
			score += float64(matches) / float64(len(required)) * 0.5
		}
	}
	return clamp01(score)
}

func priorityMatch(priorities, taught []string, category string) float64 {
	if len(priorities) == 0 {
		return 0.5
	}
	score := 0.0
	for _, priority := range priorities {
		if category != "" && strings.Contains(category, priority) {
			score += 0.5
		}
		if overlapsSkill(priority, taught) {
			score += 0.3
		}
	}
	return clamp01(score)
}

// experienceFit compares course difficulty with the candidate level. An
// unspecified difficulty is neutral.
func experienceFit(level, difficulty string) float64 {
	if strings.TrimSpace(difficulty) == "" {
		return 0.7
	}
	courseRank, ok := difficultyRank[strings.ToLower(difficulty)]
	if !ok {
		courseRank = 2
	}
	candidateRank, ok := levelRank[level]
	if !ok {
		candidateRank = 2
	}
	switch diff := abs(courseRank - candidateRank); diff {
	case 0:
		return 1
	case 1:
		return 0.8
	case 2:
		return 0.5
	default:
		return 0.2
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// careerImpact describes what the course does for the candidate, at most
// three statements
func careerImpact(category string, focus []string, level string) string {
	var impacts []string

	switch {
	case strings.Contains(category, "leadership") || strings.Contains(category, "management"):
		impacts = append(impacts, "Enhance leadership and management capabilities")
	case strings.Contains(category, "programming") || strings.Contains(category, "development"):
		impacts = append(impacts, "Strengthen technical expertise")
	case strings.Contains(category, "data"):
		impacts = append(impacts, "Develop data analysis and insights skills")
	case strings.Contains(category, "cloud"):
		impacts = append(impacts, "Build modern cloud architecture skills")
	}

	switch level {
	case LevelEntry:
		impacts = append(impacts, "Build foundational skills for career growth")
	case LevelMid:
		impacts = append(impacts, "Advance to senior-level responsibilities")
	default:
		impacts = append(impacts, "Stay current with emerging technologies")
	}

	for _, industry := range focus {
		switch industry {
		case "software_development":
			impacts = append(impacts, "Enhance software engineering practices")
		case "data_science":
			impacts = append(impacts, "Advance data science and analytics capabilities")
		case "devops":
			impacts = append(impacts, "Improve infrastructure and deployment skills")
		case "cybersecurity":
			impacts = append(impacts, "Strengthen security expertise")
		}
	}

	if len(impacts) > 3 {
		impacts = impacts[:3]
	}
	return strings.Join(impacts, "; ")
}

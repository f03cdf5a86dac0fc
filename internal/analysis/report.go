package analysis

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Report renders insights as a plain-text report
func Report(insights *types.CandidateInsights) string {
	if insights == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("CAREER INSIGHTS REPORT\n")
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "\nOverall Profile Score: %.1f%%\n", insights.OverallScore*100)

	t := insights.Trajectory
	sb.WriteString("\nCareer Trajectory:\n")
	fmt.Fprintf(&sb, "   - Seniority Level: %s\n", titleCase(t.SeniorityLevel))
	fmt.Fprintf(&sb, "   - Career Progression: %s\n", titleCase(t.Progression))
	fmt.Fprintf(&sb, "   - Industry Focus: %s\n", titleCase(t.IndustryFocus))
	fmt.Fprintf(&sb, "   - Estimated Experience: %.1f years\n", t.YearsExperience)

	s := insights.Skills
	sb.WriteString("\nSkills Analysis:\n")
	fmt.Fprintf(&sb, "   - Total Skills: %d\n", s.TotalSkills)
	fmt.Fprintf(&sb, "   - Marketability Score: %.1f%%\n", s.MarketabilityScore*100)
	fmt.Fprintf(&sb, "   - Core Competencies: %s\n", strings.Join(s.CoreCompetencies, ", "))
	if len(s.EmergingSkills) > 0 {
		fmt.Fprintf(&sb, "   - Emerging Skills: %s\n", strings.Join(s.EmergingSkills, ", "))
	}

	e := insights.Experience
	sb.WriteString("\nExperience Analysis:\n")
	fmt.Fprintf(&sb, "   - Total Positions: %d\n", e.TotalPositions)
	fmt.Fprintf(&sb, "   - Leadership Indicators: %d\n", e.LeadershipIndicators)
	fmt.Fprintf(&sb, "   - Quality Score: %.1f%%\n", e.QualityScore*100)

	edu := insights.Education
	sb.WriteString("\nEducation Analysis:\n")
	fmt.Fprintf(&sb, "   - Education Level: %s\n", titleCase(edu.HighestLevel))
	fmt.Fprintf(&sb, "   - Field Relevance: %s\n", titleCase(edu.FieldRelevance))

	if traits := insights.Personality.DominantTraits; len(traits) > 0 {
		sb.WriteString("\nDominant Personality Traits:\n")
		for _, trait := range traits {
			fmt.Fprintf(&sb, "   - %s\n", titleCase(trait))
		}
	}

	writeSection(&sb, "Key Strengths", insights.Strengths)
	writeSection(&sb, "Areas for Improvement", insights.ImprovementAreas)
	writeSection(&sb, "Career Recommendations", insights.CareerRecommendations)

	return strings.TrimRight(sb.String(), "\n")
}

func writeSection(sb *strings.Builder, title string, items []string) {
	fmt.Fprintf(sb, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "   - %s\n", item)
	}
}

// titleCase turns "cloud_devops" into "Cloud Devops"
func titleCase(s string) string {
	if s == "" {
		return "Unknown"
	}
	parts := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

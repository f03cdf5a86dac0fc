// Package observability provides logging, metrics, and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintCandidateProfile outputs a human-readable summary of an extracted profile.
func (p *Printer) PrintCandidateProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.PersonalInfo.Name))
	if profile.PersonalInfo.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.PersonalInfo.Email))
	}
	if profile.PersonalInfo.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.PersonalInfo.Location))
	}
	sb.WriteString(fmt.Sprintf("Skills: %d  Positions: %d  Degrees: %d  Projects: %d\n\n",
		len(profile.Skills), len(profile.Experience), len(profile.Education), len(profile.Projects)))

	writeList(&sb, "Skills", profile.Skills, maxItemsToShow)

	if len(profile.Experience) > 0 {
		positions := make([]string, 0, len(profile.Experience))
		for _, exp := range profile.Experience {
			positions = append(positions, fmt.Sprintf("%s @ %s (%s - %s)", exp.Title, exp.Company, exp.StartDate, exp.EndDate))
		}
		writeList(&sb, "Experience", positions, 3)
	}

	if len(profile.Education) > 0 {
		degrees := make([]string, 0, len(profile.Education))
		for _, edu := range profile.Education {
			degrees = append(degrees, strings.TrimSpace(edu.Degree+", "+edu.Institution))
		}
		writeList(&sb, "Education", degrees, 3)
	}

	p.printBox("EXTRACTED CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintProcessingErrors outputs the non-fatal errors accumulated during extraction.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProcessingErrors(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}
	if len(profile.ProcessingErrors) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO PROCESSING ERRORS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recovered from %d stage errors:\n\n", len(profile.ProcessingErrors)))
	for _, msg := range profile.ProcessingErrors {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", msg))
	}
	p.printBox("PROCESSING ERRORS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsights outputs the analyzer's headline signals.
func (p *Printer) PrintInsights(insights *types.CandidateInsights) {
	if insights == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall Score:  %.0f%%\n", insights.OverallScore*100))
	sb.WriteString(fmt.Sprintf("Seniority:      %s\n", insights.SeniorityLevel))
	sb.WriteString(fmt.Sprintf("Industry Focus: %s\n", insights.Trajectory.IndustryFocus))
	sb.WriteString(fmt.Sprintf("Marketability:  %.0f%%\n\n", insights.Skills.MarketabilityScore*100))

	writeList(&sb, "Core Competencies", insights.Skills.CoreCompetencies, 3)
	writeList(&sb, "Strengths", insights.Strengths, 3)
	writeList(&sb, "Recommendations", insights.CareerRecommendations, 3)

	p.printBox("CANDIDATE INSIGHTS", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintMatches outputs the top ranked matches with scores and explanations.
func (p *Printer) PrintMatches(title string, matches []types.MatchResult) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, match.Title))
		sb.WriteString(fmt.Sprintf("    Score: %.2f\n", match.Score))
		if len(match.MatchingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", truncate(strings.Join(match.MatchingSkills, ", "), 40)))
		}
		if len(match.SkillGaps) > 0 {
			sb.WriteString(fmt.Sprintf("    Gaps: %s\n", truncate(strings.Join(match.SkillGaps, ", "), 40)))
		}
		sb.WriteString(fmt.Sprintf("    %s\n", match.Reason))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(matches)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInterviewSession outputs the questions of a generated session.
func (p *Printer) PrintInterviewSession(session *types.InterviewSession) {
	if session == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session:    %s\n", session.ID))
	sb.WriteString(fmt.Sprintf("Domain:     %s\n", session.Domain))
	sb.WriteString(fmt.Sprintf("Difficulty: %s\n", session.Difficulty))
	sb.WriteString(fmt.Sprintf("Status:     %s\n\n", session.Status))

	questions := make([]string, 0, len(session.Questions))
	for _, q := range session.Questions {
		questions = append(questions, fmt.Sprintf("%d. %s", q.ID, q.Text))
	}
	writeList(&sb, "Questions", questions, maxItemsToShow)

	p.printBox("INTERVIEW SESSION", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintInterviewResult outputs the grade and feedback of an evaluated session.
func (p *Printer) PrintInterviewResult(session *types.InterviewSession) {
	if session == nil {
		return
	}
	if session.Result == nil {
		p.printBox("INTERVIEW RESULT", fmt.Sprintf("Status: %s\n%s", session.Status, session.FailureReason))
		return
	}

	result := session.Result
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Grade:    %s\n", result.Grade))
	sb.WriteString(fmt.Sprintf("Score:    %.2f%%\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Accuracy: %.2f%%\n", result.AccuracyRate))
	sb.WriteString(fmt.Sprintf("Answered: %d/%d\n\n", result.AnsweredQuestions, result.TotalQuestions))

	writeList(&sb, "Strengths", result.Recommendations.Strengths, 3)
	writeList(&sb, "Weaknesses", result.Recommendations.Weaknesses, 3)
	writeList(&sb, "Next Steps", result.Recommendations.Recommendations, 3)

	p.printBox("INTERVIEW RESULT", strings.TrimSuffix(sb.String(), "\n\n"))
}

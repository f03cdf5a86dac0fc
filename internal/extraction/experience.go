package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/talent-matcher/internal/document"
	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	datePart   = `(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?,?\s+\d{4}|\d{1,2}[/.]\d{4}|\d{4})`
	headerTrim = " \t|,-()•:"
)

var dateRangePattern = regexp.MustCompile(`(?i)\b(` + datePart + `)\s*(?:-|to|until)\s*(` + datePart + `|present|current|now|ongoing)\b`)

// titleSeparators split "Title at Company" style header lines, in priority order
var titleSeparators = []string{" at ", " | ", "|", " - ", " @ ", ", "}

// sectionExperience parses positions out of the EXPERIENCE section. Each
// date range marks a position; title and company come from the same line or
// from the one or two lines above it.
func sectionExperience(text string) []types.Experience {
	section := sections(text)["experience"]
	if section == "" {
		return nil
	}
	lines := strings.Split(section, "\n")

	type header struct {
		line       int
		labelStart int
		exp        types.Experience
	}
	var headers []header

	for i, line := range lines {
		loc := dateRangePattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		exp := types.Experience{
			StartDate: strings.TrimSpace(line[loc[2]:loc[3]]),
			EndDate:   normalizeEndDate(line[loc[4]:loc[5]]),
		}

		labelStart := i
		rest := strings.Trim(line[:loc[0]]+" "+line[loc[1]:], headerTrim)
		if rest != "" {
			exp.Title, exp.Company, exp.Location = splitHeader(rest)
		} else {
			floor := 0
			if len(headers) > 0 {
				floor = headers[len(headers)-1].line + 1
			}
			var labels []string
			for j := i - 1; j >= floor && len(labels) < 2; j-- {
				candidate := strings.TrimSpace(lines[j])
				if candidate == "" || document.IsBulletLine(candidate) {
					break
				}
				labels = append([]string{candidate}, labels...)
				labelStart = j
			}
			switch len(labels) {
			case 1:
				exp.Title, exp.Company, exp.Location = splitHeader(labels[0])
			case 2:
				exp.Title = strings.Trim(labels[0], headerTrim)
				exp.Company, exp.Location = splitCompany(labels[1])
			}
		}
		headers = append(headers, header{line: i, labelStart: labelStart, exp: exp})
	}

	out := make([]types.Experience, 0, len(headers))
	for k, h := range headers {
		end := len(lines)
		if k+1 < len(headers) {
			end = headers[k+1].labelStart
		}
		var description []string
		for _, line := range lines[h.line+1 : end] {
			if line = strings.TrimSpace(line); line != "" {
				description = append(description, line)
			}
		}
		h.exp.Description = strings.Join(description, "\n")
		h.exp.Technologies = dedupeSkills(matchSkillTerms(h.exp.Description))
		if h.exp.Title == "" && h.exp.Company == "" {
			continue
		}
		out = append(out, h.exp)
	}
	return out
}

// splitHeader splits "Title at Company, City" into its parts
func splitHeader(s string) (title, company, location string) {
	s = strings.Trim(s, headerTrim)
	for _, sep := range titleSeparators {
		if idx := strings.Index(s, sep); idx > 0 {
			title = strings.Trim(s[:idx], headerTrim)
			company, location = splitCompany(s[idx+len(sep):])
			return title, company, location
		}
	}
	return s, "", ""
}

// splitCompany separates a trailing ", City" or "| City" location from a company name
func splitCompany(s string) (company, location string) {
	s = strings.Trim(s, headerTrim)
	for _, sep := range []string{" | ", ", "} {
		if idx := strings.Index(s, sep); idx > 0 {
			return strings.Trim(s[:idx], headerTrim), strings.Trim(s[idx+len(sep):], headerTrim)
		}
	}
	return s, ""
}

func normalizeEndDate(value string) string {
	value = strings.TrimSpace(value)
	if types.IsPresent(value) {
		return types.PresentSentinel
	}
	return value
}

// normalizeExperience drops entries with neither title nor company and
// fills nil technology lists
func normalizeExperience(entries []types.Experience) []types.Experience {
	out := make([]types.Experience, 0, len(entries))
	for _, exp := range entries {
		exp.Title = strings.TrimSpace(exp.Title)
		exp.Company = strings.TrimSpace(exp.Company)
		if exp.Title == "" && exp.Company == "" {
			continue
		}
		exp.EndDate = normalizeEndDate(exp.EndDate)
		exp.Technologies = dedupeSkills(exp.Technologies)
		out = append(out, exp)
	}
	return out
}

func (p *Pipeline) extractExperience(ctx context.Context, r *run) {
	var strategies []Strategy[[]types.Experience]

	if r.enhanced != nil && len(r.enhanced.Experience) > 0 {
		strategies = append(strategies, Strategy[[]types.Experience]{
			Name: "enhancement",
			Try: func(context.Context) ([]types.Experience, error) {
				return normalizeExperience(r.enhanced.Experience), nil
			},
		})
	}

	if r.oracleUsable() {
		strategies = append(strategies, Strategy[[]types.Experience]{
			Name: "oracle",
			Try: func(ctx context.Context) ([]types.Experience, error) {
				var entries []types.Experience
				if err := p.askOracle(ctx, r, "extract-experience", schemas.Experience, r.in.CleanedText, &entries); err != nil {
					return nil, err
				}
				return normalizeExperience(entries), nil
			},
		})
	}

	strategies = append(strategies, Strategy[[]types.Experience]{
		Name: "section",
		Try: func(context.Context) ([]types.Experience, error) {
			return sectionExperience(r.in.CleanedText), nil
		},
	})

	entries, source := runStrategies(ctx, r, StageExperience, strategies, nonEmpty[types.Experience])
	if entries == nil {
		entries = []types.Experience{}
	}
	r.profile.Experience = entries
	r.sources[StageExperience] = source
}

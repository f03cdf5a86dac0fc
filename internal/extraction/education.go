package extraction

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/jonathan/talent-matcher/internal/types"
)

var (
	degreePattern      = regexp.MustCompile(`(?i)\b(?:bachelor(?:'s)?(?:\s+of\s+[a-z]+)?|master(?:'s)?(?:\s+of\s+[a-z]+)?|ph\.?\s?d|doctorate|doctor\s+of\s+[a-z]+|associate(?:'s)?\s+degree|b\.?\s?tech|m\.?\s?tech|b\.?\s?sc|m\.?\s?sc|b\.\s?a|m\.\s?a|b\.\s?e|m\.\s?e|b\.\s?s|m\.\s?s|mba|bba|bca|mca|b\.?\s?com|m\.?\s?com|diploma|high\s+school|higher\s+secondary|secondary\s+school)\b`)
	degreeAcronym      = regexp.MustCompile(`\b(?:BSc|MSc|BEng|MEng|BS|MS|BA|MA)\b`)
	acronymQualifier   = regexp.MustCompile(`^(?:\s+(?:in|of)\s|\s*\()`)
	acronymSubject     = regexp.MustCompile(`^\.?\s+([A-Z][A-Za-z&]+)`)
	institutionPattern = regexp.MustCompile(`(?:[A-Z][\w.&'-]*[ \t]+){0,5}(?:University|College|Institute|School|Academy|Polytechnic)(?:[ \t]+of[ \t]+[A-Z][\w&'-]*(?:[ \t]+[A-Z][\w&'-]*){0,4})?|\b(?:IIT|NIT|IIIT|MIT|UCLA|NYU|ETH)\b(?:[ \t]+[A-Z][a-z]+)?`)
	fieldPattern       = regexp.MustCompile(`(?i)\b(?:in|major:?)\s+([a-z][a-z&\s]+?)\s*(?:[,|(]|\s-\s|\s+from\b|\s+at\b|$)`)
	gradYearPattern    = regexp.MustCompile(`\b(19\d{2}|20[0-2]\d|2030)\b`)
	gpaPattern         = regexp.MustCompile(`(?i)\b(?:c?gpa|grade|score)\s*:?\s*(\d+(?:\.\d+)?(?:\s*/\s*\d+(?:\.\d+)?)?%?)|\b(\d\.\d{1,2})\s*/\s*(?:4|5|10)(?:\.0)?\b`)
	cityStatePattern   = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)*,\s*[A-Z]{2})\b`)
	educationSplit     = regexp.MustCompile(`\s*(?:[,|]|\s-\s)\s*`)
)

// educationHeaderKeywords mark a table whose first row names its columns
var educationHeaderKeywords = []string{"education", "degree", "university", "college", "school", "qualification", "academic"}

// educationColumns maps header keywords to education fields, checked in order
var educationColumns = []struct {
	field    string
	keywords []string
}{
	{"degree", []string{"degree", "qualification", "program", "course"}},
	{"field", []string{"field", "major", "specialization", "subject", "stream"}},
	{"institution", []string{"university", "college", "school", "institution", "institute", "board"}},
	{"graduation_date", []string{"year", "date", "graduation", "completion", "passed"}},
	{"gpa", []string{"gpa", "grade", "marks", "score", "cgpa", "percentage"}},
	{"location", []string{"location", "city", "place"}},
}

// acronymProducts follow "MS" in skill lists without naming a degree
var acronymProducts = map[string]bool{
	"Office": true, "Excel": true, "Word": true, "Access": true, "Project": true,
	"Teams": true, "Outlook": true, "Dynamics": true, "Azure": true, "Windows": true,
	"Visio": true, "PowerPoint": true, "SharePoint": true, "Sql": true, "SQL": true,
}

func isDegree(s string) bool {
	return degreePattern.MatchString(s) || acronymDegreeIndex(s) != nil
}

// acronymDegreeIndex locates a degree acronym such as "BSc" or "MA". The
// two-letter forms double as US state codes: they count when followed by
// "in", "of" or "(", and otherwise only outside a "City, ST" position when
// they lead the line or are followed by a subject.
func acronymDegreeIndex(s string) []int {
	cityStates := cityStatePattern.FindAllStringIndex(s, -1)
	for _, loc := range degreeAcronym.FindAllStringIndex(s, -1) {
		if loc[1]-loc[0] > 2 {
			return loc
		}
		after := s[loc[1]:]
		if acronymQualifier.MatchString(after) {
			return loc
		}
		if withinAny(loc, cityStates) {
			continue
		}
		m := acronymSubject.FindStringSubmatch(after)
		if m != nil && acronymProducts[m[1]] {
			continue
		}
		if m != nil || strings.TrimLeft(s[:loc[0]], " \t•*·-") == "" {
			return loc
		}
	}
	return nil
}

func withinAny(loc []int, spans [][]int) bool {
	for _, span := range spans {
		if loc[0] >= span[0] && loc[1] <= span[1] {
			return true
		}
	}
	return false
}

// tableEducation reads education entries from table grids
func tableEducation(tables []types.Table) []types.Education {
	var out []types.Education
	for _, table := range tables {
		if isEducationHeader(table.Headers) {
			columns := mapEducationColumns(table.Headers)
			for _, row := range table.Rows {
				if edu := educationFromColumns(columns, row); !edu.IsEmpty() {
					out = append(out, edu)
				}
			}
			continue
		}

		// Without recognizable headers every row, the first included, is data.
		rows := append([][]string{table.Headers}, table.Rows...)
		for _, row := range rows {
			if !rowHasDegree(row) {
				continue
			}
			if edu := educationFromCells(row); !edu.IsEmpty() {
				out = append(out, edu)
			}
		}
	}
	return out
}

func isEducationHeader(row []string) bool {
	if rowHasDegree(row) {
		return false
	}
	matched := false
	for _, cell := range row {
		if gradYearPattern.MatchString(cell) {
			return false
		}
		lower := strings.ToLower(cell)
		for _, keyword := range educationHeaderKeywords {
			if strings.Contains(lower, keyword) {
				matched = true
			}
		}
	}
	return matched
}

func rowHasDegree(row []string) bool {
	for _, cell := range row {
		if isDegree(cell) {
			return true
		}
	}
	return false
}

// mapEducationColumns returns the education field for each header column
func mapEducationColumns(headers []string) []string {
	columns := make([]string, len(headers))
	used := make(map[string]bool)
	for i, header := range headers {
		lower := strings.ToLower(header)
		for _, column := range educationColumns {
			if used[column.field] {
				continue
			}
			if containsAny(lower, column.keywords) {
				columns[i] = column.field
				used[column.field] = true
				break
			}
		}
	}
	return columns
}

func educationFromColumns(columns []string, row []string) types.Education {
	var edu types.Education
	for i, cell := range row {
		if i >= len(columns) || cell == "" {
			continue
		}
		switch columns[i] {
		case "degree":
			edu.Degree = cell
		case "field":
			edu.Field = cell
		case "institution":
			edu.Institution = cell
		case "graduation_date":
			edu.GraduationDate = cell
		case "gpa":
			edu.GPA = cell
		case "location":
			edu.Location = cell
		}
	}
	return edu
}

// educationFromCells classifies each cell of a header-less row by its value
func educationFromCells(row []string) types.Education {
	var edu types.Education
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		switch {
		case cell == "":
		case edu.Degree == "" && isDegree(cell):
			edu.Degree = cell
		case edu.GraduationDate == "" && gradYearPattern.MatchString(cell) && !hasLetters(cell):
			edu.GraduationDate = cell
		case edu.GPA == "" && gpaPattern.MatchString(cell):
			if m := gpaPattern.FindStringSubmatch(cell); m != nil {
				edu.GPA = firstNonEmpty(m[1], m[2])
			}
		case edu.Institution == "" && hasLetters(cell):
			edu.Institution = cell
		case edu.Location == "" && hasLetters(cell):
			edu.Location = cell
		}
	}
	return edu
}

// textEducation parses degree blocks out of text. The EDUCATION section is
// used when present, otherwise the whole text.
func textEducation(text string) []types.Education {
	body := sections(text)["education"]
	if body == "" {
		body = text
	}
	lines := strings.Split(body, "\n")

	var out []types.Education
	for i, line := range lines {
		if !isDegree(line) || strings.Contains(strings.ToLower(line), "scrum master") {
			continue
		}
		block := []string{strings.TrimSpace(line)}
		for j := i + 1; j < len(lines) && len(block) < 3; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || isDegree(next) {
				break
			}
			block = append(block, next)
		}
		var previous string
		if i > 0 && !isDegree(lines[i-1]) {
			previous = strings.TrimSpace(lines[i-1])
		}
		if edu := educationFromBlock(block, previous); !edu.IsEmpty() {
			out = append(out, edu)
		}
	}
	return out
}

// educationFromBlock parses a degree line, the lines under it, and the line
// above it when that names the institution
func educationFromBlock(block []string, previous string) types.Education {
	var edu types.Education
	joined := strings.Join(block, "\n")

	parts := educationSplit.Split(block[0], -1)
	var rest []string
	for _, part := range parts {
		part = strings.Trim(part, " •-:")
		if part == "" {
			continue
		}
		if edu.Degree == "" && isDegree(part) {
			edu.Degree, edu.Field = splitDegreeField(part)
			continue
		}
		rest = append(rest, part)
	}
	for _, line := range block[1:] {
		rest = append(rest, educationSplit.Split(line, -1)...)
	}

	if m := institutionPattern.FindString(joined); m != "" {
		edu.Institution = strings.TrimSpace(m)
	} else if previous != "" && institutionPattern.MatchString(previous) {
		edu.Institution = strings.TrimSpace(institutionPattern.FindString(previous))
	}
	if edu.Field == "" {
		if m := fieldPattern.FindStringSubmatch(block[0]); m != nil && !institutionPattern.MatchString(m[1]) {
			edu.Field = strings.TrimSpace(m[1])
		}
	}
	if edu.Institution != "" {
		if idx := strings.Index(edu.Field, edu.Institution); idx >= 0 {
			edu.Field = strings.Trim(edu.Field[:idx], headerTrim)
		}
	}
	edu.Field = strings.Trim(gradYearPattern.ReplaceAllString(edu.Field, ""), headerTrim)

	if years := gradYearPattern.FindAllString(joined, -1); len(years) > 0 {
		edu.GraduationDate = years[len(years)-1]
	}
	if m := gpaPattern.FindStringSubmatch(joined); m != nil {
		edu.GPA = firstNonEmpty(m[1], m[2])
	}
	if m := cityStatePattern.FindStringSubmatch(joined); m != nil {
		edu.Location = m[1]
	}

	if edu.Institution == "" {
		for _, part := range rest {
			part = strings.Trim(part, " •-:()")
			if part == "" || !hasLetters(part) || gpaPattern.MatchString(part) || part == edu.Location {
				continue
			}
			if dateRangePattern.MatchString(part) || (gradYearPattern.MatchString(part) && len(part) < 16) {
				continue
			}
			edu.Institution = part
			break
		}
	}
	return edu
}

// splitDegreeField separates "Bachelor of Science in Physics" into degree and
// field. Abbreviated degrees followed by a subject keep the full text as the
// degree and the subject as the field.
func splitDegreeField(part string) (string, string) {
	if idx := strings.Index(strings.ToLower(part), " in "); idx > 0 {
		return strings.TrimSpace(part[:idx]), strings.TrimSpace(part[idx+4:])
	}
	loc := degreePattern.FindStringIndex(part)
	if loc == nil {
		loc = acronymDegreeIndex(part)
	}
	if loc != nil && loc[0] == 0 {
		field := strings.Trim(part[loc[1]:], " .:-()")
		if field != "" && hasLetters(field) {
			return part, field
		}
	}
	return part, ""
}

// normalizeEducation trims entries, drops empty ones and removes duplicates
// by signature, keeping the first
func normalizeEducation(entries []types.Education) []types.Education {
	out := make([]types.Education, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, edu := range entries {
		edu.Degree = strings.TrimSpace(edu.Degree)
		edu.Field = strings.TrimSpace(edu.Field)
		edu.Institution = strings.TrimSpace(edu.Institution)
		if edu.IsEmpty() {
			continue
		}
		key := edu.Signature()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, edu)
	}
	return out
}

// educationStrategies routes through enhancement, tables, OCR text and the
// standard text. The first source yielding an entry wins; sources are never
// merged.
func (p *Pipeline) educationStrategies(r *run) []Strategy[[]types.Education] {
	var strategies []Strategy[[]types.Education]
	add := func(name string, try func(context.Context) ([]types.Education, error)) {
		strategies = append(strategies, Strategy[[]types.Education]{Name: name, Try: try})
	}
	askOracle := func(text string) func(context.Context) ([]types.Education, error) {
		return func(ctx context.Context) ([]types.Education, error) {
			var entries []types.Education
			if err := p.askOracle(ctx, r, "extract-education", schemas.Education, text, &entries); err != nil {
				return nil, err
			}
			return normalizeEducation(entries), nil
		}
	}

	if r.enhanced != nil && len(r.enhanced.Education) > 0 {
		add("enhancement", func(context.Context) ([]types.Education, error) {
			return normalizeEducation(r.enhanced.Education), nil
		})
	}
	if len(r.in.Tables) > 0 {
		add("tables", func(context.Context) ([]types.Education, error) {
			return normalizeEducation(tableEducation(r.in.Tables)), nil
		})
	}
	if r.in.HasImages && strings.TrimSpace(r.in.OCRText) != "" {
		if r.oracleUsable() {
			add("ocr_text:oracle", askOracle(r.in.OCRText))
		}
		add("ocr_text:patterns", func(context.Context) ([]types.Education, error) {
			return normalizeEducation(textEducation(r.in.OCRText)), nil
		})
	}
	if r.oracleUsable() {
		add("standard_text:oracle", askOracle(r.in.CleanedText))
	}
	add("standard_text:patterns", func(context.Context) ([]types.Education, error) {
		return normalizeEducation(textEducation(r.in.CleanedText)), nil
	})
	return strategies
}

func (p *Pipeline) extractEducation(ctx context.Context, r *run) {
	entries, strategy := runStrategies(ctx, r, StageEducation, p.educationStrategies(r), nonEmpty[types.Education])
	if entries == nil {
		entries = []types.Education{}
	}

	source, _, _ := strings.Cut(strategy, ":")
	observability.LoggerFromContext(ctx).Debug("education source selected", "source", source, "strategy", strategy, "entries", len(entries))

	r.profile.Education = entries
	r.sources[StageEducation] = strategy
}

func hasLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

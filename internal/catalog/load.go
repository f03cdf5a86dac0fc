package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/talent-matcher/internal/types"
)

var opportunityValidator = validator.New()

// LoadFile reads a JSON or YAML catalog. Private records are skipped and the
// rest are flattened and validated.
func LoadFile(path string) ([]types.Opportunity, error) {
	if path == "" {
		return nil, &Error{Source: path, Message: "catalog path is required"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Source: path, Message: "failed to read catalog", Cause: err}
	}
	return Parse(data, formatOf(path), path)
}

// Format is a catalog serialization
type Format string

const (
	// FormatJSON is a JSON document
	FormatJSON Format = "json"
	// FormatYAML is a YAML document
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a catalog document. source names the document in errors.
func Parse(data []byte, format Format, source string) ([]types.Opportunity, error) {
	var file File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, &Error{Source: source, Message: "failed to decode catalog", Cause: err}
	}

	opps := make([]types.Opportunity, 0, len(file.Jobs)+len(file.Courses))
	for _, job := range file.Jobs {
		if isPublic(job.Visibility) {
			opps = append(opps, job.Opportunity())
		}
	}
	for _, course := range file.Courses {
		if isPublic(course.Visibility) {
			opps = append(opps, course.Opportunity())
		}
	}

	if err := Validate(opps); err != nil {
		return nil, &Error{Source: source, Message: "invalid catalog", Cause: err}
	}
	return opps, nil
}

// Validate checks every opportunity's shape, rejects inverted experience
// ranges and duplicate ids
func Validate(opps []types.Opportunity) error {
	seen := make(map[string]bool, len(opps))
	for i, opp := range opps {
		if err := opportunityValidator.Struct(opp); err != nil {
			return fmt.Errorf("record %d (%q): %w", i, opp.Title, err)
		}
		if opp.MinExperienceYears != nil && opp.MaxExperienceYears != nil &&
			*opp.MaxExperienceYears < *opp.MinExperienceYears {
			return fmt.Errorf("record %d (%q): max experience %.1f is below min %.1f",
				i, opp.Title, *opp.MaxExperienceYears, *opp.MinExperienceYears)
		}
		if seen[opp.ID] {
			return fmt.Errorf("record %d (%q): duplicate id %q", i, opp.Title, opp.ID)
		}
		seen[opp.ID] = true
	}
	return nil
}

// Split separates jobs from courses, preserving order
func Split(opps []types.Opportunity) (jobs, courses []types.Opportunity) {
	for _, opp := range opps {
		switch opp.Kind {
		case types.KindJob:
			jobs = append(jobs, opp)
		case types.KindCourse:
			courses = append(courses, opp)
		}
	}
	return jobs, courses
}

// Open drops opportunities whose deadline has passed. Deadlines that cannot
// be parsed keep the opportunity.
func Open(opps []types.Opportunity, now time.Time) []types.Opportunity {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]types.Opportunity, 0, len(opps))
	for _, opp := range opps {
		if deadline, ok := parseDeadline(opp.Deadline); ok && deadline.Before(today) {
			continue
		}
		out = append(out, opp)
	}
	return out
}

var deadlineLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "02/01/2006", "January 2, 2006", "Jan 2, 2006"}

func parseDeadline(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Package types provides type definitions for structured data used throughout the talent-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "sept": time.September, "oct": time.October, "nov": time.November,
	"dec": time.December,
}

var (
	numericMonthYear = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{4})$`)
	yearMonth        = regexp.MustCompile(`^(\d{4})[/\-.](\d{1,2})$`)
	namedMonthYear   = regexp.MustCompile(`^([A-Za-z]+)\.?,?\s+(\d{4})$`)
	yearOnly         = regexp.MustCompile(`^(\d{4})$`)
	anyYear          = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// IsPresent reports whether a resume date means "still ongoing"
func IsPresent(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "present", "current", "now", "ongoing", "till date", "to date":
		return true
	}
	return false
}

// ParseResumeDate parses the date spellings found on resumes (MM/YYYY,
// Mon YYYY, Month YYYY, YYYY-MM, YYYY). A year anywhere in the string is the
// last resort. Present-like values are not dates and return false.
func ParseResumeDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" || IsPresent(value) {
		return time.Time{}, false
	}

	if m := numericMonthYear.FindStringSubmatch(value); m != nil {
		return monthDate(m[2], m[1])
	}
	if m := yearMonth.FindStringSubmatch(value); m != nil {
		return monthDate(m[1], m[2])
	}
	if m := namedMonthYear.FindStringSubmatch(value); m != nil {
		name := strings.ToLower(m[1])
		if len(name) > 3 && name != "sept" {
			name = name[:3]
		}
		if month, ok := monthNames[name]; ok {
			year, _ := strconv.Atoi(m[2])
			return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	if m := yearOnly.FindStringSubmatch(value); m != nil {
		year, _ := strconv.Atoi(m[1])
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	if m := anyYear.FindString(value); m != "" {
		year, _ := strconv.Atoi(m)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func monthDate(yearText, monthText string) (time.Time, bool) {
	year, _ := strconv.Atoi(yearText)
	month, _ := strconv.Atoi(monthText)
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}

// EndDateKey orders experiences by end date. Present sorts above every real
// date and unparseable dates sort last.
func (e Experience) EndDateKey(now time.Time) time.Time {
	if e.IsCurrent() {
		return now.AddDate(100, 0, 0)
	}
	if t, ok := ParseResumeDate(e.EndDate); ok {
		return t
	}
	return time.Time{}
}

// YearsSpanned returns the length of the position in years, using now for an
// open end. ok is false when the start date cannot be parsed.
func (e Experience) YearsSpanned(now time.Time) (float64, bool) {
	start, ok := ParseResumeDate(e.StartDate)
	if !ok {
		return 0, false
	}
	end := now
	if !e.IsCurrent() {
		if parsed, ok := ParseResumeDate(e.EndDate); ok {
			end = parsed
		}
	}
	if end.Before(start) {
		return 0, true
	}
	return end.Sub(start).Hours() / (24 * 365.25), true
}

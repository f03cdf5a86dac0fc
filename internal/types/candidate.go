// Package types provides type definitions for structured data used throughout the talent-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// PresentSentinel is the end date used for ongoing positions.
const PresentSentinel = "Present"

// CandidateProfile is the structured record produced by the field extraction pipeline.
// It is read-only once the validation stage has completed.
type CandidateProfile struct {
	PersonalInfo     PersonalInfo    `json:"personal_info"`
	Summary          string          `json:"summary,omitempty"`
	Skills           []string        `json:"skills"`
	Experience       []Experience    `json:"experience"`
	Education        []Education     `json:"education"`
	Certifications   []Certification `json:"certifications"`
	Projects         []Project       `json:"projects"`
	Languages        []string        `json:"languages"`
	ProcessingErrors []string        `json:"processing_errors"`
}

// PersonalInfo holds contact details. Empty string means "not found".
type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// Experience is a single position held by the candidate
type Experience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// IsCurrent reports whether the position is still ongoing.
func (e Experience) IsCurrent() bool {
	return IsPresent(e.EndDate)
}

// Education is a single degree or qualification
type Education struct {
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	Institution    string `json:"institution"`
	GraduationDate string `json:"graduation_date"`
	GPA            string `json:"gpa"`
	Location       string `json:"location"`
}

// Signature returns the lower-cased (degree, institution, field) key used for deduplication.
func (e Education) Signature() string {
	return strings.ToLower(fmt.Sprintf("%s|%s|%s",
		strings.TrimSpace(e.Degree), strings.TrimSpace(e.Institution), strings.TrimSpace(e.Field)))
}

// IsEmpty reports whether none of degree, institution or field is set.
func (e Education) IsEmpty() bool {
	return strings.TrimSpace(e.Degree) == "" &&
		strings.TrimSpace(e.Institution) == "" &&
		strings.TrimSpace(e.Field) == ""
}

// Certification is a professional credential
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	Expiry string `json:"expiry"`
}

// Project is a personal, academic or work project
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	Duration     string   `json:"duration"`
}

// NewCandidateProfile returns a profile with all collections initialized so that
// serialized output never contains null lists.
func NewCandidateProfile() *CandidateProfile {
	return &CandidateProfile{
		Skills:           []string{},
		Experience:       []Experience{},
		Education:        []Education{},
		Certifications:   []Certification{},
		Projects:         []Project{},
		Languages:        []string{},
		ProcessingErrors: []string{},
	}
}

// AddError appends a non-fatal processing error attributed to a stage.
func (p *CandidateProfile) AddError(stage, message string) {
	p.ProcessingErrors = append(p.ProcessingErrors, fmt.Sprintf("%s: %s", stage, message))
}

// AllText concatenates the free-text parts of the profile used for keyword analysis.
func (p *CandidateProfile) AllText() string {
	parts := make([]string, 0, 8)
	if p.Summary != "" {
		parts = append(parts, p.Summary)
	}
	parts = append(parts, p.Skills...)
	for _, exp := range p.Experience {
		if exp.Title != "" {
			parts = append(parts, exp.Title)
		}
		if exp.Description != "" {
			parts = append(parts, exp.Description)
		}
	}
	for _, proj := range p.Projects {
		if proj.Description != "" {
			parts = append(parts, proj.Description)
		}
	}
	for _, edu := range p.Education {
		if edu.Field != "" {
			parts = append(parts, edu.Field)
		}
		if edu.Institution != "" {
			parts = append(parts, edu.Institution)
		}
	}
	return strings.Join(parts, " ")
}

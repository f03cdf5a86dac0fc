// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// ExtractionSchema describes a single structured-extraction request
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ResumeEnhancement", "SkillKeywords")
	Description string        // Preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint rendered into the prompt
	Description string
	Required    bool
}

// BuildExtractionPrompt renders schema and input into a prompt. A positive
// tokenBudget truncates the input text before it is embedded.
func BuildExtractionPrompt(ctx context.Context, schema ExtractionSchema, inputText string, tokenBudget int) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "\"string\""
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent values.\n")
	sb.WriteString("- Use empty strings or empty arrays for anything not present.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(TruncateToTokens(ctx, inputText, tokenBudget))
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ResumeEnhancementSchema is the single combined request used by the
// enhancement step to pre-populate several field groups at once.
func ResumeEnhancementSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeEnhancement",
		Description: `You are an expert resume parser. Extract the candidate's structured record from the resume below.
Copy names, titles, companies and dates verbatim. Do not guess missing information.`,
		Fields: []SchemaField{
			{
				Name:        "personal_info",
				Type:        `{"name": "string", "email": "string", "phone": "string", "location": "string", "linkedin": "string", "github": "string", "portfolio": "string"}`,
				Description: "Contact details of the candidate",
				Required:    true,
			},
			{
				Name:        "summary",
				Type:        "\"string\"",
				Description: "Professional summary or objective, verbatim",
			},
			{
				Name:        "skills",
				Type:        "[\"string\"]",
				Description: "Technical and professional skills, one per item",
				Required:    true,
			},
			{
				Name:        "experience",
				Type:        `[{"title": "string", "company": "string", "location": "string", "start_date": "string", "end_date": "string", "description": "string", "technologies": ["string"]}]`,
				Description: "Work history, end_date is \"Present\" for the current role",
			},
			{
				Name:        "education",
				Type:        `[{"degree": "string", "field": "string", "institution": "string", "graduation_date": "string", "gpa": "string", "location": "string"}]`,
				Description: "Degrees and schools",
			},
			{
				Name:        "projects",
				Type:        `[{"name": "string", "description": "string", "technologies": ["string"], "url": "string", "duration": "string"}]`,
				Description: "Personal, academic or professional projects",
			},
		},
	}
}

// SkillKeywordsSchema asks for fresh category keyword lists used to refresh
// the analysis configuration.
func SkillKeywordsSchema(categories []string) ExtractionSchema {
	return ExtractionSchema{
		Name: "SkillKeywords",
		Description: fmt.Sprintf(`You are a technical recruiter tracking the job market.
For each of these skill categories list current, in-demand keywords in lowercase: %s.
Also list emerging technologies that employers ask for this year.`, strings.Join(categories, ", ")),
		Fields: []SchemaField{
			{
				Name:        "skill_categories",
				Type:        `{"category": ["keyword"]}`,
				Description: "Keywords per requested category",
				Required:    true,
			},
			{
				Name:        "emerging_technologies",
				Type:        "[\"string\"]",
				Description: "Emerging technologies in lowercase",
			},
			{
				Name:        "industry_keywords",
				Type:        `{"industry": ["keyword"]}`,
				Description: "Keywords that signal an industry focus",
			},
		},
	}
}

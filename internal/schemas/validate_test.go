package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_Files(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")

	tests := []struct {
		name      string
		jsonFile  string
		wantError bool
	}{
		{name: "valid document", jsonFile: "valid_json.json"},
		{name: "missing required field", jsonFile: "invalid_json.json", wantError: true},
		{name: "wrong type", jsonFile: "type_mismatch.json", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(schemaPath, filepath.Join("testdata", tt.jsonFile))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	err := ValidateJSON("testdata/nonexistent_schema.json", filepath.Join("testdata", "valid_json.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(filepath.Join("testdata", "valid_schema.json"), "testdata/nonexistent_json.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	malformed := filepath.Join(t.TempDir(), "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{ invalid json }"), 0644))

	err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), malformed)
	require.Error(t, err)
}

func TestValidateJSONString_NestedField(t *testing.T) {
	schemaContent := `{
		"type": "object",
		"required": ["personal_info"],
		"properties": {
			"personal_info": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string"}}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"personal_info": {}}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Errors[0].Field, "personal_info")
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "(string schema)", loadErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "score", Message: "is required"},
			{Field: "feedback", Message: "must be a string"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. score: is required")
	assert.Contains(t, msg, "2. feedback: must be a string")
}

func TestValidateValue(t *testing.T) {
	schema := MustOracleSchema(Skills)

	assert.NoError(t, ValidateValue(schema, []string{"Go", "Docker"}))
	assert.Error(t, ValidateValue(schema, map[string]string{"skill": "Go"}))
}

func TestOracleSchemas(t *testing.T) {
	tests := []struct {
		schema  string
		valid   string
		invalid string
	}{
		{schema: Skills, valid: `["Python", "SQL"]`, invalid: `"Python"`},
		{schema: Languages, valid: `["English"]`, invalid: `[1, 2]`},
		{schema: PersonalInfo, valid: `{"name": "Jane", "github": null}`, invalid: `["Jane"]`},
		{schema: Experience, valid: `[{"title": "Engineer", "technologies": ["Go"]}]`, invalid: `[{"technologies": "Go"}]`},
		{schema: Education, valid: `[{"degree": "B.Sc", "institution": "MIT"}]`, invalid: `{"degree": "B.Sc"}`},
		{schema: Certifications, valid: `[{"name": "PMP", "issuer": "PMI"}]`, invalid: `[{"issuer": "PMI"}]`},
		{schema: Projects, valid: `[{"name": "Log Analyzer"}]`, invalid: `[{"description": "no name"}]`},
		{schema: Enhancement, valid: `{"skills": ["Go"], "personal_info": {"name": "Jane"}}`, invalid: `{"skills": "Go"}`},
		{schema: Questions, valid: `[{"id": 1, "question": "What is a goroutine?", "key_points": ["scheduler"]}]`, invalid: `[{"question": ""}]`},
		{schema: AnswerScore, valid: `{"score": 7.5, "feedback": "Good"}`, invalid: `{"feedback": "no score"}`},
		{schema: Recommendations, valid: `{"strengths": [], "weaknesses": [], "recommendations": ["Practice"]}`, invalid: `{"strengths": []}`},
		{schema: Keywords, valid: `{"skill_categories": {"cloud": ["aws"]}}`, invalid: `{"skill_categories": {"cloud": "aws"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.schema, func(t *testing.T) {
			schema, err := OracleSchema(tt.schema)
			require.NoError(t, err)
			assert.NoError(t, ValidateJSONString(schema, tt.valid))
			assert.Error(t, ValidateJSONString(schema, tt.invalid))
		})
	}
}

func TestOracleSchema_Unknown(t *testing.T) {
	_, err := OracleSchema("salary")
	assert.Error(t, err)
	assert.Panics(t, func() { MustOracleSchema("salary") })
}

func TestResolveSchemaPath(t *testing.T) {
	assert.NotEmpty(t, ResolveSchemaPath(filepath.Join("testdata", "valid_schema.json")))
	assert.NotEmpty(t, ResolveSchemaPath(filepath.Join("schemas", "candidate_profile.schema.json")))
	assert.Empty(t, ResolveSchemaPath("does/not/exist.json"))
}

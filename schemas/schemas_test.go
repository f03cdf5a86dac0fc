package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/talent-matcher/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"common.schema.json",
	"candidate_profile.schema.json",
	"match_results.schema.json",
	"interview_session.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			_, hasType := schemaObj["type"]
			_, hasDefs := schemaObj["$defs"]
			assert.True(t, hasType || hasDefs, "schema should declare a type or $defs")
			assert.Contains(t, schemaObj, "$schema")
		})
	}
}

func TestArtifactSchemas(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		jsonFile  string
		wantError bool
	}{
		{name: "valid candidate profile", schema: "candidate_profile.schema.json", jsonFile: "../testdata/valid/candidate_profile.json"},
		{name: "profile without personal info", schema: "candidate_profile.schema.json", jsonFile: "../testdata/invalid/missing_personal_info.json", wantError: true},
		{name: "valid match results", schema: "match_results.schema.json", jsonFile: "../testdata/valid/match_results.json"},
		{name: "match score out of range", schema: "match_results.schema.json", jsonFile: "../testdata/invalid/match_score_out_of_range.json", wantError: true},
		{name: "valid interview session", schema: "interview_session.schema.json", jsonFile: "../testdata/valid/interview_session.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateJSON(tt.schema, tt.jsonFile)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var validationErr *schemas.ValidationError
			require.ErrorAs(t, err, &validationErr, "expected a ValidationError, got %v", err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestInterviewSession_RejectsUnknownStatus(t *testing.T) {
	data, err := os.ReadFile("interview_session.schema.json")
	require.NoError(t, err)

	doc := `{
		"id": "abc",
		"domain": "python",
		"difficulty": "junior",
		"questions": [{"id": 1, "question": "What is GIL?"}],
		"status": "evaluating",
		"created_at": "2026-10-18T09:00:00Z"
	}`
	err = schemas.ValidateJSONString(string(data), doc)
	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		key      string
		contains string
		wantErr  string
	}{
		{name: "skills prompt", file: "extraction.json", key: "extract-skills", contains: "JSON array of strings"},
		{name: "scoring prompt", file: "interview.json", key: "evaluate-answer", contains: "Accuracy of content (40%)"},
		{name: "missing file", file: "nonexistent.json", key: "x", wantErr: "failed to read prompt file"},
		{name: "missing key", file: "extraction.json", key: "extract-salary", wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ClearCache()
			prompt, err := Get(tt.file, tt.key)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet("interview.json", "generate-questions"))
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "fills placeholders",
			template: "Domain: {{.Domain}}, level {{.Difficulty}}",
			data:     map[string]string{"Domain": "python", "Difficulty": "junior"},
			expected: "Domain: python, level junior",
		},
		{
			name:     "no placeholders",
			template: "plain",
			data:     map[string]string{"Domain": "python"},
			expected: "plain",
		},
		{
			name:     "missing value leaves placeholder",
			template: "Hello {{.Name}}",
			data:     map[string]string{},
			expected: "Hello {{.Name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render("extraction.json", "extract-projects", map[string]string{"Text": "Built a Log Analyzer"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Built a Log Analyzer")
	assert.NotContains(t, prompt, "{{.")

	_, err = Render("interview.json", "evaluate-answer", map[string]string{"Question": "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IdealAnswer")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("extraction.json")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"extract-certifications",
		"extract-education",
		"extract-experience",
		"extract-personal-info",
		"extract-projects",
		"extract-skills",
	}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	first, err := Get("interview.json", "recommendations")
	require.NoError(t, err)
	second, err := Get("interview.json", "recommendations")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

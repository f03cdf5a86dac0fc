package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := BuildExtractionPrompt(context.Background(), ResumeEnhancementSchema(), "Jane Doe\njane@example.com", 0)

	assert.Contains(t, prompt, "expert resume parser")
	assert.Contains(t, prompt, `"personal_info": {"name"`)
	assert.Contains(t, prompt, `"skills": ["string"] (required)`)
	assert.Contains(t, prompt, "Jane Doe\njane@example.com")
	assert.True(t, strings.HasSuffix(prompt, "\"\"\"\n"))
}

func TestBuildExtractionPrompt_TruncatesInput(t *testing.T) {
	input := strings.Repeat("kubernetes terraform ansible ", 500)
	prompt := BuildExtractionPrompt(context.Background(), ResumeEnhancementSchema(), input, 20)

	assert.NotContains(t, prompt, input)
	assert.Less(t, len(prompt), len(input))
}

func TestSkillKeywordsSchema(t *testing.T) {
	schema := SkillKeywordsSchema([]string{"programming", "cloud_devops"})

	assert.Equal(t, "SkillKeywords", schema.Name)
	assert.Contains(t, schema.Description, "programming, cloud_devops")
	assert.Len(t, schema.Fields, 3)
	assert.True(t, schema.Fields[0].Required)
}

package schemas

import (
	"embed"
	"fmt"
	"path"
)

//go:embed oracle/*.json
var oracleFiles embed.FS

// Oracle response schema names
const (
	PersonalInfo    = "personal_info"
	Skills          = "skills"
	Experience      = "experience"
	Education       = "education"
	Certifications  = "certifications"
	Projects        = "projects"
	Languages       = "languages"
	Enhancement     = "enhancement"
	Questions       = "questions"
	AnswerScore     = "answer_score"
	Recommendations = "recommendations"
	Keywords        = "keywords"
)

// OracleSchema returns the embedded schema that constrains one oracle response type
func OracleSchema(name string) (string, error) {
	data, err := oracleFiles.ReadFile(path.Join("oracle", name+".json"))
	if err != nil {
		return "", fmt.Errorf("unknown oracle schema %q: %w", name, err)
	}
	return string(data), nil
}

// MustOracleSchema is OracleSchema for names known at compile time
func MustOracleSchema(name string) string {
	schema, err := OracleSchema(name)
	if err != nil {
		panic(err)
	}
	return schema
}

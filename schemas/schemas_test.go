package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalschemas "github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/schemas"
)

var schemaFiles = []string{
	schemas.MatchResult,
	schemas.SkillVocabulary,
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := schemas.Load(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v map[string]interface{}
			err = json.Unmarshal(data, &v)
			require.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", v["$schema"])
			assert.Equal(t, schemaFile, v["$id"])
			assert.NotEmpty(t, v["title"])
		})
	}
}

func TestSchemaFiles_Compile(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			_, err := internalschemas.Embedded(schemaFile)
			assert.NoError(t, err)
		})
	}
}

func TestMatchResultSchema_RequiresCoreFields(t *testing.T) {
	err := internalschemas.ValidateBytes(schemas.MatchResult, []byte(`{"score": 0.5}`))
	require.Error(t, err)

	validationErr, ok := err.(*internalschemas.ValidationError)
	require.True(t, ok)

	var messages []string
	for _, fieldErr := range validationErr.Errors {
		messages = append(messages, fieldErr.Message)
	}
	assert.Contains(t, messages, "profile is required")
	assert.Contains(t, messages, "gap is required")
}

func TestLoad_Unknown(t *testing.T) {
	_, err := schemas.Load("unknown.schema.json")
	assert.Error(t, err)
}

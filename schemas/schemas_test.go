package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, name := range []string{SkillVocabulary} {
		t.Run(name, func(t *testing.T) {
			content, err := Get(name)
			require.NoError(t, err)

			var v map[string]interface{}
			err = json.Unmarshal([]byte(content), &v)
			require.NoError(t, err, "schema file should be valid JSON: %s", name)
			assert.Contains(t, v, "$schema")
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("missing.schema.json")
	assert.Error(t, err)
}

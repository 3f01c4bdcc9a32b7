package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "count": {"type": "integer", "minimum": 0}
  },
  "additionalProperties": false
}`

func TestValidateBytes(t *testing.T) {
	t.Run("valid document passes", func(t *testing.T) {
		err := ValidateBytes([]byte(testSchema), []byte(`{"name": "go", "count": 3}`))
		assert.NoError(t, err)
	})

	t.Run("missing required field fails with field path", func(t *testing.T) {
		err := ValidateBytes([]byte(testSchema), []byte(`{"count": 3}`))
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.NotEmpty(t, verr.Errors)
		assert.Contains(t, verr.Error(), "name")
	})

	t.Run("wrong type fails", func(t *testing.T) {
		err := ValidateBytes([]byte(testSchema), []byte(`{"name": "go", "count": "three"}`))
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
	})

	t.Run("unusable schema yields SchemaLoadError", func(t *testing.T) {
		err := ValidateBytes([]byte(`{"type": `), []byte(`{}`))
		require.Error(t, err)

		var serr *SchemaLoadError
		require.True(t, errors.As(err, &serr))
	})
}

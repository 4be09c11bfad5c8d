package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBytes_NoveltyResult(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError bool
	}{
		{
			name: "valid with numeric ids",
			body: `{"novelty_score": 85.3, "interpretation": "Highly novel", "total_proposals_checked": 42,
				"similar_proposals": [{"id": 1, "title": "X", "similarity": 0.82}]}`,
		},
		{
			name: "valid with empty list",
			body: `{"novelty_score": 100, "interpretation": "x", "total_proposals_checked": 0, "similar_proposals": []}`,
		},
		{
			name:      "missing score",
			body:      `{"interpretation": "x", "total_proposals_checked": 0, "similar_proposals": []}`,
			wantError: true,
		},
		{
			name:      "score as string",
			body:      `{"novelty_score": "85", "interpretation": "x", "total_proposals_checked": 0, "similar_proposals": []}`,
			wantError: true,
		},
		{
			name: "fractional total",
			body: `{"novelty_score": 85, "interpretation": "x", "total_proposals_checked": 1.5,
				"similar_proposals": []}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBytes(NoveltyResult, []byte(tt.body))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.NotEmpty(t, validationErr.Errors)
			assert.Contains(t, err.Error(), NoveltyResult)
		})
	}
}

func TestValidateBytes_MalformedDocument(t *testing.T) {
	err := ValidateBytes(IngestResponse, []byte("{ invalid json }"))
	require.Error(t, err)

	var docErr *DocumentError
	assert.True(t, errors.As(err, &docErr))
}

func TestValidateBytes_UnknownSchema(t *testing.T) {
	err := ValidateBytes("missing.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "missing.schema.json", loadErr.Path)
}

func TestLoad_AllEmbeddedSchemasCompile(t *testing.T) {
	for _, name := range []string{NoveltyResult, IngestResponse, ApplicationCheckResult, HealthStatus} {
		t.Run(name, func(t *testing.T) {
			schema, err := Load(name)
			require.NoError(t, err)
			assert.NotNil(t, schema)

			again, err := Load(name)
			require.NoError(t, err)
			assert.Same(t, schema, again)
		})
	}
}

package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

func TestLoadEmbedded(t *testing.T) {
	library, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, 10, library.Len())

	s, ok := library.Get("support-billing")
	require.True(t, ok)
	assert.NotEmpty(t, s.Input)
	assert.NotEmpty(t, s.Response.Intent)
	assert.NotEmpty(t, s.Response.Routing)

	// Defaults are enforced at load time
	for _, s := range library.All() {
		assert.NotNil(t, s.Response.Items, s.ID)
		assert.NotNil(t, s.Response.KBMatches, s.ID)
		assert.NotNil(t, s.Response.KnowledgeGaps, s.ID)
		assert.GreaterOrEqual(t, s.Response.Confidence, 0.0, s.ID)
		assert.LessOrEqual(t, s.Response.Confidence, 1.0, s.ID)
	}
}

func TestAllPreservesOrder(t *testing.T) {
	library, err := LoadEmbedded()
	require.NoError(t, err)

	all := library.All()
	require.Len(t, all, library.Len())
	assert.Equal(t, "manufacturing-custom-fabrication", all[0].ID)
}

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `{`},
		{"empty library", `{"scenarios":[]}`},
		{"missing id", `{"scenarios":[{"input":"x","response":{"intent":"A","routing":"B","confidence":0.5}}]}`},
		{"missing input", `{"scenarios":[{"id":"a","response":{"intent":"A","routing":"B","confidence":0.5}}]}`},
		{"missing intent", `{"scenarios":[{"id":"a","input":"x","response":{"routing":"B","confidence":0.5}}]}`},
		{"missing routing", `{"scenarios":[{"id":"a","input":"x","response":{"intent":"A","confidence":0.5}}]}`},
		{"confidence out of range", `{"scenarios":[{"id":"a","input":"x","response":{"intent":"A","routing":"B","confidence":1.5}}]}`},
		{"kb confidence out of range", `{"scenarios":[{"id":"a","input":"x","response":{"intent":"A","routing":"B","confidence":0.5,"kb_matches":[{"title":"T","confidence":-0.1}]}}]}`},
		{"duplicate ids", `{"scenarios":[{"id":"a","input":"x","response":{"intent":"A","routing":"B","confidence":0.5}},{"id":"a","input":"y","response":{"intent":"A","routing":"B","confidence":0.5}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeLibrary(t, tt.content))
			require.Error(t, err)

			var dataErr *core.DataError
			assert.ErrorAs(t, err, &dataErr)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	var dataErr *core.DataError
	assert.ErrorAs(t, err, &dataErr)
}

func TestLoadFileValid(t *testing.T) {
	content := `{"scenarios":[{"id":"a","input":"x","response":{"intent":"A","routing":"B > C","confidence":0.5,"knowledge_gaps":["legacy string gap"]}}]}`

	library, err := LoadFile(writeLibrary(t, content))
	require.NoError(t, err)

	s, ok := library.Get("a")
	require.True(t, ok)
	require.Len(t, s.Response.KnowledgeGaps, 1)
	assert.Equal(t, "legacy string gap", s.Response.KnowledgeGaps[0].Description)
}

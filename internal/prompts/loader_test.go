package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ExistingPrompt(t *testing.T) {
	prompt, err := Get("tailoring.json", "rewrite_bullet")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Requirement}}")
	assert.Contains(t, prompt, "{{.OriginalText}}")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("tailoring.json", "does_not_exist")
	assert.Error(t, err)
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "rewrite_bullet")
	assert.Error(t, err)
}

func TestVersion_AllFilesVersioned(t *testing.T) {
	for _, filename := range []string{"tailoring.json", "analyzing.json"} {
		version, err := Version(filename)
		require.NoError(t, err, filename)
		assert.NotEmpty(t, version, filename)
	}
}

func TestFormat(t *testing.T) {
	result := Format("Requirement: {{.Requirement}}, Text: {{.OriginalText}}", map[string]string{
		"Requirement":  "kubernetes",
		"OriginalText": "Built services",
	})
	assert.Equal(t, "Requirement: kubernetes, Text: Built services", result)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	result := Format("{{.Missing}}", map[string]string{"Other": "x"})
	assert.Equal(t, "{{.Missing}}", result)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("tailoring.json", "nope")
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeTempConfig(t, `{
		"job_url": "https://example.com/jobs/1",
		"fan_out": 8,
		"synonyms": {"go": ["golang"]}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/jobs/1", cfg.JobURL)
	assert.Equal(t, 8, cfg.FanOut)
	assert.Equal(t, []string{"golang"}, cfg.Synonyms["go"])
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeTempConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate_JobAndURLExclusive(t *testing.T) {
	jobPath := writeTempConfig(t, "posting text")
	cfg := &Config{Job: jobPath, JobURL: "https://example.com/jobs/1"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadFormat(t *testing.T) {
	cfg := &Config{Format: "yaml"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Format")
}

func TestValidate_FanOutRange(t *testing.T) {
	cfg := &Config{FanOut: 1000}
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadURL(t *testing.T) {
	cfg := &Config{JobURL: "not a url"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_ZeroValueConfig(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{FanOut: 16}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, 16, merged.FanOut)
	assert.Equal(t, DefaultMaxRetries, merged.MaxRetries)
	assert.Equal(t, DefaultFormat, merged.Format)
	assert.Equal(t, DefaultMaxCandidatesPerGap, merged.MaxCandidatesPerGap)
}

func TestMergeWithDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := Config{
		Format:   "json",
		Synonyms: map[string][]string{"go": {"golang"}},
	}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, "json", merged.Format)
	assert.Equal(t, []string{"golang"}, merged.Synonyms["go"])
}

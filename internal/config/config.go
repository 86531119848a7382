// Package config provides configuration loading and validation for the CLI.
// The configuration owns the tunable surfaces of the pipeline: the synonym
// table, heading vocabulary, retry bound, concurrency fan-out and cache TTL.
// Missing values fall back to the documented defaults below.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Defaults applied by MergeWithDefaults when a value is absent
const (
	DefaultFanOut              = 4
	DefaultMaxRetries          = 3
	DefaultMaxCandidatesPerGap = 2
	DefaultCacheTTLSeconds     = 0 // no expiry
	DefaultFormat              = "text"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty" validate:"omitempty,file"` // Path to resume text or PDF file
	Job    string `json:"job,omitempty" validate:"omitempty,file"`    // Path to job posting text file
	JobURL string `json:"job_url,omitempty" validate:"omitempty,url"` // URL to fetch job posting from

	// Behavior
	APIKey         string `json:"api_key,omitempty"`                                    // Gemini API key
	DatabaseURL    string `json:"database_url,omitempty"`                               // PostgreSQL URL for the shared response cache
	UseLLMAnalyzer bool   `json:"use_llm_analyzer,omitempty"`                           // Extract requirements with the LLM instead of heuristics
	Verbose        bool   `json:"verbose,omitempty"`                                    // Print detailed debug information
	Format         string `json:"format,omitempty" validate:"omitempty,oneof=text json"` // Output format

	// Limits
	FanOut              int `json:"fan_out,omitempty" validate:"omitempty,min=1,max=64"`        // Concurrent in-flight LLM calls
	MaxRetries          int `json:"max_retries,omitempty" validate:"omitempty,min=1,max=10"`    // Attempts per tailoring call
	MaxCandidatesPerGap int `json:"max_candidates_per_gap,omitempty" validate:"omitempty,min=1"` // Entities rewritten per gap
	CacheTTLSeconds     int `json:"cache_ttl_seconds,omitempty" validate:"omitempty,min=0"`     // Response cache expiry; zero keeps entries forever

	// Tunable matching surfaces
	Synonyms          map[string][]string `json:"synonyms,omitempty"`           // Skill alias table, canonical -> aliases
	SectionVocabulary map[string][]string `json:"section_vocabulary,omitempty"` // Section kind -> heading spellings
	SkillVocabulary   []string            `json:"skill_vocabulary,omitempty"`   // Controlled vocabulary for requirement analysis
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields
// are not checked here; those are enforced by CLI flag validation after
// merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if err := validate.Struct(c); err != nil {
		if invalid, ok := err.(*validator.InvalidValidationError); ok {
			return fmt.Errorf("config error: %w", invalid)
		}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			return fmt.Errorf("config error: field %s failed %q validation", fieldErr.Field(), fieldErr.Tag())
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.FanOut == 0 {
		result.FanOut = defaults.FanOut
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.MaxCandidatesPerGap == 0 {
		result.MaxCandidatesPerGap = defaults.MaxCandidatesPerGap
	}
	if result.CacheTTLSeconds == 0 {
		result.CacheTTLSeconds = defaults.CacheTTLSeconds
	}
	if result.Synonyms == nil {
		result.Synonyms = defaults.Synonyms
	}
	if result.SectionVocabulary == nil {
		result.SectionVocabulary = defaults.SectionVocabulary
	}
	if result.SkillVocabulary == nil {
		result.SkillVocabulary = defaults.SkillVocabulary
	}

	return result
}

// Default returns the built-in defaults applied when neither a config file
// nor flags supply a value
func Default() Config {
	return Config{
		Format:              DefaultFormat,
		FanOut:              DefaultFanOut,
		MaxRetries:          DefaultMaxRetries,
		MaxCandidatesPerGap: DefaultMaxCandidatesPerGap,
		CacheTTLSeconds:     DefaultCacheTTLSeconds,
	}
}

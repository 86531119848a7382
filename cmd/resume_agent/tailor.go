package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-agent/internal/config"
	"github.com/jonathan/resume-agent/internal/pipeline"
)

var tailorCommand = &cobra.Command{
	Use:   "tailor",
	Short: "Run the full tailoring pipeline end-to-end",
	Long: `Parses the resume, extracts job requirements, scores the match, rewrites
weakly covered entries through the LLM, and prints the assembled resume.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runTailorCmd,
}

var (
	tailorConfigPath     string
	tailorResume         string
	tailorJob            string
	tailorJobURL         string
	tailorAPIKey         string
	tailorDatabaseURL    string
	tailorFormat         string
	tailorFanOut         int
	tailorMaxRetries     int
	tailorDeadlineSecs   int
	tailorUseLLMAnalyzer bool
	tailorVerbose        bool
	tailorOutput         string
)

func init() {
	tailorCommand.Flags().StringVar(&tailorConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	tailorCommand.Flags().StringVarP(&tailorResume, "resume", "r", "", "Path to resume text or PDF file")
	tailorCommand.Flags().StringVarP(&tailorJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	tailorCommand.Flags().StringVar(&tailorJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	tailorCommand.Flags().StringVarP(&tailorFormat, "format", "f", "", "Output format: text or json")
	tailorCommand.Flags().StringVarP(&tailorOutput, "output", "o", "", "Write output to file instead of stdout")
	tailorCommand.Flags().IntVar(&tailorFanOut, "fan-out", 0, "Concurrent in-flight LLM calls")
	tailorCommand.Flags().IntVar(&tailorMaxRetries, "max-retries", 0, "Attempts per tailoring call")
	tailorCommand.Flags().IntVar(&tailorDeadlineSecs, "deadline", 0, "Overall tailoring deadline in seconds (0 disables)")
	tailorCommand.Flags().BoolVar(&tailorUseLLMAnalyzer, "llm-analyzer", false, "Extract requirements with the LLM instead of heuristics")
	tailorCommand.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	tailorCommand.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for the shared response cache
	tailorCommand.Flags().StringVar(&tailorDatabaseURL, "db-url", "", "PostgreSQL connection URL for the response cache (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(tailorCommand)
}

func runTailorCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, tailorConfigPath)
	if err != nil {
		return err
	}

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	opts := pipeline.FromConfig(cfg)
	if tailorDeadlineSecs > 0 {
		opts.Deadline = time.Duration(tailorDeadlineSecs) * time.Second
	}

	result, err := pipeline.RunPipeline(ctx, opts)
	if err != nil {
		return err
	}

	return writeOutput(result.Rendered, tailorOutput)
}

// loadMergedConfig loads the optional config file, applies explicit flag
// overrides, merges defaults, and validates.
func loadMergedConfig(cmd *cobra.Command, configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Only override when the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = tailorResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = tailorJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = tailorJobURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = tailorAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = tailorDatabaseURL
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = tailorFormat
	}
	if cmd.Flags().Changed("fan-out") {
		cfg.FanOut = tailorFanOut
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.MaxRetries = tailorMaxRetries
	}
	if cmd.Flags().Changed("llm-analyzer") {
		cfg.UseLLMAnalyzer = tailorUseLLMAnalyzer
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = tailorVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Default())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// writeOutput prints to stdout or writes the given file
func writeOutput(content, path string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

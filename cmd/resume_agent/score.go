package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-agent/internal/config"
	"github.com/jonathan/resume-agent/internal/observability"
	"github.com/jonathan/resume-agent/internal/pipeline"
)

var scoreCommand = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job posting without tailoring",
	Long: `Parses the resume, extracts job requirements, and prints the match score
with per-requirement evidence and gaps. No LLM calls are made unless
--llm-analyzer is set.`,
	RunE: runScoreCmd,
}

var (
	scoreConfigPath     string
	scoreResume         string
	scoreJob            string
	scoreJobURL         string
	scoreAPIKey         string
	scoreJSON           bool
	scoreUseLLMAnalyzer bool
	scoreVerbose        bool
)

func init() {
	scoreCommand.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scoreCommand.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume text or PDF file")
	scoreCommand.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	scoreCommand.Flags().StringVar(&scoreJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	scoreCommand.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API Key (only needed with --llm-analyzer)")
	scoreCommand.Flags().BoolVar(&scoreJSON, "json", false, "Print the full match result as JSON")
	scoreCommand.Flags().BoolVar(&scoreUseLLMAnalyzer, "llm-analyzer", false, "Extract requirements with the LLM instead of heuristics")
	scoreCommand.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(scoreCommand)
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if scoreConfigPath != "" {
		loaded, err := config.LoadConfig(scoreConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("resume") {
		cfg.Resume = scoreResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = scoreJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = scoreJobURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = scoreAPIKey
	}
	if cmd.Flags().Changed("llm-analyzer") {
		cfg.UseLLMAnalyzer = scoreUseLLMAnalyzer
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = scoreVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Default())
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}

	if cfg.UseLLMAnalyzer && cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.APIKey == "" {
			return fmt.Errorf("--llm-analyzer requires GEMINI_API_KEY or --api-key")
		}
	}

	result, err := pipeline.RunScore(ctx, pipeline.FromConfig(cfg))
	if err != nil {
		return err
	}

	if scoreJSON {
		data, err := json.MarshalIndent(struct {
			OverallScore float64 `json:"overall_score"`
			Requirements any     `json:"requirements"`
			Gaps         any     `json:"gaps"`
			Warnings     any     `json:"warnings,omitempty"`
		}{
			OverallScore: result.Match.OverallScore,
			Requirements: result.Match.Requirements,
			Gaps:         result.Match.Gaps,
			Warnings:     result.Warnings,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal match result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRequirements(result.Requirements)
	printer.PrintMatchResult(&result.Match)
	return nil
}

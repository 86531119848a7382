// Package pipeline provides the high-level orchestration for the resume
// tailoring process: ingest, segment, extract, analyze, score, tailor,
// assemble, render.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-agent/internal/analyzing"
	"github.com/jonathan/resume-agent/internal/assembly"
	"github.com/jonathan/resume-agent/internal/config"
	"github.com/jonathan/resume-agent/internal/extraction"
	"github.com/jonathan/resume-agent/internal/ingestion"
	"github.com/jonathan/resume-agent/internal/llm"
	"github.com/jonathan/resume-agent/internal/llmcache"
	"github.com/jonathan/resume-agent/internal/matching"
	"github.com/jonathan/resume-agent/internal/observability"
	"github.com/jonathan/resume-agent/internal/rendering"
	"github.com/jonathan/resume-agent/internal/segmenting"
	"github.com/jonathan/resume-agent/internal/tailoring"
	"github.com/jonathan/resume-agent/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline. Text fields
// override path fields when both are set, which lets tests and API callers
// inject content directly.
type RunOptions struct {
	ResumePath string
	ResumeText string
	JobPath    string
	JobURL     string
	JobText    string

	APIKey         string
	DatabaseURL    string
	UseLLMAnalyzer bool
	Verbose        bool
	Format         string

	FanOut              int
	MaxRetries          int
	MaxCandidatesPerGap int
	CacheTTLSeconds     int
	Deadline            time.Duration // overall tailoring deadline; zero means none

	Synonyms          map[string][]string
	SectionVocabulary map[string][]string
	SkillVocabulary   []string

	// Client and Cache are injectable for tests; when nil, a Gemini client
	// is built from APIKey and a cache from DatabaseURL/CacheTTLSeconds
	Client llm.Client
	Cache  *llmcache.Cache

	OnProgress ProgressCallback
}

// FromConfig builds run options from a merged configuration
func FromConfig(cfg config.Config) RunOptions {
	return RunOptions{
		ResumePath:          cfg.Resume,
		JobPath:             cfg.Job,
		JobURL:              cfg.JobURL,
		APIKey:              cfg.APIKey,
		DatabaseURL:         cfg.DatabaseURL,
		UseLLMAnalyzer:      cfg.UseLLMAnalyzer,
		Verbose:             cfg.Verbose,
		Format:              cfg.Format,
		FanOut:              cfg.FanOut,
		MaxRetries:          cfg.MaxRetries,
		MaxCandidatesPerGap: cfg.MaxCandidatesPerGap,
		CacheTTLSeconds:     cfg.CacheTTLSeconds,
		Synonyms:            cfg.Synonyms,
		SectionVocabulary:   cfg.SectionVocabulary,
		SkillVocabulary:     cfg.SkillVocabulary,
	}
}

// Result holds every artifact of a pipeline run. Original and Tailored are
// independent documents so callers can diff them.
type Result struct {
	Original     *types.ResumeDocument
	Tailored     *types.ResumeDocument
	Requirements []types.JobRequirement
	Match        types.MatchResult
	Edits        []types.TailoringEdit
	SkippedEdits []types.TailoringEdit
	Warnings     []string
	Rendered     string
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// RunScore executes the pipeline up to match scoring: no LLM client is
// needed unless the LLM analyzer is requested.
func RunScore(ctx context.Context, opts RunOptions) (*Result, error) {
	return run(ctx, opts, false)
}

// RunPipeline executes the full pipeline including tailoring and assembly
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {
	return run(ctx, opts, true)
}

func run(ctx context.Context, opts RunOptions, tailor bool) (*Result, error) {
	printer := observability.NewPrinter(os.Stdout)
	result := &Result{}

	totalSteps := 5
	if tailor {
		totalSteps = 7
	}

	// Step 1: Ingest resume
	fmt.Printf("Step 1/%d: Ingesting resume...\n", totalSteps)
	resumeText, err := resolveResumeText(ctx, &opts)
	if err != nil {
		return nil, fmt.Errorf("resume ingestion failed: %w", err)
	}
	emitProgress(&opts, "ingest_resume", "resume text loaded", nil)

	// Step 2: Ingest job posting
	fmt.Printf("Step 2/%d: Ingesting job posting...\n", totalSteps)
	jobText, err := resolveJobText(ctx, &opts)
	if err != nil {
		return nil, fmt.Errorf("job ingestion failed: %w", err)
	}
	emitProgress(&opts, "ingest_job", "job text loaded", nil)

	// Step 3: Segment and extract
	fmt.Printf("Step 3/%d: Segmenting and extracting resume structure...\n", totalSteps)
	segmenter := segmenting.NewSegmenter(sectionVocabulary(opts.SectionVocabulary))
	doc := segmenter.Segment(ingestion.CleanText(resumeText))
	extraction.ExtractDocument(doc)
	result.Original = doc
	result.Warnings = doc.AllWarnings()
	if opts.Verbose {
		printer.PrintDocument(doc)
	}
	emitProgress(&opts, "extract", "resume structured", doc)

	// Step 4: Analyze job requirements
	fmt.Printf("Step 4/%d: Analyzing job requirements...\n", totalSteps)
	requirements, err := analyzeRequirements(ctx, &opts, jobText)
	if err != nil {
		return nil, err
	}
	result.Requirements = requirements
	if opts.Verbose {
		printer.PrintRequirements(requirements)
	}
	emitProgress(&opts, "analyze", fmt.Sprintf("%d requirements extracted", len(requirements)), requirements)

	// Step 5: Score the match
	fmt.Printf("Step 5/%d: Scoring resume against requirements...\n", totalSteps)
	scorer := matching.NewScorer(synonymTable(opts.Synonyms))
	result.Match = scorer.Score(doc, requirements)
	if opts.Verbose {
		printer.PrintMatchResult(&result.Match)
	}
	emitProgress(&opts, "score", fmt.Sprintf("overall score %.2f", result.Match.OverallScore), result.Match)

	if !tailor {
		result.Tailored = doc
		return finish(result, opts)
	}

	// Step 6: Tailor gaps through the LLM
	fmt.Printf("Step 6/%d: Tailoring resume for %d gaps...\n", totalSteps, len(result.Match.Gaps))
	client, ownsClient, err := resolveClient(ctx, &opts)
	if err != nil {
		return nil, err
	}
	if ownsClient {
		defer client.Close()
	}

	cache := resolveCache(ctx, &opts)
	orchestrator := tailoring.NewOrchestrator(client, cache, tailoringConfig(&opts))

	tailorCtx := ctx
	if opts.Deadline > 0 {
		var cancel context.CancelFunc
		tailorCtx, cancel = context.WithTimeout(ctx, opts.Deadline)
		defer cancel()
	}

	edits, err := orchestrator.Tailor(tailorCtx, doc, result.Match)
	if err != nil {
		return nil, err
	}
	result.Edits = edits
	if opts.Verbose {
		printer.PrintEdits(edits)
	}
	emitProgress(&opts, "tailor", fmt.Sprintf("%d edits produced", len(edits)), edits)

	// Step 7: Assemble the tailored document
	fmt.Printf("Step 7/%d: Assembling tailored resume...\n", totalSteps)
	result.Tailored, result.SkippedEdits = assembly.Assemble(doc, edits)
	emitProgress(&opts, "assemble", "tailored document assembled", nil)

	return finish(result, opts)
}

// finish renders the output document in the requested format
func finish(result *Result, opts RunOptions) (*Result, error) {
	rendered, err := rendering.Render(result.Tailored, rendering.Format(opts.Format))
	if err != nil {
		return nil, err
	}
	result.Rendered = rendered
	return result, nil
}

func resolveResumeText(ctx context.Context, opts *RunOptions) (string, error) {
	if opts.ResumeText != "" {
		return opts.ResumeText, nil
	}
	if opts.ResumePath == "" {
		return "", fmt.Errorf("no resume provided")
	}
	source, err := ingestion.SourceForPath(opts.ResumePath)
	if err != nil {
		return "", err
	}
	return source.Text(ctx)
}

func resolveJobText(ctx context.Context, opts *RunOptions) (string, error) {
	switch {
	case opts.JobText != "":
		return opts.JobText, nil
	case opts.JobURL != "":
		return ingestion.IngestJobFromURL(ctx, opts.JobURL, nil)
	case opts.JobPath != "":
		source := &ingestion.FileSource{Path: opts.JobPath}
		text, err := source.Text(ctx)
		if err != nil {
			return "", err
		}
		return ingestion.CleanText(text), nil
	default:
		return "", fmt.Errorf("no job posting provided")
	}
}

func analyzeRequirements(ctx context.Context, opts *RunOptions, jobText string) ([]types.JobRequirement, error) {
	if opts.UseLLMAnalyzer {
		client, ownsClient, err := resolveClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		if ownsClient {
			defer client.Close()
		}
		return analyzing.AnalyzeWithLLM(ctx, client, jobText)
	}
	return analyzing.NewAnalyzer(opts.SkillVocabulary).Analyze(jobText), nil
}

// resolveClient returns the configured client, building a Gemini client
// from the API key when none is injected. The second return value reports
// whether the caller owns (and must close) the client.
func resolveClient(ctx context.Context, opts *RunOptions) (llm.Client, bool, error) {
	if opts.Client != nil {
		return opts.Client, false, nil
	}
	if opts.APIKey == "" {
		return nil, false, fmt.Errorf("no LLM client configured: set an API key")
	}
	client, err := llm.NewClient(ctx, nil, opts.APIKey)
	if err != nil {
		return nil, false, err
	}
	return client, true, nil
}

// resolveCache returns the injected cache, a Postgres-backed cache when a
// database URL is configured, or a process-local cache. A database
// connection failure degrades to the local cache with a warning rather than
// failing the run.
func resolveCache(ctx context.Context, opts *RunOptions) *llmcache.Cache {
	if opts.Cache != nil {
		return opts.Cache
	}
	if opts.DatabaseURL != "" {
		store, err := llmcache.ConnectPostgres(ctx, opts.DatabaseURL)
		if err == nil {
			return llmcache.New(store)
		}
		fmt.Printf("Warning: response cache database unavailable: %v\n", err)
		fmt.Printf("Continuing with in-memory cache...\n")
	}
	return llmcache.New(llmcache.NewMemoryStore(time.Duration(opts.CacheTTLSeconds) * time.Second))
}

func tailoringConfig(opts *RunOptions) *tailoring.Config {
	cfg := tailoring.DefaultConfig()
	if opts.FanOut > 0 {
		cfg.FanOut = opts.FanOut
	}
	if opts.MaxCandidatesPerGap > 0 {
		cfg.MaxCandidatesPerGap = opts.MaxCandidatesPerGap
	}
	if opts.MaxRetries > 0 {
		cfg.Retry.MaxAttempts = opts.MaxRetries
	}
	return cfg
}

func sectionVocabulary(raw map[string][]string) segmenting.Vocabulary {
	if raw == nil {
		return nil
	}
	vocab := make(segmenting.Vocabulary, len(raw))
	for kind, headings := range raw {
		vocab[types.SectionKind(kind)] = headings
	}
	return vocab
}

func synonymTable(raw map[string][]string) matching.SynonymTable {
	if raw == nil {
		return nil
	}
	table := make(matching.SynonymTable, len(raw))
	for canonical, aliases := range raw {
		table[canonical] = aliases
	}
	return table
}

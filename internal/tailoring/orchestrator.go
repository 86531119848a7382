// Package tailoring turns match gaps into concrete resume edits by asking
// the LLM to rewrite existing entries so they foreground relevant
// experience. Rewrites are grounded: the prompt carries the original entry
// text, and requirements with no related resume content are reported as
// unactionable rather than filled with invented material. Responses are
// cached by request fingerprint, so repeated runs over the same resume/job
// pair issue no additional provider calls.
package tailoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-agent/internal/llm"
	"github.com/jonathan/resume-agent/internal/llmcache"
	"github.com/jonathan/resume-agent/internal/prompts"
	"github.com/jonathan/resume-agent/internal/schemas"
	"github.com/jonathan/resume-agent/internal/types"
)

const promptFile = "tailoring.json"

// Config controls orchestrator behavior. Zero values fall back to the
// defaults below.
type Config struct {
	// FanOut bounds concurrent in-flight LLM calls
	FanOut int
	// MaxCandidatesPerGap bounds how many entities are rewritten per gap
	MaxCandidatesPerGap int
	// Retry governs transient-failure handling per edit
	Retry RetryPolicy
}

// DefaultConfig returns the standard orchestrator configuration
func DefaultConfig() *Config {
	return &Config{
		FanOut:              4,
		MaxCandidatesPerGap: 2,
		Retry:               DefaultRetryPolicy(),
	}
}

// Orchestrator coordinates cached, retried, concurrency-bounded tailoring
// calls
type Orchestrator struct {
	client llm.Client
	cache  *llmcache.Cache
	config Config
}

// NewOrchestrator creates an orchestrator. A nil config gets defaults; a nil
// cache gets a fresh in-memory cache.
func NewOrchestrator(client llm.Client, cache *llmcache.Cache, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	if cfg.FanOut <= 0 {
		cfg.FanOut = 4
	}
	if cfg.MaxCandidatesPerGap <= 0 {
		cfg.MaxCandidatesPerGap = 2
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryPolicy()
	}
	if cache == nil {
		cache = llmcache.New(nil)
	}
	return &Orchestrator{client: client, cache: cache, config: cfg}
}

// rewriteResponse mirrors the JSON shape the rewrite prompts ask for
type rewriteResponse struct {
	ProposedText string `json:"proposed_text"`
	Rationale    string `json:"rationale"`
	Grounded     bool   `json:"grounded"`
}

// Tailor produces edits for every gap and every weakly supported
// requirement in the match result. Failures are isolated per edit: an edit
// that exhausts its retries or hits the deadline is returned as
// EditUnavailable, and gaps with no related resume content as
// EditUnactionable. The returned edits are sorted by section then entity
// index regardless of completion order. The only error returned is a
// configuration error.
func (o *Orchestrator) Tailor(ctx context.Context, resume *types.ResumeDocument, match types.MatchResult) ([]types.TailoringEdit, error) {
	if o.client == nil {
		return nil, &ConfigError{Message: "no LLM client configured"}
	}

	var edits []types.TailoringEdit
	var tasks []task

	for _, gap := range match.Gaps {
		candidates := gapCandidates(resume, gap, o.config.MaxCandidatesPerGap)
		if len(candidates) == 0 {
			edits = append(edits, types.TailoringEdit{
				ID:           uuid.NewString(),
				Requirement:  gap,
				SectionIndex: -1,
				EntityIndex:  -1,
				Status:       types.EditUnactionable,
				FailureCause: "no related content in resume to rewrite",
			})
			continue
		}
		tasks = append(tasks, candidates...)
	}

	for _, reqMatch := range match.Requirements {
		tasks = append(tasks, weakSupportTasks(resume, reqMatch)...)
	}

	results := make([]types.TailoringEdit, len(tasks))
	group := &errgroup.Group{}
	group.SetLimit(o.config.FanOut)
	for i, t := range tasks {
		group.Go(func() error {
			results[i] = o.runTask(ctx, t)
			return nil
		})
	}
	// Task funcs never return errors; failures live on the edits
	_ = group.Wait()

	edits = append(edits, results...)
	sortEdits(edits)
	return edits, nil
}

// runTask executes one (requirement, entity) rewrite through cache and
// retry. It always produces an edit; the status carries the outcome.
func (o *Orchestrator) runTask(ctx context.Context, t task) types.TailoringEdit {
	edit := types.TailoringEdit{
		ID:           uuid.NewString(),
		Requirement:  t.requirement,
		SectionIndex: t.sectionIndex,
		EntityIndex:  t.entityIndex,
		EntityID:     t.entity.ID,
		OriginalText: t.entity.Text(),
	}

	if err := ctx.Err(); err != nil {
		edit.Status = types.EditUnavailable
		edit.FailureCause = "deadline exceeded before dispatch"
		return edit
	}

	promptKey := "rewrite_bullet"
	if t.sectionKind == types.SectionSkills {
		promptKey = "rewrite_skill_line"
	}

	template, err := prompts.Get(promptFile, promptKey)
	if err != nil {
		edit.Status = types.EditUnavailable
		edit.FailureCause = fmt.Sprintf("prompt load failed: %v", err)
		return edit
	}
	version, err := prompts.Version(promptFile)
	if err != nil {
		edit.Status = types.EditUnavailable
		edit.FailureCause = fmt.Sprintf("prompt version missing: %v", err)
		return edit
	}

	prompt := prompts.Format(template, map[string]string{
		"Requirement":  requirementText(t.requirement),
		"OriginalText": edit.OriginalText,
		"Section":      string(t.sectionKind),
		"Context":      t.entity.RawText,
	})

	fingerprint := llmcache.Fingerprint(promptFile+"/"+promptKey, version, map[string]string{
		"requirement": t.requirement.Key(),
		"entity":      t.entity.RawText,
	})

	response, _, err := o.cache.GetOrFill(ctx, fingerprint, func(ctx context.Context) (string, error) {
		var out string
		err := o.config.Retry.Do(ctx, func(ctx context.Context) error {
			var genErr error
			out, genErr = o.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
			return genErr
		})
		return out, err
	})
	if err != nil {
		edit.Status = types.EditUnavailable
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			edit.FailureCause = "deadline exceeded"
		} else {
			edit.FailureCause = err.Error()
		}
		return edit
	}

	if err := schemas.ValidateJSONString(schemas.RewriteResponse, response); err != nil {
		// A bad response must not poison later runs
		_ = o.cache.Invalidate(ctx, fingerprint)
		edit.Status = types.EditUnavailable
		edit.FailureCause = fmt.Sprintf("response failed validation: %v", err)
		return edit
	}

	var parsed rewriteResponse
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		_ = o.cache.Invalidate(ctx, fingerprint)
		edit.Status = types.EditUnavailable
		edit.FailureCause = fmt.Sprintf("response parse failed: %v", err)
		return edit
	}

	if !parsed.Grounded || parsed.ProposedText == "" {
		edit.Status = types.EditUnactionable
		edit.FailureCause = "rewrite not possible without inventing facts"
		return edit
	}

	edit.Status = types.EditApplied
	edit.ProposedText = parsed.ProposedText
	edit.Rationale = parsed.Rationale
	return edit
}

// requirementText renders a requirement for prompt interpolation
func requirementText(req types.JobRequirement) string {
	if req.Evidence != "" {
		return fmt.Sprintf("%s (%s), from: %q", req.Value, req.Kind, req.Evidence)
	}
	return fmt.Sprintf("%s (%s)", req.Value, req.Kind)
}

// sortEdits orders edits by section index, then entity index, then
// requirement key so output is stable regardless of completion order
func sortEdits(edits []types.TailoringEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].SectionIndex != edits[j].SectionIndex {
			return edits[i].SectionIndex < edits[j].SectionIndex
		}
		if edits[i].EntityIndex != edits[j].EntityIndex {
			return edits[i].EntityIndex < edits[j].EntityIndex
		}
		return edits[i].Requirement.Key() < edits[j].Requirement.Key()
	})
}

package pipeline

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/jonathan/resume-agent/internal/llm"
	"github.com/jonathan/resume-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	calls    atomic.Int32
	response string
}

func (c *countingClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *countingClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	c.calls.Add(1)
	return c.response, nil
}

func (c *countingClient) GetModel(tier llm.ModelTier) string { return "counting" }
func (c *countingClient) Close() error                       { return nil }

const sampleResume = `Jane Doe
jane@example.com

EXPERIENCE
Software Engineer, Acme | Jan 2020 - Present
- Built Python services for data ingestion
`

func TestRunPipeline_PythonRustScenario(t *testing.T) {
	client := &countingClient{response: `{"proposed_text": "x", "rationale": "y", "grounded": true}`}

	result, err := RunPipeline(context.Background(), RunOptions{
		ResumeText: sampleResume,
		JobText:    "Python required. Rust required.",
		Client:     client,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.Match.OverallScore, 1e-9)
	assert.Equal(t, 1, result.Match.SatisfiedCount())
	require.Len(t, result.Match.Gaps, 1)
	assert.Equal(t, "rust", result.Match.Gaps[0].Value)

	require.Len(t, result.Edits, 1)
	assert.Equal(t, types.EditUnactionable, result.Edits[0].Status)
	assert.Equal(t, int32(0), client.calls.Load(), "unactionable gap must not reach the LLM")

	assert.NotNil(t, result.Original)
	assert.NotNil(t, result.Tailored)
	assert.NotEmpty(t, result.Rendered)
}

func TestRunPipeline_AppliedEditLandsInOutput(t *testing.T) {
	client := &countingClient{response: `{"proposed_text": "Deployed Go services on Kubernetes clusters", "rationale": "names the platform", "grounded": true}`}

	result, err := RunPipeline(context.Background(), RunOptions{
		ResumeText: "EXPERIENCE\nEngineer, Acme | 2020 - Present\n- Deployed container workloads across three regions\n",
		JobText:    "Kubernetes container orchestration experience required.",
		Client:     client,
	})
	require.NoError(t, err)

	var applied int
	for _, edit := range result.Edits {
		if edit.Status == types.EditApplied {
			applied++
		}
	}
	require.Positive(t, applied)
	assert.Contains(t, result.Rendered, "Deployed Go services on Kubernetes clusters")

	// The original document is untouched by assembly
	assert.NotContains(t, result.Original.Sections[0].Entities[0].RawText, "Deployed Go services")
}

func TestRunScore_NoClientNeeded(t *testing.T) {
	result, err := RunScore(context.Background(), RunOptions{
		ResumeText: sampleResume,
		JobText:    "Python required.",
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.Match.OverallScore)
	assert.Empty(t, result.Match.Gaps)
	assert.Nil(t, result.Edits)
}

func TestRunPipeline_MissingResume(t *testing.T) {
	_, err := RunPipeline(context.Background(), RunOptions{JobText: "Python required."})
	assert.Error(t, err)
}

func TestRunPipeline_MissingJob(t *testing.T) {
	_, err := RunPipeline(context.Background(), RunOptions{ResumeText: sampleResume})
	assert.Error(t, err)
}

func TestRunPipeline_ProgressEvents(t *testing.T) {
	client := &countingClient{response: `{"proposed_text": "x", "rationale": "y", "grounded": true}`}

	var steps []string
	_, err := RunPipeline(context.Background(), RunOptions{
		ResumeText: sampleResume,
		JobText:    "Python required.",
		Client:     client,
		OnProgress: func(event ProgressEvent) {
			steps = append(steps, event.Step)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ingest_resume", "ingest_job", "extract", "analyze", "score", "tailor", "assemble"}, steps)
}

func TestRunPipeline_JSONFormat(t *testing.T) {
	client := &countingClient{response: `{"proposed_text": "x", "rationale": "y", "grounded": true}`}

	result, err := RunPipeline(context.Background(), RunOptions{
		ResumeText: sampleResume,
		JobText:    "Python required.",
		Client:     client,
		Format:     "json",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Rendered, "\"sections\"")
}

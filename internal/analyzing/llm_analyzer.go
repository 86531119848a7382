package analyzing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-agent/internal/llm"
	"github.com/jonathan/resume-agent/internal/prompts"
	"github.com/jonathan/resume-agent/internal/schemas"
	"github.com/jonathan/resume-agent/internal/types"
)

// llmRequirement mirrors the JSON shape the extraction prompt asks for
type llmRequirement struct {
	Kind      string  `json:"kind"`
	Value     string  `json:"value"`
	Weight    float64 `json:"weight"`
	Mandatory bool    `json:"mandatory"`
	Evidence  string  `json:"evidence"`
}

type llmRequirementsResponse struct {
	Requirements []llmRequirement `json:"requirements"`
}

var llmKinds = map[string]types.RequirementKind{
	"SKILL":            types.RequirementSkill,
	"EXPERIENCE_YEARS": types.RequirementExperienceYears,
	"QUALIFICATION":    types.RequirementQualification,
	"KEYWORD":          types.RequirementKeyword,
}

// AnalyzeWithLLM extracts requirements from job posting text using the LLM.
// The response is schema-validated before use; a response that fails
// validation is an AnalysisError, never partially consumed.
func AnalyzeWithLLM(ctx context.Context, client llm.Client, jobText string) ([]types.JobRequirement, error) {
	template, err := prompts.Get("analyzing.json", "extract_requirements")
	if err != nil {
		return nil, &AnalysisError{Message: "failed to load extraction prompt", Cause: err}
	}

	prompt := prompts.Format(template, map[string]string{"JobText": jobText})

	response, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &AnalysisError{Message: "requirement extraction call failed", Cause: err}
	}

	if err := schemas.ValidateJSONString(schemas.RequirementsResponse, response); err != nil {
		return nil, &AnalysisError{Message: "requirement extraction response failed validation", Cause: err}
	}

	var parsed llmRequirementsResponse
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return nil, &AnalysisError{Message: "failed to parse extraction response", Cause: err}
	}

	requirements := make([]types.JobRequirement, 0, len(parsed.Requirements))
	for _, raw := range parsed.Requirements {
		kind, ok := llmKinds[raw.Kind]
		if !ok {
			continue
		}
		value := strings.TrimSpace(raw.Value)
		if value == "" {
			continue
		}
		weight := raw.Weight
		if weight <= 0 {
			weight = types.DefaultRequirementWeight
		}
		requirements = append(requirements, types.JobRequirement{
			Kind:      kind,
			Value:     value,
			Weight:    weight,
			Mandatory: raw.Mandatory,
			Evidence:  raw.Evidence,
		})
	}

	return Deduplicate(requirements), nil
}

package types

// MatchEvidence points at a resume entity that supports a requirement.
// Section and entity indexes are kept so downstream edits can be sorted by
// a stable document-order key regardless of completion order.
type MatchEvidence struct {
	SectionIndex int    `json:"section_index"`
	EntityIndex  int    `json:"entity_index"`
	EntityID     string `json:"entity_id"`
	EntityText   string `json:"entity_text"`
	Exact        bool   `json:"exact"` // direct text match rather than a synonym alias
}

// RequirementMatch records whether one requirement is satisfied and by what
type RequirementMatch struct {
	Requirement        JobRequirement  `json:"requirement"`
	Satisfied          bool            `json:"satisfied"`
	SupportingEntities []MatchEvidence `json:"supporting_entities,omitempty"`
}

// MatchResult is the outcome of scoring a resume against job requirements.
// OverallScore is the weighted coverage fraction in [0,1]; Gaps is exactly
// the subset of mandatory requirements that are unsatisfied.
type MatchResult struct {
	OverallScore float64            `json:"overall_score"`
	Requirements []RequirementMatch `json:"requirements"`
	Gaps         []JobRequirement   `json:"gaps,omitempty"`
}

// SatisfiedCount returns how many requirements are satisfied
func (m *MatchResult) SatisfiedCount() int {
	count := 0
	for _, rm := range m.Requirements {
		if rm.Satisfied {
			count++
		}
	}
	return count
}

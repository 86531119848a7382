package matching

import (
	"strings"

	"github.com/jonathan/resume-agent/internal/types"
)

// Scorer matches requirements against resume entities
type Scorer struct {
	synonyms SynonymTable
}

// NewScorer creates a scorer. A nil table gets the default synonyms.
func NewScorer(synonyms SynonymTable) *Scorer {
	if synonyms == nil {
		synonyms = DefaultSynonyms
	}
	return &Scorer{synonyms: synonyms}
}

// Score evaluates how well a resume covers the given requirements. Every
// entity matching a requirement is listed as supporting evidence, exact
// matches before alias matches. The overall score is
// sum(weights of satisfied) / sum(all weights), clamped to [0,1]; zero
// requirements score 1.0 since there is no unmet demand. Gaps are exactly
// the unsatisfied mandatory requirements.
func (s *Scorer) Score(resume *types.ResumeDocument, requirements []types.JobRequirement) types.MatchResult {
	result := types.MatchResult{
		Requirements: make([]types.RequirementMatch, 0, len(requirements)),
	}

	var totalWeight, satisfiedWeight float64

	for _, req := range requirements {
		match := types.RequirementMatch{Requirement: req}
		match.SupportingEntities = s.findSupport(resume, req)
		match.Satisfied = len(match.SupportingEntities) > 0

		totalWeight += req.Weight
		if match.Satisfied {
			satisfiedWeight += req.Weight
		} else if req.Mandatory {
			result.Gaps = append(result.Gaps, req)
		}

		result.Requirements = append(result.Requirements, match)
	}

	if totalWeight == 0 {
		result.OverallScore = 1.0
	} else {
		result.OverallScore = clamp01(satisfiedWeight / totalWeight)
	}

	return result
}

// findSupport collects every entity whose text mentions the requirement
// value or one of its synonyms. Exact-term matches are ordered before alias
// matches.
func (s *Scorer) findSupport(resume *types.ResumeDocument, req types.JobRequirement) []types.MatchEvidence {
	terms := s.synonyms.expansions(req.Value)

	var exact, aliased []types.MatchEvidence
	for sectionIdx := range resume.Sections {
		section := &resume.Sections[sectionIdx]
		for entityIdx := range section.Entities {
			entity := &section.Entities[entityIdx]
			text := strings.ToLower(entity.Text())

			for i, term := range terms {
				if !containsTerm(text, term) {
					continue
				}
				evidence := types.MatchEvidence{
					SectionIndex: sectionIdx,
					EntityIndex:  entityIdx,
					EntityID:     entity.ID,
					EntityText:   entity.Text(),
					Exact:        i == 0,
				}
				if i == 0 {
					exact = append(exact, evidence)
				} else {
					aliased = append(aliased, evidence)
				}
				break
			}
		}
	}

	return append(exact, aliased...)
}

// containsTerm reports whether lowercased text mentions term bounded by
// non-identifier characters, so "go" does not match inside "django".
func containsTerm(text, term string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start

		before := idx == 0 || !isTermChar(rune(text[idx-1]))
		afterIdx := idx + len(term)
		after := afterIdx >= len(text) || !isTermChar(rune(text[afterIdx]))
		if before && after {
			return true
		}
		start = idx + 1
	}
}

func isTermChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '+', r == '#':
		return true
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

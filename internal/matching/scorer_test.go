package matching

import (
	"testing"

	"github.com/jonathan/resume-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resumeWithSkills(skills ...string) *types.ResumeDocument {
	section := types.Section{Kind: types.SectionSkills, Heading: "SKILLS"}
	for i, name := range skills {
		section.Entities = append(section.Entities, types.Entity{
			ID:         string(rune('a' + i)),
			Kind:       types.EntitySkill,
			RawText:    name,
			Confidence: types.ConfidenceHigh,
			Skill:      &types.SkillDetail{Name: name},
		})
	}
	return &types.ResumeDocument{Sections: []types.Section{section}}
}

func skillRequirement(value string, weight float64, mandatory bool) types.JobRequirement {
	return types.JobRequirement{
		Kind:      types.RequirementSkill,
		Value:     value,
		Weight:    weight,
		Mandatory: mandatory,
	}
}

func TestScore_ZeroRequirements(t *testing.T) {
	scorer := NewScorer(nil)
	result := scorer.Score(resumeWithSkills("Go"), nil)

	assert.Equal(t, 1.0, result.OverallScore)
	assert.Empty(t, result.Gaps)
}

func TestScore_WeightNormalization(t *testing.T) {
	scorer := NewScorer(nil)
	resume := resumeWithSkills("Python")

	result := scorer.Score(resume, []types.JobRequirement{
		skillRequirement("python", 1.0, true),
		skillRequirement("rust", 1.0, true),
	})

	assert.InDelta(t, 0.5, result.OverallScore, 1e-9)
	assert.Equal(t, 1, result.SatisfiedCount())
	require.Len(t, result.Gaps, 1)
	assert.Equal(t, "rust", result.Gaps[0].Value)
}

func TestScore_GapsAreMandatoryOnly(t *testing.T) {
	scorer := NewScorer(nil)
	resume := resumeWithSkills("Python")

	result := scorer.Score(resume, []types.JobRequirement{
		skillRequirement("rust", 1.0, true),
		skillRequirement("scala", 0.5, false),
	})

	require.Len(t, result.Gaps, 1)
	assert.Equal(t, "rust", result.Gaps[0].Value)
	assert.Equal(t, 0.0, result.OverallScore)
}

func TestScore_SynonymMatch(t *testing.T) {
	scorer := NewScorer(nil)
	resume := resumeWithSkills("golang", "k8s")

	result := scorer.Score(resume, []types.JobRequirement{
		skillRequirement("Go", 1.0, true),
		skillRequirement("Kubernetes", 1.0, true),
	})

	assert.Equal(t, 1.0, result.OverallScore)
	assert.Empty(t, result.Gaps)
	for _, match := range result.Requirements {
		require.NotEmpty(t, match.SupportingEntities)
		assert.False(t, match.SupportingEntities[0].Exact)
	}
}

func TestScore_ExactBeatsAlias(t *testing.T) {
	scorer := NewScorer(nil)
	section := types.Section{Kind: types.SectionSkills}
	section.Entities = []types.Entity{
		{ID: "alias", RawText: "golang", Kind: types.EntitySkill, Skill: &types.SkillDetail{Name: "golang"}},
		{ID: "exact", RawText: "Go", Kind: types.EntitySkill, Skill: &types.SkillDetail{Name: "Go"}},
	}
	resume := &types.ResumeDocument{Sections: []types.Section{section}}

	result := scorer.Score(resume, []types.JobRequirement{skillRequirement("go", 1.0, true)})

	require.Len(t, result.Requirements, 1)
	support := result.Requirements[0].SupportingEntities
	require.Len(t, support, 2)
	assert.Equal(t, "exact", support[0].EntityID)
	assert.True(t, support[0].Exact)
	assert.Equal(t, "alias", support[1].EntityID)
	assert.False(t, support[1].Exact)
}

func TestScore_AllSupportingEntitiesListed(t *testing.T) {
	scorer := NewScorer(nil)
	resume := &types.ResumeDocument{Sections: []types.Section{
		{
			Kind: types.SectionExperience,
			Entities: []types.Entity{
				{ID: "r1", Kind: types.EntityRole, RawText: "Built Python services"},
				{ID: "r2", Kind: types.EntityRole, RawText: "Python data pipelines"},
			},
		},
	}}

	result := scorer.Score(resume, []types.JobRequirement{skillRequirement("python", 1.0, true)})

	require.Len(t, result.Requirements, 1)
	assert.Len(t, result.Requirements[0].SupportingEntities, 2)
}

func TestScore_WordBoundaries(t *testing.T) {
	scorer := NewScorer(nil)
	resume := &types.ResumeDocument{Sections: []types.Section{
		{
			Kind:     types.SectionExperience,
			Entities: []types.Entity{{ID: "e", Kind: types.EntityRole, RawText: "Django web development"}},
		},
	}}

	result := scorer.Score(resume, []types.JobRequirement{skillRequirement("go", 1.0, true)})

	assert.False(t, result.Requirements[0].Satisfied)
	require.Len(t, result.Gaps, 1)
}

func TestScore_WeightProportions(t *testing.T) {
	scorer := NewScorer(nil)
	resume := resumeWithSkills("Go")

	result := scorer.Score(resume, []types.JobRequirement{
		skillRequirement("go", 3.0, true),
		skillRequirement("rust", 1.0, false),
	})

	assert.InDelta(t, 0.75, result.OverallScore, 1e-9)
}

func TestExpansions_ExactFirst(t *testing.T) {
	terms := DefaultSynonyms.expansions("JS")
	require.NotEmpty(t, terms)
	assert.Equal(t, "js", terms[0])
	assert.Contains(t, terms, "javascript")
}

func TestExpansions_UnknownTermStandsAlone(t *testing.T) {
	terms := DefaultSynonyms.expansions("fortran")
	assert.Equal(t, []string{"fortran"}, terms)
}

package observability

import (
	"bytes"
	"testing"

	"github.com/jonathan/resume-agent/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintMatchResult(&types.MatchResult{
		OverallScore: 0.5,
		Requirements: []types.RequirementMatch{
			{Requirement: types.JobRequirement{Kind: types.RequirementSkill, Value: "python"}, Satisfied: true},
			{Requirement: types.JobRequirement{Kind: types.RequirementSkill, Value: "rust"}},
		},
		Gaps: []types.JobRequirement{{Kind: types.RequirementSkill, Value: "rust", Mandatory: true}},
	})

	out := buf.String()
	assert.Contains(t, out, "MATCH RESULT")
	assert.Contains(t, out, "0.50")
	assert.Contains(t, out, "rust")
}

func TestPrintMatchResult_NilSafe(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatchResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintEdits_DistinguishesStates(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintEdits([]types.TailoringEdit{
		{Requirement: types.JobRequirement{Value: "go"}, Status: types.EditApplied, ProposedText: "rewritten"},
		{Requirement: types.JobRequirement{Value: "rust"}, Status: types.EditUnavailable, FailureCause: "rate limited"},
		{Requirement: types.JobRequirement{Value: "cobol"}, Status: types.EditUnactionable, FailureCause: "no related content"},
	})

	out := buf.String()
	assert.Contains(t, out, "Applied 1, unavailable 1, unactionable 1")
}

func TestPrintEdits_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintEdits(nil)
	assert.Empty(t, buf.String())
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintDocument(&types.ResumeDocument{Sections: []types.Section{
		{Kind: types.SectionSkills, Heading: "SKILLS", Entities: []types.Entity{{ID: "a"}}},
	}})

	out := buf.String()
	assert.Contains(t, out, "PARSED RESUME")
	assert.Contains(t, out, "SKILLS")
}

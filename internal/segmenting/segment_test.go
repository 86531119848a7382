package segmenting

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-agent/internal/ingestion"
	"github.com/jonathan/resume-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

SUMMARY
Backend engineer with eight years of experience.

EXPERIENCE
Senior Engineer, Acme Corp
Jan 2020 - Present
- Built Go services
- Led a team of four

EDUCATION
B.S. Computer Science, State University, 2015

SKILLS
Go, Python, Kubernetes, PostgreSQL`

func TestSegment_LabelsKnownSections(t *testing.T) {
	doc := NewSegmenter(nil).Segment(sampleResume)

	kinds := make([]types.SectionKind, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []types.SectionKind{
		types.SectionContact,
		types.SectionSummary,
		types.SectionExperience,
		types.SectionEducation,
		types.SectionSkills,
	}, kinds)
}

func TestSegment_PreambleBecomesContact(t *testing.T) {
	doc := NewSegmenter(nil).Segment(sampleResume)

	require.NotEmpty(t, doc.Sections)
	contact := doc.Sections[0]
	assert.Equal(t, types.SectionContact, contact.Kind)
	assert.Contains(t, contact.RawText, "Jane Doe")
	assert.Contains(t, contact.RawText, "jane.doe@example.com")
	assert.Empty(t, contact.Heading)
}

func TestSegment_UnknownHeadingBecomesOther(t *testing.T) {
	text := "SUMMARY\nSome summary.\n\nHOBBIES\nChess and hiking."
	doc := NewSegmenter(nil).Segment(text)

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, types.SectionSummary, doc.Sections[0].Kind)
	assert.Equal(t, types.SectionOther, doc.Sections[1].Kind)
	assert.Equal(t, "HOBBIES", doc.Sections[1].Heading)
}

func TestSegment_EmptyInput(t *testing.T) {
	doc := NewSegmenter(nil).Segment("")
	assert.Empty(t, doc.Sections)

	doc = NewSegmenter(nil).Segment("   \n\n  ")
	assert.Empty(t, doc.Sections)
}

func TestSegment_RoundTripReproducesBoundaries(t *testing.T) {
	segmenter := NewSegmenter(nil)
	doc := segmenter.Segment(sampleResume)

	var parts []string
	for _, s := range doc.Sections {
		parts = append(parts, s.RawText)
	}
	recombined := strings.Join(parts, "\n")

	redone := segmenter.Segment(recombined)
	require.Len(t, redone.Sections, len(doc.Sections))
	for i := range doc.Sections {
		assert.Equal(t, doc.Sections[i].Kind, redone.Sections[i].Kind, "section %d kind", i)
		assert.Equal(t, doc.Sections[i].Heading, redone.Sections[i].Heading, "section %d heading", i)
		assert.Equal(t,
			ingestion.NormalizeWhitespace(doc.Sections[i].RawText),
			ingestion.NormalizeWhitespace(redone.Sections[i].RawText),
			"section %d text", i)
	}
}

func TestSegment_RoundTripPreservesFullText(t *testing.T) {
	segmenter := NewSegmenter(nil)
	doc := segmenter.Segment(sampleResume)

	var parts []string
	for _, s := range doc.Sections {
		parts = append(parts, s.RawText)
	}
	recombined := strings.Join(parts, "\n")

	assert.Equal(t,
		ingestion.NormalizeWhitespace(sampleResume),
		ingestion.NormalizeWhitespace(recombined))
}

func TestSegment_MixedCaseHeadingRequiresVocabulary(t *testing.T) {
	// "Experience" in mixed case matches the vocabulary exactly
	doc := NewSegmenter(nil).Segment("Experience\n- Did things")
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, types.SectionExperience, doc.Sections[0].Kind)

	// A mixed-case sentence is body text, not a heading
	doc = NewSegmenter(nil).Segment("Experience\nI have experience with Go programming")
	require.Len(t, doc.Sections, 1)
	assert.Contains(t, doc.Sections[0].RawText, "Go programming")
}

func TestSegment_CustomVocabulary(t *testing.T) {
	vocab := Vocabulary{
		types.SectionSkills: {"tech stack"},
	}
	doc := NewSegmenter(vocab).Segment("Tech Stack\nGo, Rust")
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, types.SectionSkills, doc.Sections[0].Kind)
}

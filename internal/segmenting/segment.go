// Package segmenting splits raw resume text into labeled sections using
// heading-detection heuristics: a known section-title vocabulary,
// capitalization, and line shape. Unrecognized headings become OTHER
// sections rather than failing.
package segmenting

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-agent/internal/types"
)

// maxHeadingWords bounds how many words a line may have to count as a heading
const maxHeadingWords = 5

// Vocabulary maps a section kind to the heading phrases that identify it.
// Matching is case-insensitive.
type Vocabulary map[types.SectionKind][]string

// DefaultVocabulary returns the built-in section-title vocabulary
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		types.SectionContact: {"contact", "contact information", "personal details"},
		types.SectionSummary: {"summary", "professional summary", "objective", "profile", "about", "about me"},
		types.SectionExperience: {
			"experience", "work experience", "employment", "work history",
			"professional experience", "career history",
		},
		types.SectionEducation: {
			"education", "academic background", "qualifications",
			"academic qualifications",
		},
		types.SectionSkills: {
			"skills", "technical skills", "core competencies", "competencies",
			"expertise", "technologies",
		},
		types.SectionOther: {
			"projects", "project experience", "key projects", "notable projects",
			"certifications", "awards", "publications", "volunteering", "interests",
		},
	}
}

// Segmenter splits resume text into sections
type Segmenter struct {
	vocab Vocabulary
}

// NewSegmenter creates a Segmenter. A nil vocabulary uses the default.
func NewSegmenter(vocab Vocabulary) *Segmenter {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Segmenter{vocab: vocab}
}

// Segment splits raw resume text into a document of labeled sections.
// Each section's RawText includes its heading line, so re-segmenting the
// concatenation of all sections reproduces the same boundaries. Text before
// the first recognized heading becomes a CONTACT section (resumes open with
// name and contact details). Empty input yields a document with no sections.
func (s *Segmenter) Segment(rawText string) *types.ResumeDocument {
	doc := &types.ResumeDocument{}
	if strings.TrimSpace(rawText) == "" {
		return doc
	}

	lines := strings.Split(rawText, "\n")

	var current *types.Section
	flush := func() {
		if current != nil {
			current.RawText = strings.TrimRight(current.RawText, "\n")
			doc.Sections = append(doc.Sections, *current)
			current = nil
		}
	}

	for _, line := range lines {
		kind, isHeading := s.classifyHeading(line)
		if isHeading {
			flush()
			current = &types.Section{
				Kind:    kind,
				Heading: strings.TrimSpace(line),
				RawText: line + "\n",
			}
			continue
		}

		if current == nil {
			// Preamble before the first heading: name, email, phone
			current = &types.Section{Kind: types.SectionContact}
		}
		current.RawText += line + "\n"
	}
	flush()

	return doc
}

// classifyHeading decides whether a line is a section heading and, if so,
// which kind it introduces. Unknown headings (short all-caps lines) map to
// SectionOther.
func (s *Segmenter) classifyHeading(line string) (types.SectionKind, bool) {
	trimmed := strings.TrimSpace(strings.Trim(strings.TrimSpace(line), ":-—"))
	if trimmed == "" {
		return "", false
	}

	words := strings.Fields(trimmed)
	if len(words) > maxHeadingWords {
		return "", false
	}

	lower := strings.ToLower(trimmed)

	// Exact vocabulary match wins over shape heuristics
	for _, kind := range []types.SectionKind{
		types.SectionContact, types.SectionSummary, types.SectionExperience,
		types.SectionEducation, types.SectionSkills, types.SectionOther,
	} {
		for _, pattern := range s.vocab[kind] {
			if lower == pattern {
				return kind, true
			}
		}
	}

	// All-caps short lines are headings even when the vocabulary does not
	// know them; the kind falls back to OTHER via the vocabulary, or OTHER
	// outright.
	if isAllCaps(trimmed) {
		for _, kind := range []types.SectionKind{
			types.SectionContact, types.SectionSummary, types.SectionExperience,
			types.SectionEducation, types.SectionSkills, types.SectionOther,
		} {
			for _, pattern := range s.vocab[kind] {
				if strings.Contains(lower, pattern) {
					return kind, true
				}
			}
		}
		return types.SectionOther, true
	}

	return "", false
}

// isAllCaps reports whether a line's letters are all uppercase and it
// contains at least one letter
func isAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

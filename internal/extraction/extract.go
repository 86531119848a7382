// Package extraction turns labeled resume sections into structured entities:
// dated roles, skills, education records. Extraction is a pure function of
// its input section, with no network or disk access. Ambiguous lines are
// retained as low-confidence fragment entities instead of being dropped, so
// downstream matching never silently loses information.
package extraction

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-agent/internal/types"
)

// ExtractSection extracts entities from one section based on its kind.
// Sections without a specialized extractor keep their lines as fragments.
func ExtractSection(section types.Section) []types.Entity {
	switch section.Kind {
	case types.SectionExperience:
		return extractRoles(section)
	case types.SectionSkills:
		return extractSkills(section)
	case types.SectionEducation:
		return extractEducation(section)
	case types.SectionSummary, types.SectionContact, types.SectionOther:
		return extractFragments(section)
	default:
		return extractFragments(section)
	}
}

// ExtractDocument fills every section of the document with extracted
// entities. Sections are processed independently.
func ExtractDocument(doc *types.ResumeDocument) {
	for i := range doc.Sections {
		doc.Sections[i].Entities = ExtractSection(doc.Sections[i])
	}
}

// bodyLines returns the section's content lines, skipping the heading line
func bodyLines(section types.Section) []string {
	lines := strings.Split(section.RawText, "\n")
	if len(lines) > 0 && section.Heading != "" && strings.TrimSpace(lines[0]) == section.Heading {
		lines = lines[1:]
	}
	return lines
}

// extractFragments keeps each non-empty line as a fragment entity. Summary
// and unclassified sections still participate in matching this way.
func extractFragments(section types.Section) []types.Entity {
	var entities []types.Entity
	for _, line := range bodyLines(section) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		entities = append(entities, types.Entity{
			ID:         uuid.NewString(),
			Kind:       types.EntityFragment,
			RawText:    trimmed,
			Confidence: types.ConfidenceLow,
		})
	}
	return entities
}

// stripBullet removes a leading bullet marker from a line
func stripBullet(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"- ", "* ", "• ", "· ", "– "} {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix)), true
		}
	}
	return trimmed, false
}

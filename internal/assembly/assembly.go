// Package assembly applies tailoring edits to a resume document. Assembly
// is pure: the input document is cloned, never mutated, so callers can
// compare the original and tailored versions as independent values.
package assembly

import (
	"github.com/jonathan/resume-agent/internal/types"
)

// Assemble produces a new document with every applied edit's target entity
// text replaced by the proposed text. Edits with any other status are
// ignored here; they exist for reporting. Edits whose target no longer
// matches the document (stale indices or a changed entity ID) are skipped
// and returned in the second value rather than applied blindly.
//
// Structured role/skill fields are extraction artifacts of the original
// text; matching has already consumed them, and rendering reads entity raw
// text, so only the raw text is rewritten.
func Assemble(resume *types.ResumeDocument, edits []types.TailoringEdit) (*types.ResumeDocument, []types.TailoringEdit) {
	assembled := resume.Clone()

	var skipped []types.TailoringEdit
	for _, edit := range edits {
		if edit.Status != types.EditApplied {
			continue
		}

		entity, ok := entityAt(assembled, edit.SectionIndex, edit.EntityIndex)
		if !ok || (edit.EntityID != "" && entity.ID != edit.EntityID) {
			skipped = append(skipped, edit)
			continue
		}

		entity.RawText = edit.ProposedText
		if entity.Kind == types.EntitySkill && entity.Skill != nil {
			entity.Skill.Name = edit.ProposedText
		}
	}

	return assembled, skipped
}

// entityAt returns the addressed entity, if the indices are in range
func entityAt(doc *types.ResumeDocument, sectionIndex, entityIndex int) (*types.Entity, bool) {
	if sectionIndex < 0 || sectionIndex >= len(doc.Sections) {
		return nil, false
	}
	section := &doc.Sections[sectionIndex]
	if entityIndex < 0 || entityIndex >= len(section.Entities) {
		return nil, false
	}
	return &section.Entities[entityIndex], true
}

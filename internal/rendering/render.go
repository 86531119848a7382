// Package rendering turns an assembled resume document back into output
// formats. The text renderer reads entity raw text, which is where assembly
// lands tailored rewrites; sections without extracted entities fall back to
// their original body text.
package rendering

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-agent/internal/types"
)

// Format identifies an output format
type Format string

const (
	// FormatText renders plain text suitable for pasting into an editor
	FormatText Format = "text"
	// FormatJSON renders the full structured document
	FormatJSON Format = "json"
)

// Render renders a document in the requested format
func Render(doc *types.ResumeDocument, format Format) (string, error) {
	switch format {
	case FormatText, "":
		return RenderText(doc), nil
	case FormatJSON:
		return RenderJSON(doc)
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

// RenderText renders the document as plain text. Section headings are kept
// as written; each entity contributes its raw text.
func RenderText(doc *types.ResumeDocument) string {
	var sb strings.Builder

	for i, section := range doc.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		if section.Heading != "" {
			sb.WriteString(section.Heading)
			sb.WriteString("\n")
		}

		if len(section.Entities) == 0 {
			sb.WriteString(sectionBody(section))
			sb.WriteString("\n")
			continue
		}

		for _, entity := range section.Entities {
			text := entity.RawText
			if entity.Kind == types.EntitySkill && entity.Skill != nil && entity.Skill.Name != "" {
				text = entity.Skill.Name
				if entity.Skill.Level != "" {
					text += " (" + entity.Skill.Level + ")"
				}
			}
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// RenderJSON renders the full structured document as indented JSON
func RenderJSON(doc *types.ResumeDocument) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render document JSON: %w", err)
	}
	return string(data), nil
}

// sectionBody returns a section's raw text without its heading line
func sectionBody(section types.Section) string {
	if section.Heading == "" {
		return section.RawText
	}
	body := strings.TrimPrefix(section.RawText, section.Heading)
	return strings.TrimPrefix(body, "\n")
}

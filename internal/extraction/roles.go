package extraction

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-agent/internal/types"
)

// extractRoles recognizes role blocks in an EXPERIENCE section. A block
// starts at a date-range line; the title/organization come from the same
// line or the immediately preceding line. Bullets attach to the current
// role until the next date range or the section end.
func extractRoles(section types.Section) []types.Entity {
	lines := bodyLines(section)

	var entities []types.Entity
	var current *types.Entity
	var pendingHeader string // candidate title/org line seen before its date range

	flush := func() {
		if current != nil {
			entities = append(entities, *current)
			current = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		text, isBullet := stripBullet(line)

		if !isBullet && HasDateRange(trimmed) {
			flush()

			start, end, _ := ParseDateRange(trimmed)
			header := stripDateRange(trimmed)
			raw := trimmed
			if header == "" && pendingHeader != "" {
				header = pendingHeader
				raw = pendingHeader + "\n" + trimmed
			}
			pendingHeader = ""

			title, org := splitTitleOrganization(header)
			role := &types.RoleDetail{
				Title:        title,
				Organization: org,
				StartDate:    start,
				EndDate:      end,
			}

			entity := types.Entity{
				ID:         uuid.NewString(),
				Kind:       types.EntityRole,
				RawText:    raw,
				Confidence: types.ConfidenceHigh,
				Role:       role,
			}
			if title == "" {
				entity.Confidence = types.ConfidenceLow
				entity.Warnings = append(entity.Warnings, "role has dates but no recognizable title")
			}
			current = &entity
			continue
		}

		if isBullet {
			if current != nil {
				current.Role.Bullets = append(current.Role.Bullets, text)
				current.RawText += "\n" + strings.TrimSpace(line)
				continue
			}
			// A bullet with no preceding role block is kept, not dropped
			entities = append(entities, types.Entity{
				ID:         uuid.NewString(),
				Kind:       types.EntityFragment,
				RawText:    text,
				Confidence: types.ConfidenceLow,
				Warnings:   []string{"bullet found outside any role block"},
			})
			continue
		}

		// Plain line: header candidate for the next date-range line, or
		// continuation text of the current role.
		if current == nil {
			if pendingHeader != "" {
				entities = append(entities, types.Entity{
					ID:         uuid.NewString(),
					Kind:       types.EntityFragment,
					RawText:    pendingHeader,
					Confidence: types.ConfidenceLow,
					Warnings:   []string{"line in experience section matched no role pattern"},
				})
			}
			pendingHeader = trimmed
		} else {
			current.Role.Bullets = append(current.Role.Bullets, trimmed)
			current.RawText += "\n" + trimmed
		}
	}

	flush()
	if pendingHeader != "" {
		entities = append(entities, types.Entity{
			ID:         uuid.NewString(),
			Kind:       types.EntityFragment,
			RawText:    pendingHeader,
			Confidence: types.ConfidenceLow,
			Warnings:   []string{"line in experience section matched no role pattern"},
		})
	}

	return entities
}

// splitTitleOrganization splits a role header like "Senior Engineer, Acme"
// or "Senior Engineer at Acme" into title and organization. When no
// separator is present the whole header is the title.
func splitTitleOrganization(header string) (title, org string) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ""
	}

	for _, sep := range []string{" at ", " @ ", " — ", " – ", " - ", ", ", " | "} {
		if idx := strings.Index(header, sep); idx > 0 {
			return strings.TrimSpace(header[:idx]), strings.TrimSpace(header[idx+len(sep):])
		}
	}
	return header, ""
}

package extraction

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-agent/internal/types"
)

// levelWords are explicit proficiency qualifiers. Levels are only inferred
// when the text says so; nothing is guessed.
var levelWords = []string{"expert", "advanced", "proficient", "intermediate", "familiar", "beginner", "basic"}

var (
	// "(expert)", "(3 years)", "- advanced" suffixes on a skill token
	parenLevelRe = regexp.MustCompile(`(?i)\(([^)]+)\)\s*$`)
	yearsLevelRe = regexp.MustCompile(`(?i)\b(\d+)\+?\s*(?:years?|yrs?)\b`)
	// category prefixes like "Languages:" in skill lines
	categoryPrefixRe = regexp.MustCompile(`^[A-Za-z][A-Za-z /&]{0,30}:\s*`)
)

// extractSkills splits a SKILLS section into individual skill entities.
// Lines split on commas, semicolons, pipes and bullets; "Languages: Go, C"
// style category prefixes are stripped.
func extractSkills(section types.Section) []types.Entity {
	var entities []types.Entity
	seen := make(map[string]bool)

	for _, line := range bodyLines(section) {
		text, _ := stripBullet(line)
		if strings.TrimSpace(text) == "" {
			continue
		}
		text = categoryPrefixRe.ReplaceAllString(text, "")

		for _, token := range splitSkillTokens(text) {
			name, level := parseSkillToken(token)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true

			entity := types.Entity{
				ID:         uuid.NewString(),
				Kind:       types.EntitySkill,
				RawText:    strings.TrimSpace(token),
				Confidence: types.ConfidenceHigh,
				Skill:      &types.SkillDetail{Name: name, Level: level},
			}
			// Long tokens are probably prose that happened to live in the
			// skills section; keep them but flag the ambiguity.
			if len(strings.Fields(name)) > 4 {
				entity.Confidence = types.ConfidenceLow
				entity.Warnings = append(entity.Warnings, "skill token looks like prose")
			}
			entities = append(entities, entity)
		}
	}

	return entities
}

// splitSkillTokens splits a skills line on common delimiters
func splitSkillTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', ';', '|', '•', '·':
			return true
		}
		return false
	})
}

// parseSkillToken separates a skill name from an explicit level qualifier
func parseSkillToken(token string) (name, level string) {
	name = strings.TrimSpace(token)
	if name == "" {
		return "", ""
	}

	if m := parenLevelRe.FindStringSubmatch(name); m != nil {
		qualifier := strings.TrimSpace(m[1])
		if isLevelQualifier(qualifier) {
			return strings.TrimSpace(parenLevelRe.ReplaceAllString(name, "")), strings.ToLower(qualifier)
		}
	}

	lower := strings.ToLower(name)
	for _, word := range levelWords {
		for _, sep := range []string{" - ", " – ", ": "} {
			suffix := sep + word
			if strings.HasSuffix(lower, suffix) {
				return strings.TrimSpace(name[:len(name)-len(suffix)]), word
			}
		}
	}

	if m := yearsLevelRe.FindStringSubmatch(name); m != nil {
		stripped := strings.TrimSpace(yearsLevelRe.ReplaceAllString(name, ""))
		stripped = strings.Trim(stripped, " -–:()")
		if stripped != "" {
			return stripped, m[1] + " years"
		}
	}

	return name, ""
}

// isLevelQualifier reports whether text is an explicit level word or a
// years-of-use count
func isLevelQualifier(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range levelWords {
		if lower == word {
			return true
		}
	}
	return yearsLevelRe.MatchString(lower)
}

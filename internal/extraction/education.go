package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-agent/internal/types"
)

// degreeWords identify a line as an education record
var degreeWords = []string{
	"bachelor", "master", "phd", "ph.d", "doctorate", "associate", "diploma",
	"b.s", "bs", "b.a", "ba", "m.s", "ms", "m.a", "ma", "mba", "b.sc", "m.sc", "b.eng", "m.eng",
}

var gradYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// extractEducation parses an EDUCATION section into education records.
// Expected shapes: "B.S. Computer Science, State University, 2015" or a
// degree line followed by institution detail. Lines without a degree word
// are kept as low-confidence fragments.
func extractEducation(section types.Section) []types.Entity {
	var entities []types.Entity

	for _, line := range bodyLines(section) {
		text, _ := stripBullet(line)
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}

		if !containsDegreeWord(trimmed) {
			entities = append(entities, types.Entity{
				ID:         uuid.NewString(),
				Kind:       types.EntityFragment,
				RawText:    trimmed,
				Confidence: types.ConfidenceLow,
				Warnings:   []string{"education line has no recognizable degree"},
			})
			continue
		}

		record := parseEducationLine(trimmed)
		entities = append(entities, types.Entity{
			ID:         uuid.NewString(),
			Kind:       types.EntityEducation,
			RawText:    trimmed,
			Confidence: types.ConfidenceHigh,
			Education:  record,
		})
	}

	return entities
}

// containsDegreeWord reports whether a line mentions a degree
func containsDegreeWord(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range degreeWords {
		// Word-boundary check: "ba" must not match inside "background"
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\.?\b`)
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// parseEducationLine splits "degree, institution, year" shaped lines
func parseEducationLine(line string) *types.EducationDetail {
	record := &types.EducationDetail{}

	if m := gradYearRe.FindString(line); m != "" {
		record.Year, _ = strconv.Atoi(m)
		line = strings.TrimSpace(gradYearRe.ReplaceAllString(line, ""))
		line = strings.Trim(line, " ,;-")
	}

	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch {
	case len(parts) >= 2:
		record.Degree = parts[0]
		record.Institution = strings.Join(parts[1:], ", ")
	default:
		record.Degree = parts[0]
	}

	return record
}

// Package ingestion provides document text sources and text normalization for
// resumes and job postings. Binary decoding (PDF) is lossy by nature; the
// downstream pipeline is bounded by what the source yields, it does not try
// to correct it.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpaceRe = regexp.MustCompile(`[ \t]+`)
	multiBlankRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes raw document text while preserving structure:
// line endings become LF, trailing whitespace is stripped, bullet markers
// keep their shape, and runs of blank lines collapse to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = multiBlankRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine normalizes a single line, keeping bullet indentation
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if isBulletLine(trimmed) {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + multiSpaceRe.ReplaceAllString(trimmed, " ")
	}

	return multiSpaceRe.ReplaceAllString(trimmed, " ")
}

// isBulletLine reports whether a line starts with a bullet marker
func isBulletLine(trimmed string) bool {
	for _, prefix := range []string{"- ", "* ", "• ", "· ", "– "} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// NormalizeWhitespace collapses all whitespace runs to single spaces and
// trims the ends. Segmentation round-trip comparisons use this so cosmetic
// whitespace differences do not count as structural changes.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

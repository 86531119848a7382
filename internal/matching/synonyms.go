// Package matching scores a resume against extracted job requirements. The
// scorer is deterministic and transparent: every requirement reports the
// entities that support it, and the overall score is the weight-normalized
// sum of satisfied requirements.
package matching

import "strings"

// SynonymTable maps a canonical skill name to its accepted aliases. Lookup
// is case-insensitive in both directions: a requirement phrased as an alias
// matches entities mentioning the canonical name and vice versa.
type SynonymTable map[string][]string

// DefaultSynonyms covers common skill aliases. Callers can supply their own
// table through the scorer config.
var DefaultSynonyms = SynonymTable{
	"javascript": {"js", "ecmascript"},
	"typescript": {"ts"},
	"go":         {"golang"},
	"python":     {"py"},
	"kubernetes": {"k8s"},
	"postgresql": {"postgres", "psql"},
	"amazon web services": {"aws"},
	"google cloud":        {"gcp", "google cloud platform"},
	"continuous integration": {"ci", "ci/cd"},
	"machine learning":       {"ml"},
}

// expansions returns every term equivalent to value under the table,
// lowercased. The first element is always the value itself, so exact matches
// are found before alias matches.
func (t SynonymTable) expansions(value string) []string {
	lower := strings.ToLower(strings.TrimSpace(value))
	terms := []string{lower}

	for canonical, aliases := range t {
		canonicalLower := strings.ToLower(canonical)
		group := append([]string{canonicalLower}, aliases...)

		inGroup := false
		for _, term := range group {
			if strings.ToLower(term) == lower {
				inGroup = true
				break
			}
		}
		if !inGroup {
			continue
		}
		for _, term := range group {
			termLower := strings.ToLower(term)
			if termLower != lower {
				terms = append(terms, termLower)
			}
		}
	}

	return terms
}

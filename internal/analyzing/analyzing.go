// Package analyzing extracts structured requirements from job posting text.
// The default analyzer is a deterministic heuristic over a controlled skill
// vocabulary; an LLM-backed analyzer is available for free-form postings the
// heuristics handle poorly. Both produce the same deduplicated requirement
// shape.
package analyzing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-agent/internal/types"
)

// DefaultSkillVocabulary is the controlled vocabulary scanned for skill
// mentions. Callers with domain-specific postings should supply their own.
var DefaultSkillVocabulary = []string{
	"go", "golang", "python", "java", "javascript", "typescript", "rust", "c++", "c#", "ruby", "php",
	"kotlin", "swift", "scala", "sql", "html", "css",
	"kubernetes", "docker", "terraform", "ansible", "aws", "gcp", "azure",
	"postgresql", "postgres", "mysql", "mongodb", "redis", "kafka", "rabbitmq", "elasticsearch",
	"grpc", "rest", "graphql", "react", "angular", "vue", "node.js", "django", "flask", "spring",
	"linux", "git", "ci/cd", "jenkins", "prometheus", "grafana",
	"machine learning", "deep learning", "data engineering", "distributed systems", "microservices",
}

const preferredWeight = 0.5

var (
	yearsRe = regexp.MustCompile(`(?i)\b(\d+)\s*\+?\s*(?:years?|yrs?)\b`)
	// degree demands like "Bachelor's degree in CS"
	qualificationRe = regexp.MustCompile(`(?i)\b(bachelor(?:'s)?|master(?:'s)?|phd|ph\.d|doctorate)\b(?:\s+(?:degree|of\s+\w+))?(?:\s+in\s+[\w\s]{1,40}?)?(?:[.,;]|$)`)

	mandatoryMarkers = []string{"required", "must have", "must-have", "must be", "essential", "need to have", "minimum of", "at least"}
	preferredMarkers = []string{"preferred", "nice to have", "nice-to-have", "a plus", "bonus", "ideally", "desirable"}
)

// Analyzer extracts requirements from job text using vocabulary and pattern
// heuristics. The zero value is not usable; construct with NewAnalyzer.
type Analyzer struct {
	vocabulary []string
}

// NewAnalyzer creates an analyzer. A nil vocabulary gets the default skill
// vocabulary.
func NewAnalyzer(vocabulary []string) *Analyzer {
	if vocabulary == nil {
		vocabulary = DefaultSkillVocabulary
	}
	return &Analyzer{vocabulary: vocabulary}
}

// Analyze extracts requirements from job posting text. Requirements with the
// same normalized value are deduplicated: the highest weight survives, and a
// mandatory flag from any duplicate wins over optional.
func (a *Analyzer) Analyze(jobText string) []types.JobRequirement {
	var requirements []types.JobRequirement

	for _, sentence := range splitSentences(jobText) {
		mandatory, weight := classifyEmphasis(sentence)

		for _, skill := range a.vocabulary {
			if containsTerm(sentence, skill) {
				requirements = append(requirements, types.JobRequirement{
					Kind:      types.RequirementSkill,
					Value:     skill,
					Weight:    weight,
					Mandatory: mandatory,
					Evidence:  strings.TrimSpace(sentence),
				})
			}
		}

		if m := yearsRe.FindStringSubmatch(sentence); m != nil {
			requirements = append(requirements, types.JobRequirement{
				Kind:      types.RequirementExperienceYears,
				Value:     m[1] + " years",
				Weight:    weight,
				Mandatory: mandatory,
				Evidence:  strings.TrimSpace(sentence),
			})
		}

		if m := qualificationRe.FindString(sentence); m != "" {
			requirements = append(requirements, types.JobRequirement{
				Kind:      types.RequirementQualification,
				Value:     strings.ToLower(strings.Trim(m, " .,;")),
				Weight:    weight,
				Mandatory: mandatory,
				Evidence:  strings.TrimSpace(sentence),
			})
		}
	}

	return Deduplicate(requirements)
}

// Deduplicate collapses requirements sharing a normalized key. The surviving
// requirement keeps the highest weight seen and is mandatory if any duplicate
// was. Output order follows first appearance.
func Deduplicate(requirements []types.JobRequirement) []types.JobRequirement {
	index := make(map[string]int)
	var out []types.JobRequirement

	for _, req := range requirements {
		key := req.Key()
		if i, seen := index[key]; seen {
			if req.Weight > out[i].Weight {
				out[i].Weight = req.Weight
			}
			if req.Mandatory {
				out[i].Mandatory = true
			}
			continue
		}
		index[key] = len(out)
		out = append(out, req)
	}

	return out
}

// classifyEmphasis decides mandatory flag and weight from the sentence's
// demand language. Unmarked sentences count as mandatory at full weight;
// postings rarely list requirements they do not mean.
func classifyEmphasis(sentence string) (mandatory bool, weight float64) {
	lower := strings.ToLower(sentence)
	for _, marker := range preferredMarkers {
		if strings.Contains(lower, marker) {
			return false, preferredWeight
		}
	}
	for _, marker := range mandatoryMarkers {
		if strings.Contains(lower, marker) {
			return true, types.DefaultRequirementWeight
		}
	}
	return true, types.DefaultRequirementWeight
}

// containsTerm reports whether text mentions term as a whole word,
// case-insensitively. Terms with regex metacharacters ("c++") are quoted.
func containsTerm(text, term string) bool {
	pattern := `(?i)(^|[^a-z0-9+#.])` + regexp.QuoteMeta(strings.ToLower(term)) + `($|[^a-z0-9+#])`
	matched, _ := regexp.MatchString(pattern, strings.ToLower(text))
	return matched
}

// splitSentences splits job text on sentence punctuation and line breaks.
// Bullet-list postings split on lines; prose postings on periods.
func splitSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, part := range strings.FieldsFunc(line, func(r rune) bool {
			return r == '.' || r == '!' || r == '?'
		}) {
			part = strings.TrimSpace(part)
			if part != "" {
				sentences = append(sentences, part)
			}
		}
	}
	return sentences
}

// SortByWeight orders requirements by descending weight, mandatory first.
// Used for presentation only; matching is order-independent.
func SortByWeight(requirements []types.JobRequirement) {
	sort.SliceStable(requirements, func(i, j int) bool {
		if requirements[i].Mandatory != requirements[j].Mandatory {
			return requirements[i].Mandatory
		}
		return requirements[i].Weight > requirements[j].Weight
	})
}

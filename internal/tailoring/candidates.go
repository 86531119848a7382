package tailoring

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-agent/internal/types"
)

// task is one (requirement, entity) tailoring pair
type task struct {
	requirement  types.JobRequirement
	sectionIndex int
	entityIndex  int
	entity       *types.Entity
	sectionKind  types.SectionKind
}

// tailorableKinds are the section kinds edits may target. Contact and
// education content is factual and never rewritten.
var tailorableKinds = map[types.SectionKind]bool{
	types.SectionExperience: true,
	types.SectionSkills:     true,
	types.SectionSummary:    true,
}

// stopwords excluded when tokenizing requirement evidence for candidate
// search
var stopwords = map[string]bool{
	"the": true, "and": true, "with": true, "for": true, "of": true, "in": true,
	"a": true, "an": true, "to": true, "or": true, "is": true, "are": true,
	"experience": true, "years": true, "strong": true, "required": true,
	"must": true, "have": true, "preferred": true, "knowledge": true,
	"skills": true, "ability": true, "working": true, "you": true, "we": true,
}

// gapCandidates finds resume entities related to an unsatisfied requirement.
// A gap has no supporting entities by definition, so relatedness is looser:
// an entity qualifies when its text shares a significant token with the
// requirement's value or evidence. Candidates are ranked by shared-token
// count and capped at limit. An empty result means the gap is unactionable.
func gapCandidates(resume *types.ResumeDocument, req types.JobRequirement, limit int) []task {
	tokens := significantTokens(req.Value + " " + req.Evidence)
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		task  task
		score int
	}
	var candidates []scored

	for sectionIdx := range resume.Sections {
		section := &resume.Sections[sectionIdx]
		if !tailorableKinds[section.Kind] {
			continue
		}
		for entityIdx := range section.Entities {
			entity := &section.Entities[entityIdx]
			text := strings.ToLower(entity.Text())

			shared := 0
			for _, token := range tokens {
				if strings.Contains(text, token) {
					shared++
				}
			}
			if shared == 0 {
				continue
			}
			candidates = append(candidates, scored{
				task: task{
					requirement:  req,
					sectionIndex: sectionIdx,
					entityIndex:  entityIdx,
					entity:       entity,
					sectionKind:  section.Kind,
				},
				score: shared,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	tasks := make([]task, 0, len(candidates))
	for _, c := range candidates {
		tasks = append(tasks, c.task)
	}
	return tasks
}

// weakSupportTasks selects rewrite pairs for satisfied requirements whose
// evidence is weak: no exact match, or the best match is a low-confidence
// entity. The strongest supporting entity is rewritten to make the
// capability explicit.
func weakSupportTasks(resume *types.ResumeDocument, match types.RequirementMatch) []task {
	if !match.Satisfied || len(match.SupportingEntities) == 0 {
		return nil
	}

	best := match.SupportingEntities[0]
	if best.SectionIndex >= len(resume.Sections) {
		return nil
	}
	section := &resume.Sections[best.SectionIndex]
	if !tailorableKinds[section.Kind] || best.EntityIndex >= len(section.Entities) {
		return nil
	}
	entity := &section.Entities[best.EntityIndex]

	weak := !best.Exact || entity.Confidence == types.ConfidenceLow
	if !weak {
		return nil
	}

	return []task{{
		requirement:  match.Requirement,
		sectionIndex: best.SectionIndex,
		entityIndex:  best.EntityIndex,
		entity:       entity,
		sectionKind:  section.Kind,
	}}
}

// significantTokens lowercases and tokenizes text, dropping stopwords and
// short tokens
func significantTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		isWord := r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '#'
		return !isWord
	})

	seen := make(map[string]bool)
	var tokens []string
	for _, f := range fields {
		if len(f) < 3 || stopwords[f] || seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}
	return tokens
}

package types

import "strings"

// RequirementKind classifies a job requirement
type RequirementKind string

// Requirement kind constants
const (
	RequirementSkill           RequirementKind = "skill"
	RequirementExperienceYears RequirementKind = "experience_years"
	RequirementQualification   RequirementKind = "qualification"
	RequirementKeyword         RequirementKind = "keyword"
)

// DefaultRequirementWeight is used when the job text carries no emphasis signal
const DefaultRequirementWeight = 1.0

// JobRequirement is a single structured requirement extracted from a job
// description. For RequirementExperienceYears the Value carries the demand
// text (e.g. "5 years").
type JobRequirement struct {
	Kind      RequirementKind `json:"kind"`
	Value     string          `json:"value"`
	Weight    float64         `json:"weight"`    // in [0,1]
	Mandatory bool            `json:"mandatory"` // required vs preferred
	Evidence  string          `json:"evidence,omitempty"`
}

// Key returns the identity of the requirement used for deduplication and
// cache fingerprints: kind plus normalized value.
func (r JobRequirement) Key() string {
	return string(r.Kind) + ":" + strings.ToLower(strings.TrimSpace(r.Value))
}

package types

// EditStatus tracks the lifecycle of a tailoring edit
type EditStatus string

// Edit status constants. The final report must distinguish "satisfied",
// "unmet with attempted rewrite" and "unmet, no rewrite possible", so
// unavailable and unactionable are separate states.
const (
	// EditApplied means the rewrite succeeded and proposed text is set
	EditApplied EditStatus = "applied"
	// EditUnavailable means the rewrite was attempted but failed
	// (retries exhausted or the run deadline expired first)
	EditUnavailable EditStatus = "unavailable"
	// EditUnactionable means no supporting entity exists for the gap, so
	// no rewrite was attempted: the resume cannot evidence what it lacks
	EditUnactionable EditStatus = "unactionable"
)

// TailoringEdit is a proposed rewrite of one entity's text for one
// requirement. The original document is never mutated; edits are applied to
// a derived copy by the assembler.
type TailoringEdit struct {
	ID           string         `json:"id"`
	Requirement  JobRequirement `json:"requirement"`
	SectionIndex int            `json:"section_index"`
	EntityIndex  int            `json:"entity_index"`
	EntityID     string         `json:"entity_id,omitempty"`
	OriginalText string         `json:"original_text,omitempty"`
	ProposedText string         `json:"proposed_text,omitempty"`
	Rationale    string         `json:"rationale,omitempty"`
	Status       EditStatus     `json:"status"`
	FailureCause string         `json:"failure_cause,omitempty"`
}

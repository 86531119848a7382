// Package types provides type definitions for structured data used throughout the resume-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"
)

// SectionKind classifies a resume section. Unrecognized headings map to SectionOther.
type SectionKind string

// Section kind constants define the closed set of recognized resume sections
const (
	SectionContact    SectionKind = "contact"
	SectionSummary    SectionKind = "summary"
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionSkills     SectionKind = "skills"
	SectionOther      SectionKind = "other"
)

// Confidence indicates how reliable an extracted entity is
type Confidence string

// Confidence levels for extracted entities
const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// EntityKind identifies the variant carried by an Entity
type EntityKind string

// Entity kind constants
const (
	EntityRole      EntityKind = "role"
	EntitySkill     EntityKind = "skill"
	EntityEducation EntityKind = "education"
	// EntityFragment is a line that could not be classified; it is retained
	// at low confidence so matching never silently loses information.
	EntityFragment EntityKind = "fragment"
)

// Date is a year/month pair. A zero Month means the month is unknown.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month,omitempty"`
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d.Year == 0
}

// String renders the date as "2006-01" or "2006" when the month is unknown
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	if d.Month == 0 {
		return fmt.Sprintf("%04d", d.Year)
	}
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// Before reports whether d is strictly earlier than other.
// Unknown months compare as January.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	return d.Month < other.Month
}

// RoleDetail holds the fields of a dated role entity
type RoleDetail struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	StartDate    Date     `json:"start_date"`
	EndDate      *Date    `json:"end_date,omitempty"` // nil means present/ongoing
	Bullets      []string `json:"bullets,omitempty"`
}

// IsCurrent reports whether the role is ongoing
func (r *RoleDetail) IsCurrent() bool {
	return r.EndDate == nil
}

// SkillDetail holds the fields of a skill entity
type SkillDetail struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"` // only set when the source text has an explicit qualifier
}

// EducationDetail holds the fields of an education record entity
type EducationDetail struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        int    `json:"year,omitempty"`
}

// Entity is a structured record extracted from a resume section.
// Exactly one of the detail pointers matching Kind is non-nil.
type Entity struct {
	ID         string           `json:"id"`
	Kind       EntityKind       `json:"kind"`
	RawText    string           `json:"raw_text"`
	Confidence Confidence       `json:"confidence"`
	Warnings   []string         `json:"warnings,omitempty"`
	Role       *RoleDetail      `json:"role,omitempty"`
	Skill      *SkillDetail     `json:"skill,omitempty"`
	Education  *EducationDetail `json:"education,omitempty"`
}

// Text returns the searchable text of the entity: structured fields joined
// with the raw text so matching sees both normalized and original forms.
func (e *Entity) Text() string {
	var parts []string
	switch e.Kind {
	case EntityRole:
		if e.Role != nil {
			parts = append(parts, e.Role.Title, e.Role.Organization)
			parts = append(parts, e.Role.Bullets...)
		}
	case EntitySkill:
		if e.Skill != nil {
			parts = append(parts, e.Skill.Name)
		}
	case EntityEducation:
		if e.Education != nil {
			parts = append(parts, e.Education.Institution, e.Education.Degree)
		}
	}
	parts = append(parts, e.RawText)
	return strings.Join(parts, "\n")
}

// Clone returns a deep copy of the entity
func (e *Entity) Clone() Entity {
	out := *e
	out.Warnings = append([]string(nil), e.Warnings...)
	if e.Role != nil {
		role := *e.Role
		role.Bullets = append([]string(nil), e.Role.Bullets...)
		if e.Role.EndDate != nil {
			end := *e.Role.EndDate
			role.EndDate = &end
		}
		out.Role = &role
	}
	if e.Skill != nil {
		skill := *e.Skill
		out.Skill = &skill
	}
	if e.Education != nil {
		edu := *e.Education
		out.Education = &edu
	}
	return out
}

// Section is a labeled slice of the resume text with its extracted entities
type Section struct {
	Kind     SectionKind `json:"kind"`
	Heading  string      `json:"heading,omitempty"`
	RawText  string      `json:"raw_text"`
	Entities []Entity    `json:"entities,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
}

// Clone returns a deep copy of the section
func (s *Section) Clone() Section {
	out := *s
	out.Warnings = append([]string(nil), s.Warnings...)
	out.Entities = make([]Entity, len(s.Entities))
	for i := range s.Entities {
		out.Entities[i] = s.Entities[i].Clone()
	}
	return out
}

// ResumeDocument is an ordered sequence of sections owning all extracted
// entities. It is created once per input and treated as immutable after
// extraction; tailoring produces derived copies via Clone.
type ResumeDocument struct {
	Sections []Section `json:"sections"`
}

// Clone returns a deep copy of the document
func (d *ResumeDocument) Clone() *ResumeDocument {
	out := &ResumeDocument{Sections: make([]Section, len(d.Sections))}
	for i := range d.Sections {
		out.Sections[i] = d.Sections[i].Clone()
	}
	return out
}

// SectionsOfKind returns all sections of the given kind in document order
func (d *ResumeDocument) SectionsOfKind(kind SectionKind) []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// AllWarnings collects extraction warnings from every section and entity,
// in document order. Extraction issues degrade data instead of failing, so
// this is how callers see what was ambiguous.
func (d *ResumeDocument) AllWarnings() []string {
	var out []string
	for _, s := range d.Sections {
		out = append(out, s.Warnings...)
		for _, e := range s.Entities {
			out = append(out, e.Warnings...)
		}
	}
	return out
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs a summary of the segmented, extracted resume.
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	for _, section := range doc.Sections {
		heading := section.Heading
		if heading == "" {
			heading = "(preamble)"
		}
		sb.WriteString(fmt.Sprintf("%-12s %-24s %d entities\n", section.Kind, heading, len(section.Entities)))
	}

	warnings := doc.AllWarnings()
	if len(warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		count := min(len(warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", warnings[i]))
		}
		if len(warnings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(warnings)-maxItemsToShow))
		}
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRequirements outputs the extracted job requirements.
func (p *Printer) PrintRequirements(requirements []types.JobRequirement) {
	if len(requirements) == 0 {
		return
	}

	var sb strings.Builder
	for _, req := range requirements {
		flag := "preferred"
		if req.Mandatory {
			flag = "required"
		}
		sb.WriteString(fmt.Sprintf("  • %-24s %-18s %s (%.1f)\n", req.Value, req.Kind, flag, req.Weight))
	}

	p.printBox("JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs the score, per-requirement evidence counts and gaps.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall score: %.2f\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Satisfied:     %d of %d\n", result.SatisfiedCount(), len(result.Requirements)))

	if len(result.Gaps) > 0 {
		sb.WriteString("\nGaps:\n")
		for _, gap := range result.Gaps {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", gap.Value, gap.Kind))
		}
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEdits outputs the tailoring outcome per edit: applied, unavailable
// or unactionable. The three states stay distinct so unmet requirements are
// never hidden.
func (p *Printer) PrintEdits(edits []types.TailoringEdit) {
	if len(edits) == 0 {
		return
	}

	var applied, unavailable, unactionable int
	var sb strings.Builder
	for _, edit := range edits {
		switch edit.Status {
		case types.EditApplied:
			applied++
			sb.WriteString(fmt.Sprintf("  ✓ %s: %s\n", edit.Requirement.Value, truncate(edit.ProposedText, 40)))
		case types.EditUnavailable:
			unavailable++
			sb.WriteString(fmt.Sprintf("  ✗ %s: %s\n", edit.Requirement.Value, truncate(edit.FailureCause, 40)))
		case types.EditUnactionable:
			unactionable++
			sb.WriteString(fmt.Sprintf("  - %s: %s\n", edit.Requirement.Value, truncate(edit.FailureCause, 40)))
		}
	}
	sb.WriteString(fmt.Sprintf("\nApplied %d, unavailable %d, unactionable %d", applied, unavailable, unactionable))

	p.printBox("TAILORING EDITS", sb.String())
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

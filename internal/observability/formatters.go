// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/jobpost"
	"github.com/jonathan/resume-analyzer/internal/report"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxExcerptLen caps the job posting excerpt
	maxExcerptLen = 160
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes up to limit items as bullets, then an overflow line.
func writeList(sb *strings.Builder, items []string, limit int, noun string) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more %s\n", len(items)-limit, noun)
	}
}

// PrintJobPosting outputs where an imported job description came from.
func (p *Printer) PrintJobPosting(posting *jobpost.Posting) {
	if posting == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "URL:      %s\n", posting.URL)
	fmt.Fprintf(&sb, "Platform: %s\n", posting.Platform)
	if posting.Rendered {
		sb.WriteString("Fetched with headless browser\n")
	}
	fmt.Fprintf(&sb, "Length:   %d chars\n", len(posting.Text))

	excerpt := strings.Join(strings.Fields(posting.Text), " ")
	if excerpt != "" {
		fmt.Fprintf(&sb, "\n%s", truncate(excerpt, maxExcerptLen))
	}

	p.printBox("IMPORTED JOB POSTING", strings.TrimSuffix(wrap(sb.String(), boxWidth-4), "\n"))
}

// PrintActionPlan outputs the fit level, focus skills and priority actions.
func (p *Printer) PrintActionPlan(plan report.ActionPlan) {
	if plan.Level == "" {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Level: %s\n", plan.Level)
	sb.WriteString(plan.Headline + "\n")

	if len(plan.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		writeList(&sb, plan.Strengths, maxItemsToShow, "skills")
	}
	if len(plan.FocusSkills) > 0 {
		sb.WriteString("\nFocus skills:\n")
		writeList(&sb, plan.FocusSkills, maxItemsToShow, "skills")
	}
	if len(plan.PriorityActions) > 0 {
		sb.WriteString("\nPriority actions:\n")
		for i, action := range plan.PriorityActions {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, action)
		}
	}

	p.printBox("ACTION PLAN", strings.TrimSuffix(wrap(sb.String(), boxWidth-4), "\n"))
}

// PrintQualityAudit outputs the structural resume audit with pass/fail marks.
func (p *Printer) PrintQualityAudit(audit report.QualityAudit) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d/100   Words: %d\n\n", audit.Score, audit.WordCount)

	checks := []string{
		mark(audit.HasEmail) + "email",
		mark(audit.HasPhone) + "phone",
		mark(audit.HasLinkedIn) + "linkedin",
	}
	sb.WriteString("Contact:  " + strings.Join(checks, "  ") + "\n")

	var found, missing []string
	for _, s := range audit.Sections {
		if s.Present {
			found = append(found, s.Name)
		} else {
			missing = append(missing, s.Name)
		}
	}
	if len(found) > 0 {
		sb.WriteString("Sections: " + strings.Join(found, ", ") + "\n")
	}
	if len(missing) > 0 {
		sb.WriteString("Missing:  " + strings.Join(missing, ", ") + "\n")
	}
	fmt.Fprintf(&sb, "Action verbs: %d   Quantified lines: %d\n", audit.ActionVerbs, audit.QuantifiedLines)

	if len(audit.Tips) > 0 {
		sb.WriteString("\nTips:\n")
		writeList(&sb, audit.Tips, maxItemsToShow, "tips")
	}

	p.printBox("RESUME QUALITY", strings.TrimSuffix(wrap(sb.String(), boxWidth-4), "\n"))
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// wrap breaks lines longer than width at word boundaries, keeping the
// leading indentation on continuation lines.
func wrap(s string, width int) string {
	var out strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		newline := strings.HasSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\n")
		if len([]rune(line)) <= width {
			out.WriteString(line)
		} else {
			indent := line[:len(line)-len(strings.TrimLeft(line, " "))] + "  "
			cur := ""
			for _, word := range strings.Fields(line) {
				switch {
				case cur == "":
					cur = line[:len(line)-len(strings.TrimLeft(line, " "))] + word
				case len([]rune(cur))+1+len([]rune(word)) > width:
					out.WriteString(cur + "\n")
					cur = indent + word
				default:
					cur += " " + word
				}
			}
			out.WriteString(cur)
		}
		if newline {
			out.WriteString("\n")
		}
	}
	return out.String()
}

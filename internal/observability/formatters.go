// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of the score bar
	barWidth = 30
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
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// scoreBar renders a score in [0, 1] as a fixed-width bar.
func scoreBar(score float64) string {
	filled := int(score*barWidth + 0.5)
	filled = max(0, min(barWidth, filled))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// writeList writes up to limit items as bullets, summarizing the rest.
func writeList(sb *strings.Builder, items []string, limit int) {
	if len(items) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintMatchResult outputs the score, profile and skill gap of a result.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}
	p.PrintScore(result)
	p.PrintProfile(&result.Profile)
	p.PrintGap(result.Gap)
}

// PrintScore outputs the similarity score with a bar and the document summary.
func (p *Printer) PrintScore(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score:     %.2f%%\n", result.ScorePercent)
	fmt.Fprintf(&sb, "%s\n", scoreBar(result.Score))
	fmt.Fprintf(&sb, "Coverage:  %d of %d job skills\n", len(result.Gap.Matched), len(result.JobSkills))
	fmt.Fprintf(&sb, "Document:  %s, %d sections, %d chars\n",
		strings.ToUpper(string(result.Document.Format)), result.Document.Sections, result.Document.Characters)
	fmt.Fprintf(&sb, "Result ID: %s", result.ID)

	p.printBox("MATCH SCORE", sb.String())
}

// PrintProfile outputs the contact details and education lines found in a resume.
func (p *Printer) PrintProfile(profile *types.ExtractedProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:   %s\n", types.StringOrDefault(profile.Name, "(not found)"))
	fmt.Fprintf(&sb, "Email:  %s\n", types.StringOrDefault(profile.Email, "(not found)"))
	fmt.Fprintf(&sb, "Phone:  %s\n", types.StringOrDefault(profile.Phone, "(not found)"))
	sb.WriteString("\nEducation:\n")
	writeList(&sb, profile.Education, maxItemsToShow)

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGap outputs matched and missing job skills.
func (p *Printer) PrintGap(report types.GapReport) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Matched (%d):\n", len(report.Matched))
	writeList(&sb, report.Matched, maxItemsToShow*2)
	fmt.Fprintf(&sb, "\nMissing (%d):\n", len(report.Missing))
	writeList(&sb, report.Missing, maxItemsToShow*2)

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs a titled list of skills.
func (p *Printer) PrintSkills(title string, skills []string) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d skills\n", len(skills))
	writeList(&sb, skills, len(skills))
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs one line per batch item in input order.
func (p *Printer) PrintBatchSummary(results []matching.BatchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	failed := 0
	for _, r := range results {
		if r.Result == nil {
			failed++
			fmt.Fprintf(&sb, "✗ %s: %s\n", r.Name, r.Error)
			continue
		}
		fmt.Fprintf(&sb, "✓ %s: %.2f%% (%d/%d skills)\n",
			r.Name, r.Result.ScorePercent, len(r.Result.Gap.Matched), len(r.Result.JobSkills))
	}
	fmt.Fprintf(&sb, "\n%d analyzed, %d failed", len(results)-failed, failed)

	p.printBox("BATCH RESULTS", sb.String())
}

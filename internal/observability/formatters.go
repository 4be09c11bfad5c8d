// Package observability provides formatted terminal output for novelty results and ingest outcomes.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/jonathan/novelty-score/internal/ingest"
	"github.com/jonathan/novelty-score/internal/interpret"
	"github.com/jonathan/novelty-score/internal/novelty"
	"github.com/jonathan/novelty-score/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// barCells is the number of cells in a similarity bar
	barCells = 10
	// titleWidth is the widest proposal title shown in a row
	titleWidth = 28
)

// Printer handles formatted output for the CLI
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs the novelty score card, the totals and, when there
// are any, the similar proposals in the order the service returned them.
func (p *Printer) PrintResult(view interpret.View) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Novelty Score:  %s / 100  [%s]\n", view.ScoreText, view.Color))
	sb.WriteString(fmt.Sprintf("Band:           %s\n", view.Band))
	if view.Interpretation != "" {
		sb.WriteString(fmt.Sprintf("Interpretation: %s\n", view.Interpretation))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total Proposals Checked: %d\n", view.TotalProposalsChecked))
	sb.WriteString(fmt.Sprintf("Similar Proposals Found: %d", view.SimilarCount))

	p.printBox("NOVELTY SCORE", sb.String())

	if !view.HasSimilar() {
		return
	}

	sb.Reset()
	for i, row := range view.Rows {
		sb.WriteString(fmt.Sprintf("#%-4s %-*s %s %6s  %s",
			row.ID, titleWidth, truncate(row.Title, titleWidth), bar(row.BarWidth), row.PercentText, row.Level))
		if i < len(view.Rows)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("MOST SIMILAR PROPOSALS", sb.String())
}

// PrintLegend outputs the score bands.
func (p *Printer) PrintLegend() {
	var sb strings.Builder
	legend := interpret.Legend()
	for i, b := range legend {
		sb.WriteString(fmt.Sprintf("%3d-%-3d %-17s %s", b.Min, b.Max, b.Label, b.Description))
		if i < len(legend)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("UNDERSTANDING YOUR SCORE", sb.String())
}

// PrintApplicationResult outputs an application check result.
func (p *Printer) PrintApplicationResult(result *types.ApplicationCheckResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Application:    %s\n", result.ApplicationNumber))
	sb.WriteString(fmt.Sprintf("Novelty Score:  %.1f / 100  [%s]\n", result.NoveltyScore, interpret.ScoreColor(result.NoveltyScore)))
	sb.WriteString(fmt.Sprintf("Band:           %s\n", interpret.ScoreBand(result.NoveltyScore)))
	sb.WriteString(fmt.Sprintf("Total Proposals Checked: %d", result.TotalProposalsChecked))

	for _, s := range result.SimilarProposals {
		level := interpret.MatchLevel(s.SimilarityPercentage / 100)
		sb.WriteString(fmt.Sprintf("\n  • %-20s %6.2f%%  %s", s.ApplicationNumber, s.SimilarityPercentage, level))
	}

	p.printBox("APPLICATION NOVELTY", sb.String())
}

// PrintIngestOutcomes outputs one line per document.
func (p *Printer) PrintIngestOutcomes(outcomes []ingest.Outcome) {
	if len(outcomes) == 0 {
		return
	}

	var sb strings.Builder
	for i, o := range outcomes {
		if o.Err != nil {
			sb.WriteString(fmt.Sprintf("✗ %s: %s", o.Filename, novelty.Message(o.Err)))
		} else {
			sb.WriteString(fmt.Sprintf("✓ %s (%s): %s", o.Filename, humanize.Bytes(uint64(o.Size)), o.Message))
		}
		if i < len(outcomes)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("INGEST", sb.String())
}

// PrintError outputs an error line.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintError(message string) {
	if message == "" {
		return
	}
	fmt.Fprintf(p.out, "Error: %s\n", message)
}

// bar renders a similarity bar of barCells cells for a width in percent.
func bar(widthPercent float64) string {
	filled := int(widthPercent/100*barCells + 0.5)
	filled = max(0, min(barCells, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-agent/internal/enhance"
	"github.com/jonathan/resume-agent/internal/scoring"
	"github.com/jonathan/resume-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for the score and enhance commands
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
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens line to width runes.
func clip(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-3]) + "..."
}

// PrintScoreResult outputs the score, its breakdown, gaps and keyword coverage
// for one résumé. source labels the box and may be empty.
func (p *Printer) PrintScoreResult(source string, result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:    %d / %d\n", result.Score, scoring.TotalScoreMax))
	sb.WriteString(fmt.Sprintf("  Keywords  %2d / %d\n", result.Breakdown.Keyword, scoring.KeywordScoreMax))
	sb.WriteString(fmt.Sprintf("  Sections  %2d / %d\n", result.Breakdown.Section, scoring.SectionScoreMax))
	sb.WriteString(fmt.Sprintf("  Quality   %2d / %d\n", result.Breakdown.Quality, scoring.QualityScoreMax))

	if len(result.Gaps) > 0 {
		sb.WriteString("\nGaps:\n")
		for _, gap := range result.Gaps {
			sb.WriteString(fmt.Sprintf("  • %s\n", gap))
		}
	}

	matched, missing := result.Breakdown.MatchedKeywords, result.Breakdown.MissingKeywords
	if total := len(matched) + len(missing); total > 0 {
		sb.WriteString(fmt.Sprintf("\nJob keywords matched: %d of %d\n", len(matched), total))
		writeWordList(&sb, "Missing", missing)
	}

	title := "ATS SCORE"
	if source != "" {
		title += ": " + filepath.Base(source)
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// writeWordList writes up to maxItemsToShow words, wrapped to the box width.
func writeWordList(sb *strings.Builder, label string, words []string) {
	if len(words) == 0 {
		return
	}

	shown := words[:min(len(words), maxItemsToShow)]
	line := "  " + label + ":"
	for _, w := range shown {
		if len([]rune(line))+len([]rune(w))+1 > boxWidth-4 {
			sb.WriteString(line + "\n")
			line = "   "
		}
		line += " " + w
	}
	sb.WriteString(line + "\n")

	if len(words) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(words)-maxItemsToShow))
	}
}

// ScoreEntry is one scored file in a ranking.
type ScoreEntry struct {
	Source string
	Result *types.ScoreResult
	Err    error
}

// PrintScoreRanking outputs scored files from best to worst. Files that failed
// to load are listed last with their error.
func (p *Printer) PrintScoreRanking(entries []ScoreEntry) {
	if len(entries) == 0 {
		return
	}

	sorted := make([]ScoreEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		if a.Err != nil || a.Result == nil || b.Result == nil {
			return false
		}
		return a.Result.Score > b.Result.Score
	})

	var sb strings.Builder
	for i, e := range sorted {
		name := filepath.Base(e.Source)
		switch {
		case e.Err != nil:
			sb.WriteString(fmt.Sprintf("  -  %s: %v\n", name, e.Err))
		case e.Result != nil:
			sb.WriteString(fmt.Sprintf("#%-2d %3d  %s", i+1, e.Result.Score, name))
			if n := len(e.Result.Gaps); n > 0 {
				sb.WriteString(fmt.Sprintf(" (%d gaps)", n))
			}
			sb.WriteString("\n")
		}
	}

	p.printBox("RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEnhancement outputs the changes an enhancement applied.
func (p *Printer) PrintEnhancement(source string, changes []string) {
	var sb strings.Builder

	if len(changes) == 0 {
		sb.WriteString("No changes needed.")
	} else {
		sb.WriteString(fmt.Sprintf("Applied %d change(s):\n", len(changes)))
		for _, c := range changes {
			sb.WriteString(fmt.Sprintf("  • %s\n", describeChange(c)))
		}
	}

	title := "ENHANCEMENT"
	if source != "" {
		title += ": " + filepath.Base(source)
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

var changeDescriptions = map[string]string{
	enhance.ChangeSummaryExtended: "Extended short summary",
	enhance.ChangeSkillsDeduped:   "Removed duplicate skills",
}

func describeChange(change string) string {
	if d, ok := changeDescriptions[change]; ok {
		return d
	}
	return change
}

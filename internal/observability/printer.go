// Package observability renders analyses and history as boxed text for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ecodeclub/ekit/slice"
	"github.com/jonathan/placement-readiness/internal/checklist"
	"github.com/jonathan/placement-readiness/internal/scoring"
	"github.com/jonathan/placement-readiness/internal/types"
)

const (
	// boxWidth is the outer width of every box, borders included
	boxWidth = 72
	// maxItemsToShow caps list sections unless the printer is verbose
	maxItemsToShow = 5
)

// Printer writes boxed summaries. Verbose printers show full lists.
type Printer struct {
	out     io.Writer
	verbose bool
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Verbose returns a copy of p that prints every list item.
func (p *Printer) Verbose(on bool) *Printer {
	return &Printer{out: p.out, verbose: on}
}

// printBox prints a titled box. Lines wider than the box are cut with an ellipsis.
//
//nolint:errcheck // terminal output; write errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

func (p *Printer) limit(n int) int {
	if p.verbose {
		return n
	}
	return min(n, maxItemsToShow)
}

func (p *Printer) writeList(sb *strings.Builder, items []string, bullet string) {
	shown := p.limit(len(items))
	for _, item := range items[:shown] {
		fmt.Fprintf(sb, "  %s %s\n", bullet, item)
	}
	if len(items) > shown {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-shown)
	}
}

func header(e types.AnalysisEntry) string {
	company := e.Company
	if company == "" {
		company = "(no company)"
	}
	role := e.Role
	if role == "" {
		role = "(no role)"
	}
	return fmt.Sprintf("%s · %s", company, role)
}

// PrintSummary outputs the score block for an entry.
func (p *Printer) PrintSummary(e types.AnalysisEntry, intel *types.CompanyIntel, warnings []string) {
	cat := scoring.CategorizeScore(e.FinalScore)

	var sb strings.Builder
	fmt.Fprintf(&sb, "ID:        %s\n", e.ID)
	fmt.Fprintf(&sb, "Analyzed:  %s\n", e.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&sb, "Role:      %s\n", header(e))
	fmt.Fprintf(&sb, "\nReadiness: %d/100 (%s)\n", e.FinalScore, cat.Label)
	fmt.Fprintf(&sb, "Base:      %d/100\n", e.BaseScore)
	if intel != nil {
		fmt.Fprintf(&sb, "\nCompany:   %s, %s (%s)\n", intel.SizeLabel, intel.SizeRange, intel.Industry)
		fmt.Fprintf(&sb, "Focus:     %s\n", intel.HiringFocus.Title)
	}
	for _, w := range warnings {
		fmt.Fprintf(&sb, "\n! %s", w)
	}
	p.printBox("READINESS ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs detected skills by category with their confidence marks.
func (p *Printer) PrintSkills(e types.AnalysisEntry) {
	var sb strings.Builder
	for _, c := range types.Categories {
		list := e.ExtractedSkills[c]
		if len(list) == 0 {
			continue
		}
		marked := slice.Map(list, func(_ int, skill string) string {
			if e.SkillConfidenceMap[skill] == types.ConfidenceKnow {
				return skill + " ✓"
			}
			return skill
		})
		fmt.Fprintf(&sb, "%-13s %s\n", c.Label()+":", strings.Join(marked, ", "))
	}
	sb.WriteString("\n✓ = marked as known")
	p.printBox("DETECTED SKILLS", sb.String())
}

// PrintRounds outputs the expected interview rounds.
func (p *Printer) PrintRounds(rounds []types.Round) {
	if len(rounds) == 0 {
		return
	}
	var sb strings.Builder
	for i, r := range rounds {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", r.Round, r.RoundTitle, r.Duration)
		fmt.Fprintf(&sb, "   %s\n", r.Description)
		for _, f := range r.FocusAreas {
			fmt.Fprintf(&sb, "   Focus: %s\n", f)
		}
		if i < len(rounds)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("INTERVIEW ROUNDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintChecklist outputs the per-round preparation checklist.
func (p *Printer) PrintChecklist(rounds []types.ChecklistRound) {
	if len(rounds) == 0 {
		return
	}
	var sb strings.Builder
	for i, r := range rounds {
		fmt.Fprintf(&sb, "Round %d: %s\n", r.Round, r.RoundTitle)
		p.writeList(&sb, r.Items, "□")
		if i < len(rounds)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("PREPARATION CHECKLIST", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlan outputs the seven-day plan.
func (p *Printer) PrintPlan(days []types.PlanDay) {
	if len(days) == 0 {
		return
	}
	var sb strings.Builder
	for _, d := range days {
		fmt.Fprintf(&sb, "Day %d: %s\n", d.Day, d.Focus)
		if p.verbose {
			p.writeList(&sb, d.Tasks, "•")
		}
	}
	p.printBox("7-DAY PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs the likely interview questions.
func (p *Printer) PrintQuestions(questions []string) {
	if len(questions) == 0 {
		return
	}
	var sb strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&sb, "%2d. %s\n", i+1, q)
	}
	p.printBox("LIKELY QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs every section for one entry.
func (p *Printer) PrintAnalysis(e types.AnalysisEntry, intel *types.CompanyIntel, warnings []string) {
	p.PrintSummary(e, intel, warnings)
	p.PrintSkills(e)
	p.PrintRounds(e.RoundMapping)
	p.PrintChecklist(e.Checklist)
	p.PrintPlan(e.Plan7Days)
	p.PrintQuestions(e.Questions)
}

// PrintHistory outputs one line per entry, newest first, with any repair advisory.
func (p *Printer) PrintHistory(entries []types.AnalysisEntry, advisory string) {
	var sb strings.Builder
	if len(entries) == 0 {
		sb.WriteString("No analyses saved yet.")
	}
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s  %3d  %-10s %s\n",
			e.CreatedAt.Format("2006-01-02"), e.FinalScore, scoring.CategorizeScore(e.FinalScore).Label, header(e))
		fmt.Fprintf(&sb, "            id %s\n", e.ID)
	}
	if advisory != "" {
		fmt.Fprintf(&sb, "\n! %s", advisory)
	}
	p.printBox(fmt.Sprintf("HISTORY (%d)", len(entries)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTestChecklist outputs the release test checklist with pass marks.
func (p *Printer) PrintTestChecklist(state checklist.State) {
	var sb strings.Builder
	for _, item := range checklist.Items {
		mark := "[ ]"
		if state[item.ID] {
			mark = "[x]"
		}
		fmt.Fprintf(&sb, "%s %-22s %s\n", mark, item.ID, item.Label)
	}
	fmt.Fprintf(&sb, "\n%d/%d passed", state.PassedCount(), len(checklist.Items))
	if state.AllPassed() {
		sb.WriteString(" (ready to ship)")
	}
	p.printBox("TEST CHECKLIST", sb.String())
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/batch"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/i18n"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// Output formats of the solve command.
const (
	FormatPretty   = "pretty"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Formats lists the supported output formats.
var Formats = []string{FormatPretty, FormatJSON, FormatMarkdown}

// RenderSolution renders a solution as a lipgloss box.
func RenderSolution(question string, s *model.Solution, loc model.Locale) string {
	texts := i18n.For(loc)
	labels := texts.Labels

	var b strings.Builder
	if question != "" {
		b.WriteString(SubtleStyle.Render(labels.Question+": "+question) + "\n\n")
	}

	b.WriteString(HeadingStyle.Render(labels.Analysis) + "\n")
	b.WriteString(s.Analysis + "\n\n")

	b.WriteString(HeadingStyle.Render(labels.Steps) + "\n")
	for _, step := range s.Steps {
		b.WriteString(BoldStyle.Render(step.Title) + "\n")
		b.WriteString("  " + step.Description + "\n")
	}
	b.WriteString("\n")

	b.WriteString(HeadingStyle.Render(labels.Formula) + "\n")
	b.WriteString(FormulaStyle.Render(s.Formula) + "\n")
	if s.Calculation != "" {
		b.WriteString(FormulaStyle.Render(s.Calculation) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(SuccessStyle.Render(SuccessIcon + " " + s.Answer))

	return RenderBox(CalcIcon+" "+texts.TypeNames[s.Type], b.String())
}

// RenderMarkdown renders a solution as a markdown document.
func RenderMarkdown(question string, s *model.Solution, loc model.Locale) string {
	texts := i18n.For(loc)
	labels := texts.Labels

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", texts.TypeNames[s.Type])
	if question != "" {
		fmt.Fprintf(&b, "> %s\n\n", question)
	}
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", labels.Analysis, s.Analysis)

	b.WriteString("| | | |\n|---|---:|---|\n")
	for _, row := range []struct {
		name string
		q    model.QuantitySummary
	}{
		{"A1", s.Summary.A1},
		{"B1", s.Summary.B1},
		{"A2", s.Summary.A2},
		{"B2", s.Summary.B2},
	} {
		unit := ""
		if row.q.Unit != nil {
			unit = *row.q.Unit
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", row.name, row.q.Formatted, unit)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", labels.Steps)
	for i, step := range s.Steps {
		fmt.Fprintf(&b, "%d. **%s**  \n   %s\n", i+1, step.Title, step.Description)
	}

	fmt.Fprintf(&b, "\n## %s\n\n`%s`\n\n", labels.Formula, s.Formula)
	if s.Calculation != "" {
		fmt.Fprintf(&b, "`%s`\n\n", s.Calculation)
	}
	fmt.Fprintf(&b, "**%s**\n", s.Answer)

	return b.String()
}

// RenderMarkdownTerminal renders markdown for a terminal of the given width.
func RenderMarkdownTerminal(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// RenderSolveError renders a failed solve with its localized message.
func RenderSolveError(err error, loc model.Locale) string {
	code := common.CodeOf(err)
	return FormatError(fmt.Sprintf("%s: %s", code, i18n.ErrorMessage(code, loc)))
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderHistoryTable renders history records as an aligned table.
func RenderHistoryTable(records []model.HistoryRecord) string {
	headers := []string{"ID", "CREATED", "LOCALE", "OUTCOME", "RESULT", "QUESTION"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		result := ""
		if r.Succeeded() {
			result = i18n.FormatNumber(r.Result, r.Locale)
		}
		rows = append(rows, []string{
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			string(r.Locale),
			r.Outcome(),
			result,
			truncate(r.Question, 48),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = TableCellStyle.Width(widths[i] + 2).Render(h)
	}
	b.WriteString(TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...)) + "\n")

	for _, row := range rows {
		for i, cell := range row {
			style := TableCellStyle.Width(widths[i] + 2)
			if i == 3 && cell != model.OutcomeOK {
				style = style.Foreground(ErrorColor)
			}
			cells[i] = style.Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	return b.String()
}

// RenderStats renders history statistics.
func RenderStats(stats *model.HistoryStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n\n", BoldStyle.Render("Total:"), stats.Total)

	b.WriteString(HeadingStyle.Render("By outcome") + "\n")
	for _, code := range sortedKeys(stats.ByCode) {
		fmt.Fprintf(&b, "  %-18s %d\n", code, stats.ByCode[code])
	}

	b.WriteString("\n" + HeadingStyle.Render("By locale") + "\n")
	locales := make(map[string]int, len(stats.ByLocale))
	for loc, n := range stats.ByLocale {
		locales[string(loc)] = n
	}
	for _, loc := range sortedKeys(locales) {
		fmt.Fprintf(&b, "  %-18s %d\n", loc, locales[loc])
	}

	return RenderBox(ChartIcon+" History", b.String())
}

// RenderBatchSummary renders the outcome counts of a batch run.
func RenderBatchSummary(summary batch.Summary, elapsed time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  • Problems: %d\n", summary.Total)
	fmt.Fprintf(&b, "  • Solved: %s\n", SuccessStyle.Render(fmt.Sprint(summary.Solved)))
	failed := fmt.Sprint(summary.Failed)
	if summary.Failed > 0 {
		failed = ErrorStyle.Render(failed)
	}
	fmt.Fprintf(&b, "  • Failed: %s\n", failed)
	for _, code := range summary.Codes() {
		fmt.Fprintf(&b, "      %s: %d\n", code, summary.ByCode[code])
	}
	fmt.Fprintf(&b, "  • Time taken: %s", elapsed.Round(time.Millisecond))

	return RenderBox(ChartIcon+" Batch Complete", b.String())
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

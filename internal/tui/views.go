package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/i18n"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	texts := i18n.For(m.locale)
	labels := texts.Labels

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.theme.Title.UnsetMargins().Render("🧮 Dreisatz"),
		"  ",
		m.theme.Badge.Render(strings.ToUpper(string(m.locale))),
	)

	sections := []string{
		header,
		"",
		m.theme.Subtitle.Render(labels.Question),
		m.input.View(),
		"",
	}

	switch {
	case m.solving:
		sections = append(sections, m.theme.StatusPending.Render("…"))
	case m.lastErr != nil:
		code := common.CodeOf(m.lastErr)
		sections = append(sections, m.theme.StatusError.Render(fmt.Sprintf("✗ %s", i18n.ErrorMessage(code, m.locale))))
	case m.solution != nil:
		sections = append(sections, m.solutionView())
	}

	sections = append(sections, "", m.theme.Subtitle.Render(labels.Help))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) solutionView() string {
	s := m.solution
	texts := i18n.For(m.locale)
	labels := texts.Labels

	var b strings.Builder
	b.WriteString(m.theme.Heading.Render(texts.TypeNames[s.Type]) + "\n")
	b.WriteString(m.theme.Normal.Render(s.Analysis) + "\n\n")

	b.WriteString(m.theme.Heading.Render(labels.Steps) + "\n")
	for _, step := range s.Steps {
		b.WriteString(m.theme.Bold.Render(step.Title) + "\n")
		b.WriteString(m.theme.Normal.Render("  "+step.Description) + "\n")
	}

	b.WriteString("\n" + m.theme.Heading.Render(labels.Formula) + "\n")
	b.WriteString(m.theme.Formula.Render(s.Formula) + "\n")
	if s.Calculation != "" {
		b.WriteString(m.theme.Formula.Render(s.Calculation) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.StatusSuccess.Render("✓ " + s.Answer))

	return m.theme.RoundedBox.Width(max(m.width-4, 20)).Render(b.String())
}

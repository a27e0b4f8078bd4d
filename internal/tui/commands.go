package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// solveTimeout bounds a single solve started from the TUI.
const solveTimeout = 10 * time.Second

// solve runs the solver off the update loop.
func (m Model) solve(question string, loc model.Locale, seq int) tea.Cmd {
	solver := m.solver
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, solveTimeout)
		defer cancel()

		solution, err := solver.Solve(ctx, question, loc)
		return solvedMsg{
			solution: solution,
			err:      err,
			question: question,
			locale:   loc,
			seq:      seq,
		}
	}
}

package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/service"
)

// Run starts an interactive session and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, solver service.Solver, opts ...Option) error {
	if solver == nil {
		return fmt.Errorf("solver is required")
	}

	p := tea.NewProgram(NewModel(ctx, solver, opts...), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}

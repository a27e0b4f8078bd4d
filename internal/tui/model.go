// Package tui implements the interactive solver session.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/service"
)

// Model holds the TUI state.
type Model struct {
	ctx      context.Context
	solver   service.Solver
	lastErr  error
	solution *model.Solution
	theme    Theme
	keymap   KeyMap
	question string
	locale   model.Locale
	input    textinput.Model
	seq      int
	width    int
	solving  bool
	quitting bool
}

// NewModel creates the initial state of a session.
func NewModel(ctx context.Context, solver service.Solver, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 500
	input.Width = cfg.Width - 6
	input.Focus()

	return Model{
		ctx:    ctx,
		solver: solver,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		locale: cfg.Locale,
		input:  input,
		width:  cfg.Width,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.CycleLocale):
			m.locale = m.locale.Next()
			if m.question == "" {
				return m, nil
			}
			return m.startSolve(m.question)

		case key.Matches(msg, m.keymap.Solve):
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			return m.startSolve(question)
		}

	case solvedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.solving = false
		m.solution = msg.solution
		m.lastErr = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startSolve(question string) (tea.Model, tea.Cmd) {
	m.seq++
	m.question = question
	m.solving = true
	return m, m.solve(question, m.locale, m.seq)
}

// Locale returns the locale solutions are currently rendered in.
func (m Model) Locale() model.Locale {
	return m.locale
}

// Solution returns the most recent solution, nil after a failure.
func (m Model) Solution() *model.Solution {
	return m.solution
}

// Err returns the error of the most recent solve.
func (m Model) Err() error {
	return m.lastErr
}

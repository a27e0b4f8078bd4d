package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

type stubSolver struct {
	err   error
	calls []model.Locale
}

func (s *stubSolver) Solve(_ context.Context, question string, loc model.Locale) (*model.Solution, error) {
	s.calls = append(s.calls, loc)
	if s.err != nil {
		return nil, s.err
	}
	return &model.Solution{
		Type:        model.Proportional,
		Analysis:    "analysis " + string(loc),
		Answer:      "answer to " + question,
		Formula:     "B2 = B1 × (A2 / A1)",
		Calculation: "B2 = 1 × (2 / 1) = 2",
		Steps:       []model.Step{{Title: "Step 1", Description: "first"}},
	}, nil
}

// press sends a key and runs the resulting command once, feeding its message
// back into the model.
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	if out, ok := cmd().(solvedMsg); ok {
		next, _ = m.Update(out)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func TestModelSolvesOnEnter(t *testing.T) {
	solver := &stubSolver{}
	m := NewModel(context.Background(), solver)

	m = typeText(m, "3 Äpfel kosten 6 Euro. Was kosten 5 Äpfel?")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, m.Solution())
	assert.NoError(t, m.Err())
	assert.Equal(t, "answer to 3 Äpfel kosten 6 Euro. Was kosten 5 Äpfel?", m.Solution().Answer)
	assert.Equal(t, []model.Locale{model.LocaleDE}, solver.calls)
	assert.Contains(t, m.View(), "Lösungsweg")
}

func TestModelIgnoresEmptyInput(t *testing.T) {
	solver := &stubSolver{}
	m := NewModel(context.Background(), solver)

	m = typeText(m, "   ")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, solver.calls)
	assert.Nil(t, m.Solution())
}

func TestModelCyclesLocale(t *testing.T) {
	solver := &stubSolver{}
	m := NewModel(context.Background(), solver)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, model.LocaleEN, m.Locale())
	assert.Empty(t, solver.calls, "nothing to re-solve yet")

	m = typeText(m, "3 apples cost 6 euros. How much do 5 apples cost?")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, model.LocaleZH, m.Locale())
	assert.Equal(t, []model.Locale{model.LocaleEN, model.LocaleZH}, solver.calls)
	assert.Equal(t, "analysis zh", m.Solution().Analysis)
	assert.Contains(t, m.View(), "解题步骤")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, model.LocaleDE, m.Locale())
}

func TestModelShowsLocalizedError(t *testing.T) {
	solver := &stubSolver{err: common.NewSolveError(common.CodeTooShort, errors.New("short"))}
	m := NewModel(context.Background(), solver, WithLocale(model.LocaleEN))

	m = typeText(m, "too short")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, m.Solution())
	assert.Equal(t, common.CodeTooShort, common.CodeOf(m.Err()))
	assert.Contains(t, m.View(), "✗")
}

func TestModelDiscardsStaleResults(t *testing.T) {
	m := NewModel(context.Background(), &stubSolver{})
	m.seq = 2
	m.solving = true

	next, _ := m.Update(solvedMsg{seq: 1, solution: &model.Solution{Answer: "stale"}})
	m = next.(Model)

	assert.True(t, m.solving)
	assert.Nil(t, m.Solution())
}

func TestModelQuits(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{name: "escape", key: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "ctrl+c", key: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(context.Background(), &stubSolver{})
			next, cmd := m.Update(tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, next.(Model).View())
		})
	}
}

func TestModelResize(t *testing.T) {
	m := NewModel(context.Background(), &stubSolver{}, WithWidth(40))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 114, m.input.Width)
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, ThemeByName("mocha").Primary)
	assert.Equal(t, Default.Primary, ThemeByName("unknown").Primary)
}

func TestRunRequiresSolver(t *testing.T) {
	assert.Error(t, Run(context.Background(), nil))
}

package tui

import "github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"

// solvedMsg carries the outcome of one solve request. seq discards results of
// requests that were superseded while in flight.
type solvedMsg struct {
	err      error
	solution *model.Solution
	question string
	locale   model.Locale
	seq      int
}

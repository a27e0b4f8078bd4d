// Package engine runs the rule-of-three pipeline: validation, extraction,
// triple resolution, type classification and solution rendering.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/parser"
)

// MinQuestionLength is the minimum number of characters of a trimmed question.
const MinQuestionLength = 12

// ErrTooShort is returned for questions below MinQuestionLength.
var ErrTooShort = errors.New("question too short")

// Engine solves word problems. It holds no per-request state and is safe for
// concurrent use as long as its classifier is.
type Engine struct {
	classifier TypeClassifier
}

// New creates an engine that classifies problems with classifier.
func New(classifier TypeClassifier) *Engine {
	return &Engine{classifier: classifier}
}

// Analyze runs the pipeline up to classification.
func (e *Engine) Analyze(question string) (*model.Classification, error) {
	question = strings.TrimSpace(question)
	if utf8.RuneCountInString(question) < MinQuestionLength {
		return nil, common.NewSolveError(common.CodeTooShort, ErrTooShort)
	}

	pairs := parser.ExtractQuantities(parser.Tokenize(question))
	if len(pairs) < MinQuantities {
		return nil, common.NewSolveError(common.CodeMissingNumbers, ErrTooFewQuantities)
	}

	target := parser.DetectTargetUnit(question)
	triple, err := ResolveTriple(pairs, target)
	if err != nil {
		common.LogDebug("Triple resolution failed", common.Fields{
			"quantities": len(pairs),
			"target":     target,
			"error":      err,
		})
		return nil, err
	}

	return &model.Classification{
		Type:   e.classifier.Classify(question),
		Triple: triple,
	}, nil
}

// Solve answers question in loc. Failures are *common.SolveError values
// carrying the outcome code.
func (e *Engine) Solve(ctx context.Context, question string, loc model.Locale) (*model.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.NewSolveError(common.CodeUnknown, err)
	}

	c, err := e.Analyze(question)
	if err != nil {
		return nil, err
	}

	solution, err := BuildSolution(*c, loc)
	if err != nil {
		return nil, err
	}

	slog.Debug("Solved question",
		"locale", loc,
		"type", c.Type,
		"a1", c.Triple.A1.Value,
		"b1", c.Triple.B1.Value,
		"a2", c.Triple.A2.Value,
		"b2", solution.Summary.B2.Value)

	return solution, nil
}

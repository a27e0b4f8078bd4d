package engine

import "github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"

// TypeClassifier decides whether a question describes a proportional or an
// antiproportional relationship.
type TypeClassifier interface {
	Classify(text string) model.ProblemType
}

// TypeClassifierFunc adapts a function to TypeClassifier.
type TypeClassifierFunc func(text string) model.ProblemType

// Classify calls f(text).
func (f TypeClassifierFunc) Classify(text string) model.ProblemType {
	return f(text)
}

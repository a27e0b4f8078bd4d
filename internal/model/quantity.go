package model

// ProblemType distinguishes direct from inverse proportion.
type ProblemType string

const (
	// Proportional means both quantities grow by the same factor.
	Proportional ProblemType = "proportional"
	// Antiproportional means one quantity shrinks by the factor the other grows.
	Antiproportional ProblemType = "antiproportional"
)

// Valid reports whether t is one of the known problem types.
func (t ProblemType) Valid() bool {
	return t == Proportional || t == Antiproportional
}

// Quantity is a number found in the question together with the unit it was attached to.
type Quantity struct {
	RawUnit string // unit text as written, kept for diagnostics
	Unit    string // canonical unit key, empty when no unit word was found
	Value   float64
	Index   int // token index of the number
}

// HasUnit reports whether a unit word was resolved for the quantity.
func (q Quantity) HasUnit() bool {
	return q.Unit != ""
}

// SameUnit reports whether q and other share a dimension. Two quantities
// without a unit are considered to share the generic dimension.
func (q Quantity) SameUnit(other Quantity) bool {
	return q.Unit == other.Unit
}

// Triple holds the three known values of a rule-of-three problem.
// A1 and A2 share the base dimension, B1 is the value paired with A1.
type Triple struct {
	A1 Quantity
	B1 Quantity
	A2 Quantity
}

// Classification is the outcome of type detection plus triple resolution.
type Classification struct {
	Type   ProblemType
	Triple Triple
}

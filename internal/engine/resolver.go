package engine

import (
	"errors"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// MinQuantities is the number of values a rule-of-three problem needs.
const MinQuantities = 3

// Resolution errors.
var (
	ErrTooFewQuantities = errors.New("fewer than three quantities")
	ErrNoBaseDimension  = errors.New("no quantity in a dimension other than the target")
	ErrNoQueryQuantity  = errors.New("no second quantity in the base dimension")
)

// ResolveTriple picks the known base value a1, its paired value b1 and the
// queried base value a2 from the quantities in token order.
//
// b1 is the first quantity in the target unit, or the first quantity when no
// target unit was detected. The base unit is the unit of the first other
// quantity that differs from b1's; a1 and a2 are the first two quantities in
// that unit.
func ResolveTriple(pairs []model.Quantity, target string) (model.Triple, error) {
	if len(pairs) < MinQuantities {
		return model.Triple{}, common.NewSolveError(common.CodeMissingNumbers, ErrTooFewQuantities)
	}

	b1 := pairs[0]
	if target != "" {
		for _, p := range pairs {
			if p.Unit == target {
				b1 = p
				break
			}
		}
	}

	baseUnit, found := "", false
	for _, p := range pairs {
		if p.Index != b1.Index && !p.SameUnit(b1) {
			baseUnit, found = p.Unit, true
			break
		}
	}
	if !found {
		return model.Triple{}, common.NewSolveError(common.CodeParseError, ErrNoBaseDimension)
	}

	var a1, a2 *model.Quantity
	for i := range pairs {
		p := &pairs[i]
		if p.Unit != baseUnit {
			continue
		}
		switch {
		case a1 == nil:
			a1 = p
		case p.Index != a1.Index && p.Index != b1.Index:
			a2 = p
		}
		if a2 != nil {
			break
		}
	}
	if a1 == nil || a2 == nil {
		return model.Triple{}, common.NewSolveError(common.CodeParseError, ErrNoQueryQuantity)
	}

	return model.Triple{A1: *a1, B1: b1, A2: *a2}, nil
}

package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/i18n"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/units"
)

// ErrZeroQuantity is returned when a1 or a2 is zero and the result would be undefined.
var ErrZeroQuantity = errors.New("base quantity is zero")

// Compute returns the unknown value b2 together with the intermediate value
// of the first step: the value per base unit for proportional problems and
// the invariant product for antiproportional ones.
func Compute(typ model.ProblemType, t model.Triple) (result, intermediate float64, err error) {
	if t.A1.Value == 0 || t.A2.Value == 0 {
		return 0, 0, common.NewSolveError(common.CodeParseError, ErrZeroQuantity)
	}

	switch typ {
	case model.Proportional:
		intermediate = t.B1.Value / t.A1.Value
		result = intermediate * t.A2.Value
	case model.Antiproportional:
		intermediate = t.A1.Value * t.B1.Value
		result = intermediate / t.A2.Value
	default:
		return 0, 0, common.NewSolveError(common.CodeUnknown, fmt.Errorf("unknown problem type %q", typ))
	}

	if math.IsNaN(result) || math.IsInf(result, 0) || math.IsInf(intermediate, 0) {
		return 0, 0, common.NewSolveError(common.CodeParseError, fmt.Errorf("result out of range: %v", result))
	}
	return result, intermediate, nil
}

// BuildSolution computes b2 and renders the localized solution.
func BuildSolution(c model.Classification, loc model.Locale) (*model.Solution, error) {
	result, intermediate, err := Compute(c.Type, c.Triple)
	if err != nil {
		return nil, err
	}

	t := c.Triple
	b2 := model.Quantity{Value: result, Unit: t.B1.Unit, RawUnit: t.B1.RawUnit}
	texts := i18n.For(loc)

	v := i18n.Values{
		A1:          quantityText(t.A1, loc),
		B1:          quantityText(t.B1, loc),
		A2:          quantityText(t.A2, loc),
		B2:          quantityText(b2, loc),
		A1Number:    i18n.FormatNumber(t.A1.Value, loc),
		B1Number:    i18n.FormatNumber(t.B1.Value, loc),
		A2Number:    i18n.FormatNumber(t.A2.Value, loc),
		B2Number:    i18n.FormatNumber(result, loc),
		BaseOne:     i18n.Quantity(i18n.FormatNumber(1, loc), units.LabelFor(genericIfEmpty(t.A1.Unit), loc, 1), loc),
		BaseUnits:   units.LabelFor(genericIfEmpty(t.A1.Unit), loc, 2),
		TargetUnits: units.LabelFor(genericIfEmpty(t.B1.Unit), loc, 2),
	}

	var steps []model.Step
	var formula, calculation string
	switch c.Type {
	case model.Proportional:
		v.UnitNumber = i18n.FormatNumber(intermediate, loc)
		v.UnitValue = quantityText(model.Quantity{Value: intermediate, Unit: t.B1.Unit}, loc)
		steps = []model.Step{
			{Title: texts.ProportionalStepTitles[0], Description: texts.UnitStep(v)},
			{Title: texts.ProportionalStepTitles[1], Description: texts.ScaleStep(v)},
		}
		formula = i18n.ProportionalFormula
		calculation = i18n.ProportionalCalculation(v)
	case model.Antiproportional:
		v.Product = i18n.FormatNumber(intermediate, loc)
		steps = []model.Step{
			{Title: texts.AntiproportionalStepTitles[0], Description: texts.ProductStep(v)},
			{Title: texts.AntiproportionalStepTitles[1], Description: texts.DivideStep(v)},
		}
		formula = i18n.AntiproportionalFormula
		calculation = i18n.AntiproportionalCalculation(v)
	}

	return &model.Solution{
		Type:     c.Type,
		Analysis: texts.Analysis[c.Type](v),
		Summary: model.Summary{
			A1: summarize(t.A1, loc),
			B1: summarize(t.B1, loc),
			A2: summarize(t.A2, loc),
			B2: summarize(b2, loc),
		},
		Steps:       steps,
		Answer:      texts.Answer(v),
		Formula:     formula,
		Calculation: calculation,
	}, nil
}

func genericIfEmpty(key string) string {
	if key == "" {
		return units.Generic
	}
	return key
}

// unitLabel is the display label of q, or empty when q has no unit.
func unitLabel(q model.Quantity, loc model.Locale) string {
	if !q.HasUnit() {
		return ""
	}
	return units.LabelFor(q.Unit, loc, q.Value)
}

func quantityText(q model.Quantity, loc model.Locale) string {
	return i18n.Quantity(i18n.FormatNumber(q.Value, loc), unitLabel(q, loc), loc)
}

func summarize(q model.Quantity, loc model.Locale) model.QuantitySummary {
	s := model.QuantitySummary{
		Value:     q.Value,
		Formatted: i18n.FormatNumber(q.Value, loc),
	}
	if label := unitLabel(q, loc); label != "" {
		s.Unit = &label
	}
	return s
}

package engine

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/classification"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

func newTestEngine() *Engine {
	return New(classification.NewDefaultHintDetector())
}

func strPtr(s string) *string { return &s }

func TestEngineSolveScenarios(t *testing.T) {
	tests := []struct {
		name     string
		question string
		loc      model.Locale
		wantType model.ProblemType
		a1, b1   float64
		a2, b2   float64
		b2Unit   *string
	}{
		{
			name:     "german apples",
			question: "5 Äpfel kosten 2,50 Euro. Wie viele Euro kosten 3 Äpfel?",
			loc:      model.LocaleDE,
			wantType: model.Proportional,
			a1:       5, b1: 2.5, a2: 3, b2: 1.5,
			b2Unit: strPtr("Euro"),
		},
		{
			name:     "german painters",
			question: "3 Maler benötigen 5 Stunden. Wie lange brauchen 5 Maler?",
			loc:      model.LocaleDE,
			wantType: model.Antiproportional,
			a1:       3, b1: 5, a2: 5, b2: 3,
			b2Unit: strPtr("Stunden"),
		},
		{
			name:     "english liters",
			question: "8 liters last 100 km. How many liters for 350 km?",
			loc:      model.LocaleEN,
			wantType: model.Proportional,
			a1:       100, b1: 8, a2: 350, b2: 28,
			b2Unit: strPtr("liters"),
		},
		{
			name:     "english workers take for",
			question: "6 workers need 10 days. How long will it take for 4 workers?",
			loc:      model.LocaleEN,
			wantType: model.Antiproportional,
			a1:       6, b1: 10, a2: 4, b2: 15,
			b2Unit: strPtr("days"),
		},
		{
			name:     "chinese workers",
			question: "3个工人需要6天完成，6个工人需要多少天？",
			loc:      model.LocaleZH,
			wantType: model.Antiproportional,
			a1:       3, b1: 6, a2: 6, b2: 3,
			b2Unit: strPtr("天"),
		},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Solve(context.Background(), tt.question, tt.loc)
			require.NoError(t, err)

			assert.Equal(t, tt.wantType, got.Type)
			assert.InDelta(t, tt.a1, got.Summary.A1.Value, 1e-9)
			assert.InDelta(t, tt.b1, got.Summary.B1.Value, 1e-9)
			assert.InDelta(t, tt.a2, got.Summary.A2.Value, 1e-9)
			assert.InDelta(t, tt.b2, got.Summary.B2.Value, 1e-9)
			assert.Equal(t, tt.b2Unit, got.Summary.B2.Unit)
			assert.Len(t, got.Steps, 2)
			assert.NotEmpty(t, got.Analysis)
			assert.NotEmpty(t, got.Answer)
			assert.True(t, strings.HasPrefix(got.Formula, "B2 = "))
			assert.True(t, strings.HasPrefix(got.Calculation, "B2 = "))
			assert.Equal(t, 1, strings.Count(got.Formula, "="))
			assert.True(t, strings.HasSuffix(got.Calculation, "= "+got.Summary.B2.Formatted))
		})
	}
}

func TestEngineSolveGermanText(t *testing.T) {
	got, err := newTestEngine().Solve(context.Background(), "5 Äpfel kosten 2,50 Euro. Wie viele Euro kosten 3 Äpfel?", model.LocaleDE)
	require.NoError(t, err)

	want := &model.Solution{
		Type:     model.Proportional,
		Analysis: "Proportionaler Dreisatz: Je mehr Äpfel, desto mehr Euro.",
		Summary: model.Summary{
			A1: model.QuantitySummary{Value: 5, Formatted: "5", Unit: strPtr("Äpfel")},
			B1: model.QuantitySummary{Value: 2.5, Formatted: "2,5", Unit: strPtr("Euro")},
			A2: model.QuantitySummary{Value: 3, Formatted: "3", Unit: strPtr("Äpfel")},
			B2: model.QuantitySummary{Value: 1.5, Formatted: "1,5", Unit: strPtr("Euro")},
		},
		Steps: []model.Step{
			{Title: "Schritt 1: Auf eine Einheit schließen", Description: "5 Äpfel entsprechen 2,5 Euro. Für 1 Apfel: 2,5 ÷ 5 = 0,5 Euro."},
			{Title: "Schritt 2: Auf die gesuchte Menge hochrechnen", Description: "Für 3 Äpfel: 0,5 × 3 = 1,5 Euro."},
		},
		Answer:      "Antwort: Für 3 Äpfel ergeben sich 1,5 Euro.",
		Formula:     "B2 = B1 × (A2 / A1)",
		Calculation: "B2 = 2,5 × (3 / 5) = 1,5",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("solution mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineSolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     common.Code
	}{
		{name: "empty", question: "", want: common.CodeTooShort},
		{name: "short with numbers", question: " 1 2 3 4 5 ", want: common.CodeTooShort},
		{name: "short text", question: "It costs", want: common.CodeTooShort},
		{name: "no numbers", question: "It costs a lot of money", want: common.CodeMissingNumbers},
		{name: "two numbers", question: "5 Äpfel kosten 2 Euro, und dann?", want: common.CodeMissingNumbers},
		{name: "same unit everywhere", question: "3 Äpfel und 4 Äpfel und 5 Äpfel", want: common.CodeParseError},
		{name: "no unit words", question: "Aus 4 mach 10, was wird aus 6 ?", want: common.CodeParseError},
		{name: "zero base", question: "0 Äpfel kosten 2 Euro. Wie viele Euro kosten 3 Äpfel?", want: common.CodeParseError},
		{name: "zero query", question: "5 Äpfel kosten 2 Euro. Wie viele Euro kosten 0 Äpfel?", want: common.CodeParseError},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Solve(context.Background(), tt.question, model.LocaleDE)
			require.Error(t, err)
			assert.Equal(t, tt.want, common.CodeOf(err))
		})
	}
}

func TestEngineSolveCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine().Solve(ctx, "5 Äpfel kosten 2,50 Euro. Wie viele Euro kosten 3 Äpfel?", model.LocaleDE)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, common.CodeUnknown, common.CodeOf(err))
}

func TestEngineSolveIdempotent(t *testing.T) {
	e := newTestEngine()
	question := "3 Maler benötigen 5 Stunden. Wie lange brauchen 5 Maler?"

	for _, loc := range model.Locales {
		first, err := e.Solve(context.Background(), question, loc)
		require.NoError(t, err)
		second, err := e.Solve(context.Background(), question, loc)
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	}
}

func TestEngineUsesInjectedClassifier(t *testing.T) {
	e := New(TypeClassifierFunc(func(string) model.ProblemType { return model.Antiproportional }))

	got, err := e.Solve(context.Background(), "5 Äpfel kosten 2,50 Euro. Wie viele Euro kosten 3 Äpfel?", model.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, model.Antiproportional, got.Type)
	assert.InDelta(t, 5*2.5/3, got.Summary.B2.Value, 1e-9)
}

func TestComputeInvariants(t *testing.T) {
	values := []float64{0.25, 1, 2.5, 3, 7, 12.75, 100, 1234.5}

	for _, a1 := range values {
		for _, b1 := range values {
			for _, a2 := range values {
				triple := model.Triple{
					A1: model.Quantity{Value: a1, Unit: "x", Index: 0},
					B1: model.Quantity{Value: b1, Unit: "y", Index: 1},
					A2: model.Quantity{Value: a2, Unit: "x", Index: 2},
				}

				b2, _, err := Compute(model.Proportional, triple)
				require.NoError(t, err)
				assert.InDelta(t, (b1/a1)*a2, b2, 1e-9)

				b2, _, err = Compute(model.Antiproportional, triple)
				require.NoError(t, err)
				assert.LessOrEqual(t, math.Abs(a1*b1-a2*b2), 1e-9*math.Max(1, a1*b1))
			}
		}
	}
}

func TestComputeRejectsUnknownType(t *testing.T) {
	_, _, err := Compute("linear", model.Triple{
		A1: model.Quantity{Value: 1},
		A2: model.Quantity{Value: 1},
	})
	assert.Equal(t, common.CodeUnknown, common.CodeOf(err))
}

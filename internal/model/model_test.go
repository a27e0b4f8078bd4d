package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
	}{
		{in: "de", want: LocaleDE},
		{in: "EN", want: LocaleEN},
		{in: " zh ", want: LocaleZH},
		{in: "", want: LocaleDE},
		{in: "fr", want: LocaleDE},
		{in: "en-US", want: LocaleDE},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLocale(tt.in))
		})
	}
}

func TestLocaleNext(t *testing.T) {
	assert.Equal(t, LocaleEN, LocaleDE.Next())
	assert.Equal(t, LocaleZH, LocaleEN.Next())
	assert.Equal(t, LocaleDE, LocaleZH.Next())
	assert.Equal(t, LocaleDE, Locale("xx").Next())
}

func TestQuestionHash(t *testing.T) {
	a := QuestionHash(LocaleDE, "  5 Äpfel kosten 2 Euro ")
	b := QuestionHash(LocaleDE, "5 Äpfel kosten 2 Euro")
	c := QuestionHash(LocaleEN, "5 Äpfel kosten 2 Euro")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestQuantitySameUnit(t *testing.T) {
	assert.True(t, Quantity{Unit: "km"}.SameUnit(Quantity{Unit: "km"}))
	assert.True(t, Quantity{}.SameUnit(Quantity{}))
	assert.False(t, Quantity{Unit: "km"}.SameUnit(Quantity{}))
	assert.True(t, Antiproportional.Valid())
	assert.False(t, ProblemType("linear").Valid())
}

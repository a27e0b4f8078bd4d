package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

func TestSynonymTargetsExist(t *testing.T) {
	for form, key := range Synonyms() {
		_, ok := Lookup(key)
		assert.True(t, ok, "surface form %q maps to unknown key %q", form, key)
	}
}

func TestDescriptorsHaveAllLocales(t *testing.T) {
	for _, key := range Keys() {
		d, ok := Lookup(key)
		require.True(t, ok)
		assert.Equal(t, key, d.Key)
		for _, loc := range model.Locales {
			label, ok := d.Labels[loc]
			require.True(t, ok, "unit %q has no %s label", key, loc)
			assert.NotEmpty(t, label.Singular, "unit %q %s singular", key, loc)
			assert.NotEmpty(t, label.Plural, "unit %q %s plural", key, loc)
		}
	}
}

func TestGenericUnitExists(t *testing.T) {
	d, ok := Lookup(Generic)
	require.True(t, ok)
	assert.Equal(t, DimensionGeneric, d.Dimension)
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		locale model.Locale
		want   string
		value  float64
	}{
		{name: "german singular", key: "apple", locale: model.LocaleDE, value: 1, want: "Apfel"},
		{name: "german plural", key: "apple", locale: model.LocaleDE, value: 5, want: "Äpfel"},
		{name: "fraction is plural", key: "hour", locale: model.LocaleEN, value: 0.5, want: "hours"},
		{name: "english singular", key: "liter", locale: model.LocaleEN, value: 1, want: "liter"},
		{name: "chinese", key: "yuan", locale: model.LocaleZH, value: 3, want: "元"},
		{name: "empty key is generic", key: "", locale: model.LocaleDE, value: 2, want: "Einheiten"},
		{name: "unknown key is generic", key: "parsec", locale: model.LocaleEN, value: 1, want: "unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LabelFor(tt.key, tt.locale, tt.value))
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		token  string
		want   string
		wantOK bool
	}{
		{token: "Äpfel", want: "apple", wantOK: true},
		{token: "A\u0308pfel", want: "apple", wantOK: true}, // decomposed umlaut
		{token: "Euro.", want: "euro", wantOK: true},
		{token: "€", want: "euro", wantOK: true},
		{token: "liters", want: "liter", wantOK: true},
		{token: "KM", want: "km", wantOK: true},
		{token: "Stunden", want: "hour", wantOK: true},
		{token: "Maler", want: "painter", wantOK: true},
		{token: "kosten", wantOK: false},
		{token: "123", wantOK: false},
		{token: "元", want: "yuan", wantOK: true},
		{token: "个苹果需要", want: "apple", wantOK: true},
		{token: "欧元", want: "euro", wantOK: true},
		{token: "个工人", want: "worker", wantOK: true},
		{token: "个", want: "piece", wantOK: true},
		{token: "千克", want: "kg", wantOK: true},
		{token: "需要", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := Match(tt.token)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDimensionOf(t *testing.T) {
	assert.Equal(t, DimensionTime, DimensionOf("hour"))
	assert.Equal(t, DimensionMoney, DimensionOf("euro"))
	assert.Equal(t, DimensionGeneric, DimensionOf(""))
	assert.Equal(t, DimensionGeneric, DimensionOf("nope"))
}

func TestResidue(t *testing.T) {
	assert.Equal(t, "km", Residue("5km"))
	assert.Equal(t, "€", Residue("2,50€"))
	assert.Equal(t, "äpfel", Residue("Äpfel?"))
	assert.Equal(t, "", Residue("42"))
}

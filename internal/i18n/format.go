// Package i18n renders numbers and narrative text for the supported locales.
package i18n

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// MaxFractionDigits bounds the decimals shown for non-integer values.
const MaxFractionDigits = 4

var tags = map[model.Locale]language.Tag{
	model.LocaleDE: language.German,
	model.LocaleEN: language.English,
	model.LocaleZH: language.Chinese,
}

// Tag returns the language tag used to format numbers for loc.
func Tag(loc model.Locale) language.Tag {
	if tag, ok := tags[loc]; ok {
		return tag
	}
	return tags[model.DefaultLocale]
}

// FormatNumber renders v with the decimal and grouping separators of loc.
// Integers get no decimals, other values up to MaxFractionDigits.
func FormatNumber(v float64, loc model.Locale) string {
	digits := MaxFractionDigits
	if v == math.Trunc(v) {
		digits = 0
	}

	p := message.NewPrinter(Tag(loc))
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(digits)))
}

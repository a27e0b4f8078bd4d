// Package model defines the core domain types shared by the solver, its storage and its transports.
package model

import "strings"

// Locale identifies the language a solution is rendered in.
type Locale string

// Supported locales.
const (
	LocaleDE Locale = "de"
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"
)

// DefaultLocale is used whenever a request names no locale or an unsupported one.
const DefaultLocale = LocaleDE

// Locales lists every supported locale in display order.
var Locales = []Locale{LocaleDE, LocaleEN, LocaleZH}

// ParseLocale normalizes a requested locale. Matching is case-insensitive;
// anything other than de, en or zh falls back to German.
func ParseLocale(s string) Locale {
	switch l := Locale(strings.ToLower(strings.TrimSpace(s))); l {
	case LocaleDE, LocaleEN, LocaleZH:
		return l
	default:
		return DefaultLocale
	}
}

// Next returns the locale following l in Locales, wrapping around.
func (l Locale) Next() Locale {
	for i, candidate := range Locales {
		if candidate == l {
			return Locales[(i+1)%len(Locales)]
		}
	}
	return DefaultLocale
}

package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/units"
)

// searchRadius is how many tokens on each side of a number are checked for a unit word.
const searchRadius = 2

var (
	numberPattern   = regexp.MustCompile(`^(?:\d+(?:\.\d+)?|\.\d+)$`)
	combinedPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)([\p{L}\p{Sc}%]+)$`)
)

// ExtractQuantities scans tokens left to right and returns one quantity per
// number token, keeping the token index for later disambiguation.
func ExtractQuantities(tokens []string) []model.Quantity {
	var quantities []model.Quantity

	for i, token := range tokens {
		value, attached, ok := parseNumberToken(token)
		if !ok {
			continue
		}

		q := model.Quantity{Value: value, Index: i}
		if attached != "" {
			q.RawUnit = attached
			if key, found := units.Match(attached); found {
				q.Unit = key
			}
		}

		if !q.HasUnit() {
			if key, raw, found := NearbyUnit(tokens, i); found {
				q.Unit = key
				q.RawUnit = raw
			}
		}

		quantities = append(quantities, q)
	}

	return quantities
}

// parseNumberToken recognizes plain numbers ("2,50") and numbers with a unit
// glued to them ("5km"). Decimal commas are read as decimal points.
func parseNumberToken(token string) (float64, string, bool) {
	candidate := strings.ReplaceAll(token, ",", ".")
	if numberPattern.MatchString(candidate) {
		value, ok := parseFloat(candidate)
		return value, "", ok
	}

	m := combinedPattern.FindStringSubmatch(token)
	if m == nil {
		return 0, "", false
	}
	value, ok := parseFloat(strings.ReplaceAll(m[1], ",", "."))
	return value, m[2], ok
}

func parseFloat(s string) (float64, bool) {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// NearbyUnit looks for a unit word next to the number at index i: first the
// following tokens, nearest first, then the preceding ones.
func NearbyUnit(tokens []string, i int) (key string, raw string, ok bool) {
	for offset := 1; offset <= searchRadius; offset++ {
		if j := i + offset; j < len(tokens) {
			if key, found := units.Match(tokens[j]); found {
				return key, tokens[j], true
			}
		}
	}
	for offset := 1; offset <= searchRadius; offset++ {
		if j := i - offset; j >= 0 {
			if key, found := units.Match(tokens[j]); found {
				return key, tokens[j], true
			}
		}
	}
	return "", "", false
}

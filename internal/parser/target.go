package parser

import (
	"regexp"
	"strings"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/units"
)

var (
	interrogatives = []*regexp.Regexp{
		regexp.MustCompile(`how\s+(?:many|much)\s+(\S+)`),
		regexp.MustCompile(`wie\s*viele?\s+(\S+)`),
		regexp.MustCompile(`多少\s*(?:个|只|名|位|本|件)?\s*(\p{Han}+)`),
	}

	durationQuestion = regexp.MustCompile(`how\s+long|wie\s+lange|多久|多长时间`)
)

// DetectTargetUnit returns the canonical unit the question asks for, or the
// empty string when the text carries no recognizable question. Questions
// about duration resolve to the first time unit mentioned in the text and
// fall back to hours.
func DetectTargetUnit(text string) string {
	lowered := strings.ToLower(Normalize(text))

	for _, re := range interrogatives {
		m := re.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		if key, ok := units.Match(strings.Trim(m[1], trimCutset)); ok {
			return key
		}
	}

	if durationQuestion.MatchString(lowered) {
		return firstTimeUnit(lowered)
	}

	return ""
}

func firstTimeUnit(text string) string {
	for _, token := range Tokenize(text) {
		if key, ok := units.Match(token); ok && units.DimensionOf(key) == units.DimensionTime {
			return key
		}
	}
	return "hour"
}

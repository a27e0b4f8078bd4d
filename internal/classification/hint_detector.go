// Package classification decides whether a word problem is proportional or
// antiproportional from the phrasing of its question.
package classification

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// Hint is a phrase pattern that, when present in a question, decides its problem type.
type Hint struct {
	Name     string            `yaml:"name"`
	Type     model.ProblemType `yaml:"type"`
	Pattern  string            `yaml:"pattern"`
	Priority int               `yaml:"priority"` // Higher priority hints are checked first
}

// CompiledHint holds a compiled hint pattern with its metadata.
type CompiledHint struct {
	compiledRegex *regexp.Regexp
	Hint
}

// Match is the hint that decided a classification.
type Match struct {
	HintName string
	Type     model.ProblemType
}

// HintDetector classifies questions by hint phrases. It is safe for
// concurrent use; UpdateHints swaps the whole set at once.
type HintDetector struct {
	hints []CompiledHint
	mu    sync.RWMutex
}

// NewHintDetector creates a detector with the given hints.
func NewHintDetector(hints []Hint) (*HintDetector, error) {
	compiled, err := compileHints(hints)
	if err != nil {
		return nil, err
	}
	return &HintDetector{hints: compiled}, nil
}

// NewDefaultHintDetector creates a detector with DefaultHints.
func NewDefaultHintDetector() *HintDetector {
	hd, err := NewHintDetector(DefaultHints())
	if err != nil {
		panic(fmt.Sprintf("default hints do not compile: %v", err))
	}
	return hd
}

func compileHints(hints []Hint) ([]CompiledHint, error) {
	compiled := make([]CompiledHint, 0, len(hints))

	for _, h := range hints {
		if h.Type == "" {
			h.Type = model.Antiproportional
		}
		if !h.Type.Valid() {
			return nil, fmt.Errorf("hint %s has unknown type %q", h.Name, h.Type)
		}

		// Case-insensitive by default; (?s) lets .* span line breaks.
		regexStr := h.Pattern
		if !strings.HasPrefix(regexStr, "(?") {
			regexStr = "(?is)" + regexStr
		}

		regex, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile hint %s: %w", h.Name, err)
		}

		compiled = append(compiled, CompiledHint{
			Hint:          h,
			compiledRegex: regex,
		})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})

	return compiled, nil
}

// Detect returns the first hint in priority order that matches text, or nil.
func (hd *HintDetector) Detect(text string) *Match {
	hd.mu.RLock()
	defer hd.mu.RUnlock()

	searchText := strings.ToLower(text)
	for _, hint := range hd.hints {
		if hint.compiledRegex.MatchString(searchText) {
			return &Match{HintName: hint.Name, Type: hint.Type}
		}
	}
	return nil
}

// Classify returns the problem type of text. Questions without any matching
// hint are proportional.
func (hd *HintDetector) Classify(text string) model.ProblemType {
	if m := hd.Detect(text); m != nil {
		return m.Type
	}
	return model.Proportional
}

// UpdateHints replaces the active hint set. On error the previous set stays active.
func (hd *HintDetector) UpdateHints(hints []Hint) error {
	compiled, err := compileHints(hints)
	if err != nil {
		return err
	}

	hd.mu.Lock()
	hd.hints = compiled
	hd.mu.Unlock()

	return nil
}

// HintCount returns the number of active hints.
func (hd *HintDetector) HintCount() int {
	hd.mu.RLock()
	defer hd.mu.RUnlock()
	return len(hd.hints)
}

package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// HistoryRecord is one persisted solve attempt, successful or not.
type HistoryRecord struct {
	CreatedAt      time.Time   `json:"created_at" yaml:"created_at"`
	ID             string      `json:"id" yaml:"id"`
	QuestionHash   string      `json:"question_hash" yaml:"question_hash"`
	Question       string      `json:"question" yaml:"question"`
	Locale         Locale      `json:"locale" yaml:"locale"`
	Code           string      `json:"code,omitempty" yaml:"code,omitempty"` // empty on success
	Type           ProblemType `json:"type,omitempty" yaml:"type,omitempty"`
	Solution       string      `json:"-" yaml:"-"` // JSON encoded Solution, empty on failure
	Result         float64     `json:"result" yaml:"result"`
	DurationMicros int64       `json:"duration_us" yaml:"duration_us"`
}

// OutcomeOK is the statistics key of successful attempts.
const OutcomeOK = "OK"

// Outcome returns the statistics key of the attempt: its code, or OutcomeOK.
func (r HistoryRecord) Outcome() string {
	if r.Code == "" {
		return OutcomeOK
	}
	return r.Code
}

// Succeeded reports whether the attempt produced a solution.
func (r HistoryRecord) Succeeded() bool {
	return r.Code == ""
}

// HistoryStats aggregates the stored attempts.
type HistoryStats struct {
	ByCode   map[string]int `json:"by_code" yaml:"by_code"`
	ByLocale map[Locale]int `json:"by_locale" yaml:"by_locale"`
	Total    int            `json:"total" yaml:"total"`
}

// QuestionHash creates the lookup key for a question in a locale.
func QuestionHash(locale Locale, question string) string {
	data := fmt.Sprintf("%s:%s", locale, strings.TrimSpace(question))
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

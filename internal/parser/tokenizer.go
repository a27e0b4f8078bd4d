// Package parser turns the free text of a word problem into tokens and
// quantities with canonical units.
package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// trimCutset is the punctuation stripped from both ends of every token.
const trimCutset = "(),.;:?!-"

var (
	// fullWidth maps CJK punctuation onto its ASCII counterpart plus a space
	// so Chinese sentences split into tokens.
	fullWidth = strings.NewReplacer(
		"，", ", ",
		"。", ". ",
		"；", "; ",
		"：", ": ",
		"？", "? ",
		"！", "! ",
		"（", " (",
		"）", ") ",
		"、", ", ",
	)

	digitBeforeHan = regexp.MustCompile(`(\d)(\p{Han})`)
	hanBeforeDigit = regexp.MustCompile(`(\p{Han})(\d)`)
)

// Normalize prepares raw text for tokenization: NFC composition, full-width
// punctuation replacement and spacing between digits and Han characters.
func Normalize(text string) string {
	composed, _, err := transform.String(norm.NFC, text)
	if err != nil {
		composed = text
	}
	composed = fullWidth.Replace(composed)
	composed = digitBeforeHan.ReplaceAllString(composed, "$1 $2")
	return hanBeforeDigit.ReplaceAllString(composed, "$1 $2")
}

// Tokenize splits text on whitespace and strips leading and trailing
// punctuation from each token. Tokens that are pure punctuation are dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if token := strings.Trim(field, trimCutset); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

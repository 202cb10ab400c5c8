// Package tokenizer provides document normalization and term extraction.
// Terms are maximal runs of ASCII lower-case letters and digits; everything
// else separates them. There is no stemming and no stop-word list.
package tokenizer

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A cases.Caser keeps state between calls, so each goroutine takes its own.
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// Normalize collapses every whitespace run to a single space, trims the
// ends and lower-cases the result. The normalized string is a document's
// identity.
func Normalize(text string) string {
	return Lower(strings.Join(strings.FieldsFunc(text, isSpace), " "))
}

// Lower applies full Unicode lower-case mapping: U+0130 becomes "i" plus a
// combining dot above, and a word-final capital sigma becomes final sigma.
func Lower(text string) string {
	if isASCII(text) {
		return strings.ToLower(text)
	}
	c := lowerPool.Get().(*cases.Caser)
	defer lowerPool.Put(c)
	return c.String(text)
}

// Tokenize lower-cases text and returns its [a-z0-9]+ runs in order.
func Tokenize(text string) []string {
	text = Lower(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !isTermRune(r)
	})
}

// SplitLines breaks text on every line boundary, including the Unicode
// separators. Empty lines are not returned.
func SplitLines(text string) []string {
	return strings.FieldsFunc(text, isLineBreak)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func isTermRune(r rune) bool {
	return ('a' <= r && r <= 'z') || ('0' <= r && r <= '9')
}

func isSpace(r rune) bool {
	// The information separators count as whitespace for corpus files.
	return unicode.IsSpace(r) || ('\x1c' <= r && r <= '\x1f')
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

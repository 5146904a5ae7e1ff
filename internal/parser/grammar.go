// Package parser turns raw dialogue transcripts into ordered dialogue units.
//
// Each known text follows its own grammar. Grammars form a closed set: the
// Alternating, PairedParagraphs and FlatParagraphs variants declared in this
// package are the only implementations of Grammar.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrGrammarViolation is returned when a transcript does not follow the
// structure its grammar expects.
var ErrGrammarViolation = errors.New("grammar violation")

// Grammar splits a transcript into dialogue units in reading order.
type Grammar interface {
	// Name identifies the grammar in errors and logs.
	Name() string

	// Parse returns the dialogue units of text. Units are trimmed of
	// surrounding whitespace. Empty input yields an empty sequence.
	Parse(text string) ([]string, error)

	grammar()
}

// ViolationError describes where a transcript broke its grammar.
type ViolationError struct {
	Grammar string
	Index   int // paragraph index in the transcript
	Excerpt string
	Reason  string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: %s: paragraph %d %q: %s", ErrGrammarViolation, e.Grammar, e.Index, e.Excerpt, e.Reason)
}

// Unwrap lets errors.Is match ErrGrammarViolation.
func (e *ViolationError) Unwrap() error {
	return ErrGrammarViolation
}

const excerptRunes = 60

func violation(g Grammar, index int, paragraph, reason string) error {
	return &ViolationError{
		Grammar: g.Name(),
		Index:   index,
		Excerpt: excerpt(paragraph),
		Reason:  reason,
	}
}

// excerpt shortens a paragraph for error messages.
func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= excerptRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:excerptRunes]) + "..."
}

// normalize converts CRLF line endings to LF.
func normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

var blankLine = regexp.MustCompile(`\n\s*\n`)

// splitParagraphs splits text on blank lines, trimming each paragraph and
// dropping empty ones.
func splitParagraphs(text string) []string {
	text = strings.TrimSpace(normalize(text))
	if text == "" {
		return nil
	}

	var paragraphs []string
	for _, p := range blankLine.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// hasLabel reports whether paragraph opens with "SPEAKER:".
func hasLabel(paragraph, speaker string) bool {
	return strings.HasPrefix(paragraph, speaker+":")
}

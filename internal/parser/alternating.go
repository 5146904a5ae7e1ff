package parser

import (
	"fmt"
	"strings"
)

// Alternating is a strict two-speaker play script: the text is a sequence of
// (First turn, Second turn) blocks with nothing left over. A turn opens with a
// "SPEAKER:" paragraph and runs until the next labeled paragraph, so a turn
// may span several paragraphs. Each block becomes one unit.
type Alternating struct {
	First  string
	Second string
}

func (Alternating) grammar() {}

// Name implements Grammar.
func (a Alternating) Name() string {
	return fmt.Sprintf("alternating %s/%s", a.First, a.Second)
}

// Parse implements Grammar. Paragraphs are separated by blank lines, which
// may hold whitespace. Each unit is the exact source text of its block, so
// joining the units with "\n\n" reproduces a trimmed input whose blocks are
// separated by single blank lines.
func (a Alternating) Parse(text string) ([]string, error) {
	text = strings.TrimSpace(normalize(text))
	units := []string{}
	if text == "" {
		return units, nil
	}

	paragraphs := spans(text)

	var (
		blockStart = -1 // offset of the open block
		prevEnd    int  // end offset of the previous paragraph
		current    string
		expect     = a.First
	)
	for i, p := range paragraphs {
		para := text[p.start:p.end]
		speaker := a.speaker(para)
		if speaker == "" {
			if current == "" {
				return nil, violation(a, i, para, "unlabeled text before the first turn")
			}
			prevEnd = p.end
			continue
		}

		if speaker != expect {
			return nil, violation(a, i, para, fmt.Sprintf("%s (expected %s)", a.mismatch(), expect))
		}

		// A new First turn closes the previous block.
		if speaker == a.First {
			if blockStart >= 0 {
				units = append(units, strings.TrimSpace(text[blockStart:prevEnd]))
			}
			blockStart = p.start
		}

		prevEnd = p.end
		current = speaker
		expect = a.other(speaker)
	}

	if current != a.Second {
		last := paragraphs[len(paragraphs)-1]
		return nil, violation(a, len(paragraphs)-1, text[last.start:last.end],
			fmt.Sprintf("%s (ends without a %s reply)", a.mismatch(), a.Second))
	}

	units = append(units, strings.TrimSpace(text[blockStart:prevEnd]))
	return units, nil
}

// span locates a paragraph inside the text it was split from.
type span struct {
	start, end int
}

// spans splits text on blank lines, keeping source offsets.
func spans(text string) []span {
	var out []span
	start := 0
	for _, sep := range blankLine.FindAllStringIndex(text, -1) {
		out = append(out, span{start, sep[0]})
		start = sep[1]
	}
	return append(out, span{start, len(text)})
}

func (a Alternating) speaker(paragraph string) string {
	paragraph = strings.TrimLeft(paragraph, " \t")
	switch {
	case hasLabel(paragraph, a.First):
		return a.First
	case hasLabel(paragraph, a.Second):
		return a.Second
	}
	return ""
}

func (a Alternating) other(speaker string) string {
	if speaker == a.First {
		return a.Second
	}
	return a.First
}

func (a Alternating) mismatch() string {
	return fmt.Sprintf("does not alternate correctly between %s and %s", a.First, a.Second)
}

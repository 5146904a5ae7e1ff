package parser

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMergeThreshold is the paragraph length, in characters, up to which a
// stray paragraph is folded into the preceding unit.
const DefaultMergeThreshold = 140

// PairedParagraphs handles a narrated dialogue where a Lead speaker's question
// is always answered by a Reply paragraph. Each Lead/Reply pair becomes one
// unit. Any other paragraph becomes its own unit when it is longer than
// MergeThreshold characters and is otherwise appended to the previous unit.
type PairedParagraphs struct {
	Lead           string
	Reply          string
	MergeThreshold int
}

func (PairedParagraphs) grammar() {}

// Name implements Grammar.
func (g PairedParagraphs) Name() string {
	return fmt.Sprintf("paired %s/%s", g.Lead, g.Reply)
}

// Parse implements Grammar.
func (g PairedParagraphs) Parse(text string) ([]string, error) {
	paragraphs := splitParagraphs(text)
	units := []string{}
	consumed := -1

	for i, p := range paragraphs {
		switch {
		case i == consumed:
			continue

		case hasLabel(p, g.Lead):
			if i+1 >= len(paragraphs) || !hasLabel(paragraphs[i+1], g.Reply) {
				return nil, violation(g, i, p, fmt.Sprintf("not a valid %s-%s pair", g.Lead, g.Reply))
			}
			units = append(units, p+"\n"+paragraphs[i+1])
			consumed = i + 1

		case utf8.RuneCountInString(p) > g.threshold():
			units = append(units, p)

		case len(units) == 0:
			return nil, violation(g, i, p, "short paragraph has no preceding unit to join")

		default:
			units[len(units)-1] += " " + p
		}
	}

	return units, nil
}

func (g PairedParagraphs) threshold() int {
	if g.MergeThreshold <= 0 {
		return DefaultMergeThreshold
	}
	return g.MergeThreshold
}

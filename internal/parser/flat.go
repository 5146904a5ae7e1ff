package parser

// FlatParagraphs treats every blank-line delimited paragraph as a unit. It is
// used for monologues, where there is no speaker structure to validate.
type FlatParagraphs struct{}

func (FlatParagraphs) grammar() {}

// Name implements Grammar.
func (FlatParagraphs) Name() string {
	return "flat paragraphs"
}

// Parse implements Grammar. It never fails.
func (FlatParagraphs) Parse(text string) ([]string, error) {
	units := splitParagraphs(text)
	if units == nil {
		units = []string{}
	}
	return units, nil
}

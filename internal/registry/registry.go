// Package registry holds the closed set of dialogues dialogos knows how to
// parse, together with where their texts and parsed sequences live.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abdulachik/dialogos/internal/parser"
)

// ErrInvalidTitle is returned for a title that is not in the registry.
var ErrInvalidTitle = errors.New("invalid title")

// Title is one registered dialogue.
type Title struct {
	Name      string
	Slug      string
	SourceURL string // Project Gutenberg plain text
	Opening   string // first words of the dialogue proper in SourceURL
	TextPath  string
	StorePath string
	Grammar   parser.Grammar
}

// Dirs locates the files of every title.
type Dirs struct {
	Texts     string
	Dialogues string
}

// Registry maps title names to titles.
type Registry struct {
	titles []Title
}

type entry struct {
	name      string
	sourceURL string
	opening   string
	grammar   parser.Grammar
}

// entries is the title to grammar table, in presentation order.
var entries = []entry{
	{
		name:      "Euthyphro",
		sourceURL: "https://www.gutenberg.org/cache/epub/1642/pg1642.txt",
		opening:   "EUTHYPHRO: Why have you left the Lyceum",
		grammar:   parser.Alternating{First: "EUTHYPHRO", Second: "SOCRATES"},
	},
	{
		name:      "Apology",
		sourceURL: "https://www.gutenberg.org/cache/epub/1656/pg1656.txt",
		opening:   "How you, O Athenians",
		grammar:   parser.FlatParagraphs{},
	},
	{
		name:      "Crito",
		sourceURL: "https://www.gutenberg.org/cache/epub/1657/pg1657.txt",
		opening:   "SOCRATES: Why have you come at this hour",
		grammar:   parser.Alternating{First: "SOCRATES", Second: "CRITO"},
	},
	{
		name:      "Phaedo",
		sourceURL: "https://www.gutenberg.org/cache/epub/1658/pg1658.txt",
		opening:   "ECHECRATES: Were you yourself",
		grammar: parser.PairedParagraphs{
			Lead:           "ECHECRATES",
			Reply:          "PHAEDO",
			MergeThreshold: parser.DefaultMergeThreshold,
		},
	},
}

// New builds the registry with file locations rooted at dirs.
func New(dirs Dirs) *Registry {
	titles := make([]Title, 0, len(entries))
	for _, e := range entries {
		slug := strings.ToLower(e.name)
		titles = append(titles, Title{
			Name:      e.name,
			Slug:      slug,
			SourceURL: e.sourceURL,
			Opening:   e.opening,
			TextPath:  filepath.Join(dirs.Texts, slug+".txt"),
			StorePath: filepath.Join(dirs.Dialogues, slug+".json"),
			Grammar:   e.grammar,
		})
	}
	return &Registry{titles: titles}
}

// Lookup finds a title by name, ignoring case.
func (r *Registry) Lookup(name string) (Title, error) {
	name = strings.TrimSpace(name)
	for _, t := range r.titles {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Title{}, fmt.Errorf("%w: %q (available: %s)", ErrInvalidTitle, name, strings.Join(r.Names(), ", "))
}

// Names returns the registered title names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.titles))
	for i, t := range r.titles {
		names[i] = t.Name
	}
	return names
}

// Titles returns all registered titles in order.
func (r *Registry) Titles() []Title {
	out := make([]Title, len(r.titles))
	copy(out, r.titles)
	return out
}

// Package notebook assembles Jupyter notebooks from parsed dialogue units.
package notebook

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/google/uuid"
)

var ErrNotebookExists = errors.New("notebook already exists")

// Cell sources and tags of the per-unit triple.
const (
	IllustrateSource = "# Generate image for text below\nillustrate('')"
	NoteSource       = "**Note:** Add your notes here."

	TagSetup      = "setup"
	TagIllustrate = "illustrate"
	TagDialogue   = "dialogue"
	TagNote       = "note"
)

// Layout selects how cells are tagged.
type Layout string

const (
	// LayoutPlain writes the cells in order with no slideshow metadata.
	LayoutPlain Layout = "plain"
	// LayoutSlides tags every cell with a slideshow role.
	LayoutSlides Layout = "slides"
)

// ParseLayout converts a config or flag value into a Layout. An empty value
// selects LayoutPlain.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutPlain:
		return LayoutPlain, nil
	case LayoutSlides:
		return LayoutSlides, nil
	default:
		return "", fmt.Errorf("unknown notebook layout %q (expected plain or slides)", s)
	}
}

var slideTypes = map[string]string{
	TagSetup:      "skip",
	TagIllustrate: "slide",
	TagDialogue:   "fragment",
	TagNote:       "subslide",
}

//go:embed setup.py.tmpl
var setupTemplate string

var setupTmpl = template.Must(template.New("setup").Funcs(template.FuncMap{
	"py": pyString,
}).Parse(setupTemplate))

// pyString renders s as a Python string literal. JSON string escapes are a
// subset of Python's.
func pyString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Config holds configuration for the Assembler.
type Config struct {
	// Dir receives the written notebooks.
	Dir string

	// Executable is the dialogos binary the setup cell shells out to.
	Executable string

	// Workdir is the directory illustrate runs in, so the image cache
	// resolves the same way it does for the CLI.
	Workdir string
}

// Options control a single Build or Write.
type Options struct {
	Layout Layout
	Force  bool
}

// Assembler builds and writes notebooks.
type Assembler struct {
	dir        string
	executable string
	workdir    string
	newID      func() string
}

// New creates an Assembler.
func New(cfg Config) *Assembler {
	exe := cfg.Executable
	if exe == "" {
		exe = "dialogos"
	}
	return &Assembler{
		dir:        cfg.Dir,
		executable: exe,
		workdir:    cfg.Workdir,
		newID:      uuid.NewString,
	}
}

// Path returns the output path for title.
func (a *Assembler) Path(title string) string {
	return filepath.Join(a.dir, title+"_auto-generated.ipynb")
}

// Build assembles the notebook for title: a setup cell followed by an
// illustrate, dialogue and note cell for every unit.
func (a *Assembler) Build(title string, units []string, layout Layout) (*Notebook, error) {
	var setup bytes.Buffer
	err := setupTmpl.Execute(&setup, struct {
		Executable string
		Workdir    string
		Title      string
	}{a.executable, a.workdir, title})
	if err != nil {
		return nil, fmt.Errorf("render setup cell: %w", err)
	}

	nb := &Notebook{
		Cells: make([]Cell, 0, 1+3*len(units)),
		Metadata: Metadata{
			Title: title,
			KernelSpec: &KernelSpec{
				Name:        "python3",
				DisplayName: "Python 3",
				Language:    "python",
			},
			LanguageInfo: &LanguageInfo{Name: "python"},
		},
		NBFormat:      FormatMajor,
		NBFormatMinor: FormatMinor,
	}

	nb.Cells = append(nb.Cells, a.cell(CellCode, setup.String(), TagSetup, layout))
	for _, unit := range units {
		nb.Cells = append(nb.Cells,
			a.cell(CellCode, IllustrateSource, TagIllustrate, layout),
			a.cell(CellMarkdown, unit, TagDialogue, layout),
			a.cell(CellMarkdown, NoteSource, TagNote, layout),
		)
	}
	return nb, nil
}

func (a *Assembler) cell(typ CellType, source, tag string, layout Layout) Cell {
	c := Cell{
		ID:       a.newID(),
		Type:     typ,
		Source:   source,
		Metadata: CellMetadata{Tags: []string{tag}},
	}
	if layout == LayoutSlides {
		c.Metadata.Slideshow = &Slideshow{SlideType: slideTypes[tag]}
	}
	return c
}

// Write builds the notebook for title, validates it and writes it to Path.
// An existing notebook is only replaced when opts.Force is set.
func (a *Assembler) Write(title string, units []string, opts Options) (string, error) {
	path := a.Path(title)

	if !opts.Force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s (use --force to overwrite)", ErrNotebookExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat notebook: %w", err)
		}
	}

	nb, err := a.Build(title, units, opts.Layout)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return "", fmt.Errorf("marshal notebook: %w", err)
	}
	data = append(data, '\n')

	if err := Validate(data); err != nil {
		return "", err
	}

	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return "", fmt.Errorf("create notebook directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write notebook: %w", err)
	}

	slog.Info("notebook written",
		"title", title,
		"path", path,
		"units", len(units),
		"cells", len(nb.Cells),
		"layout", string(opts.Layout),
	)
	return path, nil
}

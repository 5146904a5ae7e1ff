package notebook

import "encoding/json"

// nbformat version written by the assembler.
const (
	FormatMajor = 4
	FormatMinor = 5
)

// CellType is the nbformat cell_type.
type CellType string

const (
	CellCode     CellType = "code"
	CellMarkdown CellType = "markdown"
)

// Notebook is an nbformat 4.5 document.
type Notebook struct {
	Cells         []Cell   `json:"cells"`
	Metadata      Metadata `json:"metadata"`
	NBFormat      int      `json:"nbformat"`
	NBFormatMinor int      `json:"nbformat_minor"`
}

type Metadata struct {
	Title        string        `json:"title,omitempty"`
	KernelSpec   *KernelSpec   `json:"kernelspec,omitempty"`
	LanguageInfo *LanguageInfo `json:"language_info,omitempty"`
}

type KernelSpec struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language,omitempty"`
}

type LanguageInfo struct {
	Name string `json:"name"`
}

// Cell is a single notebook cell. Only code cells carry outputs and an
// execution count.
type Cell struct {
	ID       string
	Type     CellType
	Metadata CellMetadata
	Source   string
}

type CellMetadata struct {
	Tags      []string   `json:"tags,omitempty"`
	Slideshow *Slideshow `json:"slideshow,omitempty"`
}

// Slideshow holds the RISE / nbconvert slide role of a cell.
type Slideshow struct {
	SlideType string `json:"slide_type"`
}

type cellJSON struct {
	ID             string          `json:"id"`
	CellType       CellType        `json:"cell_type"`
	Metadata       CellMetadata    `json:"metadata"`
	Source         string          `json:"source"`
	ExecutionCount json.RawMessage `json:"execution_count,omitempty"`
	Outputs        *[]any          `json:"outputs,omitempty"`
}

func (c Cell) MarshalJSON() ([]byte, error) {
	out := cellJSON{
		ID:       c.ID,
		CellType: c.Type,
		Metadata: c.Metadata,
		Source:   c.Source,
	}
	if c.Type == CellCode {
		out.ExecutionCount = json.RawMessage("null")
		out.Outputs = &[]any{}
	}
	return json.Marshal(out)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var in cellJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Cell{
		ID:       in.ID,
		Type:     in.CellType,
		Metadata: in.Metadata,
		Source:   in.Source,
	}
	return nil
}

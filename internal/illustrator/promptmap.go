package illustrator

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// PromptMap records which prompt each cached image hash was generated from,
// so the cache can be inspected by hand.
type PromptMap struct {
	path    string
	entries map[string]string
}

// LoadPromptMap reads the map at path. A missing or unreadable file starts an
// empty map.
func LoadPromptMap(path string) *PromptMap {
	m := &PromptMap{path: path, entries: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return m
	}
	if err := json.Unmarshal(data, &m.entries); err != nil || m.entries == nil {
		slog.Warn("ignoring unreadable prompt map", "path", path, "error", err)
		m.entries = map[string]string{}
	}
	return m
}

// Add records hash -> prompt and saves the map. Known hashes are a no-op.
func (m *PromptMap) Add(hash, prompt string) error {
	if _, ok := m.entries[hash]; ok {
		return nil
	}
	m.entries[hash] = prompt
	return m.save()
}

// Prompt returns the prompt recorded for hash.
func (m *PromptMap) Prompt(hash string) (string, bool) {
	p, ok := m.entries[hash]
	return p, ok
}

// Len returns the number of recorded prompts.
func (m *PromptMap) Len() int {
	return len(m.entries)
}

func (m *PromptMap) save() error {
	data, err := json.MarshalIndent(m.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal prompt map: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("create prompt map directory: %w", err)
	}
	return os.WriteFile(m.path, data, 0644)
}

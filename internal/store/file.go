package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abdulachik/dialogos/internal/registry"
)

// documentVersion is the schema version written to dialogue files.
const documentVersion = 1

// document is the on-disk form of a dialogue sequence.
type document struct {
	Version int      `json:"version"`
	Title   string   `json:"title"`
	Units   []string `json:"units"`
}

// FileStore keeps one JSON document per title at the title's StorePath.
type FileStore struct {
	registry *registry.Registry
}

// NewFileStore creates a FileStore for the titles of reg.
func NewFileStore(reg *registry.Registry) *FileStore {
	return &FileStore{registry: reg}
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, name string, units []string) error {
	title, err := s.registry.Lookup(name)
	if err != nil {
		return err
	}

	if units == nil {
		units = []string{}
	}

	data, err := json.MarshalIndent(document{
		Version: documentVersion,
		Title:   title.Name,
		Units:   units,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dialogue: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(title.StorePath), 0755); err != nil {
		return fmt.Errorf("create dialogue directory: %w", err)
	}

	if err := os.WriteFile(title.StorePath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write dialogue: %w", err)
	}

	slog.Debug("saved dialogue", "title", title.Name, "path", title.StorePath, "units", len(units))
	return nil
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, name string) ([]string, error) {
	title, err := s.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(title.StorePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (parse it first)", ErrNotFound, title.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("read dialogue: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dialogue file %s: %w", title.StorePath, err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("dialogue file %s: unsupported version %d", title.StorePath, doc.Version)
	}

	if doc.Units == nil {
		doc.Units = []string{}
	}
	return doc.Units, nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

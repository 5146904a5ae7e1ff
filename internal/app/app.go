package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/abdulachik/dialogos/internal/config"
	"github.com/abdulachik/dialogos/internal/illustrator"
	"github.com/abdulachik/dialogos/internal/notebook"
	"github.com/abdulachik/dialogos/internal/registry"
	"github.com/abdulachik/dialogos/internal/store"
	"github.com/abdulachik/dialogos/internal/texts"
)

// App is the main application container holding all dependencies.
type App struct {
	Config      *config.Config
	Registry    *registry.Registry
	Store       store.Store
	Notebooks   *notebook.Assembler
	Illustrator *illustrator.Illustrator
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	reg := registry.New(registry.Dirs{
		Texts:     cfg.TextsDir,
		Dialogues: cfg.DialoguesDir,
	})

	// Create dialogue store
	st, err := store.New(ctx, store.Config{
		Backend:      cfg.StoreBackend,
		Registry:     reg,
		DatabasePath: cfg.DatabasePath,
	})
	if err != nil {
		return nil, err
	}

	il, err := NewIllustrator(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	// Create notebook assembler
	exe := cfg.Executable
	if exe == "" {
		if path, err := os.Executable(); err == nil {
			exe = path
		}
	}
	workdir, err := os.Getwd()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	nb := notebook.New(notebook.Config{
		Dir:        cfg.NotebooksDir,
		Executable: exe,
		Workdir:    workdir,
	})

	return &App{
		Config:      cfg,
		Registry:    reg,
		Store:       st,
		Notebooks:   nb,
		Illustrator: il,
	}, nil
}

// NewIllustrator builds the Illustrator over the image cache. Without an
// OpenAI key only cached prompts resolve.
func NewIllustrator(cfg *config.Config) (*illustrator.Illustrator, error) {
	var gen illustrator.ImageGenerator
	if cfg.OpenAIAPIKey != "" {
		g, err := illustrator.NewOpenAIGenerator(illustrator.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.ImageModel,
			Size:    cfg.ImageSize,
			Timeout: cfg.ImageTimeout,
		})
		if err != nil {
			return nil, err
		}
		gen = g
	}

	return illustrator.New(illustrator.Config{
		Dir:          cfg.ImagesDir,
		Generator:    gen,
		MaxDimension: cfg.ImageMaxDimension,
	}), nil
}

// ParseTitle reads the transcript of name, parses it with the title's grammar
// and saves the resulting units.
func (a *App) ParseTitle(ctx context.Context, name string) (registry.Title, []string, error) {
	title, err := a.Registry.Lookup(name)
	if err != nil {
		return registry.Title{}, nil, err
	}

	text, err := texts.ReadFile(title.TextPath)
	if errors.Is(err, fs.ErrNotExist) {
		return title, nil, fmt.Errorf("read %s: %w (run 'dialogos download' first)", title.TextPath, err)
	}
	if err != nil {
		return title, nil, fmt.Errorf("read %s: %w", title.TextPath, err)
	}

	units, err := title.Grammar.Parse(text)
	if err != nil {
		return title, nil, fmt.Errorf("parse %s: %w", title.Name, err)
	}

	if err := a.Store.Save(ctx, title.Name, units); err != nil {
		return title, nil, fmt.Errorf("save %s: %w", title.Name, err)
	}

	slog.Info("parsed dialogue",
		"title", title.Name,
		"grammar", title.Grammar.Name(),
		"units", len(units),
	)
	return title, units, nil
}

// BuildNotebook parses name, reloads the saved units and writes the
// notebook, returning its path. An empty opts.Layout uses the configured one.
func (a *App) BuildNotebook(ctx context.Context, name string, opts notebook.Options) (string, error) {
	title, _, err := a.ParseTitle(ctx, name)
	if err != nil {
		return "", err
	}

	units, err := a.Store.Load(ctx, title.Name)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", title.Name, err)
	}

	if opts.Layout == "" {
		opts.Layout, err = notebook.ParseLayout(a.Config.NotebookLayout)
		if err != nil {
			return "", err
		}
	}
	return a.Notebooks.Write(title.Name, units, opts)
}

// TitleStats describes the state of one registered title.
type TitleStats struct {
	Title   string
	HasText bool
	Saved   bool
	Units   int
	SavedAt string // sqlite backend only
}

// Stats reports every registered title in registry order.
func (a *App) Stats(ctx context.Context) ([]TitleStats, error) {
	savedAt := map[string]string{}
	if sqlStore, ok := a.Store.(*store.SQLStore); ok {
		headers, err := sqlStore.Headers(ctx)
		if err != nil {
			return nil, err
		}
		for _, h := range headers {
			savedAt[h.Title] = h.SavedAt
		}
	}

	var stats []TitleStats
	for _, t := range a.Registry.Titles() {
		s := TitleStats{Title: t.Name, SavedAt: savedAt[t.Name]}

		if _, err := os.Stat(t.TextPath); err == nil {
			s.HasText = true
		}

		units, err := a.Store.Load(ctx, t.Name)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return nil, fmt.Errorf("load %s: %w", t.Name, err)
		default:
			s.Saved = true
			s.Units = len(units)
		}

		stats = append(stats, s)
	}
	return stats, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

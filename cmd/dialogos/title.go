package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/abdulachik/dialogos/internal/app"
	"github.com/abdulachik/dialogos/internal/notebook"
)

var (
	titleForce  bool
	titleSlides bool
)

var titleCmd = &cobra.Command{
	Use:   "title [name]",
	Short: "Parse a dialogue and generate its notebook",
	Long: `Parse the transcript of a dialogue, save its units and write
notebooks/<Title>_auto-generated.ipynb.

Without a name, an interactive terminal offers a list of titles.`,
	Example: `  dialogos title Euthyphro
  dialogos title phaedo --slides --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTitle,
}

func init() {
	titleCmd.Flags().BoolVarP(&titleForce, "force", "f", false, "Overwrite an existing notebook")
	titleCmd.Flags().BoolVar(&titleSlides, "slides", false, "Tag cells for a slideshow")
	rootCmd.AddCommand(titleCmd)
}

func runTitle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	reg := newRegistry()

	var name string
	switch {
	case len(args) == 1:
		name = args[0]
	case isInteractive():
		picked, err := pickTitle(reg.Names())
		if err != nil {
			return err
		}
		name = picked
	default:
		return fmt.Errorf("a title is required (available: %s)", strings.Join(reg.Names(), ", "))
	}

	// Reject unknown titles before the store creates any files
	title, err := reg.Lookup(name)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := notebook.Options{Force: titleForce}
	if titleSlides {
		opts.Layout = notebook.LayoutSlides
	}

	path, err := a.BuildNotebook(ctx, title.Name, opts)
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Notebook written"), path)
	return nil
}

func pickTitle(names []string) (string, error) {
	options := make([]huh.Option[string], 0, len(names))
	for _, n := range names {
		options = append(options, huh.NewOption(n, n))
	}

	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which dialogue?").
				Options(options...).
				Value(&name),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("select title: %w", err)
	}
	return name, nil
}

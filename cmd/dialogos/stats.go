package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdulachik/dialogos/internal/app"
	"github.com/abdulachik/dialogos/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dialogue and image cache statistics",
	Long:  `Display the saved units per dialogue and the state of the image cache.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	titles, err := a.Stats(ctx)
	if err != nil {
		return err
	}

	images, err := a.Illustrator.Stats()
	if err != nil {
		return fmt.Errorf("read image cache: %w", err)
	}

	// Print stats
	fmt.Println(headerStyle.Render("=== dialogos Statistics ==="))
	fmt.Println()
	if appConfig.StoreBackend == store.BackendSQLite {
		fmt.Printf("Store: sqlite (%s)\n", appConfig.DatabasePath)
	} else {
		fmt.Printf("Store: file (%s/)\n", appConfig.DialoguesDir)
	}
	fmt.Println()

	fmt.Println("Dialogues:")
	for _, t := range titles {
		switch {
		case t.Saved && t.SavedAt != "":
			fmt.Printf("  %s: %d units %s\n", t.Title, t.Units, mutedStyle.Render("(saved "+t.SavedAt+")"))
		case t.Saved:
			fmt.Printf("  %s: %d units\n", t.Title, t.Units)
		case t.HasText:
			fmt.Printf("  %s: %s\n", t.Title, mutedStyle.Render("not parsed"))
		default:
			fmt.Printf("  %s: %s\n", t.Title, mutedStyle.Render("no text (run 'dialogos download')"))
		}
	}
	fmt.Println()

	fmt.Println("Images:")
	fmt.Printf("  Prompts: %d\n", images.Prompts)
	fmt.Printf("  Originals: %d\n", images.Originals)
	fmt.Printf("  Compressed: %d\n", images.Compressed)
	fmt.Println()

	return nil
}

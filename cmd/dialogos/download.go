package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdulachik/dialogos/internal/texts"
)

var downloadForce bool

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the dialogues from Project Gutenberg",
	Long: `Download every registered dialogue from Project Gutenberg into the texts
directory, stripping the Gutenberg header and footer and the translator's
introduction that precedes each dialogue.

Dialogues downloaded:
  - Euthyphro
  - Apology
  - Crito
  - Phaedo`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().BoolVarP(&downloadForce, "force", "f", false, "Re-download even if file exists")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	reg := newRegistry()

	client := &http.Client{
		Timeout: 60 * time.Second,
	}

	fmt.Println(headerStyle.Render("Downloading dialogues from Project Gutenberg..."))
	fmt.Println()

	downloaded := 0
	skipped := 0
	failed := 0

	for _, title := range reg.Titles() {
		// Check if already exists
		if !downloadForce {
			if _, err := os.Stat(title.TextPath); err == nil {
				fmt.Printf("  ✓ %s %s\n", title.Name, mutedStyle.Render("(already downloaded)"))
				skipped++
				continue
			}
		}

		fmt.Printf("  ↓ Downloading %s...", title.Name)

		if err := texts.Download(cmd.Context(), client, title.SourceURL, title.TextPath, title.Opening); err != nil {
			fmt.Printf(" %s\n", warnStyle.Render("ERROR: "+err.Error()))
			slog.Error("failed to download dialogue", "title", title.Name, "url", title.SourceURL, "error", err)
			failed++
			continue
		}

		fmt.Println(successStyle.Render(" done"))
		downloaded++
	}

	fmt.Println()
	fmt.Printf("Downloaded: %d, Skipped: %d\n", downloaded, skipped)
	fmt.Printf("Texts saved to: %s/\n", appConfig.TextsDir)

	if failed > 0 {
		return fmt.Errorf("%d download(s) failed", failed)
	}
	return nil
}

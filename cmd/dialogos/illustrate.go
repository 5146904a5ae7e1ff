package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdulachik/dialogos/internal/app"
)

var illustrateJSON bool

var illustrateCmd = &cobra.Command{
	Use:   "illustrate [prompt]",
	Short: "Generate or fetch the cached image for a prompt",
	Long: `Resolve a prompt to a compressed image in the image cache, calling the
OpenAI Images API only when the prompt has not been illustrated before.

Notebooks call this command with --json from their setup cell.`,
	RunE: runIllustrate,
}

func init() {
	illustrateCmd.Flags().BoolVar(&illustrateJSON, "json", false, "Print {\"prompt\", \"path\"} as JSON")
	rootCmd.AddCommand(illustrateCmd)
}

func runIllustrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	prompt := strings.Join(args, " ")

	il, err := app.NewIllustrator(appConfig)
	if err != nil {
		return err
	}

	// A cache miss needs the API key
	if strings.TrimSpace(prompt) != "" && !il.Cached(prompt) {
		if err := appConfig.ValidateForIllustration(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}

	path, err := il.Resolve(ctx, prompt)
	if err != nil {
		return err
	}
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	if illustrateJSON {
		return writeIllustration(cmd.OutOrStdout(), prompt, path)
	}
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("Did you enter a prompt?"))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

type illustration struct {
	Prompt string  `json:"prompt"`
	Path   *string `json:"path"`
}

// writeIllustration prints the result for the notebook bridge. An empty path
// is written as null.
func writeIllustration(w io.Writer, prompt, path string) error {
	out := illustration{Prompt: prompt}
	if path != "" {
		out.Path = &path
	}
	return json.NewEncoder(w).Encode(out)
}

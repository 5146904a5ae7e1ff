package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/abdulachik/dialogos/internal/config"
)

var loginDelete bool

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the OpenAI API key in the OS keyring",
	Long: `Store the OpenAI API key used for illustration in the OS keyring.
OPENAI_API_KEY, when set, takes precedence over the stored key.

The key is read from an interactive prompt, or from stdin when piped.`,
	Example: `  dialogos login
  echo "$OPENAI_API_KEY" | dialogos login
  dialogos login --delete`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().BoolVar(&loginDelete, "delete", false, "Remove the stored key")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if loginDelete {
		if err := config.DeleteAPIKey(); err != nil {
			return fmt.Errorf("delete API key: %w", err)
		}
		fmt.Println(successStyle.Render("✓ API key removed"))
		return nil
	}

	var key string
	if isInteractive() {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("OpenAI API key").
					EchoMode(huh.EchoModePassword).
					Value(&key).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return errors.New("key is required")
						}
						return nil
					}),
			),
		).WithShowHelp(false)
		if err := form.Run(); err != nil {
			return fmt.Errorf("read API key: %w", err)
		}
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read API key: %w", err)
		}
		key = line
	}

	if err := config.SaveAPIKey(strings.TrimSpace(key)); err != nil {
		return fmt.Errorf("save API key: %w", err)
	}

	fmt.Println(successStyle.Render("✓ API key stored in the OS keyring"))
	return nil
}

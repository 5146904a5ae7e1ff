package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "List the available dialogues",
	Args:  cobra.NoArgs,
	RunE:  runTitles,
}

func init() {
	rootCmd.AddCommand(titlesCmd)
}

func runTitles(cmd *cobra.Command, args []string) error {
	reg := newRegistry()
	for _, name := range reg.Names() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	headerColor  = lipgloss.Color("#8BE9FD")
	successColor = lipgloss.Color("#50FA7B")
	mutedColor   = lipgloss.Color("#6272A4")
	warnColor    = lipgloss.Color("#FFB86C")

	headerStyle  = lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	warnStyle    = lipgloss.NewStyle().Foreground(warnColor)
)

// isInteractive reports whether stdin is a terminal a form can run on.
func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// successGreen picks a slightly brighter green on a dark background than a
// light one, using termenv's terminal background detection (the
// lighter-weight alternative to lipgloss's own, for the plain ANSI-only
// status lines doctor/validate print). The warning and error colors are
// fixed.
var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(successGreen())).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
)

func successGreen() string {
	if termenv.HasDarkBackground() {
		return "#8BC34A"
	}
	return "#558B2F"
}

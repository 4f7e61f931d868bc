package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	draggingStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	dragOverStyle = lipgloss.NewStyle().Background(lipgloss.Color("238"))
	expiredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Faint(true)

	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 2).Background(lipgloss.Color("237"))
	tabInactiveStyle = lipgloss.NewStyle().Faint(true).Padding(0, 2)

	formBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	frameBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// frameInset is how far frameBorder pushes content from the screen's
// top-left corner: one border cell, plus one padding cell horizontally.
const (
	frameInsetX = 2
	frameInsetY = 1
)

// applyColorProfilePreference picks the Lip Gloss colour profile for the TUI.
// Only NO_COLOR and the mono theme force plain output; otherwise follow the terminal.
func applyColorProfilePreference(theme string) {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" || strings.EqualFold(theme, "mono") {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	if strings.Contains(strings.ToLower(os.Getenv("TERM")), "256color") && profile == termenv.ANSI {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

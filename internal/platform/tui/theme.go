package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the menus and the scoreboard.
type Theme struct {
	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuSolved      lipgloss.Style
	Controls        lipgloss.Style

	// Scoreboard styles
	BoardTitle    lipgloss.Style
	BoardBorder   lipgloss.Color
	BoardSelected lipgloss.Style
	BoardEmpty    lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuSolved:      lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Controls:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		BoardTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		BoardBorder:   lipgloss.Color("240"),
		BoardSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		BoardEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// MonochromeTheme returns a grayscale theme for terminals with few colors.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Reverse(true)
	theme.MenuSolved = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.BoardSelected = lipgloss.NewStyle().Reverse(true)
	return theme
}

// ThemeByName returns a named theme. Unknown names return the default.
func ThemeByName(name string) Theme {
	if name == "mono" || name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// Global theme variable (can be changed at startup)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}

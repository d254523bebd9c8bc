package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of menus and pickers.
type Theme struct {
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuBadge       lipgloss.Style // Best result next to a level
	Controls        lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuBadge:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Controls:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Bold(true),
		MenuItemNormal:  lipgloss.NewStyle(),
		MenuItemActive:  lipgloss.NewStyle().Reverse(true),
		MenuDescription: lipgloss.NewStyle().Faint(true),
		MenuBadge:       lipgloss.NewStyle(),
		Controls:        lipgloss.NewStyle().Faint(true),
	}
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}

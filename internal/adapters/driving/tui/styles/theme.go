// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#FB6C6C"), // Red
		Secondary:  lipgloss.Color("#76BDFE"), // Blue
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Foreground: lipgloss.Color("#F2F4F4"), // Off white
		Muted:      lipgloss.Color("#7F8C8D"), // Medium gray
		Success:    lipgloss.Color("#49D0B0"), // Green
		Warning:    lipgloss.Color("#FFD76F"), // Yellow
		Error:      lipgloss.Color("#E74C3C"), // Bright red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style

	// Badge style for stat and type pills.
	Badge lipgloss.Style

	// Card style for catalog entries.
	Card lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// catalogPalette maps an entry's colour tag to its card colour.
var catalogPalette = map[string]lipgloss.Color{
	"green":  lipgloss.Color("#49D0B0"),
	"red":    lipgloss.Color("#FB6C6C"),
	"blue":   lipgloss.Color("#76BDFE"),
	"yellow": lipgloss.Color("#FFD76F"),
	"purple": lipgloss.Color("#AC92EC"),
	"pink":   lipgloss.Color("#F778A1"),
	"brown":  lipgloss.Color("#B1736C"),
	"gray":   lipgloss.Color("#AAB7B8"),
	"black":  lipgloss.Color("#5D6D7E"),
	"white":  lipgloss.Color("#AAB7B8"),
}

// FallbackCardColour is used for unknown or missing colour tags.
const FallbackCardColour = lipgloss.Color("#AAB7B8")

// CardColour returns the card background for a colour tag.
func CardColour(tag string) lipgloss.Color {
	if c, ok := catalogPalette[tag]; ok {
		return c
	}
	return FallbackCardColour
}

// CardFor returns the card style for an entry with the given colour tag.
func (s *Styles) CardFor(tag string) lipgloss.Style {
	return s.Card.Background(CardColour(tag))
}

// BadgeFor returns a badge style on the given background.
func (s *Styles) BadgeFor(bg lipgloss.Color) lipgloss.Style {
	return s.Badge.Background(bg)
}

// Package ui provides the terminal styling for the studybuddy chat loop.
// Light and dark palettes, with color switched off entirely for NO_COLOR or --no-color.
package ui

import (
	"io"
	"strings"

	"studybuddy/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#101F38") // Dark Blue
	LightPrimary    = lipgloss.Color("#101F38")
	LightAccent     = lipgloss.Color("#5E8E2B") // Lime, darkened for white backgrounds
	LightMuted      = lipgloss.Color("#6b7280")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#8BC34A") // Lime Green (flipped)
	DarkAccent     = lipgloss.Color("#8BC34A")
	DarkMuted      = lipgloss.Color("#9aa5b8")

	Destructive = lipgloss.Color("#e53935")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
	}
}

// ThemeFor maps a config theme name to a palette. Anything but "dark" is light.
func ThemeFor(name string) Theme {
	if strings.EqualFold(name, config.ThemeDark) {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Rule   lipgloss.Style
	Muted  lipgloss.Style
	Prompt lipgloss.Style
	Reply  lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles creates styles bound to w. With color off every style renders
// its input unchanged.
func NewStyles(theme Theme, color bool, w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Theme: theme,

		Title: r.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Rule: r.NewStyle().
			Foreground(theme.Muted),

		Muted: r.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Prompt: r.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Reply: r.NewStyle().
			Foreground(theme.Foreground),

		Error: r.NewStyle().
			Foreground(Destructive).
			Bold(true),
	}
}

// BannerWidth is the width of the banner rules.
const BannerWidth = 68

// Banner renders the startup banner.
func (s Styles) Banner() string {
	rule := s.Rule.Render(strings.Repeat("=", BannerWidth))
	return strings.Join([]string{
		rule,
		s.Title.Render("Study Buddy"),
		s.Muted.Render("Type /help for commands. Type 'bye' to exit."),
		rule,
	}, "\n")
}

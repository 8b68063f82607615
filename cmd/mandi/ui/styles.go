// Package ui provides the visual styling for the mandi terminal app.
// Colors follow the Digital Mandi palette (field green, turmeric, soil brown)
// with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#fbfaf5")
	LightForeground = lipgloss.Color("#1b2a1e")
	LightPrimary    = lipgloss.Color("#2e7d32") // Field green
	LightAccent     = lipgloss.Color("#f9a825") // Turmeric
	LightSecondary  = lipgloss.Color("#e8efe3")
	LightMuted      = lipgloss.Color("#7a867b")
	LightBorder     = lipgloss.Color("#c9d3c5")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#121a14")
	DarkForeground = lipgloss.Color("#eef2ea")
	DarkPrimary    = lipgloss.Color("#81c784")
	DarkAccent     = lipgloss.Color("#ffca28")
	DarkSecondary  = lipgloss.Color("#1e2b21")
	DarkMuted      = lipgloss.Color("#8d9a8e")
	DarkBorder     = lipgloss.Color("#34463a")
	DarkCard       = lipgloss.Color("#18231b")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#43a047")
	Warning     = lipgloss.Color("#fb8c00")
	Info        = lipgloss.Color("#1e88e5")
	Soil        = lipgloss.Color("#8d6e63")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from MANDI_DARK_MODE, then COLORFGBG, and
// defaults to light.
func DetectTheme() Theme {
	if v := os.Getenv("MANDI_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			if dark {
				return DarkTheme()
			}
			return LightTheme()
		}
	}

	// COLORFGBG is "foreground;background"; background 0-6 or 8 is dark.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}
	return LightTheme()
}

// ThemeFor resolves a ui.theme config value: light, dark or auto.
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Card    lipgloss.Style
	Dialog  lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Price    lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Forms
	Label      lipgloss.Style
	FieldError lipgloss.Style
	Focused    lipgloss.Style
	Banner     lipgloss.Style

	// Components
	Spinner  lipgloss.Style
	Divider  lipgloss.Style
	Badge    lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Selected lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Price: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(18),

		FieldError: lipgloss.NewStyle().
			Foreground(Destructive).
			PaddingLeft(18),

		Focused: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(Destructive).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#1b1b1b")).
			Padding(0, 1).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		TabOn: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Underline(true).
			Bold(true).
			Padding(0, 2),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(theme.Primary),
	}
}

// DefaultStyles returns styles for the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// Logo returns the Digital Mandi banner.
func Logo(s Styles) string {
	logo := `
  ___  _      _ _        _   __  __                _ _
 |   \(_)__ _(_) |_ __ _| | |  \/  |__ _ _ _  __| (_)
 | |) | / _` + "`" + ` | |  _/ _` + "`" + ` | | | |\/| / _` + "`" + ` | ' \/ _` + "`" + ` | |
 |___/|_\__, |_|\__\__,_|_| |_|  |_\__,_|_||_\__,_|_|
        |___/
`
	return s.Title.Render(logo)
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", max(width, 0)))
}

// RenderBadge renders a short label, e.g. "ORGANIC".
func (s Styles) RenderBadge(text string, color lipgloss.Color) string {
	return s.Badge.Background(color).Render(text)
}

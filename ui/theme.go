// Package ui holds the lipgloss themes and shared view styles.
package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/parleychat/parley/schema"
)

// Palette is the raw color set a theme is built from.
type Palette struct {
	Foreground string
	Muted      string
	Accent     string
	Highlight  string
	Warning    string
	Error      string
	Border     string
	Selection  string
}

// Theme bundles the styles the pages render with.
type Theme struct {
	Name schema.ThemeName

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Muted      lipgloss.Style
	Accent     lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Selected   lipgloss.Style
	Bookmark   lipgloss.Style
	Author     lipgloss.Style
	Timestamp  lipgloss.Style
	StatusBar  lipgloss.Style
	FlashInfo  lipgloss.Style
	FlashError lipgloss.Style
	Panel      lipgloss.Style
	Help       lipgloss.Style
}

func build(name schema.ThemeName, p Palette) Theme {
	return Theme{
		Name:       name,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		Subtitle:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Highlight)),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Accent:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning)),
		Selected:   lipgloss.NewStyle().Bold(true).Background(lipgloss.Color(p.Selection)).Foreground(lipgloss.Color(p.Foreground)),
		Bookmark:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning)),
		Author:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Highlight)),
		Timestamp:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		StatusBar:  lipgloss.NewStyle().Background(lipgloss.Color(p.Selection)).Foreground(lipgloss.Color(p.Foreground)).Padding(0, 1),
		FlashInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		FlashError: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Bold(true),
		Panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.Border)).Padding(0, 1),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
	}
}

var themes = map[schema.ThemeName]Theme{
	"tokyo-midnight": build("tokyo-midnight", Palette{
		Foreground: "#c0caf5",
		Muted:      "#565f89",
		Accent:     "#7aa2f7",
		Highlight:  "#bb9af7",
		Warning:    "#e0af68",
		Error:      "#f7768e",
		Border:     "#3b4261",
		Selection:  "#283457",
	}),
	"gruvbox": build("gruvbox", Palette{
		Foreground: "#ebdbb2",
		Muted:      "#928374",
		Accent:     "#83a598",
		Highlight:  "#fabd2f",
		Warning:    "#fe8019",
		Error:      "#fb4934",
		Border:     "#504945",
		Selection:  "#3c3836",
	}),
	"outrun": build("outrun", Palette{
		Foreground: "#f8f8f2",
		Muted:      "#6272a4",
		Accent:     "#ff79c6",
		Highlight:  "#8be9fd",
		Warning:    "#f1fa8c",
		Error:      "#ff5555",
		Border:     "#44475a",
		Selection:  "#44475a",
	}),
}

// ForName returns the named theme, falling back to the default.
func ForName(name schema.ThemeName) Theme {
	if theme, ok := themes[name]; ok {
		return theme
	}
	return themes[schema.DefaultTheme]
}

// Names lists the available theme names, sorted.
func Names() []schema.ThemeName {
	names := make([]schema.ThemeName, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

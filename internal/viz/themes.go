package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the live view.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Voltage lipgloss.Color
	Current lipgloss.Color
	Tau     lipgloss.Color
	Cursor  lipgloss.Color
	Wire    lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Title:   lipgloss.Color("#ff00ff"),
		Voltage: lipgloss.Color("#00ffff"),
		Current: lipgloss.Color("#ff00ff"),
		Tau:     lipgloss.Color("#ffff00"),
		Cursor:  lipgloss.Color("#ffffff"),
		Wire:    lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Border:  lipgloss.Color("#444466"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ff8800"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Title:   lipgloss.Color("#00ff00"), // green phosphor
		Voltage: lipgloss.Color("#00ff00"),
		Current: lipgloss.Color("#88ff88"),
		Tau:     lipgloss.Color("#ffff00"),
		Cursor:  lipgloss.Color("#ccffcc"),
		Wire:    lipgloss.Color("#00cc00"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#003300"),
		Running: lipgloss.Color("#88ff88"),
		Paused:  lipgloss.Color("#ffff00"),
	}

	ThemeClassic = Theme{
		Name:    "classic",
		Title:   lipgloss.Color("#ffffff"),
		Voltage: lipgloss.Color("#1f77b4"), // tab10 blue and red
		Current: lipgloss.Color("#d62728"),
		Tau:     lipgloss.Color("#2ca02c"),
		Cursor:  lipgloss.Color("#ff7f0e"),
		Wire:    lipgloss.Color("#cccccc"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Border:  lipgloss.Color("#555555"),
		Running: lipgloss.Color("#2ca02c"),
		Paused:  lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Title:   lipgloss.Color("#00a8cc"),
		Voltage: lipgloss.Color("#00a8cc"),
		Current: lipgloss.Color("#ff4444"),
		Tau:     lipgloss.Color("#ffd700"),
		Cursor:  lipgloss.Color("#e0f0ff"),
		Wire:    lipgloss.Color("#4488aa"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Border:  lipgloss.Color("#0077be"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Title:   lipgloss.Color("#ff6b6b"),
		Voltage: lipgloss.Color("#feca57"),
		Current: lipgloss.Color("#ff6b6b"),
		Tau:     lipgloss.Color("#ff9ff3"),
		Cursor:  lipgloss.Color("#fff5f5"),
		Wire:    lipgloss.Color("#8b6b8c"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Border:  lipgloss.Color("#5a3b5c"),
		Running: lipgloss.Color("#5fd068"),
		Paused:  lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetro,
		ThemeClassic,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

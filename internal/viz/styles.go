package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rcsim/internal/session"
)

// styles holds the lipgloss styles derived from a Theme.
type styles struct {
	panel    lipgloss.Style
	title    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	voltage  lipgloss.Style
	current  lipgloss.Style
	tau      lipgloss.Style
	cursor   lipgloss.Style
	wire     lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	idle     lipgloss.Style
	help     lipgloss.Style
	barFull  lipgloss.Style
	barEmpty lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		header:   lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(13),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		active:   lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		voltage:  lipgloss.NewStyle().Foreground(t.Voltage),
		current:  lipgloss.NewStyle().Foreground(t.Current),
		tau:      lipgloss.NewStyle().Foreground(t.Tau),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(t.Cursor),
		wire:     lipgloss.NewStyle().Foreground(t.Wire),
		running:  lipgloss.NewStyle().Bold(true).Foreground(t.Running),
		paused:   lipgloss.NewStyle().Bold(true).Foreground(t.Paused),
		idle:     lipgloss.NewStyle().Bold(true).Foreground(t.Muted),
		help:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		barFull:  lipgloss.NewStyle().Foreground(t.Title),
		barEmpty: lipgloss.NewStyle().Foreground(t.Muted),
	}
}

func (s styles) status(st session.State) string {
	switch st {
	case session.Running:
		return s.running.Render("● " + st.String())
	case session.Paused:
		return s.paused.Render("❚❚ " + st.String())
	}
	return s.idle.Render("○ " + st.String())
}

// bar renders a slider position in [0, 1] as a fixed-width bar.
func (s styles) bar(frac float64, width int) string {
	filled := int(frac*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return s.barFull.Render(strings.Repeat("█", filled)) + s.barEmpty.Render(strings.Repeat("░", width-filled))
}

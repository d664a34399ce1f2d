package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rcsim/internal/circuit"
	"github.com/san-kum/rcsim/internal/config"
	"github.com/san-kum/rcsim/internal/session"
)

const (
	plotWidth  = 56
	plotHeight = 9
	barWidth   = 16
	traceWidth = 40
)

// TickMsg is delivered by the animation timer. Gen is the timer generation
// it was scheduled under.
type TickMsg struct{ Gen uint64 }

// Model is the Bubble Tea front end of a session.Session.
type Model struct {
	sess     *session.Session
	theme    Theme
	st       styles
	selected session.Param
	width    int
	showHelp bool
}

func NewModel(s *session.Session, theme string) Model {
	t := GetTheme(theme)
	return Model{
		sess:  s,
		theme: t,
		st:    newStyles(t),
		width: plotWidth,
	}
}

func (m Model) Session() *session.Session { return m.sess }
func (m Model) Theme() Theme               { return m.theme }
func (m Model) Selected() session.Param    { return m.selected }

func (m Model) Init() tea.Cmd { return nil }

// Update maps keys onto session events and keeps the tick chain alive.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		return m, m.handle(session.Tick{Gen: msg.Gen})
	case tea.WindowSizeMsg:
		// leave room for the side panel
		m.width = max(20, min(plotWidth, msg.Width-50))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "down", "j":
		m.selected = (m.selected + 1) % 3
	case "shift+tab", "up", "k":
		m.selected = (m.selected + 2) % 3
	case "right", "l":
		return m, m.adjust(1)
	case "left", "h":
		return m, m.adjust(-1)
	case "m":
		next := circuit.Discharging
		if m.sess.Mode() == circuit.Discharging {
			next = circuit.Charging
		}
		return m, m.handle(session.ModeChanged{Mode: next})
	case " ":
		return m, m.handle(session.StartPause{})
	case "r":
		return m, m.handle(session.Reset{})
	case "+", "=":
		return m, m.handle(session.SpeedChanged{Factor: m.sess.Speed() * config.SpeedRange.Step})
	case "-", "_":
		return m, m.handle(session.SpeedChanged{Factor: m.sess.Speed() / config.SpeedRange.Step})
	case "t":
		m.theme = NextTheme(m.theme)
		m.st = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) adjust(dir float64) tea.Cmd {
	sl := m.sess.Slider(m.selected)
	return m.handle(session.ParamChanged{Param: m.selected, Value: sl.Value + dir*sl.Range.Step})
}

func (m Model) handle(ev session.Event) tea.Cmd {
	if !m.sess.Handle(ev) {
		return nil
	}
	gen := m.sess.Generation()
	return tea.Tick(m.sess.Period(), func(time.Time) tea.Msg { return TickMsg{Gen: gen} })
}

// View renders the plots, the schematic and the side panel.
func (m Model) View() string {
	f := m.sess.Frame()

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.st.panel.Render(m.voltageView(f)),
		m.st.panel.Render(m.currentView(f)),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.st.panel.Render(m.st.wire.Render(strings.Join(Schematic(f.Diagram), "\n"))),
		m.st.panel.Render(m.slidersView(f)),
		m.st.panel.Render(m.infoView(f)),
	)

	var b strings.Builder
	b.WriteString(m.headerView(f) + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n")
	if trace := f.Trace(); len(trace) > 1 {
		chart := asciigraph.Plot(trace,
			asciigraph.Height(4),
			asciigraph.Width(traceWidth),
			asciigraph.Caption("Vc played so far (V)"))
		b.WriteString(m.st.voltage.Render(chart) + "\n")
	}
	if m.showHelp {
		b.WriteString(m.st.help.Render(helpText) + "\n")
	} else {
		b.WriteString(m.st.help.Render("tab/↑↓ select  ←→ adjust  m mode  space start/pause  r reset  +/- speed  t theme  ? help  q quit") + "\n")
	}
	return b.String()
}

func (m Model) headerView(f session.Frame) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		m.st.title.Render("RC CIRCUIT"),
		m.st.status(f.State),
		m.st.header.Render(strings.ToUpper(f.Mode.String())),
		m.st.label.UnsetWidth().Render(fmt.Sprintf("speed ×%g  theme %s", f.Speed, m.theme.Name)))
}

func (m Model) voltageView(f session.Frame) string {
	xs := msTimes(f.Series.T)
	p := NewPlot(m.width, plotHeight, f.TimeAxis.Min, f.TimeAxis.Max, f.VoltageAxis.Min, f.VoltageAxis.Max)
	p.Line(xs, f.Series.V)
	if f.Mode == circuit.Charging {
		p.HLine(f.Params.Voltage)
	}
	p.Zero()
	m.markers(p, f, f.TauMarker.V, f.Cursor.V)

	title := m.st.header.Render("Capacitor Voltage") + m.st.label.UnsetWidth().Render(fmt.Sprintf("  %.2f .. %.2f V", f.VoltageAxis.Min, f.VoltageAxis.Max))
	return title + "\n" + m.st.voltage.Render(strings.TrimRight(p.String(), "\n"))
}

func (m Model) currentView(f session.Frame) string {
	xs := msTimes(f.Series.T)
	ys := make([]float64, len(f.Series.I))
	for k, i := range f.Series.I {
		ys[k] = i * 1000
	}
	p := NewPlot(m.width, plotHeight, f.TimeAxis.Min, f.TimeAxis.Max, f.CurrentAxis.Min, f.CurrentAxis.Max)
	p.Line(xs, ys)
	p.Zero()
	m.markers(p, f, f.TauMarker.I*1000, f.Cursor.I*1000)

	title := m.st.header.Render("Circuit Current") + m.st.label.UnsetWidth().Render(fmt.Sprintf("  ±%.2f mA   0 .. %.1f ms", f.CurrentAxis.Max, f.TimeAxis.Max))
	return title + "\n" + m.st.current.Render(strings.TrimRight(p.String(), "\n"))
}

// markers draws the τ marker, its label and the playback cursor. Values
// are in the plot's own units.
func (m Model) markers(p *Plot, f session.Frame, tauY, cursorY float64) {
	if f.TauMarker.Visible {
		tx := f.TauMarker.T * 1000
		p.Mark(tx, tauY)
		x, y := p.Px(tx, tauY)
		label := fmt.Sprintf("τ=%.2fms", tx)
		if y < 4 {
			y += 4
		} else {
			y -= 4
		}
		p.Text(x+4, y, label)
	}
	cx := f.Cursor.T * 1000
	p.Mark(cx, cursorY)
	if f.State != session.Idle || f.Cursor.T > 0 {
		p.VLine(cx)
	}
}

func (m Model) slidersView(f session.Frame) string {
	var b strings.Builder
	b.WriteString(m.st.header.Render("PARAMETERS") + "\n")
	for i, sl := range f.Sliders {
		line := fmt.Sprintf("%-12s %s %s", sl.Label, m.st.bar(sl.Fraction(), barWidth), sl.String())
		if session.Param(i) == m.selected {
			b.WriteString(m.st.active.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + m.st.value.Render(line) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) infoView(f session.Frame) string {
	rows := [][2]string{
		{"τ = RC", fmt.Sprintf("%.2f ms", f.Summary.Tau*1000)},
		{"Window", fmt.Sprintf("%.2f ms", f.Window*1000)},
		{"Time", fmt.Sprintf("%.2f ms", f.Cursor.T*1000)},
		{"Vc", fmt.Sprintf("%.3f V", f.Cursor.V)},
		{"Current", fmt.Sprintf("%.3f mA", f.Cursor.I*1000)},
		{"After 1τ", fmt.Sprintf("%.1f%% charged", 100*f.Summary.FractionOneT)},
		{"After 5τ", fmt.Sprintf("%.1f%% charged", 100*f.Summary.FractionFiveT)},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(m.st.label.Render(r[0]) + m.st.value.Render(r[1]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func msTimes(ts []float64) []float64 {
	out := make([]float64, len(ts))
	for k, t := range ts {
		out[k] = t * 1000
	}
	return out
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Tab/↑↓   - Select parameter         ║
║  ←→ (h/l) - Adjust parameter         ║
║  M        - Charging / discharging   ║
║  Space    - Start / pause            ║
║  R        - Reset to t = 0           ║
║  +/-      - Animation speed          ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Banner is printed before the live view starts.
func Banner() string {
	return strings.TrimLeft(`
RC Circuit Simulator - live view

Use the arrow keys to select and adjust resistance, capacitance and voltage.
Press m to switch between charging and discharging, space to start or pause
the animation and r to reset it. q quits.
`, "\n")
}

// Run starts the live view on the terminal.
func Run(s *session.Session, theme string) error {
	_, err := tea.NewProgram(NewModel(s, theme), tea.WithAltScreen()).Run()
	return err
}

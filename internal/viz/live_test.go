package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rcsim/internal/circuit"
	"github.com/san-kum/rcsim/internal/config"
	"github.com/san-kum/rcsim/internal/session"
)

func newTestModel() Model {
	cfg := config.DefaultConfig()
	cfg.Sim.NumPoints = 50
	return NewModel(session.New(cfg), "cyberpunk")
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func TestSliderKeys(t *testing.T) {
	m := newTestModel()

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Session().Params().Resistance; got != 1100 {
		t.Errorf("resistance = %v, want 1100", got)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Selected() != session.Capacitance {
		t.Fatalf("selected = %v", m.Selected())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.Session().Slider(session.Capacitance).Value; got != 9 {
		t.Errorf("capacitance = %v μF, want 9", got)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Selected() != session.Voltage {
		t.Errorf("selected = %v, want voltage", m.Selected())
	}
	for i := 0; i < 40; i++ {
		m, _ = press(m, runes("l"))
	}
	if got := m.Session().Params().Voltage; got != config.VoltageRange.Max {
		t.Errorf("voltage = %v, want clamp at %v", got, config.VoltageRange.Max)
	}
}

func TestStartPauseSchedulesTicks(t *testing.T) {
	m := newTestModel()

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatal("start should schedule a tick")
	}
	if m.Session().State() != session.Running {
		t.Fatalf("state = %v", m.Session().State())
	}

	gen := m.Session().Generation()
	next, cmd := m.Update(TickMsg{Gen: gen})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick inside the run should schedule the next one")
	}

	m, cmd = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if cmd != nil {
		t.Error("pause should not schedule a tick")
	}
	if _, cmd = m.Update(TickMsg{Gen: gen}); cmd != nil {
		t.Error("stale tick should be dropped")
	}
}

func TestModeSpeedThemeKeys(t *testing.T) {
	m := newTestModel()

	m, _ = press(m, runes("m"))
	if m.Session().Mode() != circuit.Discharging {
		t.Errorf("mode = %v", m.Session().Mode())
	}
	m, _ = press(m, runes("m"))
	if m.Session().Mode() != circuit.Charging {
		t.Errorf("mode = %v", m.Session().Mode())
	}

	m, _ = press(m, runes("+"))
	if m.Session().Speed() != 2 {
		t.Errorf("speed = %v", m.Session().Speed())
	}
	m, _ = press(m, runes("-"))
	m, _ = press(m, runes("-"))
	if m.Session().Speed() != 0.5 {
		t.Errorf("speed = %v", m.Session().Speed())
	}

	before := m.Theme().Name
	m, _ = press(m, runes("t"))
	if m.Theme().Name == before {
		t.Error("theme did not change")
	}
}

func TestQuit(t *testing.T) {
	_, cmd := press(newTestModel(), runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestView(t *testing.T) {
	m := newTestModel()
	out := m.View()
	for _, want := range []string{
		"RC CIRCUIT", "IDLE", "CHARGING",
		"Capacitor Voltage", "Circuit Current",
		"R = 1000 Ω", "C = 10 μF", "switch closed",
		"10.00 ms", "50.00 ms", "63.2% charged",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace})
	for i := 0; i < 10; i++ {
		m.Update(TickMsg{Gen: m.Session().Generation()})
	}
	out = m.View()
	for _, want := range []string{"RUNNING", "Vc played so far"} {
		if !strings.Contains(out, want) {
			t.Errorf("running view missing %q", want)
		}
	}
}

func TestSchematic(t *testing.T) {
	d := session.Diagram{Resistance: 2200, CapacitanceUF: 47, Voltage: 9, SwitchClosed: true, Vcap: 1.5,
		Arrows: []session.Arrow{{Wire: session.TopWire, Dir: session.Right}, {Wire: session.CapacitorLeg, Dir: session.Down}}}
	lines := Schematic(d)
	if !strings.Contains(lines[0], "R = 2200 Ω") {
		t.Errorf("resistor label: %q", lines[0])
	}
	if !strings.Contains(lines[1], "→") || !strings.Contains(lines[4], "↓") {
		t.Error("charging arrows missing")
	}
	if !strings.Contains(lines[4], "V = 9.0 V") || !strings.Contains(lines[4], "Vc = 1.50 V") {
		t.Errorf("source/vcap labels: %q", lines[4])
	}
	if !strings.HasSuffix(lines[6], "switch closed") {
		t.Errorf("switch: %q", lines[6])
	}
	// the right leg lines up on every row
	for _, k := range []int{1, 4, 5, 6} {
		r := []rune(lines[k])
		if c := r[21]; c != '┐' && c != '│' && c != '┘' {
			t.Errorf("line %d col 21 = %q", k, c)
		}
	}

	d.SwitchClosed = false
	d.Arrows = []session.Arrow{{Wire: session.BottomWire, Dir: session.Right}}
	lines = Schematic(d)
	if strings.Contains(lines[1], "→") || !strings.Contains(lines[6], "→") || !strings.Contains(lines[6], "switch open") {
		t.Errorf("discharging schematic wrong: %q / %q", lines[1], lines[6])
	}
}

func TestBanner(t *testing.T) {
	if !strings.HasPrefix(Banner(), "RC Circuit Simulator") {
		t.Errorf("banner = %q", Banner())
	}
}

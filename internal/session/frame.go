package session

import (
	"math"

	"github.com/san-kum/rcsim/internal/circuit"
)

// Axis is a plotted range.
type Axis struct {
	Min, Max float64
}

// Marker is a highlighted point; T in seconds, V in volts, I in amperes.
type Marker struct {
	Visible bool
	T, V, I float64
}

type Wire int

const (
	TopWire Wire = iota
	CapacitorLeg
	BottomWire
)

type Direction int

const (
	Right Direction = iota
	Down
)

// Arrow marks current flowing along a wire of the schematic.
type Arrow struct {
	Wire Wire
	Dir  Direction
}

// Diagram describes the schematic for the current frame.
type Diagram struct {
	Resistance    float64 // Ω
	CapacitanceUF float64
	Voltage       float64
	SwitchClosed  bool
	Vcap          float64
	Arrows        []Arrow
}

// Frame is everything a renderer needs to draw the session.
type Frame struct {
	Params  circuit.Params
	Summary circuit.Summary
	Mode    circuit.Mode
	State   State
	Speed   float64
	Sliders []Slider

	Window      float64
	Series      *circuit.Series
	Cursor      circuit.Sample
	CursorIndex int

	TimeAxis    Axis // ms
	VoltageAxis Axis // V
	CurrentAxis Axis // mA
	TauMarker   Marker

	Diagram Diagram
}

func (s *Session) Frame() Frame {
	v, i := s.params.At(s.mode, s.cursor)

	f := Frame{
		Params:      s.params,
		Summary:     circuit.Summarize(s.params),
		Mode:        s.mode,
		State:       s.state,
		Speed:       s.speed,
		Sliders:     append([]Slider(nil), s.sliders[:]...),
		Window:      s.window,
		Series:      s.series,
		Cursor:      circuit.Sample{T: s.cursor, V: v, I: i},
		CursorIndex: s.frame,
		TimeAxis:    Axis{Min: 0, Max: s.window * 1000},
		VoltageAxis: Axis{Min: -0.1, Max: 1.1 * s.params.Voltage},
		CurrentAxis: s.currentAxis(),
		TauMarker:   s.tauMarker(),
		Diagram:     s.diagram(v),
	}
	return f
}

func (s *Session) currentAxis() Axis {
	peak := s.series.PeakCurrent() * 1000 * 1.1
	if peak == 0 {
		peak = 1
	}
	return Axis{Min: -peak, Max: peak}
}

func (s *Session) tauMarker() Marker {
	tau := s.params.Tau()
	if tau >= s.window {
		return Marker{}
	}
	_, v := s.params.TauMarker(s.mode)
	_, i := s.params.At(s.mode, tau)
	return Marker{Visible: true, T: tau, V: v, I: i}
}

func (s *Session) diagram(vcap float64) Diagram {
	d := Diagram{
		Resistance:    s.params.Resistance,
		CapacitanceUF: s.sliders[Capacitance].Value,
		Voltage:       s.params.Voltage,
		SwitchClosed:  s.mode == circuit.Charging,
		Vcap:          vcap,
	}
	if s.state != Running {
		return d
	}
	if s.mode == circuit.Charging {
		d.Arrows = []Arrow{{Wire: TopWire, Dir: Right}, {Wire: CapacitorLeg, Dir: Down}}
	} else {
		d.Arrows = []Arrow{{Wire: BottomWire, Dir: Right}}
	}
	return d
}

// Trace returns the voltages shown so far in this run.
func (f Frame) Trace() []float64 {
	if f.Series == nil || f.Series.Len() == 0 {
		return nil
	}
	end := int(math.Min(float64(f.CursorIndex+1), float64(f.Series.Len())))
	return f.Series.V[:end]
}

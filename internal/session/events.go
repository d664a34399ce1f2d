package session

import "github.com/san-kum/rcsim/internal/circuit"

// Event is an input delivered to a Session.
type Event interface {
	event()
}

// ParamChanged reports a slider moved to Value (Ω, μF or V).
type ParamChanged struct {
	Param Param
	Value float64
}

// ModeChanged selects charging or discharging. Both is ignored.
type ModeChanged struct {
	Mode circuit.Mode
}

// StartPause toggles the animation.
type StartPause struct{}

// Reset rewinds to t=0 and stops the animation.
type Reset struct{}

// Tick advances the animation one grid sample.
type Tick struct {
	Gen uint64
}

// SpeedChanged sets the animation speed factor.
type SpeedChanged struct {
	Factor float64
}

func (ParamChanged) event() {}
func (ModeChanged) event()  {}
func (StartPause) event()   {}
func (Reset) event()        {}
func (Tick) event()         {}
func (SpeedChanged) event() {}

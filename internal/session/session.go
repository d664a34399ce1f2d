package session

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/rcsim/internal/circuit"
	"github.com/san-kum/rcsim/internal/config"
)

// BasePeriod is the timer period at speed factor 1.
const BasePeriod = 50 * time.Millisecond

type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	default:
		return "IDLE"
	}
}

type Session struct {
	sliders   [numParams]Slider
	mode      circuit.Mode
	speed     float64
	numPoints int

	params circuit.Params
	window float64
	series *circuit.Series

	state  State
	cursor float64 // seconds
	frame  int     // grid sample under the cursor
	next   int     // frame the next tick shows

	gen       uint64
	timerOn   bool
	remaining int

	log *logrus.Entry
}

// New builds a session from cfg. Values outside the slider ranges are
// clamped and Both falls back to Charging.
func New(cfg *config.Config) *Session {
	mode := cfg.Sim.Mode
	if mode != circuit.Discharging {
		mode = circuit.Charging
	}
	points := cfg.Sim.NumPoints
	if points < 1 {
		points = circuit.DefaultPoints
	}

	s := &Session{
		sliders:   newSliders(cfg),
		mode:      mode,
		speed:     config.SpeedRange.Clamp(cfg.Sim.Speed),
		numPoints: points,
		log:       logrus.WithField("component", "session"),
	}
	s.recompute()
	return s
}

// Handle applies one event. It returns true when the caller must schedule
// Tick{Gen: s.Generation()} after s.Period().
func (s *Session) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case ParamChanged:
		return s.paramChanged(ev)
	case ModeChanged:
		return s.modeChanged(ev)
	case StartPause:
		return s.toggle()
	case Reset:
		s.reset()
		return false
	case Tick:
		return s.tick(ev.Gen)
	case SpeedChanged:
		s.speed = config.SpeedRange.Clamp(ev.Factor)
		s.log.WithField("speed", s.speed).Debug("speed changed")
		return false
	}
	return false
}

func (s *Session) paramChanged(ev ParamChanged) bool {
	if ev.Param < 0 || ev.Param >= numParams {
		return false
	}
	s.sliders[ev.Param].set(ev.Value)
	s.recompute()
	s.log.WithFields(logrus.Fields{
		"param": s.sliders[ev.Param].Label,
		"value": s.sliders[ev.Param].Value,
		"tau":   s.params.Tau(),
	}).Debug("parameter changed")

	if s.state == Running {
		s.seek(0)
		return s.startTimer()
	}
	s.seek(math.Min(s.cursor, s.window))
	return false
}

func (s *Session) modeChanged(ev ModeChanged) bool {
	if ev.Mode != circuit.Charging && ev.Mode != circuit.Discharging {
		return false
	}
	s.mode = ev.Mode
	s.seek(0)
	s.recompute()
	s.log.WithField("mode", s.mode).Debug("mode changed")

	if s.state == Running {
		return s.startTimer()
	}
	return false
}

func (s *Session) toggle() bool {
	switch s.state {
	case Running:
		s.stopTimer()
		s.state = Paused
		s.log.WithField("t", s.cursor).Debug("paused")
		return false
	case Idle:
		s.seek(0)
	}
	s.state = Running
	s.log.WithField("frame", s.next).Debug("running")
	return s.startTimer()
}

func (s *Session) reset() {
	s.stopTimer()
	s.state = Idle
	s.seek(0)
	s.log.Debug("reset")
}

func (s *Session) tick(gen uint64) bool {
	if !s.timerOn || gen != s.gen {
		return false
	}
	s.frame = s.next
	s.cursor = s.series.T[s.frame]
	s.next++
	s.remaining--

	if s.remaining > 0 {
		return true
	}
	// The run is over: stop the timer and return to Idle so the next
	// Start replays from the first sample.
	s.stopTimer()
	s.state = Idle
	s.log.Debug("animation finished")
	return false
}

func (s *Session) startTimer() bool {
	if s.next >= s.numPoints {
		s.next = 0
	}
	s.gen++
	s.timerOn = true
	s.remaining = s.numPoints - s.next
	return true
}

func (s *Session) stopTimer() {
	if s.timerOn {
		s.gen++
		s.timerOn = false
	}
	s.remaining = 0
}

// seek moves the cursor to t and the frame to the nearest grid sample. The
// next tick shows the sample after it, or the first one when t is 0.
func (s *Session) seek(t float64) {
	s.cursor = t
	s.frame = 0
	if s.window > 0 && s.numPoints > 1 {
		s.frame = int(math.Round(t / s.window * float64(s.numPoints-1)))
	}
	s.next = s.frame + 1
	if t == 0 {
		s.next = 0
	}
}

// recompute regenerates τ, the window and the series from the sliders.
func (s *Session) recompute() {
	params := circuit.Params{
		Resistance:  s.sliders[Resistance].Value,
		Capacitance: s.sliders[Capacitance].Value * 1e-6,
		Voltage:     s.sliders[Voltage].Value,
	}
	window := circuit.DefaultWindow(params.Tau(), s.mode)
	series, err := circuit.Simulate(params, window, s.numPoints, s.mode)
	if err != nil {
		s.log.WithError(err).Error("recompute failed, keeping previous series")
		return
	}
	s.params, s.window, s.series = params, window, series
}

func (s *Session) State() State { return s.state }
func (s *Session) Mode() circuit.Mode { return s.mode }
func (s *Session) Params() circuit.Params { return s.params }
func (s *Session) Window() float64 { return s.window }
func (s *Session) Series() *circuit.Series { return s.series }
func (s *Session) Cursor() float64 { return s.cursor }
func (s *Session) CursorIndex() int { return s.frame }
func (s *Session) Generation() uint64 { return s.gen }
func (s *Session) TimerActive() bool { return s.timerOn }
func (s *Session) Speed() float64 { return s.speed }
func (s *Session) Slider(p Param) Slider { return s.sliders[p] }
func (s *Session) Sliders() []Slider { return append([]Slider(nil), s.sliders[:]...) }
func (s *Session) Period() time.Duration { return time.Duration(float64(BasePeriod) / s.speed) }

// Package controls turns pointer input and frame time from the window into
// session events. It has no graphics dependency so it can be tested headless.
package controls

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/rcsim/internal/circuit"
	"github.com/san-kum/rcsim/internal/config"
	"github.com/san-kum/rcsim/internal/session"
)

type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Grow returns r enlarged by d on every side.
func (r Rect) Grow(d float32) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Pointer is the left mouse button state for one frame.
type Pointer struct {
	X, Y    float32
	Down    bool // held
	Pressed bool // went down this frame
}

// Layout places the widgets and plots in window coordinates.
type Layout struct {
	Width, Height float32

	VoltagePlot Rect
	CurrentPlot Rect
	Schematic   Rect

	Sliders [3]Rect // slider tracks, indexed by session.Param
	Modes   [2]Rect // charging, discharging
	Start   Rect
	Reset   Rect
}

// NewLayout splits a w x h window: plots on the left, schematic top right and
// the controls along the bottom.
func NewLayout(w, h float32) Layout {
	const margin = 40
	plotW := w*0.6 - margin
	plotH := (h - 260) / 2

	l := Layout{Width: w, Height: h}
	l.VoltagePlot = Rect{X: margin + 30, Y: 60, W: plotW - 30, H: plotH - 20}
	l.CurrentPlot = Rect{X: margin + 30, Y: 60 + plotH + 20, W: plotW - 30, H: plotH - 20}
	l.Schematic = Rect{X: w*0.6 + 20, Y: 60, W: w*0.4 - 60, H: plotH*2 - 20}

	top := h - 170
	for i := range l.Sliders {
		l.Sliders[i] = Rect{X: 200, Y: top + float32(i)*40, W: w*0.45 - 200, H: 8}
	}
	col := w*0.55 + 20
	l.Modes[0] = Rect{X: col, Y: top - 8, W: 160, H: 28}
	l.Modes[1] = Rect{X: col, Y: top + 32, W: 160, H: 28}
	l.Start = Rect{X: col + 200, Y: top - 8, W: 140, H: 40}
	l.Reset = Rect{X: col + 200, Y: top + 48, W: 140, H: 40}
	return l
}

// SliderValue maps pointer x on a track to a value of r snapped to its step.
func SliderValue(track Rect, r config.Range, x float32) float64 {
	frac := 0.0
	if track.W > 0 {
		frac = float64((x - track.X) / track.W)
	}
	frac = math.Max(0, math.Min(1, frac))
	v := r.Min + frac*(r.Max-r.Min)
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	return r.Clamp(v)
}

// Knob returns the x position of the slider knob on track.
func Knob(track Rect, sl session.Slider) float32 {
	return track.X + float32(sl.Fraction())*track.W
}

// Controller feeds a session from window input. It owns the single pending
// animation tick, standing in for the timer the session asks for.
type Controller struct {
	sess   *session.Session
	layout Layout

	dragging bool
	drag     session.Param

	pending bool
	gen     uint64
	wait    time.Duration

	log *logrus.Entry
}

func New(s *session.Session, l Layout) *Controller {
	return &Controller{
		sess:   s,
		layout: l,
		log:    logrus.WithField("component", "gui"),
	}
}

func (c *Controller) Session() *session.Session { return c.sess }
func (c *Controller) Layout() Layout             { return c.layout }

// Dragging reports the slider under an active drag.
func (c *Controller) Dragging() (session.Param, bool) { return c.drag, c.dragging }

// Pending reports whether a tick is scheduled and how long until it fires.
func (c *Controller) Pending() (bool, time.Duration) { return c.pending, c.wait }

// Handle applies ev and schedules the tick the session asks for.
func (c *Controller) Handle(ev session.Event) {
	if c.sess.Handle(ev) {
		c.pending = true
		c.gen = c.sess.Generation()
		c.wait = c.sess.Period()
	}
}

// Pointer handles one frame of mouse input. A press on a slider track starts
// a drag that follows the pointer until the button is released; presses on
// the mode options and buttons fire once.
func (c *Controller) Pointer(p Pointer) {
	if !p.Down {
		c.dragging = false
	}
	if p.Pressed {
		c.press(p.X, p.Y)
	}
	if c.dragging && p.Down {
		c.dragTo(p.X)
	}
}

func (c *Controller) press(x, y float32) {
	l := c.layout
	for i, track := range l.Sliders {
		// the track is thin, accept presses on the knob around it
		if track.Grow(10).Contains(x, y) {
			c.dragging = true
			c.drag = session.Param(i)
			return
		}
	}
	switch {
	case l.Modes[0].Contains(x, y):
		c.Handle(session.ModeChanged{Mode: circuit.Charging})
	case l.Modes[1].Contains(x, y):
		c.Handle(session.ModeChanged{Mode: circuit.Discharging})
	case l.Start.Contains(x, y):
		c.Handle(session.StartPause{})
	case l.Reset.Contains(x, y):
		c.Handle(session.Reset{})
	}
}

// dragTo only reports a change when the snapped value moves, so holding the
// knob still does not keep restarting a running animation.
func (c *Controller) dragTo(x float32) {
	sl := c.sess.Slider(c.drag)
	v := SliderValue(c.layout.Sliders[c.drag], sl.Range, x)
	if v == sl.Value {
		return
	}
	c.log.WithFields(logrus.Fields{"param": sl.Label, "value": v}).Debug("slider dragged")
	c.Handle(session.ParamChanged{Param: c.drag, Value: v})
}

// Advance lets dt of wall time pass and delivers every tick that falls due.
func (c *Controller) Advance(dt time.Duration) {
	if !c.pending {
		return
	}
	c.wait -= dt
	for c.pending && c.wait <= 0 {
		c.pending = false
		left := c.wait
		if c.sess.Handle(session.Tick{Gen: c.gen}) {
			c.pending = true
			c.gen = c.sess.Generation()
			c.wait = c.sess.Period() + left
		}
	}
}

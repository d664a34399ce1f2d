package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/rcsim/internal/circuit"
	"github.com/san-kum/rcsim/internal/gui/controls"
	"github.com/san-kum/rcsim/internal/session"
)

// plotArea maps data coordinates into a screen rectangle.
type plotArea struct {
	r    controls.Rect
	x, y session.Axis
}

func (p plotArea) point(x, y float64) rl.Vector2 {
	px, py := p.r.X, p.r.Y+p.r.H
	if p.x.Max > p.x.Min {
		px += float32((x - p.x.Min) / (p.x.Max - p.x.Min)) * p.r.W
	}
	if p.y.Max > p.y.Min {
		py -= float32((y - p.y.Min) / (p.y.Max - p.y.Min)) * p.r.H
	}
	return rl.NewVector2(px, py)
}

func (a *App) drawAxes(p plotArea, title, unit string) {
	rl.DrawRectangleLinesEx(rect(p.r), 1, ColGrid)
	for k := 1; k < 4; k++ {
		y := p.r.Y + p.r.H*float32(k)/4
		rl.DrawLineV(rl.NewVector2(p.r.X, y), rl.NewVector2(p.r.X+p.r.W, y), ColGrid)
	}
	if p.y.Min < 0 && p.y.Max > 0 {
		zero := p.point(p.x.Min, 0)
		rl.DrawLineV(zero, rl.NewVector2(p.r.X+p.r.W, zero.Y), ColTextDim)
	}
	a.drawTextAt(title, p.r.X, p.r.Y-20, 16, ColAccent)
	a.drawTextAt(fmt.Sprintf("%.2f", p.y.Max), p.r.X-36, p.r.Y-6, 12, ColText)
	a.drawTextAt(fmt.Sprintf("%.2f", p.y.Min), p.r.X-36, p.r.Y+p.r.H-6, 12, ColText)
	a.drawTextAt(unit, p.r.X-36, p.r.Y+p.r.H/2-6, 12, ColTextDim)
	a.drawTextAt("0", p.r.X, p.r.Y+p.r.H+4, 12, ColText)
	a.drawTextAt(fmt.Sprintf("%.1f ms", p.x.Max), p.r.X+p.r.W-50, p.r.Y+p.r.H+4, 12, ColText)
}

func (a *App) drawTrace(p plotArea, ts, ys []float64, col rl.Color) {
	n := min(len(ts), len(ys))
	if n < 2 {
		return
	}
	points := make([]rl.Vector2, n)
	for k := 0; k < n; k++ {
		points[k] = p.point(ts[k]*1000, ys[k])
	}
	rl.DrawLineStrip(points, col)
}

// drawMarkers draws the τ marker and the playback cursor; y values are in
// the plot's units.
func (a *App) drawMarkers(p plotArea, f session.Frame, tauY, cursorY float64) {
	if f.TauMarker.Visible {
		tx := f.TauMarker.T * 1000
		pos := p.point(tx, tauY)
		rl.DrawCircleV(pos, 5, ColTau)
		a.drawTextAt(fmt.Sprintf("τ = %.2f ms", tx), pos.X+8, pos.Y-18, 14, ColTau)
	}
	cx := f.Cursor.T * 1000
	if f.State != session.Idle || f.Cursor.T > 0 {
		top, bottom := p.point(cx, p.y.Max), p.point(cx, p.y.Min)
		rl.DrawLineV(top, bottom, rl.Fade(ColCursor, 0.5))
	}
	rl.DrawCircleV(p.point(cx, cursorY), 6, ColCursor)
}

func (a *App) drawVoltage(r controls.Rect, f session.Frame) {
	p := plotArea{r: r, x: f.TimeAxis, y: f.VoltageAxis}
	a.drawAxes(p, "Capacitor Voltage", "V")
	if f.Mode == circuit.Charging {
		v := p.point(p.x.Min, f.Params.Voltage)
		rl.DrawLineV(v, rl.NewVector2(r.X+r.W, v.Y), ColTextDim)
	}
	a.drawTrace(p, f.Series.T, f.Series.V, ColVoltage)
	a.drawMarkers(p, f, f.TauMarker.V, f.Cursor.V)
}

func (a *App) drawCurrent(r controls.Rect, f session.Frame) {
	p := plotArea{r: r, x: f.TimeAxis, y: f.CurrentAxis}
	a.drawAxes(p, "Circuit Current", "mA")
	ma := make([]float64, len(f.Series.I))
	for k, i := range f.Series.I {
		ma[k] = i * 1000
	}
	a.drawTrace(p, f.Series.T, ma, ColCurrent)
	a.drawMarkers(p, f, f.TauMarker.I*1000, f.Cursor.I*1000)
}

// drawSchematic draws the loop with the source on the left leg, the resistor
// on the top wire, the capacitor on the right leg and the switch on the
// bottom wire.
func (a *App) drawSchematic(r controls.Rect, d session.Diagram) {
	a.drawTextAt("Circuit", r.X, r.Y-20, 16, ColAccent)
	left, right := r.X+40, r.X+r.W-120
	top, bottom := r.Y+60, r.Y+r.H-40
	midY := (top + bottom) / 2
	midX := (left + right) / 2
	wire := ColAccent

	// source
	rl.DrawLineV(rl.NewVector2(left, top), rl.NewVector2(left, midY-10), wire)
	rl.DrawLineEx(rl.NewVector2(left-18, midY-10), rl.NewVector2(left+18, midY-10), 3, ColSelect)
	rl.DrawLineEx(rl.NewVector2(left-9, midY+2), rl.NewVector2(left+9, midY+2), 3, ColSelect)
	rl.DrawLineV(rl.NewVector2(left, midY+2), rl.NewVector2(left, bottom), wire)
	a.drawTextAt(fmt.Sprintf("V = %.1f V", d.Voltage), left+24, midY-8, 14, ColText)

	// resistor
	zig := float32(80)
	rl.DrawLineV(rl.NewVector2(left, top), rl.NewVector2(midX-zig/2, top), wire)
	prev := rl.NewVector2(midX-zig/2, top)
	for k := 1; k <= 8; k++ {
		y := top - 8
		if k%2 == 0 {
			y = top + 8
		}
		if k == 8 {
			y = top
		}
		next := rl.NewVector2(midX-zig/2+zig*float32(k)/8, y)
		rl.DrawLineEx(prev, next, 2, ColSelect)
		prev = next
	}
	rl.DrawLineV(prev, rl.NewVector2(right, top), wire)
	a.drawTextAt(fmt.Sprintf("R = %.0f Ω", d.Resistance), midX-zig/2, top-32, 14, ColText)

	// capacitor
	rl.DrawLineV(rl.NewVector2(right, top), rl.NewVector2(right, midY-6), wire)
	rl.DrawLineEx(rl.NewVector2(right-20, midY-6), rl.NewVector2(right+20, midY-6), 3, ColSelect)
	rl.DrawLineEx(rl.NewVector2(right-20, midY+6), rl.NewVector2(right+20, midY+6), 3, ColSelect)
	rl.DrawLineV(rl.NewVector2(right, midY+6), rl.NewVector2(right, bottom), wire)
	a.drawTextAt(fmt.Sprintf("C = %.0f μF", d.CapacitanceUF), right+28, midY-22, 14, ColText)
	a.drawTextAt(fmt.Sprintf("Vc = %.2f V", d.Vcap), right+28, midY+2, 14, ColVoltage)

	// switch
	swX := midX - 20
	rl.DrawLineV(rl.NewVector2(left, bottom), rl.NewVector2(swX, bottom), wire)
	rl.DrawCircleV(rl.NewVector2(swX, bottom), 3, ColSelect)
	state := "switch open"
	if d.SwitchClosed {
		rl.DrawLineEx(rl.NewVector2(swX, bottom), rl.NewVector2(swX+40, bottom), 2, ColSelect)
		state = "switch closed"
	} else {
		rl.DrawLineEx(rl.NewVector2(swX, bottom), rl.NewVector2(swX+36, bottom-18), 2, ColSelect)
	}
	rl.DrawCircleV(rl.NewVector2(swX+40, bottom), 3, ColSelect)
	rl.DrawLineV(rl.NewVector2(swX+40, bottom), rl.NewVector2(right, bottom), wire)
	a.drawTextAt(state, swX-10, bottom+10, 14, ColText)

	for _, arrow := range d.Arrows {
		switch arrow.Wire {
		case session.TopWire:
			drawArrow(rl.NewVector2((left+midX-zig/2)/2, top), arrow.Dir)
		case session.CapacitorLeg:
			drawArrow(rl.NewVector2(right, (top+midY)/2), arrow.Dir)
		case session.BottomWire:
			drawArrow(rl.NewVector2((swX+40+right)/2, bottom), arrow.Dir)
		}
	}
}

// drawArrow draws a current chevron centred on at.
func drawArrow(at rl.Vector2, dir session.Direction) {
	const s = 8
	if dir == session.Down {
		rl.DrawLineEx(rl.NewVector2(at.X-s, at.Y-s/2), at, 3, ColCurrent)
		rl.DrawLineEx(rl.NewVector2(at.X+s, at.Y-s/2), at, 3, ColCurrent)
		return
	}
	rl.DrawLineEx(rl.NewVector2(at.X-s/2, at.Y-s), at, 3, ColCurrent)
	rl.DrawLineEx(rl.NewVector2(at.X-s/2, at.Y+s), at, 3, ColCurrent)
}

func (a *App) drawSliders(l controls.Layout, f session.Frame) {
	dragged, dragging := a.ctrl.Dragging()
	for i, sl := range f.Sliders {
		track := l.Sliders[i]
		col := ColText
		if dragging && session.Param(i) == dragged {
			col = ColSelect
		}
		a.drawTextAt(fmt.Sprintf("%s (%s)", sl.Label, sl.Unit), 40, track.Y-6, 16, col)
		rl.DrawRectangleRec(rect(track), ColGrid)
		knob := controls.Knob(track, sl)
		filled := track
		filled.W = knob - track.X
		rl.DrawRectangleRec(rect(filled), ColTextDim)
		rl.DrawCircleV(rl.NewVector2(knob, track.Y+track.H/2), 9, col)
		a.drawTextAt(sl.String(), track.X+track.W+16, track.Y-6, 16, ColAccent)
	}
}

func (a *App) drawModes(l controls.Layout, mode circuit.Mode) {
	for i, label := range []string{"Charging", "Discharging"} {
		r := l.Modes[i]
		centre := rl.NewVector2(r.X+12, r.Y+r.H/2)
		rl.DrawCircleLines(int32(centre.X), int32(centre.Y), 8, ColAccent)
		selected := (i == 0 && mode == circuit.Charging) || (i == 1 && mode == circuit.Discharging)
		col := ColText
		if selected {
			rl.DrawCircleV(centre, 5, ColSelect)
			col = ColSelect
		}
		a.drawTextAt(label, r.X+30, r.Y+r.H/2-8, 16, col)
	}
}

func (a *App) drawButtons(l controls.Layout, st session.State) {
	label := "Start"
	if st == session.Running {
		label = "Pause"
	}
	a.drawButton(l.Start, label)
	a.drawButton(l.Reset, "Reset")
}

func (a *App) drawButton(r controls.Rect, label string) {
	mouse := rl.GetMousePosition()
	col := ColText
	if r.Contains(mouse.X, mouse.Y) {
		col = ColSelect
		rl.DrawRectangleRec(rect(r), ColGrid)
	}
	rl.DrawRectangleLinesEx(rect(r), 1, col)
	size := rl.MeasureTextEx(a.font, label, 18, 1)
	a.drawTextAt(label, r.X+(r.W-size.X)/2, r.Y+(r.H-size.Y)/2, 18, col)
}

// Package gui is the raylib window of the interactive tool: the voltage and
// current plots, the schematic, three sliders, the mode selector and the
// Start/Pause and Reset buttons.
package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/rcsim/internal/circuit"
	"github.com/san-kum/rcsim/internal/config"
	"github.com/san-kum/rcsim/internal/gui/controls"
	"github.com/san-kum/rcsim/internal/session"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

// Monochrome with a colour per trace.
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
	ColVoltage = rl.NewColor(31, 119, 180, 255)
	ColCurrent = rl.NewColor(214, 39, 40, 255)
	ColTau     = rl.NewColor(44, 160, 44, 255)
	ColCursor  = rl.NewColor(255, 127, 14, 255)
)

type App struct {
	ctrl *controls.Controller
	sess *session.Session
	font rl.Font
	quit bool
	log  *logrus.Entry
}

func initWindow() {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(screenWidth, screenHeight, "rcsim - RC circuit")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono with the Greek and unit glyphs the labels
// use, or the raylib default font when it is not installed.
func loadFont() rl.Font {
	if !rl.FileExists(fontPath) {
		return rl.GetFontDefault()
	}
	var glyphs []rune
	for r := rune(32); r < 127; r++ {
		glyphs = append(glyphs, r)
	}
	glyphs = append(glyphs, []rune("Ωμτ×±")...)
	font := rl.LoadFontEx(fontPath, 32, glyphs, int32(len(glyphs)))
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(s *session.Session) *App {
	return &App{
		ctrl: controls.New(s, controls.NewLayout(screenWidth, screenHeight)),
		sess: s,
		font: loadFont(),
		log:  logrus.WithField("component", "gui"),
	}
}

// Run opens the window and blocks until it is closed.
func Run(s *session.Session) error {
	initWindow()
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return errors.New("failed to open window")
	}
	app := NewApp(s)
	app.log.Info("window opened")
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.ctrl.Handle(session.StartPause{})
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.ctrl.Handle(session.Reset{})
	}
	if rl.IsKeyPressed(rl.KeyM) {
		next := circuit.Discharging
		if a.sess.Mode() == circuit.Discharging {
			next = circuit.Charging
		}
		a.ctrl.Handle(session.ModeChanged{Mode: next})
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.ctrl.Handle(session.SpeedChanged{Factor: a.sess.Speed() * config.SpeedRange.Step})
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.ctrl.Handle(session.SpeedChanged{Factor: a.sess.Speed() / config.SpeedRange.Step})
	}

	mouse := rl.GetMousePosition()
	a.ctrl.Pointer(controls.Pointer{
		X:       mouse.X,
		Y:       mouse.Y,
		Down:    rl.IsMouseButtonDown(rl.MouseLeftButton),
		Pressed: rl.IsMouseButtonPressed(rl.MouseLeftButton),
	})
	a.ctrl.Advance(time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	f := a.sess.Frame()
	l := a.ctrl.Layout()
	a.drawVoltage(l.VoltagePlot, f)
	a.drawCurrent(l.CurrentPlot, f)
	a.drawSchematic(l.Schematic, f.Diagram)
	a.drawSliders(l, f)
	a.drawModes(l, f.Mode)
	a.drawButtons(l, f.State)
	a.DrawHUD(f)

	rl.EndDrawing()
}

func (a *App) DrawHUD(f session.Frame) {
	a.drawText("rcsim", 30, 16, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: τ = %.2f ms  window %.1f ms  speed ×%g", f.Summary.Tau*1000, f.Window*1000, f.Speed), 120, 22, 16, ColText)

	col := ColTextDim
	if f.State == session.Running {
		col = ColSelect
	}
	a.drawText(f.State.String(), 1150, 20, 16, col)

	a.drawText("[SPACE] START/PAUSE  [R] RESET  [M] MODE  [+/-] SPEED  [Q] QUIT", 640, 696, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 696, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawTextAt(text string, x, y float32, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(x, y), float32(size), 1, color)
}

func rect(r controls.Rect) rl.Rectangle {
	return rl.NewRectangle(r.X, r.Y, r.W, r.H)
}

// Package figure renders a simulated RC series as a two-panel figure
// (voltage and current against time in milliseconds) with a parameter panel,
// and as an asciigraph preview for the terminal.
package figure

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/rcsim/internal/circuit"
)

var (
	Width      = 10 * vg.Inch
	Height     = 10 * vg.Inch
	infoHeight = 1.8 * vg.Inch
)

var (
	voltageColor = color.RGBA{B: 200, A: 255}
	currentColor = color.RGBA{R: 200, A: 255}
	refColor     = color.RGBA{G: 140, A: 180}
	markerColor  = color.RGBA{R: 220, A: 255}
)

// Figure is one rendered simulation.
type Figure struct {
	Params circuit.Params
	Series *circuit.Series
}

func (f Figure) mode() circuit.Mode { return f.Series.Mode }

// windowMS is the time axis extent in milliseconds.
func (f Figure) windowMS() float64 { return f.Series.Window() * 1000 }

// tauMarker returns the annotated point at t=τ in (ms, V). It is only shown
// for a single regime and when τ falls inside the window.
func (f Figure) tauMarker() (x, y float64, ok bool) {
	if f.mode() == circuit.Both {
		return 0, 0, false
	}
	tau, v := f.Params.TauMarker(f.mode())
	tauMS := tau * 1000
	if tauMS >= f.windowMS() {
		return 0, 0, false
	}
	return tauMS, v, true
}

func points(xs, ys []float64, xScale, yScale float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for k := range xs {
		pts[k].X = xs[k] * xScale
		pts[k].Y = ys[k] * yScale
	}
	return pts
}

func (f Figure) voltagePlot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "RC Circuit Simulation"
	p.Y.Label.Text = "Voltage (V)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(points(f.Series.T, f.Series.V, 1000, 1))
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = voltageColor
	p.Add(line)

	if f.mode() == circuit.Charging {
		v := f.Params.Voltage
		ref := plotter.NewFunction(func(float64) float64 { return v })
		ref.XMin, ref.XMax = 0, f.windowMS()
		ref.Color = refColor
		ref.Width = vg.Points(1.5)
		ref.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(ref)

		label, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: f.windowMS() / 2, Y: v * 1.02}},
			Labels: []string{fmt.Sprintf("Vs = %g V", v)},
		})
		if err != nil {
			return nil, err
		}
		label.TextStyle[0].Color = refColor
		p.Add(label)
	}

	if x, y, ok := f.tauMarker(); ok {
		marker, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
		if err != nil {
			return nil, err
		}
		marker.GlyphStyle.Color = markerColor
		marker.GlyphStyle.Radius = vg.Points(4)
		marker.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(marker)

		note, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: x, Y: y}},
			Labels: []string{fmt.Sprintf("τ = %.2f ms", x)},
		})
		if err != nil {
			return nil, err
		}
		note.Offset = vg.Point{X: vg.Points(8), Y: vg.Points(8)}
		p.Add(note)
	}

	lo, hi := bounds(f.Series.V)
	p.X.Min, p.X.Max = 0, f.windowMS()
	p.Y.Min = math.Min(lo, 0) - 0.05*math.Abs(f.Params.Voltage)
	p.Y.Max = math.Max(hi, f.Params.Voltage) * 1.1
	return p, nil
}

func (f Figure) currentPlot() (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Current (mA)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(points(f.Series.T, f.Series.I, 1000, 1000))
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = currentColor
	p.Add(line)

	p.X.Min, p.X.Max = 0, f.windowMS()
	return p, nil
}

// InfoLines is the parameter summary shown under the plots.
func (f Figure) InfoLines() []string {
	return []string{
		"RC Circuit Parameters:",
		fmt.Sprintf("R = %g Ω", f.Params.Resistance),
		fmt.Sprintf("C = %.6g μF", f.Params.Capacitance*1e6),
		fmt.Sprintf("V = %g V", f.Params.Voltage),
		fmt.Sprintf("τ = RC = %.2f ms", f.Params.Tau()*1000),
	}
}

func (f Figure) infoPlot() (*plot.Plot, error) {
	p := plot.New()
	p.HideAxes()

	lines := f.InfoLines()
	xys := make(plotter.XYs, len(lines))
	for k := range lines {
		xys[k] = plotter.XY{X: 0.02, Y: 1 - float64(k)/float64(len(lines))}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: lines})
	if err != nil {
		return nil, err
	}
	p.Add(labels)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1.05
	return p, nil
}

// Render draws the figure in the given format (png, svg, pdf, jpg, eps, tif).
func Render(w io.Writer, format string, f Figure) error {
	if f.Series == nil || f.Series.Len() == 0 {
		return errors.New("figure: empty series")
	}

	voltage, err := f.voltagePlot()
	if err != nil {
		return errors.Wrap(err, "failed to build voltage plot")
	}
	current, err := f.currentPlot()
	if err != nil {
		return errors.Wrap(err, "failed to build current plot")
	}
	info, err := f.infoPlot()
	if err != nil {
		return errors.Wrap(err, "failed to build info panel")
	}

	c, err := draw.NewFormattedCanvas(Width, Height, format)
	if err != nil {
		return errors.Wrapf(err, "unsupported figure format %q", format)
	}
	dc := draw.New(c)

	top := draw.Crop(dc, 0, 0, infoHeight, 0)
	bottom := draw.Crop(dc, 0, 0, 0, -(Height - infoHeight))

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align([][]*plot.Plot{{voltage}, {current}}, tiles, top)
	voltage.Draw(canvases[0][0])
	current.Draw(canvases[1][0])
	info.Draw(bottom)

	_, err = c.WriteTo(w)
	return errors.Wrap(err, "failed to write figure")
}

// Save renders the figure to path; the extension selects the format.
func Save(path string, f Figure) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "png"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "cannot create directory %s", dir)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", path)
	}
	defer file.Close()

	if err := Render(file, format, f); err != nil {
		return err
	}
	return errors.Wrapf(file.Close(), "cannot close %s", path)
}

func bounds(xs []float64) (lo, hi float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

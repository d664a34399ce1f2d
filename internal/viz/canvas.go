package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells. Each cell holds 2x4 sub-pixels, so a
// canvas of w x h cells is (2w) x (4h) pixels with y growing downward.
// Cells may also hold a plain text rune, which replaces the dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelWidth and PixelHeight give the canvas size in sub-pixels.
func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

func isBraille(r rune) bool { return r >= blank && r <= blank+0xff }

// Set lights the sub-pixel at (x, y). Cells carrying text are left alone.
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok || !isBraille(c.Grid[row][col]) {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok || !isBraille(c.Grid[row][col]) {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDashedH draws a horizontal dashed line on pixel row y.
func (c *Canvas) DrawDashedH(y, dash int) {
	if dash < 1 {
		dash = 1
	}
	for x := 0; x < c.PixelWidth(); x++ {
		if (x/dash)%2 == 0 {
			c.Set(x, y)
		}
	}
}

// Text writes s into the cell row containing pixel y starting at the cell
// containing pixel x. Text that runs off the right edge is cut.
func (c *Canvas) Text(x, y int, s string) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	for _, r := range s {
		if col >= c.Width {
			return
		}
		c.Grid[row][col] = r
		col++
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Plot maps data coordinates onto a canvas.
type Plot struct {
	*Canvas
	XMin, XMax float64
	YMin, YMax float64
}

func NewPlot(w, h int, xmin, xmax, ymin, ymax float64) *Plot {
	return &Plot{Canvas: NewCanvas(w, h), XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
}

// Px converts data coordinates to pixel coordinates.
func (p *Plot) Px(x, y float64) (int, int) {
	w, h := float64(p.PixelWidth()-1), float64(p.PixelHeight()-1)
	px, py := 0.0, h
	if p.XMax > p.XMin {
		px = (x - p.XMin) / (p.XMax - p.XMin) * w
	}
	if p.YMax > p.YMin {
		py = h - (y-p.YMin)/(p.YMax-p.YMin)*h
	}
	return int(math.Round(px)), int(math.Round(py))
}

// Line joins consecutive (xs[k], ys[k]) points.
func (p *Plot) Line(xs, ys []float64) {
	n := min(len(xs), len(ys))
	if n == 0 {
		return
	}
	x0, y0 := p.Px(xs[0], ys[0])
	p.Set(x0, y0)
	for k := 1; k < n; k++ {
		x1, y1 := p.Px(xs[k], ys[k])
		p.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
}

// Zero draws the y=0 axis when it is inside the plotted range.
func (p *Plot) Zero() {
	if p.YMin > 0 || p.YMax < 0 {
		return
	}
	_, y := p.Px(p.XMin, 0)
	p.DrawDashedH(y, 2)
}

// HLine draws a dashed horizontal line at data value y.
func (p *Plot) HLine(y float64) {
	_, py := p.Px(p.XMin, y)
	p.DrawDashedH(py, 3)
}

// Mark draws a small diamond centred on (x, y).
func (p *Plot) Mark(x, y float64) {
	cx, cy := p.Px(x, y)
	p.DrawLine(cx-2, cy, cx, cy-2)
	p.DrawLine(cx, cy-2, cx+2, cy)
	p.DrawLine(cx+2, cy, cx, cy+2)
	p.DrawLine(cx, cy+2, cx-2, cy)
}

// VLine draws a vertical line at data value x.
func (p *Plot) VLine(x float64) {
	px, _ := p.Px(x, p.YMin)
	p.DrawLine(px, 0, px, p.PixelHeight()-1)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

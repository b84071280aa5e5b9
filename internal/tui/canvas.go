package tui

import (
	"math"
	"strings"

	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, grid: make([][]rune, h)}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in dot coordinates; the canvas is
// 2*Width by 4*Height dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = brailleBlank
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// Bounds is the x-y window drawn by Plot. A zero extent fits the window to
// the particles.
type Bounds struct {
	Origin r3.Vec
	Extent r3.Vec
}

func (b Bounds) fit(ps []particle.Particle) Bounds {
	if b.Extent.X > 0 && b.Extent.Y > 0 {
		return b
	}
	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range ps {
		lo.X, lo.Y = math.Min(lo.X, p.X.X), math.Min(lo.Y, p.X.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X.X), math.Max(hi.Y, p.X.Y)
	}
	ext := r3.Sub(hi, lo)
	if ext.X <= 0 {
		ext.X = 1
	}
	if ext.Y <= 0 {
		ext.Y = 1
	}
	return Bounds{Origin: lo, Extent: ext}
}

// Plot redraws the canvas with ps projected onto the x-y plane, y up.
func (c *Canvas) Plot(ps []particle.Particle, b Bounds) {
	c.Clear()
	if len(ps) == 0 {
		return
	}
	b = b.fit(ps)
	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	for _, p := range ps {
		fx := (p.X.X - b.Origin.X) / b.Extent.X
		fy := (p.X.Y - b.Origin.Y) / b.Extent.Y
		if !(fx >= 0 && fx <= 1 && fy >= 0 && fy <= 1) {
			continue
		}
		c.Set(int(math.Round(fx*w)), int(math.Round((1-fy)*h)))
	}
}

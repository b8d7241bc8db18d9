package viz

import (
	"strings"

	"github.com/san-kum/fizx/internal/linalg"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille dot grid of Width x Height cells, addressed in dots
// (Width*2 by Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

// Dot draws a small cross centred on (x, y).
func (c *Canvas) Dot(x, y int) {
	c.Set(x, y)
	c.Set(x-1, y)
	c.Set(x+1, y)
	c.Set(x, y-1)
	c.Set(x, y+1)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world-space XY coordinates onto canvas dots. It grows to
// include every point passed to Fit and never shrinks.
type Viewport struct {
	minX, maxX, minY, maxY float64
	init                   bool
}

func (v *Viewport) Fit(p linalg.Vec3) {
	x, y, _ := linalg.XYZ(p)
	if !v.init {
		v.minX, v.maxX, v.minY, v.maxY = x-1, x+1, y-1, y+1
		v.init = true
		return
	}
	v.minX, v.maxX = min(v.minX, x), max(v.maxX, x)
	v.minY, v.maxY = min(v.minY, y), max(v.maxY, y)
}

// Project returns the dot coordinates of p on c, with +Y pointing up.
func (v *Viewport) Project(c *Canvas, p linalg.Vec3) (int, int) {
	x, y, _ := linalg.XYZ(p)
	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	rx, ry := v.maxX-v.minX, v.maxY-v.minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	px := (x - v.minX) / rx * w
	py := h - (y-v.minY)/ry*h
	return int(px + 0.5), int(py + 0.5)
}

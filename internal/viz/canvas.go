package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/stoneinhat/dotfield/internal/field"
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

const blankCell = 0x2800

// Canvas is a braille grid where each cell also remembers the colour of the
// last dot drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]field.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid when the cell size changes and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w != c.Width || h != c.Height || c.Grid == nil {
		c.Width, c.Height = w, h
		c.Grid = make([][]rune, h)
		c.Colors = make([][]field.Color, h)
		for i := range c.Grid {
			c.Grid[i] = make([]rune, w)
			c.Colors[i] = make([]field.Color, w)
		}
	}
	c.Clear()
}

// SubSize is the canvas size in sub-pixels.
func (c *Canvas) SubSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the sub-pixel at (x, y) in colour col.
func (c *Canvas) Set(x, y int, col field.Color) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	c.Grid[cy][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[cy][cx] = col
}

// Lit reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blankCell
			c.Colors[i][j] = 0
		}
	}
}

// FillCircle lights every sub-pixel whose centre lies within r of (cx, cy).
// A radius under one sub-pixel still lights the centre.
func (c *Canvas) FillCircle(cx, cy, r float64, col field.Color) {
	if r < 0.5 {
		c.Set(int(cx), int(cy), col)
		return
	}
	x0, x1 := int(cx-r), int(cx+r)
	y0, y1 := int(cy-r), int(cy+r)
	r2 := r * r
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r2 {
				c.Set(x, y, col)
			}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col field.Color) {
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
		c.Set(x0, y0, col)
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

// String renders the grid without colour, blank cells as spaces.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		for _, r := range row {
			if r == blankCell {
				b.WriteByte(' ')
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Span renders cells [from, to) of row y, grouping runs of equally
// coloured cells into a single styled span.
func (c *Canvas) Span(y, from, to int, th Theme) string {
	if y < 0 || y >= c.Height {
		return ""
	}
	from, to = max(from, 0), min(to, c.Width)
	if from >= to {
		return ""
	}
	base := lipgloss.NewStyle().Background(th.Background)
	var b, run strings.Builder
	runColor, runLit := field.Color(0), false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		st := base
		if runLit {
			st = st.Foreground(th.Dot(runColor))
		}
		b.WriteString(st.Render(run.String()))
		run.Reset()
	}
	for x := from; x < to; x++ {
		r := c.Grid[y][x]
		lit := r != blankCell
		col := c.Colors[y][x]
		if lit != runLit || (lit && col != runColor) {
			flush()
			runLit, runColor = lit, col
		}
		if lit {
			run.WriteRune(r)
		} else {
			run.WriteByte(' ')
		}
	}
	flush()
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

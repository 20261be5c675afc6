package viz

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// layer is a block of styled lines placed over the canvas at cell (x, y).
type layer struct {
	x, y, w int
	lines   []string
}

func (l layer) covers(col, row int) bool {
	return row >= l.y && row < l.y+len(l.lines) && col >= l.x && col < l.x+l.w
}

// compose draws the canvas for rows [0, rows) and stacks layers over it;
// later layers win where they overlap.
func compose(c *Canvas, th Theme, rows int, layers []layer) string {
	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(composeRow(c, th, row, layers))
	}
	return b.String()
}

func composeRow(c *Canvas, th Theme, row int, layers []layer) string {
	owner := func(col int) int {
		for i := len(layers) - 1; i >= 0; i-- {
			if layers[i].covers(col, row) {
				return i
			}
		}
		return -1
	}

	var b strings.Builder
	for col := 0; col < c.Width; {
		who := owner(col)
		end := col + 1
		for end < c.Width && owner(end) == who {
			end++
		}
		if who < 0 {
			b.WriteString(c.Span(row, col, end, th))
		} else {
			l := layers[who]
			line := fit(l.lines[row-l.y], l.w)
			b.WriteString(ansi.Cut(line, col-l.x, end-l.x))
		}
		col = end
	}
	return b.String()
}

// fit pads or truncates s to exactly w printable cells.
func fit(s string, w int) string {
	n := ansi.StringWidth(s)
	if n > w {
		return ansi.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-n)
}

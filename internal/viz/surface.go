package viz

import "github.com/stoneinhat/dotfield/internal/field"

// DefaultDotScale shrinks particle radii to sub-pixel size. A full-size
// radius would turn every dot into a blob several cells wide.
const DefaultDotScale = 0.5

// Surface draws field frames onto a braille canvas. One viewport unit is
// one sub-pixel, so a w×h cell canvas is a 2w×4h viewport.
type Surface struct {
	canvas *Canvas
	scale  float64
	frames int
}

func NewSurface(c *Canvas) *Surface {
	return &Surface{canvas: c, scale: DefaultDotScale}
}

// Viewport converts a cell size into viewport units.
func Viewport(cols, rows int) (float64, float64) {
	return float64(cols * 2), float64(rows * 4)
}

func (s *Surface) Begin(w, h float64) bool {
	cols, rows := int(w)/2, int(h)/4
	if cols <= 0 || rows <= 0 {
		return false
	}
	s.canvas.Resize(cols, rows)
	return true
}

func (s *Surface) Disc(x, y, r float64, c field.Color) {
	s.canvas.FillCircle(x, y, r*s.scale, c)
}

func (s *Surface) End() { s.frames++ }

// Frames counts frames drawn.
func (s *Surface) Frames() int { return s.frames }

func (s *Surface) Canvas() *Canvas { return s.canvas }

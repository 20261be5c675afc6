package viz

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/stoneinhat/dotfield/internal/field"
)

const (
	maxWindowWidth = 110
	barWidth       = 64
	springFreq     = 6.0
	springDamping  = 0.8
	settleEpsilon  = 0.05
)

// Button is a title bar control.
type Button uint8

const (
	NoButton Button = iota
	// CloseButton switches between the portfolio and terminal views.
	CloseButton
	MinimizeButton
	ZoomButton
)

// Geometry is a window box in terminal cells.
type Geometry struct {
	X, Y, W, H int
}

// Contains reports whether cell (col, row) is inside g.
func (g Geometry) Contains(col, row int) bool {
	return col >= g.X && col < g.X+g.W && row >= g.Y && row < g.Y+g.H
}

// Window is the host element particles line up around. Its box eases
// between the full and minimized layouts on a spring.
type Window struct {
	cols, rows int
	minimized  bool

	spring harmonica.Spring
	pos    [4]float64
	vel    [4]float64
	placed bool
}

func NewWindow(fps int) *Window {
	if fps <= 0 {
		fps = 60
	}
	return &Window{spring: harmonica.NewSpring(harmonica.FPS(fps), springFreq, springDamping)}
}

// Resize sets the screen the window lives on. The first call places the
// window without animating.
func (w *Window) Resize(cols, rows int) {
	w.cols, w.rows = cols, rows
	if !w.placed {
		w.snap()
		w.placed = true
	}
}

func (w *Window) SetMinimized(on bool) { w.minimized = on }

func (w *Window) Minimized() bool { return w.minimized }

// Target is the layout the spring is heading for.
func (w *Window) Target() Geometry { return w.layout(w.minimized) }

// Full is the restored layout, whatever the current state.
func (w *Window) Full() Geometry { return w.layout(false) }

func (w *Window) layout(minimized bool) Geometry {
	if minimized {
		width := min(w.cols-2, barWidth)
		return Geometry{X: (w.cols - width) / 2, Y: 0, W: width, H: 3}
	}
	width := min(w.cols*9/10, maxWindowWidth)
	height := w.rows * 9 / 10
	return Geometry{X: (w.cols - width) / 2, Y: (w.rows - height) / 2, W: width, H: height}
}

// Step advances the spring one frame and reports whether the box is still
// moving.
func (w *Window) Step() bool {
	t := w.target()
	moving := false
	for i := range w.pos {
		w.pos[i], w.vel[i] = w.spring.Update(w.pos[i], w.vel[i], t[i])
		if math.Abs(w.pos[i]-t[i]) > settleEpsilon || math.Abs(w.vel[i]) > settleEpsilon {
			moving = true
		}
	}
	if !moving {
		w.pos, w.vel = t, [4]float64{}
	}
	return moving
}

func (w *Window) snap() {
	w.pos, w.vel = w.target(), [4]float64{}
}

func (w *Window) target() [4]float64 {
	g := w.Target()
	return [4]float64{float64(g.X), float64(g.Y), float64(g.W), float64(g.H)}
}

// Geometry is the current, possibly animating, box clipped to the screen.
func (w *Window) Geometry() Geometry {
	g := Geometry{
		X: int(math.Round(w.pos[0])),
		Y: int(math.Round(w.pos[1])),
		W: int(math.Round(w.pos[2])),
		H: int(math.Round(w.pos[3])),
	}
	g.X, g.Y = max(g.X, 0), max(g.Y, 0)
	g.W = max(min(g.W, w.cols-g.X), 0)
	g.H = max(min(g.H, w.rows-g.Y), 0)
	return g
}

// Inner is the area under the title bar, inside the border.
func (w *Window) Inner() Geometry {
	g := w.Geometry()
	return Geometry{X: g.X + 1, Y: g.Y + 2, W: max(g.W-2, 0), H: max(g.H-3, 0)}
}

// HostRect is the window box in viewport units.
func (w *Window) HostRect() (field.Rect, bool) {
	g := w.Geometry()
	if g.W <= 0 || g.H <= 0 {
		return field.Rect{}, false
	}
	x, y := Viewport(g.X, g.Y)
	width, height := Viewport(g.W, g.H)
	return field.NewRect(x, y, width, height), true
}

// Hit maps a click to a title bar button.
func (w *Window) Hit(col, row int) Button {
	g := w.Geometry()
	if row != g.Y+1 {
		return NoButton
	}
	switch col - g.X {
	case 2:
		return CloseButton
	case 4:
		return MinimizeButton
	case 6:
		return ZoomButton
	}
	return NoButton
}

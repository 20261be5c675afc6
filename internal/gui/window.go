package gui

import (
	"math"

	"github.com/charmbracelet/harmonica"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stoneinhat/dotfield/internal/field"
)

const (
	maxWindowWidth = 960
	barWidth       = 420
	barHeight      = 44
	titleHeight    = 32
	buttonRadius   = 7
)

// window is the host element on the desktop surface. Its box eases between
// the full and minimized layouts on a spring.
type window struct {
	sw, sh    float32
	minimized bool

	spring harmonica.Spring
	pos    [4]float64
	vel    [4]float64
	placed bool
}

func newWindow(fps int) *window {
	return &window{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.8)}
}

func (w *window) resize(sw, sh int) {
	w.sw, w.sh = float32(sw), float32(sh)
	if !w.placed {
		w.pos = w.target()
		w.placed = true
	}
}

func (w *window) target() [4]float64 {
	r := w.layout(w.minimized)
	return [4]float64{float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height)}
}

func (w *window) layout(minimized bool) rl.Rectangle {
	if minimized {
		width := min(w.sw-20, barWidth)
		return rl.NewRectangle((w.sw-width)/2, 8, width, barHeight)
	}
	width := min(w.sw*0.9, maxWindowWidth)
	height := w.sh * 0.8
	return rl.NewRectangle((w.sw-width)/2, (w.sh-height)/2, width, height)
}

func (w *window) step() {
	t := w.target()
	for i := range w.pos {
		w.pos[i], w.vel[i] = w.spring.Update(w.pos[i], w.vel[i], t[i])
	}
}

func (w *window) rect() rl.Rectangle {
	return rl.NewRectangle(float32(w.pos[0]), float32(w.pos[1]), float32(w.pos[2]), float32(w.pos[3]))
}

// content is the area under the title bar of the restored layout.
func (w *window) content() rl.Rectangle {
	r := w.layout(false)
	return rl.NewRectangle(r.X+16, r.Y+titleHeight+8, r.Width-32, r.Height-titleHeight-16)
}

// HostRect rounds to whole pixels so spring jitter below a pixel never
// counts as a move.
func (w *window) HostRect() (field.Rect, bool) {
	r := w.rect()
	if r.Width <= 0 || r.Height <= 0 {
		return field.Rect{}, false
	}
	round := func(v float32) float64 { return math.Round(float64(v)) }
	return field.NewRect(round(r.X), round(r.Y), round(r.Width), round(r.Height)), true
}

func (w *window) button(i int) rl.Vector2 {
	r := w.rect()
	return rl.NewVector2(r.X+18+float32(i)*20, r.Y+titleHeight/2)
}

package gui

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stoneinhat/dotfield/internal/field"
)

// surface draws field frames straight into the raylib back buffer. One
// viewport unit is one screen pixel.
type surface struct {
	bg   rl.Color
	dots [4]rl.Color
}

func newSurface() *surface {
	s := &surface{bg: hexColor(field.Background)}
	for i, hex := range field.Palette {
		s.dots[i] = hexColor(hex)
	}
	return s
}

func (s *surface) Begin(w, h float64) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	rl.ClearBackground(s.bg)
	return true
}

func (s *surface) Disc(x, y, r float64, c field.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), s.dots[int(c)%len(s.dots)])
}

func (s *surface) End() {}

// hexColor parses #rrggbb; anything else is white.
func hexColor(hex string) rl.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return rl.White
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return rl.White
	}
	return rl.NewColor(uint8(v>>16), uint8(v>>8), uint8(v), 255)
}

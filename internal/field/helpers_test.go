package field

import "math/rand"

type recorder struct {
	blank  bool
	frames int
	discs  int
}

func (r *recorder) Begin(w, h float64) bool {
	if r.blank {
		return false
	}
	r.frames++
	r.discs = 0
	return true
}

func (r *recorder) Disc(x, y, radius float64, c Color) { r.discs++ }

func (r *recorder) End() {}

type fixedHost struct {
	rect Rect
	ok   bool
}

func (h *fixedHost) HostRect() (Rect, bool) { return h.rect, h.ok }

func newTestField(in *Inputs) *Field {
	return New(in, WithSeed(42))
}

func testInputs(count int) Inputs {
	in := Inputs{
		Width:             800,
		Height:            600,
		BallCount:         count,
		InteractionRadius: 75,
	}
	in.ResetPointer()
	return in
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

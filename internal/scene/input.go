package scene

import "github.com/stoneinhat/dotfield/internal/field"

// PointerMove records the pointer as the repulsion point. It is ignored
// while the scene is not interactive.
func (s *Scene) PointerMove(x, y float64) {
	if !s.in.Interactive {
		return
	}
	s.in.PointerX, s.in.PointerY = x, y
}

// PointerLeave parks the repulsion point off screen.
func (s *Scene) PointerLeave() {
	s.in.ResetPointer()
}

// Resize changes the viewport. The next frame rebuilds the population.
func (s *Scene) Resize(w, h float64) {
	s.in.Width, s.in.Height = w, h
}

func (s *Scene) SetInteractive(on bool) {
	s.in.Interactive = on
	if !on {
		s.in.ResetPointer()
	}
}

func (s *Scene) SetMode(m field.Mode) { s.in.Mode = m }

func (s *Scene) SetMinimized(on bool) { s.in.Minimized = on }

func (s *Scene) SetInteractionRadius(r float64) { s.in.InteractionRadius = r }

func (s *Scene) SetBallCount(n int) { s.in.BallCount = n }

package scene

// scrollFactor converts a scroll delta into a vertical velocity impulse.
const scrollFactor = 0.02

// WindowSource is the scroll source used when no container reports.
const WindowSource = ""

// scrollBinding remembers which container the scene listens to and the last
// offset seen from it.
type scrollBinding struct {
	container string
	last      float64
}

// Scroll feeds a scroll position from source. The change against the last
// recorded offset is queued as an impulse for the next frame. Events from a
// container other than the bound one are dropped.
func (s *Scene) Scroll(source string, offset float64) {
	if s.closed {
		return
	}
	if source != WindowSource && source != s.scroll.container {
		return
	}
	delta := offset - s.scroll.last
	s.scroll.last = offset
	if delta != 0 {
		s.in.ScrollImpulse += delta * scrollFactor
	}
}

// ContainerChanged rebinds the scene to container id, whose current offset
// becomes the new baseline. An empty id falls back to the window.
func (s *Scene) ContainerChanged(id string, offset float64) {
	if s.closed {
		return
	}
	s.scroll.container = id
	s.scroll.last = offset
}

// Container reports the bound scroll container.
func (s *Scene) Container() string { return s.scroll.container }

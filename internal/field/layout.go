package field

// PerimeterPoint places particle i of n on r's boundary. Positions are
// spaced perimeter/n apart, walking clockwise from the top-left corner along
// the top, right, bottom and left edges.
func PerimeterPoint(i, n int, r Rect) (float64, float64) {
	if n <= 0 {
		return r.Left, r.Top
	}
	pos := float64(i) * r.Perimeter() / float64(n)

	switch {
	case pos < r.Width:
		return r.Left + pos, r.Top
	case pos < r.Width+r.Height:
		return r.Right, r.Top + (pos - r.Width)
	case pos < 2*r.Width+r.Height:
		return r.Right - (pos - r.Width - r.Height), r.Bottom
	default:
		return r.Left, r.Bottom - (pos - 2*r.Width - r.Height)
	}
}

func (f *Field) assignBorder(r Rect, bounce bool) {
	n := len(f.p)
	for i := range f.p {
		x, y := PerimeterPoint(i, n, r)
		setTarget(&f.p[i], x, y, bounce)
	}
}

func (f *Field) sendHome() {
	for i := range f.p {
		goHome(&f.p[i])
	}
}

func (f *Field) track(r Rect) {
	f.tracked, f.tracking = r, true
}

func (f *Field) untrack() {
	f.tracked, f.tracking = Rect{}, false
}

// applyMinimize reacts to the minimized flag flipping.
func (f *Field) applyMinimize(in *Inputs, host Host) {
	if in.Minimized == f.minimized {
		return
	}
	f.minimized = in.Minimized

	if in.Minimized {
		f.sendHome()
		return
	}
	if in.Mode != Bordered {
		return
	}
	// Restoring straight into Bordered launches once here; the mode check
	// that follows must not launch again.
	f.mode = Bordered
	if r, ok := lookup(host); ok {
		f.assignBorder(r, true)
		f.track(r)
	}
}

// applyMode reacts to Ambient/Bordered switches. While minimized the switch
// is deferred until the window is restored.
func (f *Field) applyMode(in *Inputs, host Host) {
	if in.Minimized || in.Mode == f.mode {
		return
	}
	f.mode = in.Mode

	if in.Mode == Bordered {
		if r, ok := lookup(host); ok {
			f.assignBorder(r, true)
			f.track(r)
		}
		return
	}
	f.sendHome()
	f.untrack()
}

// retrack follows the host rectangle while Bordered. It returns the
// rectangle particles collide with this frame.
func (f *Field) retrack(in *Inputs, host Host) (Rect, bool) {
	if !bordered(in) {
		return Rect{}, false
	}
	cur, ok := lookup(host)
	if !ok {
		return Rect{}, false
	}
	if !f.tracking || f.tracked.Moved(cur, borderSlack) {
		f.assignBorder(cur, false)
		f.track(cur)
	}
	return cur, true
}

func bordered(in *Inputs) bool {
	return in.Mode == Bordered && !in.Minimized
}

func lookup(h Host) (Rect, bool) {
	if h == nil {
		return Rect{}, false
	}
	return h.HostRect()
}

package viz

import "testing"

func TestWindowLayout(t *testing.T) {
	w := NewWindow(60)
	w.Resize(100, 40)

	full := Geometry{X: 5, Y: 2, W: 90, H: 36}
	if got := w.Target(); got != full {
		t.Errorf("expected %+v, got %+v", full, got)
	}
	if got := w.Geometry(); got != full {
		t.Errorf("first resize should place the window, got %+v", got)
	}

	w.SetMinimized(true)
	bar := Geometry{X: 18, Y: 0, W: 64, H: 3}
	if got := w.Target(); got != bar {
		t.Errorf("expected %+v, got %+v", bar, got)
	}
	if got := w.Full(); got != full {
		t.Errorf("Full should ignore minimize, got %+v", got)
	}
}

func TestWindowWidthCap(t *testing.T) {
	w := NewWindow(60)
	w.Resize(300, 50)
	if got := w.Target().W; got != maxWindowWidth {
		t.Errorf("expected width capped at %d, got %d", maxWindowWidth, got)
	}
}

func TestWindowSpring(t *testing.T) {
	w := NewWindow(60)
	w.Resize(100, 40)
	w.SetMinimized(true)

	if !w.Step() {
		t.Fatal("window should start moving")
	}
	mid := w.Geometry()
	if mid == w.Target() {
		t.Error("one step should not reach the target")
	}

	settled := false
	for i := 0; i < 600; i++ {
		if !w.Step() {
			settled = true
			break
		}
	}
	if !settled {
		t.Fatal("spring never settled")
	}
	if got := w.Geometry(); got != w.Target() {
		t.Errorf("expected %+v after settling, got %+v", w.Target(), got)
	}
	if w.Step() {
		t.Error("a settled window should stay put")
	}
}

func TestWindowHostRect(t *testing.T) {
	w := NewWindow(60)
	w.Resize(100, 40)

	r, ok := w.HostRect()
	if !ok {
		t.Fatal("expected a host rectangle")
	}
	if r.Left != 10 || r.Top != 8 || r.Width != 180 || r.Height != 144 {
		t.Errorf("unexpected rect %+v", r)
	}

	empty := NewWindow(60)
	if _, ok := empty.HostRect(); ok {
		t.Error("an unsized window has no rectangle")
	}
}

func TestWindowHit(t *testing.T) {
	w := NewWindow(60)
	w.Resize(100, 40)

	tests := []struct {
		col, row int
		want     Button
	}{
		{7, 3, CloseButton},
		{9, 3, MinimizeButton},
		{11, 3, ZoomButton},
		{8, 3, NoButton},
		{7, 4, NoButton},
		{7, 2, NoButton},
	}
	for _, tt := range tests {
		if got := w.Hit(tt.col, tt.row); got != tt.want {
			t.Errorf("Hit(%d,%d) = %d, want %d", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestGeometryContains(t *testing.T) {
	g := Geometry{X: 2, Y: 1, W: 3, H: 2}
	if !g.Contains(2, 1) || !g.Contains(4, 2) {
		t.Error("expected corners inside")
	}
	if g.Contains(5, 1) || g.Contains(2, 3) {
		t.Error("expected far edges outside")
	}
}

package field

// Mode selects how particle targets are laid out.
type Mode uint8

const (
	Ambient Mode = iota
	Bordered
)

func (m Mode) String() string {
	if m == Bordered {
		return "bordered"
	}
	return "ambient"
}

// ParseMode accepts "ambient" and "bordered"; anything else is Ambient.
func ParseMode(s string) Mode {
	if s == "bordered" {
		return Bordered
	}
	return Ambient
}

// Color indexes Palette.
type Color uint8

// Palette holds the four dot colours. Background is drawn behind them.
var (
	Palette    = [4]string{"#618985", "#414535", "#DFBD88", "#E8E3E3"}
	Background = "#001011"
)

// Hex returns the palette entry for c.
func (c Color) Hex() string {
	return Palette[int(c)%len(Palette)]
}

// Rect is a host element's bounding box in viewport units.
type Rect struct {
	Left, Top, Right, Bottom float64
	Width, Height            float64
	CenterX, CenterY         float64
}

func NewRect(left, top, width, height float64) Rect {
	return Rect{
		Left:    left,
		Top:     top,
		Right:   left + width,
		Bottom:  top + height,
		Width:   width,
		Height:  height,
		CenterX: left + width/2,
		CenterY: top + height/2,
	}
}

func (r Rect) Perimeter() float64 {
	return 2 * (r.Width + r.Height)
}

// Moved reports whether o differs from r by more than threshold in width,
// height, left or top.
func (r Rect) Moved(o Rect, threshold float64) bool {
	return abs(r.Width-o.Width) > threshold ||
		abs(r.Height-o.Height) > threshold ||
		abs(r.Left-o.Left) > threshold ||
		abs(r.Top-o.Top) > threshold
}

// Inputs is everything the host writes between frames. The field reads it
// at the start of each frame and consumes ScrollImpulse.
type Inputs struct {
	Interactive       bool
	Mode              Mode
	Minimized         bool
	InteractionRadius float64
	BallCount         int

	PointerX, PointerY float64
	Width, Height      float64

	// ScrollImpulse is the vertical velocity queued for every particle.
	ScrollImpulse float64
}

// Offscreen is the pointer sentinel used while no pointer is over the
// surface. It is far enough outside any viewport to never repel a particle.
const Offscreen = -1000.0

// ResetPointer parks the repulsion point at the Offscreen sentinel.
func (in *Inputs) ResetPointer() {
	in.PointerX, in.PointerY = Offscreen, Offscreen
}

// Host locates the rectangle particles surround while Bordered.
type Host interface {
	HostRect() (Rect, bool)
}

// HostFunc adapts a function to Host.
type HostFunc func() (Rect, bool)

func (f HostFunc) HostRect() (Rect, bool) { return f() }

// Surface receives one frame of drawing. Begin clears the surface and
// returns false when nothing can be drawn this frame.
type Surface interface {
	Begin(width, height float64) bool
	Disc(x, y, radius float64, c Color)
	End()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

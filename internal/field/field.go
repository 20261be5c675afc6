package field

import (
	"math/rand"
	"time"
)

// BorderedRadius replaces the configured interaction radius while the field
// is Bordered and not minimized.
const BorderedRadius = 75.0

// Field is the simulation store: the particle arena plus the layout state
// last applied to it.
type Field struct {
	p   []Particle
	rng *rand.Rand

	width, height float64

	mode      Mode
	minimized bool

	tracked  Rect
	tracking bool
}

type Option func(*Field)

// WithSeed makes the field's randomness reproducible.
func WithSeed(seed int64) Option {
	return func(f *Field) { f.rng = rand.New(rand.NewSource(seed)) }
}

// New sizes a field to in's viewport and spawns in.BallCount particles in
// the ambient cloud. The current mode and minimized flag are taken as
// already applied.
func New(in *Inputs, opts ...Option) *Field {
	f := &Field{
		width:     in.Width,
		height:    in.Height,
		mode:      in.Mode,
		minimized: in.Minimized,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	f.populate(in.BallCount)
	return f
}

// Frame runs one tick: it clears s, settles population and layout against
// in, advances every particle and draws it. When s cannot draw, the frame is
// skipped entirely and false is returned.
func (f *Field) Frame(in *Inputs, host Host, s Surface) bool {
	if s == nil || !s.Begin(in.Width, in.Height) {
		return false
	}
	defer s.End()

	if in.Width != f.width || in.Height != f.height {
		f.resize(in, host)
	}
	f.reconcile(in, host)
	f.applyMinimize(in, host)
	f.applyMode(in, host)
	rect, tracking := f.retrack(in, host)

	if in.ScrollImpulse != 0 {
		for i := range f.p {
			f.p[i].VY += in.ScrollImpulse
		}
		in.ScrollImpulse = 0
	}

	env := frameEnv{
		width:       f.width,
		height:      f.height,
		interactive: in.Interactive,
		px:          in.PointerX,
		py:          in.PointerY,
		radius:      effectiveRadius(in),
		rect:        rect,
		tracking:    tracking,
		rng:         f.rng,
	}
	for i := range f.p {
		p := &f.p[i]
		advance(p, &env)
		s.Disc(p.X, p.Y, p.Radius, p.Color)
	}
	return true
}

func effectiveRadius(in *Inputs) float64 {
	if bordered(in) {
		return BorderedRadius
	}
	return in.InteractionRadius
}

// SetTarget points particle i at (x, y). See setTarget for the bounce
// behaviour.
func (f *Field) SetTarget(i int, x, y float64, bounce bool) {
	if i < 0 || i >= len(f.p) {
		return
	}
	setTarget(&f.p[i], x, y, bounce)
}

func (f *Field) Len() int { return len(f.p) }

// Particles exposes the arena. Callers must not modify it.
func (f *Field) Particles() []Particle { return f.p }

func (f *Field) Size() (float64, float64) { return f.width, f.height }

func (f *Field) Mode() Mode { return f.mode }

// Tracked returns the host rectangle the field last locked on to.
func (f *Field) Tracked() (Rect, bool) { return f.tracked, f.tracking }

// Energy is the mean kinetic energy per particle, used for the stats chart.
func (f *Field) Energy() float64 {
	if len(f.p) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range f.p {
		sum += 0.5 * (p.VX*p.VX + p.VY*p.VY)
	}
	return sum / float64(len(f.p))
}

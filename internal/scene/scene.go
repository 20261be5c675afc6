// Package scene mounts a particle field onto a drawing surface and owns
// everything that lives as long as the mount: the inputs the host writes
// between frames, the scroll binding, and the disposers that tear it down.
package scene

import (
	"context"
	"time"

	"github.com/stoneinhat/dotfield/internal/field"
)

// DefaultInterval is one frame at 60 fps.
const DefaultInterval = time.Second / 60

type Options struct {
	Interactive       bool
	Mode              field.Mode
	Minimized         bool
	InteractionRadius float64
	BallCount         int

	Width, Height float64

	// Seed fixes the field's randomness. Zero seeds from the clock.
	Seed int64
}

// Observer sees the field after every completed frame.
type Observer interface {
	OnFrame(f *field.Field)
}

type ObserverFunc func(f *field.Field)

func (fn ObserverFunc) OnFrame(f *field.Field) { fn(f) }

// Scene is one mounted field. It is driven from a single goroutine.
type Scene struct {
	field   *field.Field
	in      field.Inputs
	surface field.Surface
	host    field.Host

	scroll scrollBinding

	observers []Observer
	disposers []func()

	stepping bool
	closed   bool
	frames   uint64
}

// Mount builds the field for opts and binds it to surface and host. host
// may be nil, in which case Bordered mode never finds a rectangle.
func Mount(surface field.Surface, host field.Host, opts Options) *Scene {
	s := &Scene{
		surface: surface,
		host:    host,
		in: field.Inputs{
			Interactive:       opts.Interactive,
			Mode:              opts.Mode,
			Minimized:         opts.Minimized,
			InteractionRadius: opts.InteractionRadius,
			BallCount:         opts.BallCount,
			Width:             opts.Width,
			Height:            opts.Height,
		},
	}
	s.in.ResetPointer()

	var fopts []field.Option
	if opts.Seed != 0 {
		fopts = append(fopts, field.WithSeed(opts.Seed))
	}
	s.field = field.New(&s.in, fopts...)
	return s
}

func (s *Scene) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Frame runs exactly one step. It is a no-op after Close and when called
// from inside a running frame.
func (s *Scene) Frame() bool {
	if s.closed || s.stepping {
		return false
	}
	s.stepping = true
	defer func() { s.stepping = false }()

	if !s.field.Frame(&s.in, s.host, s.surface) {
		return false
	}
	s.frames++
	for _, o := range s.observers {
		o.OnFrame(s.field)
	}
	return true
}

// OnDispose registers fn to run on Close. Registering after Close runs fn
// immediately.
func (s *Scene) OnDispose(fn func()) {
	if fn == nil {
		return
	}
	if s.closed {
		fn()
		return
	}
	s.disposers = append(s.disposers, fn)
}

// Close runs every disposer once, newest first.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.disposers) - 1; i >= 0; i-- {
		s.disposers[i]()
	}
	s.disposers = nil
}

// Run drives frames from a ticker until ctx is done or the scene closes.
func (s *Scene) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if s.closed {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Frame()
		}
	}
}

func (s *Scene) Closed() bool { return s.closed }

// Frames counts completed frames.
func (s *Scene) Frames() uint64 { return s.frames }

func (s *Scene) Field() *field.Field { return s.field }

// Inputs returns a copy of the current inputs.
func (s *Scene) Inputs() field.Inputs { return s.in }

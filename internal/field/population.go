package field

import (
	"math"
	"math/rand"
)

// cloudDivisor sizes the ambient cloud relative to the viewport's short side.
const cloudDivisor = 2.3

// CloudRadius is the radius of the ambient cloud for a w×h viewport.
func CloudRadius(w, h float64) float64 {
	return math.Min(w, h) / cloudDivisor
}

// SampleDisc draws a point uniformly by area from the disc of the given
// radius around (cx, cy). Taking the square root of the radial draw keeps
// the density flat instead of piling up at the centre.
func SampleDisc(rng *rand.Rand, cx, cy, radius float64) (float64, float64) {
	angle := rng.Float64() * 2 * math.Pi
	r := radius * math.Sqrt(rng.Float64())
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

func (f *Field) newParticle() Particle {
	tx, ty := SampleDisc(f.rng, f.width/2, f.height/2, CloudRadius(f.width, f.height))
	return spawn(f.rng, f.width, f.height, tx, ty)
}

// populate discards every particle and spawns n fresh ones.
func (f *Field) populate(n int) {
	if n < 0 {
		n = 0
	}
	f.p = make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		f.p = append(f.p, f.newParticle())
	}
}

// reconcile grows or shrinks the population to in.BallCount. Shrinking
// drops the newest particles.
func (f *Field) reconcile(in *Inputs, host Host) {
	want := in.BallCount
	if want < 0 {
		want = 0
	}
	have := len(f.p)
	if want == have {
		return
	}

	if want > have {
		for i := have; i < want; i++ {
			f.p = append(f.p, f.newParticle())
		}
	} else {
		clear(f.p[want:])
		f.p = f.p[:want]
	}

	if bordered(in) {
		if r, ok := lookup(host); ok {
			f.assignBorder(r, false)
		}
	}
}

// resize rebuilds the population for a new viewport.
func (f *Field) resize(in *Inputs, host Host) {
	f.width, f.height = in.Width, in.Height
	f.populate(in.BallCount)

	if bordered(in) {
		if r, ok := lookup(host); ok {
			f.assignBorder(r, false)
			f.track(r)
		}
	}
}

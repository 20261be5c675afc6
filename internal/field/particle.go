package field

import (
	"math"
	"math/rand"
)

const (
	baseFriction = 0.96
	maxBounces   = 3
	launchSpeed  = 2.0
	minRadius    = 1.0
	radiusSpread = 5.0
)

// Particle is one dot. Radius, Color and the initial target never change
// after spawn.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Radius float64
	Color  Color

	TargetX, TargetY   float64
	InitialX, InitialY float64

	Friction float64

	Bounce      bool
	BouncesLeft int
}

// spawn builds a particle at a random position inside a w×h viewport whose
// home is (tx, ty).
func spawn(rng *rand.Rand, w, h, tx, ty float64) Particle {
	r := minRadius + radiusSpread - rng.Float64()*radiusSpread // (1, 6]
	return Particle{
		X:        rng.Float64()*math.Max(w-r*2, 0) + r,
		Y:        rng.Float64()*math.Max(h-r*2, 0) + r,
		VX:       (rng.Float64() - 0.5) * 2,
		VY:       (rng.Float64() - 0.5) * 2,
		Radius:   r,
		Color:    Color(rng.Intn(len(Palette))),
		TargetX:  tx,
		TargetY:  ty,
		InitialX: tx,
		InitialY: ty,
		Friction: baseFriction,
	}
}

// setTarget moves p's attraction point. With bounce it arms a fresh bounce
// sequence and launches p toward the target; without it the current bounce
// state is kept.
func setTarget(p *Particle, x, y float64, bounce bool) {
	p.TargetX, p.TargetY = x, y
	if !bounce {
		return
	}
	p.Bounce = true
	p.BouncesLeft = maxBounces

	dx, dy := x-p.X, y-p.Y
	if d := math.Hypot(dx, dy); d > 0 {
		p.VX += dx / d * launchSpeed
		p.VY += dy / d * launchSpeed
	}
}

// goHome restores the initial target and drops any bounce sequence.
func goHome(p *Particle) {
	setTarget(p, p.InitialX, p.InitialY, false)
	p.Bounce = false
	p.BouncesLeft = 0
}

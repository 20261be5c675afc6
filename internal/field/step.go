package field

import (
	"math"
	"math/rand"
)

const (
	snapDistance = 2.0
	snapSpeed    = 0.5
	snapDamping  = 0.3

	repelStrength = 2.0

	wiggleAmount = 0.015
	wiggleFloor  = 5.0
	wiggleRamp   = 20.0

	pullBouncing = 0.001
	pullResting  = 0.0005

	nearTarget   = 30.0
	nearFriction = 0.82

	restitution = 0.8

	borderSlack   = 10.0
	parkDistance  = 15.0
	parkDamping   = 0.7
	bounceImpulse = 3.0
	collisionPad  = 2.0

	// A parked particle spends a bounce only if it is still moving
	// across the edge or has nearly reached its target.
	bounceMinSpeed = 0.05
	bounceReach    = 5.0
)

// frameEnv is what every particle sees during one frame.
type frameEnv struct {
	width, height float64

	interactive bool
	px, py      float64
	radius      float64

	rect     Rect
	tracking bool

	rng *rand.Rand
}

// advance moves p by one tick. It reports false when p snapped onto its
// target and skipped the rest of the update.
func advance(p *Particle, env *frameEnv) bool {
	dx, dy := p.TargetX-p.X, p.TargetY-p.Y
	dist := math.Hypot(dx, dy)

	if dist < snapDistance && math.Hypot(p.VX, p.VY) < snapSpeed {
		p.X, p.Y = p.TargetX, p.TargetY
		p.VX *= snapDamping
		p.VY *= snapDamping
		return false
	}

	if env.interactive {
		rx, ry := p.X-env.px, p.Y-env.py
		if d := math.Hypot(rx, ry); d < env.radius {
			force := (env.radius - d) / env.radius
			angle := math.Atan2(ry, rx)
			p.VX += math.Cos(angle) * force * repelStrength
			p.VY += math.Sin(angle) * force * repelStrength
		}
	}

	wiggle := clamp((dist-wiggleFloor)/wiggleRamp, 0, 1)
	p.VX += (env.rng.Float64() - 0.5) * wiggleAmount * wiggle
	p.VY += (env.rng.Float64() - 0.5) * wiggleAmount * wiggle

	pull := pullResting
	if p.Bounce && p.BouncesLeft > 0 {
		pull = pullBouncing
	}
	p.VX += dx * pull
	p.VY += dy * pull

	friction := p.Friction
	if env.tracking && dist < nearTarget {
		friction = nearFriction
	}
	p.VX *= friction
	p.VY *= friction

	p.X += p.VX
	p.Y += p.VY

	bounceViewport(p, env.width, env.height)
	if env.tracking {
		collideRect(p, env.rect, dist)
	}
	return true
}

func bounceViewport(p *Particle, w, h float64) {
	if p.X+p.Radius > w || p.X-p.Radius < 0 {
		p.VX = -p.VX * restitution
		if p.X+p.Radius > w {
			p.X = w - p.Radius
		}
		if p.X-p.Radius < 0 {
			p.X = p.Radius
		}
	}
	if p.Y+p.Radius > h || p.Y-p.Radius < 0 {
		p.VY = -p.VY * restitution
		if p.Y+p.Radius > h {
			p.Y = h - p.Radius
		}
		if p.Y-p.Radius < 0 {
			p.Y = p.Radius
		}
	}
}

type edge uint8

const (
	edgeLeft edge = iota
	edgeRight
	edgeTop
	edgeBottom
)

// nearestEdge picks the rectangle edge closest to (x, y). Ties resolve in
// left, right, top, bottom order.
func nearestEdge(x, y float64, r Rect) edge {
	best, d := edgeLeft, abs(x-r.Left)
	if v := abs(x - r.Right); v < d {
		best, d = edgeRight, v
	}
	if v := abs(y - r.Top); v < d {
		best, d = edgeTop, v
	}
	if v := abs(y - r.Bottom); v < d {
		best = edgeBottom
	}
	return best
}

// parked reports whether p's target sits on r's border.
func parked(p *Particle, r Rect) bool {
	return abs(p.TargetX-r.Left) < borderSlack ||
		abs(p.TargetX-r.Right) < borderSlack ||
		abs(p.TargetY-r.Top) < borderSlack ||
		abs(p.TargetY-r.Bottom) < borderSlack
}

// collideRect treats r as a solid block. dist is p's distance to its target
// at the start of the tick.
func collideRect(p *Particle, r Rect, dist float64) {
	pad := p.Radius + collisionPad
	if p.X+pad <= r.Left || p.X-pad >= r.Right || p.Y+pad <= r.Top || p.Y-pad >= r.Bottom {
		return
	}
	e := nearestEdge(p.X, p.Y, r)

	if parked(p, r) && dist < parkDistance {
		if !p.Bounce || p.BouncesLeft <= 0 {
			p.VX *= parkDamping
			p.VY *= parkDamping
			return
		}
		f := float64(p.BouncesLeft) / maxBounces
		floor := bounceImpulse * f
		if e == edgeLeft || e == edgeRight {
			if abs(p.VX) <= bounceMinSpeed && dist >= bounceReach {
				return
			}
			p.VX = -direction(p.VX, p.X-p.TargetX) * math.Max(abs(p.VX), floor) * f
		} else {
			if abs(p.VY) <= bounceMinSpeed && dist >= bounceReach {
				return
			}
			p.VY = -direction(p.VY, p.Y-p.TargetY) * math.Max(abs(p.VY), floor) * f
		}
		p.BouncesLeft--
		if p.BouncesLeft <= 0 {
			p.BouncesLeft = 0
			p.Bounce = false
		}
		return
	}

	switch e {
	case edgeLeft:
		p.X = r.Left - pad
		p.VX = -abs(p.VX) * restitution
	case edgeRight:
		p.X = r.Right + pad
		p.VX = abs(p.VX) * restitution
	case edgeTop:
		p.Y = r.Top - pad
		p.VY = -abs(p.VY) * restitution
	default:
		p.Y = r.Bottom + pad
		p.VY = abs(p.VY) * restitution
	}
}

// direction is the sign of v, or of offset when v is zero.
func direction(v, offset float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	case offset > 0:
		return 1
	default:
		return -1
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

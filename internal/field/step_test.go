package field

import (
	"math"
	"testing"
)

func TestSnapAndStop(t *testing.T) {
	p := Particle{X: 101, Y: 200.5, VX: 0.2, VY: -0.1, Radius: 2, TargetX: 100, TargetY: 200, Friction: baseFriction}
	env := frameEnv{width: 800, height: 600, rng: testRand()}

	if advance(&p, &env) {
		t.Fatal("expected particle to snap")
	}
	if p.X != p.TargetX || p.Y != p.TargetY {
		t.Errorf("expected exact target (100, 200), got (%v, %v)", p.X, p.Y)
	}
	if math.Abs(p.VX-0.06) > 1e-12 || math.Abs(p.VY+0.03) > 1e-12 {
		t.Errorf("expected velocity damped by 0.3, got (%v, %v)", p.VX, p.VY)
	}
}

func TestNoSnapWhenFast(t *testing.T) {
	p := Particle{X: 101, Y: 200, VX: 2, Radius: 2, TargetX: 100, TargetY: 200, Friction: baseFriction}
	env := frameEnv{width: 800, height: 600, rng: testRand()}

	if !advance(&p, &env) {
		t.Fatal("fast particle should not snap")
	}
}

func TestConvergesToTarget(t *testing.T) {
	in := testInputs(1)
	f := newTestField(&in)
	s := &recorder{}

	p := &f.p[0]
	p.X, p.Y, p.VX, p.VY = 0, 0, 0, 0
	p.TargetX, p.TargetY = 400, 300

	for i := 0; i < 500; i++ {
		f.Frame(&in, nil, s)
	}
	p = &f.p[0]
	if d := math.Hypot(p.X-400, p.Y-300); d > 1 {
		t.Fatalf("expected particle within 1 unit of (400, 300), got distance %f", d)
	}

	for i := 0; i < 200; i++ {
		f.Frame(&in, nil, s)
		p = &f.p[0]
		if d := math.Hypot(p.X-400, p.Y-300); d > 1 {
			t.Fatalf("particle drifted away at rest: distance %f", d)
		}
	}
}

func TestPointerRepulsion(t *testing.T) {
	base := Particle{X: 100, Y: 100, Radius: 2, TargetX: 400, TargetY: 100, Friction: baseFriction}

	near := base
	env := frameEnv{width: 800, height: 600, interactive: true, px: 90, py: 100, radius: 75, rng: testRand()}
	advance(&near, &env)
	if near.VX < 1.5 {
		t.Errorf("expected strong push away from pointer, got vx=%f", near.VX)
	}

	inert := base
	env.interactive = false
	advance(&inert, &env)
	if inert.VX > 0.5 {
		t.Errorf("pointer should be ignored when not interactive, got vx=%f", inert.VX)
	}

	outside := base
	env.interactive = true
	env.px, env.py = Offscreen, Offscreen
	advance(&outside, &env)
	if outside.VX > 0.5 {
		t.Errorf("offscreen pointer should not repel, got vx=%f", outside.VX)
	}
}

func TestViewportBounce(t *testing.T) {
	p := Particle{X: 797, Y: 300, VX: 5, Radius: 2, TargetX: 400, TargetY: 300, Friction: baseFriction}
	env := frameEnv{width: 800, height: 600, rng: testRand()}
	advance(&p, &env)

	if p.X != 798 {
		t.Errorf("expected x clamped to 798, got %f", p.X)
	}
	if p.VX >= 0 {
		t.Errorf("expected reflected velocity, got %f", p.VX)
	}
}

func TestRectPenetrationPushesOut(t *testing.T) {
	r := NewRect(100, 100, 200, 200)
	p := Particle{X: 104, Y: 200, VX: 3, VY: 0.5, Radius: 2, TargetX: 50, TargetY: 500}
	collideRect(&p, r, 300)

	if p.X != r.Left-4 {
		t.Errorf("expected particle pushed to left edge minus padding, got x=%f", p.X)
	}
	if math.Abs(p.VX+2.4) > 1e-9 {
		t.Errorf("expected vx=-2.4, got %f", p.VX)
	}
	if p.VY != 0.5 {
		t.Errorf("vy should be untouched, got %f", p.VY)
	}
}

func TestRectMissLeavesParticle(t *testing.T) {
	r := NewRect(100, 100, 200, 200)
	p := Particle{X: 50, Y: 50, VX: 1, VY: 1, Radius: 2, TargetX: 100, TargetY: 100}
	collideRect(&p, r, 10)
	if p.X != 50 || p.VX != 1 {
		t.Errorf("particle outside the padded rect must not be touched: %+v", p)
	}
}

func TestParkingBounceCountdown(t *testing.T) {
	r := NewRect(100, 100, 200, 200)
	p := Particle{X: 150, Y: 101, VY: 1, Radius: 2, TargetX: 150, TargetY: 100}
	setTarget(&p, 150, 100, true)

	if p.BouncesLeft != 3 || !p.Bounce {
		t.Fatalf("expected armed bounce, got %d/%v", p.BouncesLeft, p.Bounce)
	}

	prev := p.BouncesLeft
	for i := 0; i < 3; i++ {
		p.X, p.Y = 150, 101
		collideRect(&p, r, 1)
		if p.BouncesLeft > prev {
			t.Fatalf("bounce counter increased: %d -> %d", prev, p.BouncesLeft)
		}
		if p.BouncesLeft > 0 && !p.Bounce {
			t.Fatalf("bounce cleared with %d bounces left", p.BouncesLeft)
		}
		prev = p.BouncesLeft
	}
	if p.BouncesLeft != 0 || p.Bounce {
		t.Errorf("expected bounce sequence finished, got %d/%v", p.BouncesLeft, p.Bounce)
	}

	// Settled parking only damps.
	p.X, p.Y, p.VX, p.VY = 150, 101, 1, 1
	collideRect(&p, r, 1)
	if math.Abs(p.VX-0.7) > 1e-12 || math.Abs(p.VY-0.7) > 1e-12 {
		t.Errorf("expected damping to 0.7, got (%f, %f)", p.VX, p.VY)
	}
}

func TestParkingGrazeKeepsBounce(t *testing.T) {
	r := NewRect(100, 100, 200, 200)
	p := Particle{X: 150, Y: 101, Radius: 2}
	setTarget(&p, 150, 100, true)

	// Slow and still 10 units out: nothing to spend.
	p.VX, p.VY = 0, 0.01
	collideRect(&p, r, 10)
	if p.BouncesLeft != 3 || !p.Bounce {
		t.Fatalf("slow graze spent a bounce: %d/%v", p.BouncesLeft, p.Bounce)
	}
	if p.VY != 0.01 {
		t.Errorf("slow graze should leave vy alone, got %f", p.VY)
	}

	// Moving across the edge spends one.
	p.VY = 0.5
	collideRect(&p, r, 10)
	if p.BouncesLeft != 2 {
		t.Errorf("expected one bounce spent, got %d left", p.BouncesLeft)
	}

	// Slow but nearly home spends one too.
	p.X, p.Y, p.VX, p.VY = 150, 101, 0, 0
	collideRect(&p, r, 1)
	if p.BouncesLeft != 1 {
		t.Errorf("expected a bounce spent near the target, got %d left", p.BouncesLeft)
	}
}

func TestSnapKeepsArmedBounce(t *testing.T) {
	r := NewRect(100, 100, 200, 200)
	p := Particle{X: 151, Y: 100, Radius: 2, Friction: baseFriction}
	setTarget(&p, 150, 100, true)
	p.VX, p.VY = 0.1, 0

	env := frameEnv{width: 800, height: 600, rect: r, tracking: true, rng: testRand()}
	if advance(&p, &env) {
		t.Fatal("expected particle to snap onto its border target")
	}
	if p.BouncesLeft != maxBounces || !p.Bounce {
		t.Errorf("snap should skip collision and keep the bounce armed, got %d/%v", p.BouncesLeft, p.Bounce)
	}

	// A passive retrack carries the armed state over.
	setTarget(&p, 160, 100, false)
	if p.BouncesLeft != maxBounces || !p.Bounce {
		t.Errorf("passive retarget dropped the armed bounce: %d/%v", p.BouncesLeft, p.Bounce)
	}
}

func TestSetTargetLaunch(t *testing.T) {
	p := Particle{X: 0, Y: 0}
	setTarget(&p, 30, 40, true)
	if math.Abs(p.VX-1.2) > 1e-12 || math.Abs(p.VY-1.6) > 1e-12 {
		t.Errorf("expected launch of magnitude 2 toward target, got (%f, %f)", p.VX, p.VY)
	}

	q := Particle{X: 0, Y: 0}
	setTarget(&q, 30, 40, false)
	if q.VX != 0 || q.VY != 0 || q.BouncesLeft != 0 || q.Bounce {
		t.Errorf("passive target change must not launch or arm: %+v", q)
	}
	if q.TargetX != 30 || q.TargetY != 40 {
		t.Errorf("target not updated: %+v", q)
	}
}

func TestBounceCounterInvariants(t *testing.T) {
	in := testInputs(40)
	f := newTestField(&in)
	host := &fixedHost{rect: NewRect(300, 200, 200, 200), ok: true}
	s := &recorder{}

	in.Mode = Bordered
	f.Frame(&in, host, s)

	prev := make([]int, f.Len())
	for i, p := range f.Particles() {
		prev[i] = p.BouncesLeft
	}
	for frame := 0; frame < 1500; frame++ {
		f.Frame(&in, host, s)
		for i, p := range f.Particles() {
			if p.BouncesLeft < 0 || p.BouncesLeft > 3 {
				t.Fatalf("particle %d bounce counter out of range: %d", i, p.BouncesLeft)
			}
			if p.BouncesLeft > prev[i] {
				t.Fatalf("particle %d bounce counter increased %d -> %d", i, prev[i], p.BouncesLeft)
			}
			if (p.BouncesLeft > 0) != p.Bounce {
				t.Fatalf("particle %d: bounces=%d but bounce=%v", i, p.BouncesLeft, p.Bounce)
			}
			prev[i] = p.BouncesLeft
		}
	}
}

func TestNeverBouncedStaysZero(t *testing.T) {
	in := testInputs(60)
	in.Interactive = true
	in.PointerX, in.PointerY = 400, 300
	f := newTestField(&in)
	s := &recorder{}

	check := func(stage string) {
		t.Helper()
		for i, p := range f.Particles() {
			if p.BouncesLeft != 0 || p.Bounce {
				t.Fatalf("%s: particle %d has bounce state %d/%v", stage, i, p.BouncesLeft, p.Bounce)
			}
		}
	}

	for i := 0; i < 200; i++ {
		f.Frame(&in, nil, s)
	}
	check("ambient")

	in.BallCount = 120
	f.Frame(&in, nil, s)
	check("grow")

	in.Minimized = true
	f.Frame(&in, nil, s)
	in.Minimized = false
	f.Frame(&in, nil, s)
	check("minimize")

	in.Width = 1024
	f.Frame(&in, nil, s)
	check("resize")
}

func TestEffectiveRadius(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		minimized bool
		want      float64
	}{
		{"ambient uses configured", Ambient, false, 180},
		{"bordered forces fixed", Bordered, false, BorderedRadius},
		{"minimized bordered uses configured", Bordered, true, 180},
		{"minimized ambient uses configured", Ambient, true, 180},
	}

	for _, tt := range tests {
		in := Inputs{Mode: tt.mode, Minimized: tt.minimized, InteractionRadius: 180}
		if got := effectiveRadius(&in); got != tt.want {
			t.Errorf("%s: expected %f, got %f", tt.name, tt.want, got)
		}
	}
}

func TestFrameSkippedWithoutSurface(t *testing.T) {
	in := testInputs(10)
	f := newTestField(&in)
	before := append([]Particle(nil), f.Particles()...)

	in.ScrollImpulse = 3
	if f.Frame(&in, nil, &recorder{blank: true}) {
		t.Fatal("expected frame to be skipped")
	}
	if f.Frame(&in, nil, nil) {
		t.Fatal("expected frame without surface to be skipped")
	}
	if in.ScrollImpulse != 3 {
		t.Errorf("skipped frame consumed the scroll impulse")
	}
	for i, p := range f.Particles() {
		if p != before[i] {
			t.Fatalf("particle %d changed during a skipped frame", i)
		}
	}
}

func TestScrollImpulseConsumed(t *testing.T) {
	in := testInputs(5)
	f := newTestField(&in)
	s := &recorder{}

	in.ScrollImpulse = 10
	if !f.Frame(&in, nil, s) {
		t.Fatal("frame should run")
	}
	if in.ScrollImpulse != 0 {
		t.Errorf("expected impulse consumed, got %f", in.ScrollImpulse)
	}
	if s.discs != 5 {
		t.Errorf("expected 5 discs drawn, got %d", s.discs)
	}
}

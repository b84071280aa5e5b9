package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/molsim/internal/force"
	"github.com/san-kum/molsim/internal/linkedcell"
	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

type constantForce struct {
	f     r3.Vec
	calls int
}

func (c *constantForce) Calculate(ct particle.Container) error {
	c.calls++
	ct.Each(func(p *particle.Particle) { p.F = c.f })
	return nil
}

type failingForce struct{ err error }

func (f failingForce) Calculate(particle.Container) error { return f.err }

func TestStormerVerletFreeParticle(t *testing.T) {
	c := particle.NewDirect()
	c.Add(r3.Vec{X: 1}, r3.Vec{X: 0.5, Y: -1}, 1, 0)

	v := NewStormerVerlet()
	f := &constantForce{}
	if err := v.Init(c, f); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	dt := 0.1
	for i := 0; i < 10; i++ {
		if err := v.Step(c, f, dt); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	p := c.At(0)
	if math.Abs(p.X.X-1.5) > 1e-12 || math.Abs(p.X.Y+1) > 1e-12 {
		t.Errorf("expected position (1.5, -1), got (%.6f, %.6f)", p.X.X, p.X.Y)
	}
	if f.calls != 11 {
		t.Errorf("expected 11 force evaluations, got %d", f.calls)
	}
}

func TestStormerVerletConstantForceIsExact(t *testing.T) {
	c := particle.NewDirect()
	c.Add(r3.Vec{}, r3.Vec{}, 2, 0)

	v := NewStormerVerlet()
	f := &constantForce{f: r3.Vec{Z: 4}}
	if err := v.Init(c, f); err != nil {
		t.Fatal(err)
	}

	dt := 0.01
	steps := 100
	for i := 0; i < steps; i++ {
		if err := v.Step(c, f, dt); err != nil {
			t.Fatal(err)
		}
	}

	tEnd := dt * float64(steps)
	a := 2.0
	p := c.At(0)
	if math.Abs(p.X.Z-0.5*a*tEnd*tEnd) > 1e-9 {
		t.Errorf("expected z=%.6f, got %.6f", 0.5*a*tEnd*tEnd, p.X.Z)
	}
	if math.Abs(p.V.Z-a*tEnd) > 1e-9 {
		t.Errorf("expected vz=%.6f, got %.6f", a*tEnd, p.V.Z)
	}
	if p.OldF != f.f {
		t.Errorf("expected old force %v, got %v", f.f, p.OldF)
	}
}

func TestStormerVerletCircularOrbit(t *testing.T) {
	c := particle.NewDirect()
	c.Add(r3.Vec{}, r3.Vec{}, 1000, 0)
	c.Add(r3.Vec{X: 10}, r3.Vec{Y: 10}, 1e-6, 0)

	e := force.NewEngine(force.Gravity{})
	v := NewStormerVerlet()
	if err := v.Init(c, e); err != nil {
		t.Fatal(err)
	}

	period := 2 * math.Pi
	dt := period / 2000
	for i := 0; i < 2000; i++ {
		if err := v.Step(c, e, dt); err != nil {
			t.Fatal(err)
		}
	}

	sat := c.At(1)
	r := r3.Norm(r3.Sub(sat.X, c.At(0).X))
	if math.Abs(r-10) > 1e-2 {
		t.Errorf("expected orbit radius ~10, got %.6f", r)
	}
	if math.Abs(sat.X.X-10) > 0.1 || math.Abs(sat.X.Y) > 0.5 {
		t.Errorf("expected satellite back near (10, 0), got (%.4f, %.4f)", sat.X.X, sat.X.Y)
	}
}

func TestStormerVerletAppliesBoundaries(t *testing.T) {
	c, err := linkedcell.New(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10}, 2.5,
		linkedcell.UniformBoundaries(linkedcell.Outflow))
	if err != nil {
		t.Fatal(err)
	}
	c.Add(r3.Vec{X: 9.9, Y: 5, Z: 5}, r3.Vec{X: 1}, 1, 0)
	c.Add(r3.Vec{X: 5, Y: 5, Z: 5}, r3.Vec{}, 1, 1)

	v := NewStormerVerlet()
	f := &constantForce{}
	if err := v.Step(c, f, 0.5); err != nil {
		t.Fatal(err)
	}

	if c.Len() != 1 || c.At(0).Type != 1 {
		t.Errorf("expected only particle 1 to remain, got %d particles", c.Len())
	}
	if v.Removed() != 1 {
		t.Errorf("expected 1 removed particle, got %d", v.Removed())
	}
}

func TestStormerVerletPropagatesForceError(t *testing.T) {
	c := particle.NewDirect()
	c.Add(r3.Vec{}, r3.Vec{}, 1, 0)

	boom := errors.New("boom")
	err := NewStormerVerlet().Step(c, failingForce{boom}, 0.1)
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

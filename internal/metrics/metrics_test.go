package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/molsim/internal/particle"
	"github.com/san-kum/molsim/internal/simulation"
	"gonum.org/v1/gonum/spatial/r3"
)

func twoParticles() []particle.Particle {
	return []particle.Particle{
		particle.New(r3.Vec{}, r3.Vec{X: 1}, 2, 0),
		particle.New(r3.Vec{X: 3}, r3.Vec{Y: -2}, 1, 0),
	}
}

func TestKineticEnergy(t *testing.T) {
	ps := twoParticles()
	if e := KineticEnergy(ps); math.Abs(e-3) > 1e-12 {
		t.Errorf("expected kinetic energy 3, got %f", e)
	}
	if e := KineticEnergy(nil); e != 0 {
		t.Errorf("expected 0 for no particles, got %f", e)
	}
}

func TestTemperature(t *testing.T) {
	ps := twoParticles()
	if temp := Temperature(ps, 2); math.Abs(temp-1.5) > 1e-12 {
		t.Errorf("expected temperature 1.5, got %f", temp)
	}
	if temp := Temperature(ps, 3); math.Abs(temp-1) > 1e-12 {
		t.Errorf("expected temperature 1, got %f", temp)
	}
	if temp := Temperature(nil, 3); temp != 0 {
		t.Errorf("expected 0, got %f", temp)
	}
}

func TestMomentumAndCenterOfMass(t *testing.T) {
	ps := twoParticles()
	if p := Momentum(ps); p != (r3.Vec{X: 2, Y: -2}) {
		t.Errorf("expected momentum (2,-2,0), got %v", p)
	}
	if com := CenterOfMass(ps); math.Abs(com.X-1) > 1e-12 {
		t.Errorf("expected center of mass x=1, got %f", com.X)
	}
}

func TestEnergyDrift(t *testing.T) {
	samples := []Sample{{Total: -10}, {Total: -11}, {Total: -9.5}}
	if d := EnergyDrift(samples); math.Abs(d-0.05) > 1e-12 {
		t.Errorf("expected drift 0.05, got %f", d)
	}
	if d := MaxEnergyDrift(samples); math.Abs(d-0.1) > 1e-12 {
		t.Errorf("expected max drift 0.1, got %f", d)
	}
	if d := EnergyDrift(samples[:1]); d != 0 {
		t.Errorf("expected no drift for one sample, got %f", d)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(2, func() (float64, error) { return -4, nil })

	for i, tm := range []float64{0, 0.5} {
		err := r.OnSnapshot(simulation.Snapshot{Iteration: i * 10, Time: tm, Particles: twoParticles()})
		if err != nil {
			t.Fatal(err)
		}
	}

	samples := r.Samples()
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	s := samples[1]
	if s.Iteration != 10 || s.Particles != 2 {
		t.Errorf("unexpected sample header: %+v", s)
	}
	if math.Abs(s.Total-(-1)) > 1e-12 {
		t.Errorf("expected total energy -1, got %f", s.Total)
	}

	last, ok := r.Last()
	if !ok || last.Iteration != 10 {
		t.Errorf("expected last sample at iteration 10, got %+v", last)
	}

	summary := r.Summary()
	if summary["energy_drift"] != 0 {
		t.Errorf("expected zero drift, got %f", summary["energy_drift"])
	}
	if summary["final_temperature"] != 1.5 {
		t.Errorf("expected final temperature 1.5, got %f", summary["final_temperature"])
	}

	r.Reset()
	if _, ok := r.Last(); ok || len(r.Summary()) != 0 {
		t.Error("expected reset to clear samples")
	}
}

func TestRecorderPotentialError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRecorder(3, func() (float64, error) { return 0, boom })
	if err := r.OnSnapshot(simulation.Snapshot{}); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

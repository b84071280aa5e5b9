package simulation

import (
	"time"

	"github.com/san-kum/molsim/internal/integrators"
	"github.com/san-kum/molsim/internal/particle"
)

type Integrator interface {
	Init(c particle.Container, f integrators.ForceCalculator) error
	Step(c particle.Container, f integrators.ForceCalculator, dt float64) error
}

// Snapshot is the particle state after Iteration steps. Observers share
// one copy and must not modify it.
type Snapshot struct {
	Iteration int
	Time      float64
	Particles []particle.Particle
}

type Observer interface {
	OnSnapshot(s Snapshot) error
}

type ObserverFunc func(s Snapshot) error

func (f ObserverFunc) OnSnapshot(s Snapshot) error { return f(s) }

type Config struct {
	Dt             float64
	EndTime        float64
	WriteFrequency int
	ValidateState  bool
}

func DefaultConfig() Config {
	return Config{
		Dt:             0.0005,
		EndTime:        20,
		WriteFrequency: 10,
		ValidateState:  true,
	}
}

type Result struct {
	Iterations int
	Time       float64
	Snapshots  int
	Particles  int
	Removed    int
	// Updates counts particle updates over all steps.
	Updates int64
	Elapsed time.Duration
}

// MUPS is molecule updates per second of wall time.
func (r *Result) MUPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Updates) / r.Elapsed.Seconds()
}

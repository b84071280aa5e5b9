package force

import (
	"math"

	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

// Gravity is Newtonian attraction with G = 1 and no softening.
type Gravity struct{}

func (Gravity) Name() string { return "gravity" }

func (Gravity) Cutoff() float64 { return math.Inf(1) }

func (Gravity) Force(p, q *particle.Particle, d r3.Vec) (r3.Vec, error) {
	r := r3.Norm(d)
	if r == 0 {
		return r3.Vec{}, ErrZeroDistance
	}
	return r3.Scale(p.M*q.M/(r*r*r), d), nil
}

func (Gravity) Potential(p, q *particle.Particle, d r3.Vec) float64 {
	r := r3.Norm(d)
	if r == 0 {
		return math.Inf(-1)
	}
	return -p.M * q.M / r
}

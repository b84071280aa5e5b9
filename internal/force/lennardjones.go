package force

import (
	"math"

	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

// LennardJones is the 12-6 potential truncated at CutoffRadius. A
// non-positive CutoffRadius disables truncation.
type LennardJones struct {
	Epsilon float64
	Sigma   float64

	CutoffRadius float64

	// RepulsionDistance bounds the ghost distance at which reflective walls
	// push back.
	RepulsionDistance float64
}

// NewLennardJones returns a law with the repulsion distance at the potential
// minimum, 2^(1/6) sigma.
func NewLennardJones(epsilon, sigma, cutoff float64) *LennardJones {
	return &LennardJones{
		Epsilon:           epsilon,
		Sigma:             sigma,
		CutoffRadius:      cutoff,
		RepulsionDistance: math.Pow(2, 1.0/6.0) * sigma,
	}
}

func (lj *LennardJones) WithRepulsionDistance(d float64) *LennardJones {
	lj.RepulsionDistance = d
	return lj
}

func (lj *LennardJones) Name() string { return "lennard-jones" }

func (lj *LennardJones) Cutoff() float64 {
	if lj.CutoffRadius <= 0 {
		return math.Inf(1)
	}
	return lj.CutoffRadius
}

func (lj *LennardJones) Force(p, q *particle.Particle, d r3.Vec) (r3.Vec, error) {
	r := r3.Norm(d)
	if r == 0 {
		return r3.Vec{}, ErrZeroDistance
	}
	if r >= lj.Cutoff() {
		return r3.Vec{}, nil
	}
	return lj.force(d, r), nil
}

// force is 24 eps / r^2 (s^6/r^6 - 2 s^12/r^12) d.
func (lj *LennardJones) force(d r3.Vec, r float64) r3.Vec {
	r2 := r * r
	s2 := lj.Sigma * lj.Sigma / r2
	s6 := s2 * s2 * s2
	return r3.Scale(24*lj.Epsilon/r2*(s6-2*s6*s6), d)
}

func (lj *LennardJones) Potential(p, q *particle.Particle, d r3.Vec) float64 {
	r := r3.Norm(d)
	if r == 0 {
		return math.Inf(1)
	}
	if r >= lj.Cutoff() {
		return 0
	}
	s2 := lj.Sigma * lj.Sigma / (r * r)
	s6 := s2 * s2 * s2
	return 4 * lj.Epsilon * (s6*s6 - s6)
}

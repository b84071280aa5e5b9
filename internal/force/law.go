package force

import (
	"math"

	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

// Law is a pair interaction. d is the separation x_q - x_p and the returned
// force acts on p; q receives its negation.
type Law interface {
	Name() string
	// Cutoff is the interaction range; +Inf for long-range laws.
	Cutoff() float64
	Force(p, q *particle.Particle, d r3.Vec) (r3.Vec, error)
	Potential(p, q *particle.Particle, d r3.Vec) float64
}

func finite(cutoff float64) bool {
	return !math.IsInf(cutoff, 0) && !math.IsNaN(cutoff)
}

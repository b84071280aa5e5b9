package particle

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Particle is a point mass with its kinematic state. F holds the force of
// the current step and OldF the force of the previous one.
type Particle struct {
	X    r3.Vec
	V    r3.Vec
	F    r3.Vec
	OldF r3.Vec
	M    float64
	Type int
}

func New(x, v r3.Vec, m float64, typ int) Particle {
	return Particle{X: x, V: v, M: m, Type: typ}
}

func (p Particle) String() string {
	return fmt.Sprintf("Particle: X:%s v:%s f:%s old_f:%s type:%d",
		formatVec(p.X), formatVec(p.V), formatVec(p.F), formatVec(p.OldF), p.Type)
}

func formatVec(v r3.Vec) string {
	return fmt.Sprintf("[%g, %g, %g]", v.X, v.Y, v.Z)
}

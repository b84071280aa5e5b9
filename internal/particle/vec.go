package particle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Component returns the axis-th coordinate of v (0=x, 1=y, 2=z).
func Component(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns v with the axis-th coordinate replaced by val.
func WithComponent(v r3.Vec, axis int, val float64) r3.Vec {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
	return v
}

func IsFinite(v r3.Vec) bool {
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

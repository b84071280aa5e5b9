package metrics

import (
	"math"

	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// KineticEnergy is the sum of m v²/2.
func KineticEnergy(ps []particle.Particle) float64 {
	terms := make([]float64, len(ps))
	for i, p := range ps {
		terms[i] = 0.5 * p.M * r3.Norm2(p.V)
	}
	return floats.Sum(terms)
}

// Temperature is 2 E_kin / (dims N) with k_B = 1.
func Temperature(ps []particle.Particle, dims int) float64 {
	if len(ps) == 0 || dims <= 0 {
		return 0
	}
	return 2 * KineticEnergy(ps) / (float64(dims) * float64(len(ps)))
}

func Momentum(ps []particle.Particle) r3.Vec {
	var sum r3.Vec
	for _, p := range ps {
		sum = r3.Add(sum, r3.Scale(p.M, p.V))
	}
	return sum
}

// CenterOfMass is the mass-weighted mean position.
func CenterOfMass(ps []particle.Particle) r3.Vec {
	if len(ps) == 0 {
		return r3.Vec{}
	}
	xs := make([]float64, len(ps))
	ys := make([]float64, len(ps))
	zs := make([]float64, len(ps))
	ms := make([]float64, len(ps))
	for i, p := range ps {
		xs[i], ys[i], zs[i], ms[i] = p.X.X, p.X.Y, p.X.Z, p.M
	}
	return r3.Vec{X: stat.Mean(xs, ms), Y: stat.Mean(ys, ms), Z: stat.Mean(zs, ms)}
}

// EnergyDrift is the relative change of total energy between the first and
// last sample.
func EnergyDrift(samples []Sample) float64 {
	if len(samples) < 2 {
		return 0
	}
	e0 := samples[0].Total
	if e0 == 0 {
		return 0
	}
	return math.Abs(samples[len(samples)-1].Total-e0) / math.Abs(e0)
}

// MaxEnergyDrift is the largest relative deviation from the first sample.
func MaxEnergyDrift(samples []Sample) float64 {
	if len(samples) < 2 || samples[0].Total == 0 {
		return 0
	}
	e0 := samples[0].Total
	drift := make([]float64, len(samples))
	for i, s := range samples {
		drift[i] = math.Abs(s.Total-e0) / math.Abs(e0)
	}
	return floats.Max(drift)
}

package analysis

import (
	"errors"

	"github.com/san-kum/molsim/internal/metrics"
	"gonum.org/v1/gonum/stat"
)

var ErrTooFewSamples = errors.New("analysis: need at least two samples")

type Report struct {
	Samples           int
	Interval          float64
	MeanTotal         float64
	StdTotal          float64
	Drift             float64
	MaxDrift          float64
	MeanTemperature   float64
	StdTemperature    float64
	DominantFrequency float64
	DominantPower     float64
}

// Analyze summarizes a run's energy samples. Samples are assumed to be
// evenly spaced in time.
func Analyze(samples []metrics.Sample) (*Report, error) {
	if len(samples) < 2 {
		return nil, ErrTooFewSamples
	}

	totals := make([]float64, len(samples))
	temps := make([]float64, len(samples))
	for i, s := range samples {
		totals[i] = s.Total
		temps[i] = s.Temperature
	}

	r := &Report{
		Samples:  len(samples),
		Interval: samples[1].Time - samples[0].Time,
		Drift:    metrics.EnergyDrift(samples),
		MaxDrift: metrics.MaxEnergyDrift(samples),
	}
	r.MeanTotal, r.StdTotal = stat.MeanStdDev(totals, nil)
	r.MeanTemperature, r.StdTemperature = stat.MeanStdDev(temps, nil)
	r.DominantFrequency, r.DominantPower = PowerSpectrum(totals, r.Interval).Dominant()
	return r, nil
}

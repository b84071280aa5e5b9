package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

type Spectrum struct {
	Frequencies []float64
	Power       []float64
}

// PowerSpectrum returns the one-sided spectrum of series sampled every dt.
// The mean is removed first so bin 0 only carries residual offset.
func PowerSpectrum(series []float64, dt float64) Spectrum {
	n := len(series)
	if n == 0 || dt <= 0 {
		return Spectrum{}
	}

	mean := stat.Mean(series, nil)
	detrended := make([]float64, n)
	for i, v := range series {
		detrended[i] = v - mean
	}

	coeffs := fft.FFTReal(detrended)
	bins := n/2 + 1
	s := Spectrum{
		Frequencies: make([]float64, bins),
		Power:       make([]float64, bins),
	}
	for k := 0; k < bins; k++ {
		a := cmplx.Abs(coeffs[k])
		s.Frequencies[k] = float64(k) / (float64(n) * dt)
		s.Power[k] = a * a / float64(n)
	}
	return s
}

// Dominant returns the strongest non-zero frequency.
func (s Spectrum) Dominant() (freq, power float64) {
	for k := 1; k < len(s.Power); k++ {
		if s.Power[k] > power {
			freq, power = s.Frequencies[k], s.Power[k]
		}
	}
	return freq, power
}

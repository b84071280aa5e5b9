package metrics

import (
	"sync"

	"github.com/san-kum/molsim/internal/simulation"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

type Sample struct {
	Iteration   int     `json:"iteration"`
	Time        float64 `json:"time"`
	Particles   int     `json:"particles"`
	Kinetic     float64 `json:"kinetic"`
	Potential   float64 `json:"potential"`
	Total       float64 `json:"total"`
	Temperature float64 `json:"temperature"`
	Momentum    r3.Vec  `json:"momentum"`
}

// PotentialFunc returns the potential energy of the live container.
type PotentialFunc func() (float64, error)

// Recorder turns snapshots into energy samples.
type Recorder struct {
	mu        sync.Mutex
	dims      int
	potential PotentialFunc
	samples   []Sample
}

// NewRecorder returns a recorder for a system with dims free axes.
// potential may be nil, in which case only kinetic terms are recorded.
func NewRecorder(dims int, potential PotentialFunc) *Recorder {
	return &Recorder{dims: dims, potential: potential}
}

func (r *Recorder) OnSnapshot(s simulation.Snapshot) error {
	sample := Sample{
		Iteration:   s.Iteration,
		Time:        s.Time,
		Particles:   len(s.Particles),
		Kinetic:     KineticEnergy(s.Particles),
		Temperature: Temperature(s.Particles, r.dims),
		Momentum:    Momentum(s.Particles),
	}
	if r.potential != nil {
		u, err := r.potential()
		if err != nil {
			return err
		}
		sample.Potential = u
	}
	sample.Total = sample.Kinetic + sample.Potential

	r.mu.Lock()
	r.samples = append(r.samples, sample)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sample(nil), r.samples...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.samples = nil
	r.mu.Unlock()
}

// Summary condenses the recorded samples into named scalars.
func (r *Recorder) Summary() map[string]float64 {
	samples := r.Samples()
	out := map[string]float64{}
	if len(samples) == 0 {
		return out
	}

	temps := make([]float64, len(samples))
	for i, s := range samples {
		temps[i] = s.Temperature
	}
	last := samples[len(samples)-1]

	out["energy_drift"] = EnergyDrift(samples)
	out["max_energy_drift"] = MaxEnergyDrift(samples)
	out["final_total_energy"] = last.Total
	out["final_temperature"] = last.Temperature
	out["mean_temperature"] = stat.Mean(temps, nil)
	out["final_particles"] = float64(last.Particles)
	out["final_momentum"] = r3.Norm(last.Momentum)
	return out
}

// Last returns the most recent sample.
func (r *Recorder) Last() (Sample, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.samples) == 0 {
		return Sample{}, false
	}
	return r.samples[len(r.samples)-1], true
}

package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/molsim/internal/integrators"
	"github.com/san-kum/molsim/internal/particle"
	"github.com/sirupsen/logrus"
)

type Simulator struct {
	container  particle.Container
	integrator Integrator
	forces     integrators.ForceCalculator
	observers  []Observer
	log        logrus.FieldLogger
}

func New(c particle.Container, integrator Integrator, forces integrators.ForceCalculator) *Simulator {
	return &Simulator{
		container:  c,
		integrator: integrator,
		forces:     forces,
		observers:  make([]Observer, 0),
		log:        logrus.StandardLogger(),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l logrus.FieldLogger) { s.log = l }

func (s *Simulator) Container() particle.Container { return s.container }

// Run integrates until cfg.EndTime. Cancellation is checked between steps;
// on cancellation the partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.validateMasses(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{Particles: s.container.Len()}
	defer func() { result.Elapsed = time.Since(start) }()

	if err := s.integrator.Init(s.container, s.forces); err != nil {
		return result, s.fail(0, 0, err)
	}
	if err := s.notify(0, 0, result); err != nil {
		return result, err
	}

	s.log.WithFields(logrus.Fields{
		"particles": s.container.Len(),
		"dt":        cfg.Dt,
		"t_end":     cfg.EndTime,
	}).Info("simulation started")

	iteration := 0
	t := 0.0
	for t < cfg.EndTime {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		before := s.container.Len()
		if err := s.integrator.Step(s.container, s.forces, cfg.Dt); err != nil {
			return result, s.fail(iteration+1, t+cfg.Dt, err)
		}
		iteration++
		t = float64(iteration) * cfg.Dt

		n := s.container.Len()
		result.Iterations = iteration
		result.Time = t
		result.Particles = n
		result.Removed += before - n
		result.Updates += int64(n)

		if cfg.ValidateState && !stateValid(s.container) {
			return result, s.fail(iteration, t, ErrInvalidState)
		}

		if iteration%cfg.WriteFrequency == 0 {
			if err := s.notify(iteration, t, result); err != nil {
				return result, err
			}
		}
	}

	s.log.WithFields(logrus.Fields{
		"iterations": result.Iterations,
		"particles":  result.Particles,
		"removed":    result.Removed,
		"elapsed":    time.Since(start).Round(time.Millisecond),
	}).Info("simulation finished")

	return result, nil
}

func (s *Simulator) notify(iteration int, t float64, result *Result) error {
	if len(s.observers) == 0 {
		return nil
	}
	snap := Snapshot{Iteration: iteration, Time: t, Particles: particle.Snapshot(s.container)}
	for _, o := range s.observers {
		if err := o.OnSnapshot(snap); err != nil {
			return fmt.Errorf("observer at iteration %d: %w", iteration, err)
		}
	}
	result.Snapshots++
	s.log.WithFields(logrus.Fields{"step": iteration, "time": t}).Debug("snapshot")
	return nil
}

func (s *Simulator) fail(step int, t float64, err error) error {
	s.log.WithError(err).WithFields(logrus.Fields{"step": step, "time": t}).Error("simulation aborted")
	return &SimulationError{Step: step, Time: t, Wrapped: err}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.EndTime < 0 {
		return fmt.Errorf("end time must not be negative, got %f", cfg.EndTime)
	}
	if cfg.WriteFrequency <= 0 {
		return fmt.Errorf("write frequency must be positive, got %d", cfg.WriteFrequency)
	}
	return nil
}

func (s *Simulator) validateMasses() error {
	for i, p := range s.container.Particles() {
		if !(p.M > 0) {
			return fmt.Errorf("particle %d has mass %g: %w", i, p.M, ErrInvalidMass)
		}
	}
	return nil
}

func stateValid(c particle.Container) bool {
	for _, p := range c.Particles() {
		if !particle.IsFinite(p.X) || !particle.IsFinite(p.V) {
			return false
		}
	}
	return true
}

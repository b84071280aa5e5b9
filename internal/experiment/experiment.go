// Package experiment assembles a runnable simulation from a configuration:
// container, particle population, force law, engine, integrator, simulator
// and the energy recorder.
package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/molsim/internal/config"
	"github.com/san-kum/molsim/internal/force"
	"github.com/san-kum/molsim/internal/generator"
	"github.com/san-kum/molsim/internal/integrators"
	"github.com/san-kum/molsim/internal/linkedcell"
	"github.com/san-kum/molsim/internal/metrics"
	"github.com/san-kum/molsim/internal/particle"
	"github.com/san-kum/molsim/internal/simulation"
	"github.com/san-kum/molsim/internal/storage"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"
)

type Experiment struct {
	cfg        *config.Config
	container  particle.Container
	engine     *force.Engine
	integrator *integrators.StormerVerlet
	simulator  *simulation.Simulator
	recorder   *metrics.Recorder
	noRecorder bool
	log        logrus.FieldLogger
}

type Option func(*Experiment)

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Experiment) { e.log = l }
}

// WithoutRecorder leaves out the energy recorder, so no potential energy is
// evaluated per snapshot. Recorder returns nil and Metadata carries no
// metrics.
func WithoutRecorder() Option {
	return func(e *Experiment) { e.noRecorder = true }
}

// Build validates cfg and wires every component. The container is fully
// populated when Build returns; no forces have been computed yet.
func Build(cfg *config.Config, opts ...Option) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Experiment{cfg: cfg, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(e)
	}

	c, err := newContainer(cfg)
	if err != nil {
		return nil, err
	}
	e.container = c
	e.populate()

	strategy, err := cfg.Simulation.Strategy()
	if err != nil {
		return nil, err
	}
	engineOpts := []force.Option{force.WithStrategy(strategy), force.WithLogger(e.log)}
	if cfg.Simulation.Workers > 0 {
		engineOpts = append(engineOpts, force.WithWorkers(cfg.Simulation.Workers))
	}
	e.engine = force.NewEngine(newLaw(cfg.Simulation), engineOpts...)

	e.integrator = integrators.NewStormerVerlet()
	e.simulator = simulation.New(e.container, e.integrator, e.engine)
	e.simulator.SetLogger(e.log)

	if !e.noRecorder {
		e.recorder = metrics.NewRecorder(cfg.Simulation.BrownianDims, func() (float64, error) {
			return e.engine.PotentialEnergy(e.container)
		})
		e.simulator.AddObserver(e.recorder)
	}

	e.log.WithFields(logrus.Fields{
		"particles": e.container.Len(),
		"container": cfg.Simulation.Container,
		"force":     cfg.Simulation.Force,
		"traversal": e.engine.Traversal(e.container),
		"strategy":  strategy,
	}).Info("experiment assembled")
	return e, nil
}

func newContainer(cfg *config.Config) (particle.Container, error) {
	switch cfg.Simulation.Container {
	case config.ContainerDirect:
		return particle.NewDirectWithCapacity(cfg.NumParticles()), nil
	default:
		bounds, err := cfg.Domain.Boundaries()
		if err != nil {
			return nil, err
		}
		lc, err := linkedcell.New(vec(cfg.Domain.Origin), vec(cfg.Domain.Size), cfg.Simulation.CutoffRadius, bounds)
		if err != nil {
			return nil, fmt.Errorf("linked-cell container: %w", err)
		}
		return lc, nil
	}
}

func newLaw(s config.SimulationConfig) force.Law {
	if s.Force == config.ForceGravity {
		return force.Gravity{}
	}
	lj := force.NewLennardJones(s.Epsilon, s.Sigma, s.CutoffRadius)
	if s.RepulsionDistance > 0 {
		lj = lj.WithRepulsionDistance(s.RepulsionDistance)
	}
	return lj
}

func (e *Experiment) populate() {
	g := generator.NewSeeded(e.cfg.Simulation.Seed, e.cfg.Simulation.BrownianDims)
	for _, cu := range e.cfg.Cuboids {
		g.Cuboid(e.container, generator.Cuboid{
			Origin:       vec(cu.Position),
			Velocity:     vec(cu.Velocity),
			N:            cu.Dimensions,
			H:            cu.MeshWidth,
			Mass:         cu.Mass,
			MeanVelocity: cu.MeanVelocity,
			Type:         cu.Type,
		})
	}
	for _, d := range e.cfg.Discs {
		g.Disc(e.container, generator.Disc{
			Center:       vec(d.Center),
			Velocity:     vec(d.Velocity),
			Radius:       d.Radius,
			H:            d.MeshWidth,
			Mass:         d.Mass,
			MeanVelocity: d.MeanVelocity,
			Type:         d.Type,
		})
	}
}

func vec(a [3]float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }

func (e *Experiment) Config() *config.Config                 { return e.cfg }
func (e *Experiment) Container() particle.Container          { return e.container }
func (e *Experiment) Engine() *force.Engine                  { return e.engine }
func (e *Experiment) Simulator() *simulation.Simulator       { return e.simulator }
func (e *Experiment) Recorder() *metrics.Recorder            { return e.recorder }
func (e *Experiment) Integrator() *integrators.StormerVerlet { return e.integrator }

func (e *Experiment) AddObserver(o simulation.Observer) { e.simulator.AddObserver(o) }

func (e *Experiment) SimulationConfig() simulation.Config {
	return simulation.Config{
		Dt:             e.cfg.Simulation.DeltaT,
		EndTime:        e.cfg.Simulation.TEnd,
		WriteFrequency: e.cfg.Output.WriteFrequency,
		ValidateState:  true,
	}
}

func (e *Experiment) Run(ctx context.Context) (*simulation.Result, error) {
	return e.simulator.Run(ctx, e.SimulationConfig())
}

// Bounds is the drawing window for live views: the domain for linked-cell
// runs, nothing for direct runs.
func (e *Experiment) Bounds() (origin, extent r3.Vec) {
	if lc, ok := e.container.(*linkedcell.Container); ok {
		return lc.Origin(), lc.Extent()
	}
	return r3.Vec{}, r3.Vec{}
}

// Metadata describes a finished run for the store.
func (e *Experiment) Metadata(runID string, res *simulation.Result) storage.RunMetadata {
	s := e.cfg.Simulation
	meta := storage.RunMetadata{
		ID:        runID,
		Name:      e.cfg.Output.BaseName,
		Timestamp: time.Now(),
		Seed:      s.Seed,
		Dt:        s.DeltaT,
		TEnd:      s.TEnd,
		Force:     s.Force,
		Container: s.Container,
		Strategy:  e.engine.Strategy().String(),
		Workers:   e.engine.Workers(),
		Metrics:   map[string]float64{},
	}
	if e.recorder != nil {
		meta.Metrics = e.recorder.Summary()
	}
	if res != nil {
		meta.Iterations = res.Iterations
		meta.Particles = res.Particles
		meta.Removed = res.Removed
		meta.Elapsed = res.Elapsed.Seconds()
		meta.MUPS = res.MUPS()
	}
	return meta
}

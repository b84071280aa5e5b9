package simulation_test

import (
	"context"
	"errors"
	"io"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/molsim/internal/integrators"
	"github.com/san-kum/molsim/internal/particle"
	"github.com/san-kum/molsim/internal/simulation"
)

// driftIntegrator moves every particle by v*dt and can be told to fail.
type driftIntegrator struct {
	inits  int
	steps  int
	failAt int
	err    error
	after  func(c particle.Container)
}

func (d *driftIntegrator) Init(c particle.Container, f integrators.ForceCalculator) error {
	d.inits++
	return f.Calculate(c)
}

func (d *driftIntegrator) Step(c particle.Container, f integrators.ForceCalculator, dt float64) error {
	d.steps++
	if d.failAt > 0 && d.steps == d.failAt {
		return d.err
	}
	integrators.CalculateX(c, dt)
	if d.after != nil {
		d.after(c)
	}
	return f.Calculate(c)
}

type noForce struct{}

func (noForce) Calculate(particle.Container) error { return nil }

type recorder struct {
	snaps []simulation.Snapshot
}

func (r *recorder) OnSnapshot(s simulation.Snapshot) error {
	r.snaps = append(r.snaps, s)
	return nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var _ = Describe("Simulator", func() {
	var (
		c     *particle.Direct
		integ *driftIntegrator
		sim   *simulation.Simulator
		rec   *recorder
		cfg   simulation.Config
	)

	BeforeEach(func() {
		c = particle.NewDirect()
		c.Add(r3.Vec{}, r3.Vec{X: 1}, 1, 0)
		c.Add(r3.Vec{Y: 1}, r3.Vec{}, 2, 1)

		integ = &driftIntegrator{}
		sim = simulation.New(c, integ, noForce{})
		sim.SetLogger(quietLogger())
		rec = &recorder{}
		sim.AddObserver(rec)

		cfg = simulation.Config{Dt: 0.25, EndTime: 2.5, WriteFrequency: 2, ValidateState: true}
	})

	It("steps until the end time", func() {
		result, err := sim.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(integ.inits).To(Equal(1))
		Expect(result.Iterations).To(Equal(10))
		Expect(result.Time).To(BeNumerically("~", 2.5, 1e-12))
		Expect(result.Updates).To(Equal(int64(20)))
		Expect(c.At(0).X.X).To(BeNumerically("~", 2.5, 1e-12))
	})

	It("hands snapshots to observers every write frequency iterations", func() {
		result, err := sim.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		iterations := make([]int, 0, len(rec.snaps))
		for _, s := range rec.snaps {
			iterations = append(iterations, s.Iteration)
		}
		Expect(iterations).To(Equal([]int{0, 2, 4, 6, 8, 10}))
		Expect(result.Snapshots).To(Equal(6))
		Expect(rec.snaps[1].Time).To(BeNumerically("~", 0.5, 1e-12))
		Expect(rec.snaps[1].Particles[0].X.X).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("takes snapshots as deep copies", func() {
		_, err := sim.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.snaps[0].Particles[0].X.X).To(Equal(0.0))
	})

	It("performs no steps for a zero end time", func() {
		cfg.EndTime = 0
		result, err := sim.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Iterations).To(Equal(0))
		Expect(integ.steps).To(Equal(0))
		Expect(c.At(0).X).To(Equal(r3.Vec{}))
		Expect(rec.snaps).To(HaveLen(1))
	})

	DescribeTable("rejects invalid configuration",
		func(mutate func(*simulation.Config)) {
			mutate(&cfg)
			_, err := sim.Run(context.Background(), cfg)
			Expect(err).To(HaveOccurred())
			Expect(integ.inits).To(Equal(0))
		},
		Entry("zero dt", func(c *simulation.Config) { c.Dt = 0 }),
		Entry("negative dt", func(c *simulation.Config) { c.Dt = -0.1 }),
		Entry("negative end time", func(c *simulation.Config) { c.EndTime = -1 }),
		Entry("zero write frequency", func(c *simulation.Config) { c.WriteFrequency = 0 }),
	)

	DescribeTable("rejects non-positive masses before any step",
		func(m float64) {
			c.Add(r3.Vec{Z: 3}, r3.Vec{}, m, 0)
			_, err := sim.Run(context.Background(), cfg)
			Expect(err).To(MatchError(simulation.ErrInvalidMass))
			Expect(integ.inits).To(Equal(0))
		},
		Entry("zero", 0.0),
		Entry("negative", -1.0),
		Entry("nan", math.NaN()),
	)

	It("wraps step failures with the step and time", func() {
		boom := errors.New("boom")
		integ.failAt = 3
		integ.err = boom

		result, err := sim.Run(context.Background(), cfg)
		Expect(err).To(MatchError(boom))

		var simErr *simulation.SimulationError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Step).To(Equal(3))
		Expect(simErr.Time).To(BeNumerically("~", 0.75, 1e-12))
		Expect(simErr.Error()).To(ContainSubstring("step 3"))
		Expect(result.Iterations).To(Equal(2))
	})

	It("detects non-finite state", func() {
		integ.after = func(c particle.Container) {
			if integ.steps == 4 {
				c.At(1).X = r3.Vec{X: math.Inf(1)}
			}
		}
		_, err := sim.Run(context.Background(), cfg)
		Expect(err).To(MatchError(simulation.ErrInvalidState))
	})

	It("counts particles removed during a step", func() {
		integ.after = func(c particle.Container) {
			if integ.steps == 1 {
				c.Remove(0)
			}
		}
		result, err := sim.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Removed).To(Equal(1))
		Expect(result.Particles).To(Equal(1))
	})

	It("stops between steps when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		sim.AddObserver(simulation.ObserverFunc(func(s simulation.Snapshot) error {
			if s.Iteration == 4 {
				cancel()
			}
			return nil
		}))

		result, err := sim.Run(ctx, cfg)
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Iterations).To(Equal(4))
	})

	It("aborts when an observer fails", func() {
		sim.AddObserver(simulation.ObserverFunc(func(s simulation.Snapshot) error {
			if s.Iteration == 2 {
				return io.ErrShortWrite
			}
			return nil
		}))

		_, err := sim.Run(context.Background(), cfg)
		Expect(err).To(MatchError(io.ErrShortWrite))
	})

	It("reports molecule updates per second", func() {
		result, err := sim.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Elapsed).To(BeNumerically(">", 0))
		Expect(result.MUPS()).To(BeNumerically(">", 0))
	})
})

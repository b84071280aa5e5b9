package experiment_test

import (
	"context"
	"io"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/molsim/internal/config"
	"github.com/san-kum/molsim/internal/experiment"
	"github.com/san-kum/molsim/internal/force"
	"github.com/san-kum/molsim/internal/linkedcell"
	"github.com/san-kum/molsim/internal/metrics"
)

func quiet() experiment.Option {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return experiment.WithLogger(l)
}

func singleParticle(pos, vel [3]float64) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Domain.Size = [3]float64{10, 10, 1}
	cfg.Cuboids = []config.CuboidConfig{
		{Position: pos, Velocity: vel, Dimensions: [3]int{1, 1, 1}, MeshWidth: 1, Mass: 1},
	}
	return cfg
}

var _ = Describe("Experiment", func() {
	Describe("legacy cuboid input", func() {
		var exp *experiment.Experiment

		BeforeEach(func() {
			cfg, err := experiment.LoadConfig(experiment.Source{Legacy: "testdata/cuboid-test.txt"})
			Expect(err).NotTo(HaveOccurred())
			cfg.Simulation.TEnd = 0

			exp, err = experiment.Build(cfg, quiet())
			Expect(err).NotTo(HaveOccurred())
		})

		It("generates both cuboids", func() {
			Expect(exp.Container().Len()).To(Equal(384))
			Expect(exp.Engine().Traversal(exp.Container())).To(Equal(force.TraversalCells))
		})

		It("leaves the lattice in place when no step is taken", func() {
			res, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Iterations).To(Equal(0))
			Expect(res.Snapshots).To(Equal(1))

			ps := exp.Container().Particles()
			Expect(ps[0].X).To(Equal(r3.Vec{}))
			Expect(ps[1].X.X).To(Equal(0.0))
			Expect(ps[1].X.Y).To(BeNumerically("~", 1.1225, 1e-12))
			Expect(ps[1].X.Z).To(Equal(0.0))

			Expect(exp.Recorder().Samples()).To(HaveLen(1))
		})

		It("describes the run for the store", func() {
			res, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			meta := exp.Metadata("MD_1", res)
			Expect(meta.ID).To(Equal("MD_1"))
			Expect(meta.Name).To(Equal(config.DefaultBaseName))
			Expect(meta.Particles).To(Equal(384))
			Expect(meta.Strategy).To(Equal("serial"))
			Expect(meta.Metrics).To(HaveKey("final_temperature"))
		})
	})

	Describe("without a recorder", func() {
		It("runs and stores a run with no metrics", func() {
			cfg := singleParticle([3]float64{5, 5, 0.5}, [3]float64{1, 0, 0})
			cfg.Simulation.TEnd = 10 * cfg.Simulation.DeltaT

			exp, err := experiment.Build(cfg, quiet(), experiment.WithoutRecorder())
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.Recorder()).To(BeNil())

			res, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Particles).To(Equal(1))

			meta := exp.Metadata("MD_2", res)
			Expect(meta.Particles).To(Equal(1))
			Expect(meta.Metrics).NotTo(BeNil())
			Expect(meta.Metrics).To(BeEmpty())
		})
	})

	Describe("presets", func() {
		It("builds the collision scenario on linked cells", func() {
			cfg, err := experiment.LoadConfig(experiment.Source{Preset: "collision"})
			Expect(err).NotTo(HaveOccurred())
			exp, err := experiment.Build(cfg, quiet())
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.Container().Len()).To(Equal(2400))

			origin, extent := exp.Bounds()
			Expect(origin).To(Equal(r3.Vec{}))
			Expect(extent).To(Equal(r3.Vec{X: 180, Y: 90, Z: 1}))
		})

		It("builds the orbit scenario on a direct container", func() {
			cfg, err := experiment.LoadConfig(experiment.Source{Preset: "orbit"})
			Expect(err).NotTo(HaveOccurred())
			exp, err := experiment.Build(cfg, quiet())
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.Container().Len()).To(Equal(4))
			Expect(exp.Engine().Traversal(exp.Container())).To(Equal(force.TraversalAllPairs))

			_, extent := exp.Bounds()
			Expect(extent).To(Equal(r3.Vec{}))
		})

		It("rejects unknown presets", func() {
			_, err := experiment.LoadConfig(experiment.Source{Preset: "nope"})
			Expect(err).To(HaveOccurred())
		})
	})

	It("rejects invalid configurations before building", func() {
		cfg := config.DefaultConfig()
		cfg.Output.WriteFrequency = 0
		_, err := experiment.Build(cfg, quiet())
		Expect(err).To(MatchError(config.ErrInvalidConfig))
	})

	It("reports invalid domains from the linked-cell container", func() {
		cfg := config.DefaultConfig()
		cfg.Simulation.CutoffRadius = 0
		_, err := experiment.Build(cfg, quiet())
		Expect(err).To(HaveOccurred())
	})

	Describe("boundaries", func() {
		It("bounces a particle off a reflective floor", func() {
			cfg := singleParticle([3]float64{5, 1.5, 0}, [3]float64{0, -1, 0})
			cfg.Domain.Boundary = []string{"outflow", "outflow", "reflective", "outflow", "outflow", "outflow"}
			cfg.Simulation.TEnd = 2
			cfg.Simulation.DeltaT = 0.0005

			exp, err := experiment.Build(cfg, quiet())
			Expect(err).NotTo(HaveOccurred())
			res, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Removed).To(Equal(0))

			p := exp.Container().At(0)
			Expect(p.V.Y).To(BeNumerically(">", 0.9))
			Expect(p.X.Y).To(BeNumerically(">", 0))
		})

		It("drops a particle through an outflow face", func() {
			cfg := singleParticle([3]float64{9.5, 5, 0}, [3]float64{1, 0, 0})
			cfg.Simulation.TEnd = 1
			cfg.Simulation.DeltaT = 0.001

			exp, err := experiment.Build(cfg, quiet())
			Expect(err).NotTo(HaveOccurred())
			res, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Removed).To(Equal(1))
			Expect(exp.Container().Len()).To(Equal(0))
		})

		It("wraps a particle across a periodic axis", func() {
			cfg := singleParticle([3]float64{9.5, 5, 0}, [3]float64{1, 0, 0})
			cfg.Domain.Boundary = []string{"periodic", "periodic", "outflow", "outflow", "outflow", "outflow"}
			cfg.Simulation.TEnd = 1
			cfg.Simulation.DeltaT = 0.001

			exp, err := experiment.Build(cfg, quiet())
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.Container().(*linkedcell.Container).Boundaries().Periodic(0)).To(BeTrue())

			_, err = exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.Container().Len()).To(Equal(1))
			Expect(exp.Container().At(0).X.X).To(BeNumerically("~", 0.5, 1e-6))
		})
	})

	Describe("force strategies", func() {
		run := func(strategy string) []metrics.Sample {
			cfg := config.DefaultConfig()
			cfg.Cuboids = []config.CuboidConfig{
				{Position: [3]float64{20, 20, 0}, Dimensions: [3]int{8, 8, 1}, MeshWidth: 1.1225, Mass: 1, MeanVelocity: 0.1},
			}
			cfg.Simulation.TEnd = 0.02
			cfg.Simulation.DeltaT = 0.0005
			cfg.Simulation.Parallel = strategy
			cfg.Simulation.Workers = 4

			exp, err := experiment.Build(cfg, quiet())
			Expect(err).NotTo(HaveOccurred())
			_, err = exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			return exp.Recorder().Samples()
		}

		It("conserves energy and momentum identically across strategies", func() {
			reference := run("serial")
			Expect(reference).To(HaveLen(5))
			Expect(metrics.EnergyDrift(reference)).To(BeNumerically("<", 1e-3))

			for _, strategy := range []string{"buffered", "atomic"} {
				samples := run(strategy)
				Expect(samples).To(HaveLen(len(reference)))
				for i, s := range samples {
					ref := reference[i]
					Expect(s.Total).To(BeNumerically("~", ref.Total, 1e-6*math.Abs(ref.Total)+1e-12), strategy)
					Expect(r3.Norm(r3.Sub(s.Momentum, ref.Momentum))).To(BeNumerically("<", 1e-9), strategy)
				}
				first, last := samples[0].Momentum, samples[len(samples)-1].Momentum
				Expect(r3.Norm(r3.Sub(last, first))).To(BeNumerically("<", 1e-9), strategy)
			}
		})
	})
})

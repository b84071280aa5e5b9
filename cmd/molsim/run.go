package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/san-kum/molsim/internal/config"
	"github.com/san-kum/molsim/internal/experiment"
	"github.com/san-kum/molsim/internal/logging"
	"github.com/san-kum/molsim/internal/simulation"
	"github.com/san-kum/molsim/internal/storage"
	"github.com/san-kum/molsim/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func loadRunConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	src := experiment.Source{Preset: preset, Legacy: legacy}
	if len(args) > 0 {
		src.Path = args[0]
	}
	cfg, err := experiment.LoadConfig(src)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("t-end") {
		cfg.Simulation.TEnd = tEnd
	}
	if flags.Changed("dt") {
		cfg.Simulation.DeltaT = dt
	}
	if flags.Changed("parallel") {
		cfg.Simulation.Parallel = parallel
	}
	if flags.Changed("workers") {
		cfg.Simulation.Workers = workers
	}
	if flags.Changed("container") {
		cfg.Simulation.Container = container
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = seed
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, args)
	if err != nil {
		return err
	}

	var opts []experiment.Option
	if live {
		// the live view owns the terminal
		opts = append(opts, experiment.WithLogger(logging.Discard()))
	}
	if benchmark {
		opts = append(opts, experiment.WithoutRecorder())
	}
	exp, err := experiment.Build(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if benchmark {
		res, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("particles: %d\n", res.Particles)
		fmt.Printf("iterations: %d\n", res.Iterations)
		fmt.Printf("elapsed: %v\n", res.Elapsed)
		fmt.Printf("molecule-updates/s: %.0f\n", res.MUPS())
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Create(cfg.Output.BaseName)
	if err != nil {
		return err
	}
	format, err := storage.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	writer, err := storage.NewSnapshotWriter(st.SnapshotDir(runID), cfg.Output.BaseName, format)
	if err != nil {
		return err
	}
	if live {
		writer.SetLogger(logging.Discard())
	}
	exp.AddObserver(writer)

	var res *simulation.Result
	var runErr error
	if live {
		res, runErr = runLive(ctx, stop, exp)
	} else {
		res, runErr = exp.Run(ctx)
	}

	if err := st.Save(exp.Metadata(runID, res), exp.Recorder().Samples()); err != nil {
		return errors.Join(runErr, err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	printSummary(runID, res, writer.Written(), exp.Recorder().Summary())
	if runErr != nil {
		logrus.WithField("run", runID).Warn("run interrupted, partial results saved")
	}
	return nil
}

func runLive(ctx context.Context, cancel context.CancelFunc, exp *experiment.Experiment) (*simulation.Result, error) {
	origin, extent := exp.Bounds()
	cfg := exp.Config()
	model := tui.NewModel(cfg.Output.BaseName, cfg.Simulation.TEnd, tui.Bounds{Origin: origin, Extent: extent}, cancel)
	p := tui.NewProgram(model)
	exp.AddObserver(p.Observer(exp.Recorder(), cfg.Simulation.BrownianDims))
	return p.Run(func() (*simulation.Result, error) { return exp.Run(ctx) })
}

func printSummary(runID string, res *simulation.Result, snapshots int, summary map[string]float64) {
	fmt.Printf("run id: %s\n", runID)
	if res != nil {
		fmt.Printf("iterations: %d\n", res.Iterations)
		fmt.Printf("particles: %d (removed %d)\n", res.Particles, res.Removed)
		fmt.Printf("completed in %v\n", res.Elapsed)
	}
	fmt.Printf("snapshots: %d\n", snapshots)
	if len(summary) == 0 {
		return
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, summary[name])
	}
}

package main

import (
	"os"

	"github.com/san-kum/molsim/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logLevel  string
	preset    string
	legacy    string
	tEnd      float64
	dt        float64
	parallel  string
	workers   int
	container string
	seed      uint64
	benchmark bool
	live      bool
	exportOut string
	benchTEnd float64
)

// main wires the molsim commands and exits with status 1 on any error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "molsim",
		Short:         "molecular dynamics with linked cells",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Init(logLevel, os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".molsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [config.yaml]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use a named preset instead of a config file")
	runCmd.Flags().StringVar(&legacy, "legacy", "", "read cuboids from a legacy text file")
	runCmd.Flags().Float64Var(&tEnd, "t-end", 0, "end time")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "time step")
	runCmd.Flags().StringVar(&parallel, "parallel", "", "force strategy (serial, buffered, atomic)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "force workers (0 = all cpus)")
	runCmd.Flags().StringVar(&container, "container", "", "particle container (linked-cell, direct)")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for Brownian motion")
	runCmd.Flags().BoolVar(&benchmark, "benchmark", false, "run without output and report throughput")
	runCmd.Flags().BoolVar(&live, "live", false, "show a live terminal view")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energies of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "energy statistics and spectrum of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file, - for stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "compare containers and force strategies",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPreset,
	}
	benchCmd.Flags().Float64Var(&benchTEnd, "t-end", 0.01, "simulated time per combination")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "force workers (0 = all cpus)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("molsim failed")
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/molsim/internal/config"
	"github.com/san-kum/molsim/internal/experiment"
	"github.com/san-kum/molsim/internal/force"
	"github.com/san-kum/molsim/internal/logging"
	"github.com/spf13/cobra"
)

func benchPreset(cmd *cobra.Command, args []string) error {
	name := "collision"
	if len(args) > 0 {
		name = args[0]
	}

	containers := []string{config.ContainerLinkedCell, config.ContainerDirect}
	fmt.Printf("benchmarking %s (t_end %g)\n\n", name, benchTEnd)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONTAINER\tSTRATEGY\tTRAVERSAL\tPARTICLES\tITER\tTIME\tMUPS")
	for _, c := range containers {
		for _, s := range force.Strategies() {
			cfg, err := experiment.LoadConfig(experiment.Source{Preset: name})
			if err != nil {
				return err
			}
			cfg.Simulation.TEnd = benchTEnd
			cfg.Simulation.Container = c
			cfg.Simulation.Parallel = s.String()
			cfg.Simulation.Workers = workers
			if err := cfg.Validate(); err != nil {
				// e.g. a direct-only preset has no domain for linked cells
				fmt.Fprintf(w, "%s\t%s\t-\t-\t-\t-\tskipped\n", c, s)
				continue
			}

			exp, err := experiment.Build(cfg, experiment.WithLogger(logging.Discard()), experiment.WithoutRecorder())
			if err != nil {
				return err
			}
			res, err := exp.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%v\t%.0f\n",
				c, s, exp.Engine().Traversal(exp.Container()), res.Particles, res.Iterations, res.Elapsed, res.MUPS())
		}
	}
	return w.Flush()
}

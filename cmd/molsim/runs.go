package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/molsim/internal/analysis"
	"github.com/san-kum/molsim/internal/config"
	"github.com/san-kum/molsim/internal/metrics"
	"github.com/san-kum/molsim/internal/storage"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tITER\tDT\tFORCE\tSTRATEGY\tMUPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%g\t%s\t%s\t%.0f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Iterations,
			run.Dt,
			run.Force,
			run.Strategy,
			run.MUPS,
		)
	}
	return w.Flush()
}

func loadSamples(runID string) (*storage.RunMetadata, []metrics.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no energy samples", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadSamples(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d\n", meta.Particles)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(metrics.Sample) float64
	}{
		{"total energy", func(s metrics.Sample) float64 { return s.Total }},
		{"kinetic energy", func(s metrics.Sample) float64 { return s.Kinetic }},
		{"potential energy", func(s metrics.Sample) float64 { return s.Potential }},
		{"temperature", func(s metrics.Sample) float64 { return s.Temperature }},
		{"particles", func(s metrics.Sample) float64 { return float64(s.Particles) }},
	}
	for _, ser := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = ser.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ser.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadSamples(args[0])
	if err != nil {
		return err
	}

	report, err := analysis.Analyze(samples)
	if err != nil {
		return err
	}

	fmt.Printf("energy analysis: %s\n\n", meta.ID)

	totals := make([]float64, len(samples))
	for i, s := range samples {
		totals[i] = s.Total
	}
	spectrum := analysis.PowerSpectrum(totals, report.Interval)
	if len(spectrum.Power) > 2 {
		graph := asciigraph.Plot(spectrum.Power[1:],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (total energy)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "samples\t%d\n", report.Samples)
	fmt.Fprintf(w, "interval\t%g\n", report.Interval)
	fmt.Fprintf(w, "total energy\t%.6f ± %.6f\n", report.MeanTotal, report.StdTotal)
	fmt.Fprintf(w, "drift\t%.3e (max %.3e)\n", report.Drift, report.MaxDrift)
	fmt.Fprintf(w, "temperature\t%.6f ± %.6f\n", report.MeanTemperature, report.StdTemperature)
	fmt.Fprintf(w, "dominant frequency\t%.4f\n", report.DominantFrequency)
	if report.DominantFrequency > 0 {
		fmt.Fprintf(w, "period\t%.4f\n", 1/report.DominantFrequency)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(args[0], exportOut)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFORCE\tCONTAINER\tPARTICLES\tT_END\tDT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%g\n",
			name, p.Simulation.Force, p.Simulation.Container, p.NumParticles(), p.Simulation.TEnd, p.Simulation.DeltaT)
	}
	return w.Flush()
}

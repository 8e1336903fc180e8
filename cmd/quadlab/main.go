package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/quadlab/internal/config"
	"github.com/san-kum/quadlab/internal/integrand"
	"github.com/san-kum/quadlab/internal/quad"
	"github.com/san-kum/quadlab/internal/rules"
	"github.com/san-kum/quadlab/internal/storage"
	"github.com/san-kum/quadlab/internal/sweep"
	"github.com/san-kum/quadlab/internal/viz"
)

var (
	dataDir       string
	start         float64
	stop          float64
	step          float64
	halvings      int
	integrandName string
	parallel      bool
	withRef       bool
	coeffs        []float64
	sinAmp        float64
	configFile    string
	preset        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quadlab",
		Short: "numerical quadrature lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".quadlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [rule]",
		Short: "estimate the integral once at a single step size",
		Args:  cobra.ExactArgs(1),
		RunE:  runOnce,
	}
	addSweepFlags(runCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [rule]",
		Short: "run the halving-step sweep and record timings",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addSweepFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&halvings, "halvings", config.DefaultHalvings, "number of step halvings")
	sweepCmd.Flags().BoolVar(&parallel, "parallel", false, "run trials concurrently")

	compareCmd := &cobra.Command{
		Use:   "compare [rule1] [rule2] ...",
		Short: "compare rules against the gauss reference per halving",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareRules,
	}
	addSweepFlags(compareCmd)
	compareCmd.Flags().IntVar(&halvings, "halvings", config.DefaultHalvings, "number of step halvings")

	benchCmd := &cobra.Command{
		Use:   "bench [rule]",
		Short: "benchmark a rule across a step grid",
		Args:  cobra.ExactArgs(1),
		RunE:  benchRule,
	}
	benchCmd.Flags().StringVar(&integrandName, "integrand", "polysin", "integrand")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sweeps",
		RunE:  listSweeps,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [sweep_id]",
		Short: "plot a saved sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSweep,
	}

	exportCmd := &cobra.Command{
		Use:   "export [sweep_id]",
		Short: "export sweep data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSweep,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [sweep_id]",
		Short: "export sweep trials to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live [rule]",
		Short: "run the sweep with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSweepFlags(liveCmd)
	liveCmd.Flags().IntVar(&halvings, "halvings", config.DefaultHalvings, "number of step halvings")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, compareCmd, benchCmd, listCmd,
		plotCmd, exportCmd, exportCSVCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&start, "start", config.DefaultStart, "interval start")
	cmd.Flags().Float64Var(&stop, "stop", config.DefaultStop, "interval stop (inclusive)")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "initial step size")
	cmd.Flags().StringVar(&integrandName, "integrand", "polysin", "integrand")
	cmd.Flags().Float64SliceVar(&coeffs, "coeffs", nil, "polynomial coefficients by power")
	cmd.Flags().Float64Var(&sinAmp, "sin-amp", config.DefaultSinAmp, "sine term amplitude (polysin)")
	cmd.Flags().BoolVar(&withRef, "ref", true, "compute gauss reference value")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig assembles the effective settings: flag values form the
// base, a preset replaces them wholesale, and a config file fills in
// every field whose flag was not set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, quad.Integrand, error) {
	cfg := config.DefaultConfig()
	cfg.Start = start
	cfg.Stop = stop
	cfg.Step = step
	cfg.Halvings = halvings
	cfg.Integrand = integrandName
	cfg.SinAmp = sinAmp
	cfg.Parallel = parallel
	if len(coeffs) > 0 {
		cfg.Coeffs = coeffs
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		flags := cmd.Flags()
		if !flags.Changed("start") {
			cfg.Start = loaded.Start
		}
		if !flags.Changed("stop") {
			cfg.Stop = loaded.Stop
		}
		if !flags.Changed("step") {
			cfg.Step = loaded.Step
		}
		if !flags.Changed("halvings") {
			cfg.Halvings = loaded.Halvings
		}
		if !flags.Changed("integrand") {
			cfg.Integrand = loaded.Integrand
		}
		if !flags.Changed("coeffs") {
			cfg.Coeffs = loaded.Coeffs
		}
		if !flags.Changed("sin-amp") {
			cfg.SinAmp = loaded.SinAmp
		}
		if !flags.Changed("parallel") {
			cfg.Parallel = loaded.Parallel
		}
	}

	f, err := buildIntegrand(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, f, nil
}

func buildIntegrand(cfg *config.Config) (quad.Integrand, error) {
	switch cfg.Integrand {
	case "polysin":
		f := integrand.NewPolySin()
		if len(cfg.Coeffs) > 0 {
			f.Coeffs = cfg.Coeffs
		}
		f.SinAmp = cfg.SinAmp
		return f, nil
	case "poly":
		if len(cfg.Coeffs) > 0 {
			return integrand.NewPolynomial(cfg.Coeffs...), nil
		}
		return integrand.NewPolynomial(config.DefaultCoeffs...), nil
	default:
		return sweep.NewRegistry().GetIntegrand(cfg.Integrand)
	}
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, f, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := sweep.NewRegistry()
	rule, err := registry.GetRule(args[0])
	if err != nil {
		return err
	}

	runner := sweep.New(f, rule)
	sc := cfg.SweepConfig()
	if err := sc.Validate(); err != nil {
		return err
	}

	trial, err := runner.Trial(sc, sc.Step)
	if err != nil {
		return err
	}

	fmt.Printf("rule:      %s\n", rule.Name())
	fmt.Printf("integrand: %s\n", f.Name())
	fmt.Printf("interval:  [%g, %g] step %g\n", sc.Start, sc.Stop, trial.Step)
	if trial.Points > 0 {
		fmt.Printf("points:    %d\n", trial.Points)
	}
	fmt.Printf("estimate:  %.6f\n", trial.Estimate)
	fmt.Printf("time:      %v\n", trial.Elapsed)

	if withRef {
		ref := rules.NewGauss().EstimateFunc(f, sc.Start, sc.Stop)
		fmt.Printf("reference: %.6f\n", ref)
		fmt.Printf("abs error: %.6e\n", absf(trial.Estimate-ref))
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, f, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := sweep.NewRegistry()
	ruleName := args[0]
	if _, err := registry.GetRule(ruleName); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sc := cfg.SweepConfig()
	fmt.Printf("sweeping %s over [%g, %g], %d halvings...\n", ruleName, sc.Start, sc.Stop, sc.Halvings)
	begin := time.Now()

	var result *quad.Result
	if cfg.Parallel {
		ens := sweep.NewEnsemble(f, func() quad.Rule {
			r, _ := registry.GetRule(ruleName)
			return r
		})
		if withRef {
			ens.SetReference(rules.NewGauss())
		}
		result, err = ens.Run(context.Background(), sc)
	} else {
		rule, _ := registry.GetRule(ruleName)
		runner := sweep.New(f, rule)
		if withRef {
			runner.SetReference(rules.NewGauss())
		}
		result, err = runner.Run(context.Background(), sc)
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(begin)

	sweepID, err := st.Save(sc, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("sweep id: %s\n\n", sweepID)

	printTrialTable(result)
	plotTimes(result)

	return nil
}

func printTrialTable(result *quad.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if result.HasRef {
		fmt.Fprintln(w, "\tTIME\tRESULT\tSTEP\tABS ERROR")
		for i, t := range result.Trials {
			fmt.Fprintf(w, "%d\t%v\t%.6f\t%g\t%.3e\n",
				i, t.Elapsed, t.Estimate, t.Step, absf(t.Estimate-result.Reference))
		}
	} else {
		fmt.Fprintln(w, "\tTIME\tRESULT\tSTEP")
		for i, t := range result.Trials {
			fmt.Fprintf(w, "%d\t%v\t%.6f\t%g\n", i, t.Elapsed, t.Estimate, t.Step)
		}
	}
	w.Flush()

	if result.HasRef {
		fmt.Printf("\nreference (gauss): %.6f\n", result.Reference)
	}
}

func plotTimes(result *quad.Result) {
	trials := result.Trials
	if len(trials) < 2 {
		return
	}

	times := result.TimesSeconds()
	for i := range times {
		times[i] *= 1000
	}

	caption := fmt.Sprintf("time [ms] per trial, step %g halved %d times",
		trials[0].Step, len(trials)-1)
	graph := asciigraph.Plot(times,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println()
	fmt.Println(graph)
}

func compareRules(cmd *cobra.Command, args []string) error {
	cfg, f, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := sweep.NewRegistry()
	sc := cfg.SweepConfig()

	ref := rules.NewGauss().EstimateFunc(f, sc.Start, sc.Stop)
	fmt.Printf("comparing on [%g, %g], reference %.6f\n\n", sc.Start, sc.Stop, ref)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tSTEP\tESTIMATE\tABS ERROR\tTIME")

	for _, name := range args {
		rule, err := registry.GetRule(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		runner := sweep.New(f, rule)
		result, err := runner.Run(context.Background(), sc)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		for _, t := range result.Trials {
			fmt.Fprintf(w, "%s\t%g\t%.6f\t%.3e\t%v\n",
				name, t.Step, t.Estimate, absf(t.Estimate-ref), t.Elapsed)
		}
	}

	return w.Flush()
}

func benchRule(cmd *cobra.Command, args []string) error {
	registry := sweep.NewRegistry()
	rule, err := registry.GetRule(args[0])
	if err != nil {
		return err
	}
	f, err := registry.GetIntegrand(integrandName)
	if err != nil {
		return err
	}

	stops := []float64{100, 1000, 10000}
	steps := []float64{1, 0.1, 0.01}

	fmt.Printf("benchmarking %s on %s\n\n", rule.Name(), f.Name())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STOP\tSTEP\tPOINTS\tTIME\tPOINTS/SEC")

	runner := sweep.New(f, rule)
	for _, s := range stops {
		for _, h := range steps {
			sc := quad.Config{Start: 0, Stop: s, Step: h, Halvings: 1}
			trial, err := runner.Trial(sc, h)
			if err != nil {
				return err
			}

			perSec := 0.0
			if trial.Elapsed > 0 {
				perSec = float64(trial.Points) / trial.Elapsed.Seconds()
			}
			fmt.Fprintf(w, "%g\t%g\t%d\t%v\t%.0f\n", s, h, trial.Points, trial.Elapsed, perSec)
		}
	}

	return w.Flush()
}

func listSweeps(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	sweeps, err := st.List()
	if err != nil {
		return err
	}

	if len(sweeps) == 0 {
		fmt.Println("no sweeps found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRULE\tINTEGRAND\tTIME\tINTERVAL\tSTEP\tHALVINGS")

	for _, s := range sweeps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%g\t%d\n",
			s.ID,
			s.Rule,
			s.Integrand,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Start, s.Stop,
			s.Step,
			s.Halvings,
		)
	}

	return w.Flush()
}

func plotSweep(cmd *cobra.Command, args []string) error {
	sweepID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(sweepID)
	if err != nil {
		return err
	}

	trials, err := st.LoadTrials(sweepID)
	if err != nil {
		return err
	}
	if len(trials) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("sweep: %s\n", meta.ID)
	fmt.Printf("rule: %s, integrand: %s\n\n", meta.Rule, meta.Integrand)

	loaded := &quad.Result{Trials: trials}
	times := loaded.TimesSeconds()
	for i := range times {
		times[i] *= 1000
	}
	estimates := loaded.Estimates()

	fmt.Println(asciigraph.Plot(times,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("time per trial [ms]"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(estimates,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("estimate per trial"),
	))

	if meta.HasRef {
		fmt.Printf("\nreference (gauss): %.6f\n", meta.Reference)
	}

	return nil
}

func exportSweep(cmd *cobra.Command, args []string) error {
	sweepID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(sweepID)
	if err != nil {
		return err
	}
	trials, err := st.LoadTrials(sweepID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta.ID, meta, trials)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	sweepID := args[0]

	st := storage.New(dataDir)
	trials, err := st.LoadTrials(sweepID)
	if err != nil {
		return err
	}
	if len(trials) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"step", "points", "estimate", "time_s"}); err != nil {
		return err
	}
	for _, t := range trials {
		row := []string{
			strconv.FormatFloat(t.Step, 'g', -1, 64),
			strconv.Itoa(t.Points),
			strconv.FormatFloat(t.Estimate, 'f', 6, 64),
			strconv.FormatFloat(t.Elapsed.Seconds(), 'f', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, f, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := sweep.NewRegistry()
	rule, err := registry.GetRule(args[0])
	if err != nil {
		return err
	}

	sc := cfg.SweepConfig()
	if err := sc.Validate(); err != nil {
		return err
	}

	ref := 0.0
	if withRef {
		ref = rules.NewGauss().EstimateFunc(f, sc.Start, sc.Stop)
	}

	m := viz.NewModel(sweep.New(f, rule), sc, ref, withRef)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

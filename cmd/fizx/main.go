package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/fizx/internal/config"
	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/export"
	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/logging"
	"github.com/san-kum/fizx/internal/metrics"
	"github.com/san-kum/fizx/internal/viz"
	"github.com/san-kum/fizx/internal/world"
)

var (
	dt          float64
	duration    float64
	tolerance   float64
	workers     int
	seed        int64
	recordEvery int
	configFile  string
	outFile     string
	format      string
	// plot
	particleName string
	axis         string
	plotAll      bool
	plotWidth    int
	plotHeight   int
	// live
	frameRate int
	substeps  int
	// bench
	copies     int
	iterations int
	// ensemble
	members int

	log *slog.Logger
)

func main() {
	log = logging.New(os.Stderr)

	rootCmd := &cobra.Command{
		Use:           "fizx",
		Short:         "point-mass particle dynamics lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario and print a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVarP(&outFile, "out", "o", "", "write trajectory to file")
	runCmd.Flags().StringVar(&format, "format", "", "trajectory format: json, csv or svg (default from extension)")

	plotCmd := &cobra.Command{
		Use:   "plot [scenario]",
		Short: "run a scenario and plot one position axis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotScenario,
	}
	addScenarioFlags(plotCmd)
	plotCmd.Flags().StringVarP(&particleName, "particle", "p", "", "particle to plot (default first)")
	plotCmd.Flags().StringVar(&axis, "axis", "y", "axis to plot: x, y or z")
	plotCmd.Flags().BoolVar(&plotAll, "all", false, "overlay every particle")
	plotCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "step a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&substeps, "substeps", 0, "integration steps per frame (default: real time)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "compare serial and parallel stepping throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	addScenarioFlags(benchCmd)
	benchCmd.Flags().IntVar(&copies, "copies", 250, "replicate the scenario this many times")

	matbenchCmd := &cobra.Command{
		Use:   "matbench",
		Short: "time repeated 3x3 matrix multiplication",
		Args:  cobra.NoArgs,
		RunE:  matBench,
	}
	matbenchCmd.Flags().IntVarP(&iterations, "iterations", "n", 1_000_000, "number of products")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "run seeded copies of a scenario concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addScenarioFlags(ensembleCmd)
	ensembleCmd.Flags().IntVarP(&members, "runs", "n", 8, "number of ensemble members")

	rootCmd.AddCommand(runCmd, plotCmd, liveCmd, presetsCmd, benchCmd, matbenchCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "scenario file (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "equality tolerance")
	cmd.Flags().IntVarP(&workers, "workers", "w", config.DefaultWorkers, "worker goroutines per step")
	cmd.Flags().Int64Var(&seed, "seed", 0, "noise seed for wind and turbulence")
	cmd.Flags().IntVar(&recordEvery, "record", config.DefaultRecordEvery, "record a frame every n steps")
}

// loadScenario resolves the scenario from --config or a preset name, then
// applies any flags the user set explicitly.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		log.Debug("loaded scenario file", "path", configFile, "name", cfg.Name)
	case len(args) == 1:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown scenario: %s (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("record") {
		cfg.RecordEvery = recordEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// simulate builds the scenario and runs it to completion with the default metrics.
func simulate(cfg *config.Config) (*world.World, *world.Result, time.Duration, error) {
	w, err := cfg.Build()
	if err != nil {
		return nil, nil, 0, err
	}
	for _, m := range metrics.Defaults() {
		w.AddMetric(m)
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("running scenario", "name", cfg.Name, "particles", w.Len(), "dt", cfg.Dt, "duration", cfg.Duration, "workers", w.Workers())
	start := time.Now()
	result, err := w.Run(ctx, cfg.SimConfig())
	elapsed := time.Since(start)

	var simErr *dynamo.SimulationError
	switch {
	case errors.As(err, &simErr):
		name := fmt.Sprintf("#%d", simErr.Particle)
		if simErr.Particle < len(w.Names()) {
			name = w.Names()[simErr.Particle]
		}
		log.Error("simulation failed", "step", simErr.Step, "time", simErr.Time, "particle", name, "err", simErr.Wrapped)
		return w, result, elapsed, err
	case errors.Is(err, dynamo.ErrContextCanceled):
		log.Warn("run interrupted", "steps", result.StepsTaken)
		return w, result, elapsed, nil
	case err != nil:
		return w, result, elapsed, err
	}

	log.Info("run finished", "steps", result.StepsTaken, "elapsed", elapsed)
	return w, result, elapsed, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	w, result, elapsed, err := simulate(cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary(cfg.Name, w.Names(), result, elapsed))

	if outFile != "" {
		tr := export.FromResult(cfg.Name, w.Names(), cfg.SimConfig(), result)
		if err := tr.SaveFile(outFile, format); err != nil {
			return err
		}
		log.Info("trajectory written", "path", outFile, "run_id", tr.RunID, "frames", len(tr.Frames))
	}
	return nil
}

func plotScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	ax, err := viz.ParseAxis(axis)
	if err != nil {
		return err
	}

	w, result, _, err := simulate(cfg)
	if err != nil {
		return err
	}

	if plotAll {
		chart, err := viz.PlotAll(result, ax, plotWidth, plotHeight)
		if err != nil {
			return err
		}
		fmt.Println(chart)
		return nil
	}

	var h world.Handle
	label := w.Names()[0]
	if particleName != "" {
		found, ok := w.Lookup(particleName)
		if !ok {
			return fmt.Errorf("unknown particle: %s (available: %s)", particleName, strings.Join(w.Names(), ", "))
		}
		h, label = found, particleName
	}

	chart, err := viz.PlotAxis(result, h, ax, label, plotWidth, plotHeight)
	if err != nil {
		return err
	}
	fmt.Println(chart)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	n := substeps
	if n <= 0 {
		// one wall-clock second per simulated second
		n = max(1, int(1/(cfg.Dt*float64(frameRate))+0.5))
	}

	model, err := viz.NewLiveModel(cfg.Name, cfg.Build, cfg.Dt, n, frameRate)
	if err != nil {
		return err
	}
	log.Debug("starting live view", "name", cfg.Name, "substeps", n, "fps", frameRate)
	return viz.RunLive(model)
}

func listPresets(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPARTICLES\tFORCES\tDT\tDURATION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		kinds := make([]string, 0, len(p.Forces))
		for _, f := range p.Forces {
			kinds = append(kinds, f.Type)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%g\t%gs\n", name, len(p.Particles), strings.Join(kinds, ","), p.Dt, p.Duration)
	}
	return tw.Flush()
}

func benchScenario(cmd *cobra.Command, args []string) error {
	base, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	cfg := base.Replicate(copies, 5)

	counts := []int{1, 2, 4, runtime.NumCPU()}
	if cmd.Flags().Changed("workers") {
		counts = []int{1, workers}
	}

	fmt.Printf("benchmarking %s x%d (%s particles)\n\n", base.Name, copies, humanize.Comma(int64(len(cfg.Particles))))
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKERS\tSTEPS\tTIME\tSTEPS/SEC\tPARTICLE-STEPS/SEC\tSPEEDUP")

	var serial time.Duration
	seen := make(map[int]bool)
	for _, n := range counts {
		if seen[n] {
			continue
		}
		seen[n] = true

		w, err := cfg.Build()
		if err != nil {
			return err
		}
		sc := cfg.SimConfig()
		sc.Workers = n
		sc.RecordEvery = sc.Steps() + 1

		start := time.Now()
		result, err := w.Run(context.Background(), sc)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		if n == 1 {
			serial = elapsed
		}

		fmt.Fprintf(tw, "%d\t%s\t%v\t%s\t%s\t%.2fx\n",
			n,
			humanize.Comma(int64(result.StepsTaken)),
			elapsed.Round(time.Microsecond),
			viz.Rate(float64(result.StepsTaken), elapsed, "/s"),
			viz.Rate(float64(result.StepsTaken*w.Len()), elapsed, "/s"),
			serial.Seconds()/elapsed.Seconds(),
		)
	}
	return tw.Flush()
}

func matBench(cmd *cobra.Command, args []string) error {
	a := linalg.Identity[linalg.D3]()
	b, err := linalg.MatrixFromRows[linalg.D3, linalg.D3](
		linalg.V3(1, 2, 3),
		linalg.V3(4, 5, 6),
		linalg.V3(7, 8, 9),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		a = linalg.Mul(a, b)
		// keep the entries bounded
		a = a.Scale(1.0 / 16.0)
	}
	elapsed := time.Since(start)

	fmt.Printf("%s 3x3 products in %v (%s)\n",
		humanize.Comma(int64(iterations)),
		elapsed.Round(time.Microsecond),
		viz.Rate(float64(iterations), elapsed, "mul/s"))
	log.Debug("matbench result", "product", a.String())
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	e := &world.Ensemble{
		Members: members,
		Build: func(member int) (*world.World, error) {
			c := cfg.Clone()
			c.Seed = cfg.Seed + int64(member)
			w, err := c.Build()
			if err != nil {
				return nil, err
			}
			for _, m := range metrics.Defaults() {
				w.AddMetric(m)
			}
			return w, nil
		},
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("running ensemble", "name", cfg.Name, "members", members)
	start := time.Now()
	results, err := e.Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}
	log.Info("ensemble finished", "elapsed", time.Since(start))

	names := make([]string, 0, len(results[0].Metrics))
	for k := range results[0].Metrics {
		names = append(names, k)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEED\t"+strings.ToUpper(strings.Join(names, "\t")))
	for i, r := range results {
		row := []string{fmt.Sprintf("%d", cfg.Seed+int64(i))}
		for _, k := range names {
			row = append(row, fmt.Sprintf("%.6g", r.Metrics[k]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

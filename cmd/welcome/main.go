package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/welcome/internal/analysis"
	"github.com/san-kum/welcome/internal/config"
	"github.com/san-kum/welcome/internal/export"
	"github.com/san-kum/welcome/internal/metrics"
	"github.com/san-kum/welcome/internal/optim"
	"github.com/san-kum/welcome/internal/scene"
	"github.com/san-kum/welcome/internal/sim"
	"github.com/san-kum/welcome/internal/storage"
	"github.com/san-kum/welcome/internal/viz"
)

var (
	dataDir    string
	seed       int64
	preset     string
	configFile string
	frameRate  int
	ticks      int
	clock      string
	hue        string
	colorSpeed float64
	numRuns    int
	outFile    string
	snapDir    string
	glyphIdx   int
	target     float64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers every command and flag. With no subcommand it plays
// the animation for the optional message argument.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "welcome [message]",
		Short: "letters flying on lissajous curves",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".welcome", "data directory")
	addSceneFlags(rootCmd)
	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().StringVar(&snapDir, "snapshots", ".", "directory for svg snapshots")

	liveCmd := &cobra.Command{
		Use:   "live [message]",
		Short: "run the animation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&snapDir, "snapshots", ".", "directory for svg snapshots")

	traceCmd := &cobra.Command{
		Use:   "trace [message]",
		Short: "run headless and save every frame",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	addSceneFlags(traceCmd)
	traceCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")

	sweepCmd := &cobra.Command{
		Use:   "sweep [message]",
		Short: "run consecutive seeds in parallel and compare metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSceneFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks per run")
	sweepCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	tuneCmd := &cobra.Command{
		Use:   "tune [message]",
		Short: "search pacing for a target share of slow-motion ticks",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	addSceneFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks per candidate")
	tuneCmd.Flags().Float64Var(&target, "target", 0.3, "wanted fraction of slow-motion ticks")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot dt and spread of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "measure letter frequencies and draw one letter's curve",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&glyphIdx, "glyph", 0, "letter index for the portrait")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "draw the letter trajectories of a run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-8s clock=%s hue=%s\n", name, p.Clock, p.Hue)
			}
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, traceCmd, sweepCmd, tuneCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, svgCmd, presetsCmd)
	return rootCmd
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&clock, "clock", "", "clock variant: local or absolute")
	cmd.Flags().StringVar(&hue, "hue", "", "hue rule: sparkle or drift")
	cmd.Flags().Float64Var(&colorSpeed, "color-speed", 0, "sparkle color speed")
}

// resolveConfig layers defaults, preset, config file, flags and the message
// argument, later layers winning.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("clock") {
		cfg.Clock = clock
	}
	if flags.Changed("hue") {
		cfg.Hue = hue
	}
	if flags.Changed("color-speed") {
		cfg.ColorSpeed = colorSpeed
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Lookup("ticks") != nil && flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if len(args) > 0 {
		cfg.Message = args[0]
	}
	if cfg.Seed == 0 && !flags.Changed("seed") {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, err := cfg.SceneConfig()
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg.Message, sc, cfg.Seed, cfg.FPS)
	if err != nil {
		return err
	}
	return viz.RunModel(m.WithSnapshotDir(snapDir))
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, err := cfg.SceneConfig()
	if err != nil {
		return err
	}

	s, err := scene.New(cfg.Message, sc, rand.New(rand.NewSource(cfg.Seed)), nil)
	if err != nil {
		return err
	}

	runner := sim.New()
	for _, m := range metrics.Default(sc.Pacing) {
		runner.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "tracing %q for %d ticks (seed %d)\n", cfg.Message, cfg.Ticks, cfg.Seed)
	start := time.Now()
	result, err := runner.Run(ctx, s, sim.Config{Ticks: cfg.Ticks, Seed: cfg.Seed})
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(out, "interrupted after %d ticks\n", result.StepsTaken)
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(sc, result)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "run: %s\n", runID)
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "clock: %.4f\n", s.Time())
	fmt.Fprintf(out, "wall: %v\n", elapsed)
	printMetrics(cmd, result.Metrics)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, err := cfg.SceneConfig()
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	ens := sim.NewEnsemble(cfg.Message, sc, numRuns, cfg.Seed, func() []sim.Metric {
		return metrics.Default(sc.Pacing)
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := ens.Run(ctx, sim.Config{Ticks: cfg.Ticks, SkipRecords: true})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sweep %q: %d seeds x %d ticks\n\n", cfg.Message, numRuns, cfg.Ticks)

	names := metricNames(results[0].Metrics)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED")
	for _, n := range names {
		fmt.Fprintf(w, "\t%s", n)
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%d", r.Seed)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, err := cfg.SceneConfig()
	if err != nil {
		return err
	}
	if target < 0 || target > 1 {
		return fmt.Errorf("target must be in [0, 1], got %g", target)
	}

	tuner := &optim.PacingTuner{
		Message: cfg.Message,
		Scene:   sc,
		Seed:    cfg.Seed,
		Ticks:   cfg.Ticks,
		Target:  target,
	}
	tightness := optim.Linspace(0.5, 6, 12)
	curve := optim.Linspace(1, 8, 8)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "tuning %q: %d candidates x %d ticks\n", cfg.Message, len(tightness)*len(curve), cfg.Ticks)
	best, score, err := tuner.Tune(ctx, tightness, curve)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(map[string]scene.Pacing{"pacing": best})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "distance from target: %.4f\n\n", score)
	fmt.Fprint(out, string(data))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMESSAGE\tTIME\tTICKS\tSEED\tCLOCK\tHUE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Message,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Seed,
			run.Clock,
			run.Hue,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "message: %s\n", meta.Message)
	fmt.Fprintf(out, "frames: %d\n\n", len(records))

	// the first record is the primed frame and carries no dt
	dts := make([]float64, 0, len(records)-1)
	spreads := make([]float64, 0, len(records)-1)
	for _, r := range records[1:] {
		dts = append(dts, r.Dt)
		spreads = append(spreads, r.Spread)
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{dts, "dt per tick"},
		{spreads, "vertical spread per tick"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(records) < 2 || len(records[0].Glyphs) == 0 {
		return fmt.Errorf("no data")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frequency analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "message: %s\n", meta.Message)
	fmt.Fprintf(out, "phasing: %.4f\n\n", meta.Phasing)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tLETTER\tFX\tWANT\tFY\tWANT")
	for i, g := range records[0].Glyphs {
		fx, fy, err := analysis.Frequencies(records, i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%c\t%.3f\t%.3f\t%.3f\t%.3f\n",
			i, g.Rune,
			fx, analysis.ExpectedFrequency(1),
			fy, analysis.ExpectedFrequency(float64(i)*meta.Phasing+1),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	portrait, err := analysis.NewPortrait(records, glyphIdx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\npath of %q:\n", portrait.Rune)
	fmt.Fprint(out, portrait.ASCII(70, 20))

	spectrum, err := portrait.VerticalSpectrum()
	if err != nil {
		return err
	}
	plotData := spectrum.Power[:len(spectrum.Power)/8]
	if len(plotData) > 1 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("vertical power spectrum, %.3f cycles per bin", spectrum.Resolution())),
		)
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile != "" {
		if err := st.ExportJSON(args[0], outFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
		return nil
	}
	return st.WriteJSON(args[0], cmd.OutOrStdout())
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectoriesToSVG(records, meta.Width, meta.Height)
	if svg == "" {
		return fmt.Errorf("run %s has too few frames to draw", args[0])
	}
	if outFile == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
	return nil
}

func printMetrics(cmd *cobra.Command, m map[string]float64) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range metricNames(m) {
		fmt.Fprintf(out, "  %s: %.4f\n", name, m[name])
	}
}

func metricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/escapegrid/internal/analysis"
	"github.com/san-kum/escapegrid/internal/automation"
	"github.com/san-kum/escapegrid/internal/compute"
	"github.com/san-kum/escapegrid/internal/config"
	"github.com/san-kum/escapegrid/internal/export"
	"github.com/san-kum/escapegrid/internal/fractal"
	"github.com/san-kum/escapegrid/internal/gui"
	"github.com/san-kum/escapegrid/internal/viz"
	"github.com/spf13/cobra"
)

var (
	// Config file and preset
	configFile string
	preset     string
	// Region and resolution
	xmin   float64
	xmax   float64
	ymin   float64
	ymax   float64
	width  int
	height int
	// Kernel
	maxIter int
	cre     float64
	cim     float64
	// Presentation and execution
	cmapName    string
	backendName string
	workers     int
	outPath     string
	// explore
	themeName string
	// term
	cols    int
	braille bool
	// render
	mono bool
	// bench
	benchSizes []int
	benchRuns  int
	// sweep
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	sweepPattern string
	// config init
	kindName string
	force    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "escapegrid",
		Short: "escape-time fractal grids",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render [mandelbrot|julia]",
		Short: "compute a grid and write it to --out (png, svg, json, csv)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	addFractalFlags(renderCmd)
	renderCmd.Flags().StringVar(&outPath, "out", "", "output file, format from extension")
	renderCmd.Flags().BoolVar(&mono, "mono", false, "svg: braille dot plot of the bounded cells")

	termCmd := &cobra.Command{
		Use:   "term [mandelbrot|julia]",
		Short: "print the grid as a terminal heatmap",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTerm,
	}
	addFractalFlags(termCmd)
	termCmd.Flags().IntVar(&cols, "cols", 80, "terminal columns; ignored when --width or --height is set")
	termCmd.Flags().BoolVar(&braille, "braille", false, "monochrome braille plot of the bounded cells")

	exploreCmd := &cobra.Command{
		Use:   "explore [mandelbrot|julia]",
		Short: "interactive terminal explorer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExplore,
	}
	addFractalFlags(exploreCmd)
	exploreCmd.Flags().StringVar(&themeName, "theme", viz.Themes[0].Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	showCmd := &cobra.Command{
		Use:   "show [mandelbrot|julia]",
		Short: "display the grid in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}
	addFractalFlags(showCmd)

	statsCmd := &cobra.Command{
		Use:   "stats [mandelbrot|julia]",
		Short: "summary statistics and count histogram",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}
	addFractalFlags(statsCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [mandelbrot|julia]",
		Short: "time every backend over several resolutions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	addFractalFlags(benchCmd)
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{128, 256, 512}, "square grid sizes")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 3, "runs per measurement, best is kept")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run the renders listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&backendName, "backend", "", fmt.Sprintf("compute backend %v", compute.Names()))
	batchCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines, 0 for all CPUs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [mandelbrot|julia]",
		Short: "render one frame per parameter value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addFractalFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", automation.ParamZoom, fmt.Sprintf("swept parameter %v", automation.SweepParams))
	sweepCmd.Flags().Float64Var(&sweepMin, "from", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "to", 0.01, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of frames")
	sweepCmd.Flags().StringVar(&sweepPattern, "pattern", "frame_%03d.png", "output path pattern, format from extension")

	presetsCmd := &cobra.Command{
		Use:   "presets [mandelbrot|julia]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file (default escapegrid.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	addFractalFlags(initCmd)
	initCmd.Flags().StringVar(&kindName, "fractal", "", "fractal kind (mandelbrot, julia)")
	initCmd.Flags().StringVar(&outPath, "out", "", "output file written by render")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(renderCmd, termCmd, exploreCmd, showCmd, statsCmd, benchCmd, batchCmd, sweepCmd, presetsCmd, configCmd)
	return rootCmd
}

func addFractalFlags(c *cobra.Command) {
	def := config.DefaultConfig()
	f := c.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&xmin, "xmin", def.Region.XMin, "real axis lower bound")
	f.Float64Var(&xmax, "xmax", def.Region.XMax, "real axis upper bound")
	f.Float64Var(&ymin, "ymin", def.Region.YMin, "imaginary axis lower bound")
	f.Float64Var(&ymax, "ymax", def.Region.YMax, "imaginary axis upper bound")
	f.IntVar(&width, "width", def.Region.Width, "grid columns")
	f.IntVar(&height, "height", def.Region.Height, "grid rows")
	f.IntVar(&maxIter, "iter", def.MaxIter, "iteration limit")
	f.Float64Var(&cre, "cre", def.C.Re, "julia constant, real part")
	f.Float64Var(&cim, "cim", def.C.Im, "julia constant, imaginary part")
	f.StringVar(&cmapName, "cmap", "", fmt.Sprintf("colormap %v", viz.ColormapNames()))
	f.StringVar(&backendName, "backend", "", fmt.Sprintf("compute backend %v", compute.Names()))
	f.IntVar(&workers, "workers", 0, "worker goroutines, 0 for all CPUs")
}

// resolveConfig layers, lowest first: kind defaults, preset, config file,
// flags. The positional kind wins over the config file's.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	kind := kindName
	if len(args) > 0 {
		kind = args[0]
	}
	if kind == "" && configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		kind = loaded.Fractal
	}
	if kind == "" {
		kind = config.DefaultFractal
	}
	if _, err := fractal.ParseKind(kind); err != nil {
		return nil, err
	}

	cfg := config.DefaultFor(kind)
	if preset != "" {
		cfg = config.GetPreset(kind, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
	}

	if configFile != "" {
		loaded, err := config.Overlay(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Fractal = kind
	}

	flags := cmd.Flags()
	if flags.Changed("xmin") {
		cfg.Region.XMin = xmin
	}
	if flags.Changed("xmax") {
		cfg.Region.XMax = xmax
	}
	if flags.Changed("ymin") {
		cfg.Region.YMin = ymin
	}
	if flags.Changed("ymax") {
		cfg.Region.YMax = ymax
	}
	if flags.Changed("width") {
		cfg.Region.Width = width
	}
	if flags.Changed("height") {
		cfg.Region.Height = height
	}
	if flags.Changed("iter") {
		cfg.MaxIter = maxIter
	}
	if flags.Changed("cre") {
		cfg.C.Re = cre
	}
	if flags.Changed("cim") {
		cfg.C.Im = cim
	}
	if flags.Changed("cmap") {
		cfg.Colormap = cmapName
	}
	if flags.Changed("backend") {
		cfg.Backend = backendName
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("out") {
		cfg.Output = outPath
	}
	return cfg, nil
}

// session is a resolved configuration bound to a backend.
type session struct {
	cfg     *config.Config
	params  fractal.Params
	cmap    viz.Colormap
	backend compute.Backend
	engine  *fractal.Engine
}

func newSession(cmd *cobra.Command, args []string) (*session, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	cmap, err := viz.GetColormap(cfg.Colormap)
	if err != nil {
		return nil, err
	}
	backend, err := compute.ByName(cfg.Backend, cfg.Workers)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:     cfg,
		params:  params,
		cmap:    cmap,
		backend: backend,
		engine:  fractal.NewEngine(backend),
	}, nil
}

func (s *session) Close() {
	s.backend.Cleanup()
}

func (s *session) compute() (*fractal.Grid, time.Duration, error) {
	start := time.Now()
	g, err := s.engine.Compute(s.params)
	return g, time.Since(start), err
}

func (s *session) title() string {
	if s.params.Kind == fractal.Julia {
		return fmt.Sprintf("Julia Set (c = %g%+gi)", real(s.params.C), imag(s.params.C))
	}
	return "Mandelbrot Set"
}

func (s *session) describe() string {
	r := s.params.Region
	return fmt.Sprintf("%s %dx%d max_iter=%d cost<=%d backend=%s workers=%d",
		s.params.Kind, r.Width, r.Height, s.params.MaxIter, s.params.Cost(), s.backend.Name(), s.backend.Workers())
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	g, elapsed, err := s.compute()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, s.describe())
	fmt.Fprintf(out, "elapsed: %v\n", elapsed)

	opts := export.Options{
		Meta:  export.NewMeta(s.params, s.cmap.Name, s.backend.Name(), elapsed),
		Cmap:  s.cmap,
		Title: s.title(),
		Mono:  mono,
	}
	format, err := export.Write(s.cfg.Output, g, opts)
	if err != nil {
		return fmt.Errorf("write %s: %w", s.cfg.Output, err)
	}
	fmt.Fprintf(out, "wrote %s (%s)\n", s.cfg.Output, format)
	return nil
}

func runTerm(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	// half blocks and braille dots are both close to square, so the grid
	// keeps the region's aspect ratio
	if !cmd.Flags().Changed("width") && !cmd.Flags().Changed("height") {
		w := max(cols, 1)
		if braille {
			w *= 2
		}
		h := int(math.Round(float64(w) / s.params.Region.Aspect()))
		s.params.Region = s.params.Region.WithResolution(w, max(h, 1))
	}

	g, elapsed, err := s.compute()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if braille {
		fmt.Fprint(out, viz.BrailleSet(g).String())
	} else {
		fmt.Fprintln(out, viz.Figure(s.title(), g, s.params.Region, s.cmap))
	}
	fmt.Fprintf(out, "%s\nelapsed: %v\n", s.describe(), elapsed)
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	initial := make(map[fractal.Kind]fractal.Params, len(fractal.Kinds))
	for _, k := range fractal.Kinds {
		p, err := config.DefaultFor(string(k)).Params()
		if err != nil {
			return err
		}
		initial[k] = p
	}

	m := viz.NewExplorer(s.engine, s.params, initial, s.cmap).WithTheme(themeName)
	return viz.RunExplorer(m)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	return gui.Run(s.engine, s.params, s.cmap)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	g, elapsed, err := s.compute()
	if err != nil {
		return err
	}
	sum := analysis.Summarize(g)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n%s\n\n", s.describe(), s.params.Region)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CELLS\tMIN\tMAX\tMEAN\tSTDDEV\tBOUNDED\tESCAPED\tBOUNDED%\tTIME")
	fmt.Fprintf(w, "%d\t%d\t%d\t%.3f\t%.3f\t%d\t%d\t%.2f\t%v\n",
		sum.Cells, sum.Min, sum.Max, sum.Mean, sum.StdDev,
		sum.Bounded, sum.Escaped, 100*sum.BoundedFraction, elapsed)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	hist := asciigraph.Plot(analysis.Trim(analysis.HistogramFloat(g)),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("cells per iteration count"),
	)
	fmt.Fprintln(out, hist)
	fmt.Fprintln(out)

	profile := asciigraph.Plot(analysis.RowProfile(g),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean count per row, im from min to max"),
	)
	fmt.Fprintln(out, profile)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	names := []string{"serial", "cpu"}
	runs := max(benchRuns, 1)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s max_iter=%d\n\n", s.params.Kind, s.params.MaxIter)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tWORKERS\tSIZE\tTIME\tCELLS/SEC")

	for _, size := range benchSizes {
		p := s.params
		p.Region = p.Region.WithResolution(size, size)

		var ref *fractal.Grid
		for _, name := range names {
			b, err := compute.ByName(name, s.cfg.Workers)
			if err != nil {
				return err
			}
			g, best, err := timeBest(fractal.NewEngine(b), p, runs)
			b.Cleanup()
			if err != nil {
				return err
			}

			if ref == nil {
				ref = g
			} else if !ref.Equal(g) {
				return fmt.Errorf("backend %s disagrees with %s at %dx%d", name, names[0], size, size)
			}

			fmt.Fprintf(w, "%s\t%d\t%dx%d\t%v\t%.0f\n",
				name, b.Workers(), size, size, best, float64(size*size)/best.Seconds())
		}
	}

	return w.Flush()
}

func timeBest(e *fractal.Engine, p fractal.Params, runs int) (*fractal.Grid, time.Duration, error) {
	var g *fractal.Grid
	best := time.Duration(math.MaxInt64)
	for i := 0; i < runs; i++ {
		start := time.Now()
		grid, err := e.Compute(p)
		if err != nil {
			return nil, 0, err
		}
		if d := time.Since(start); d < best {
			best = d
		}
		g = grid
	}
	return g, best, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	backend, err := compute.ByName(backendName, workers)
	if err != nil {
		return err
	}
	defer backend.Cleanup()

	out := cmd.OutOrStdout()
	if scenario.Name != "" {
		fmt.Fprintf(out, "scenario: %s\n", scenario.Name)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := automation.RunScenario(ctx, scenario, fractal.NewEngine(backend), out)
	if err != nil {
		return err
	}

	var total time.Duration
	for _, r := range results {
		total += r.Elapsed
	}
	fmt.Fprintf(out, "%d renders, compute time %v\n", len(results), total)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	sweep := &automation.ParameterSweep{
		Base:     s.cfg,
		Param:    sweepParam,
		ParamMin: sweepMin,
		ParamMax: sweepMax,
		NumSteps: sweepSteps,
		Pattern:  sweepPattern,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, err = automation.RunSweep(ctx, sweep, s.engine, cmd.OutOrStdout())
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := make([]string, 0, len(fractal.Kinds))
	if len(args) > 0 {
		if _, err := fractal.ParseKind(args[0]); err != nil {
			return err
		}
		kinds = append(kinds, args[0])
	} else {
		for _, k := range fractal.Kinds {
			kinds = append(kinds, string(k))
		}
	}

	out := cmd.OutOrStdout()
	for _, kind := range kinds {
		fmt.Fprintf(out, "presets for %s:\n", kind)
		for _, name := range config.ListPresets(kind) {
			cfg := config.GetPreset(kind, name)
			line := fmt.Sprintf("  %-14s %s max_iter=%d", name, cfg.Region.Region(), cfg.MaxIter)
			if kind == string(fractal.Julia) {
				line += fmt.Sprintf(" c=%g%+gi", cfg.C.Re, cfg.C.Im)
			}
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "escapegrid.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists, use --force to overwrite", path)
	}

	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

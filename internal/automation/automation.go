package automation

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/san-kum/escapegrid/internal/analysis"
	"github.com/san-kum/escapegrid/internal/config"
	"github.com/san-kum/escapegrid/internal/export"
	"github.com/san-kum/escapegrid/internal/fractal"
	"github.com/san-kum/escapegrid/internal/viz"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of renders
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one render. Unset fields keep the preset's value, or the
// fractal's default when no preset is named. A region replaces the whole
// rectangle and resolution.
type Step struct {
	Fractal  string                `yaml:"fractal"`
	Preset   string                `yaml:"preset"`
	Region   *config.RegionConfig  `yaml:"region"`
	MaxIter  *int                  `yaml:"max_iter"`
	C        *config.ComplexConfig `yaml:"c"`
	Colormap string                `yaml:"colormap"`
	SaveAs   string                `yaml:"save_as"`
}

// Config resolves the step against its preset or defaults.
func (s Step) Config() (*config.Config, error) {
	kind := s.Fractal
	if kind == "" {
		kind = config.DefaultFractal
	}

	cfg := config.DefaultFor(kind)
	if s.Preset != "" {
		cfg = config.GetPreset(kind, s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets(kind))
		}
	}
	cfg.Fractal = kind

	if s.Region != nil {
		cfg.Region = *s.Region
	}
	if s.MaxIter != nil {
		cfg.MaxIter = *s.MaxIter
	}
	if s.C != nil {
		cfg.C = *s.C
	}
	if s.Colormap != "" {
		cfg.Colormap = s.Colormap
	}
	if s.SaveAs != "" {
		cfg.Output = s.SaveAs
	}
	return cfg, cfg.Validate()
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Result describes one written grid.
type Result struct {
	Params  fractal.Params
	Summary analysis.Summary
	Elapsed time.Duration
	Path    string
}

// render computes cfg and writes it to cfg.Output.
func render(engine *fractal.Engine, cfg *config.Config) (Result, error) {
	p, err := cfg.Params()
	if err != nil {
		return Result{}, err
	}
	cmap, err := viz.GetColormap(cfg.Colormap)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	g, err := engine.Compute(p)
	if err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	opts := export.Options{
		Meta:  export.NewMeta(p, cmap.Name, engine.Backend().Name(), elapsed),
		Cmap:  cmap,
		Title: string(p.Kind),
	}
	if _, err := export.Write(cfg.Output, g, opts); err != nil {
		return Result{}, err
	}

	return Result{Params: p, Summary: analysis.Summarize(g), Elapsed: elapsed, Path: cfg.Output}, nil
}

// RunScenario executes all steps in a scenario. It stops at the first
// failing step or when ctx is done, returning the results so far.
func RunScenario(ctx context.Context, scenario *Scenario, engine *fractal.Engine, log io.Writer) ([]Result, error) {
	results := make([]Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Fprintf(log, "Running step %d/%d: %s -> %s\n", i+1, len(scenario.Steps), cfg.Fractal, cfg.Output)

		res, err := render(engine, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, res)
	}

	return results, nil
}

// Sweepable parameters.
const (
	ParamZoom    = "zoom"
	ParamCRe     = "c_re"
	ParamCIm     = "c_im"
	ParamMaxIter = "max_iter"
)

var SweepParams = []string{ParamZoom, ParamCRe, ParamCIm, ParamMaxIter}

// ParameterSweep renders Base once per evenly spaced value of Param.
// Zoom values scale the region's extents around its center. Pattern is a
// fmt pattern taking the frame index, e.g. "frame_%03d.png".
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	ParamMin float64
	ParamMax float64
	NumSteps int
	Pattern  string
}

func (s *ParameterSweep) apply(v float64, cfg *config.Config) error {
	switch s.Param {
	case ParamZoom:
		if v <= 0 {
			return fmt.Errorf("zoom must be positive, got %g", v)
		}
		cfg.Region = config.FromRegion(cfg.Region.Region().Zoom(v))
	case ParamCRe:
		cfg.C.Re = v
	case ParamCIm:
		cfg.C.Im = v
	case ParamMaxIter:
		cfg.MaxIter = int(v + 0.5)
	default:
		return fmt.Errorf("unknown sweep parameter: %s (available: %v)", s.Param, SweepParams)
	}
	return nil
}

// SweepResult holds one frame of a sweep
type SweepResult struct {
	ParamValue float64
	Result
}

// checkPattern requires a single verb that formats the frame index into
// distinct paths.
func checkPattern(pattern string) error {
	first, second := fmt.Sprintf(pattern, 0), fmt.Sprintf(pattern, 1)
	if strings.Contains(first, "%!") || first == second {
		return fmt.Errorf("sweep pattern %q needs one integer verb for the frame index, e.g. frame_%%03d.png", pattern)
	}
	return nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, engine *fractal.Engine, log io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if err := checkPattern(sweep.Pattern); err != nil {
		return nil, err
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := sweep.Base.Clone()
		if err := sweep.apply(paramVal, cfg); err != nil {
			return results, err
		}
		cfg.Output = fmt.Sprintf(sweep.Pattern, i)

		res, err := render(engine, cfg)
		if err != nil {
			return results, fmt.Errorf("frame %d: %w", i, err)
		}
		results = append(results, SweepResult{ParamValue: paramVal, Result: res})

		fmt.Fprintf(log, "Sweep %d/%d: %s=%.6g bounded=%.1f%% -> %s\n",
			i+1, sweep.NumSteps, sweep.Param, paramVal, 100*res.Summary.BoundedFraction, res.Path)
	}

	return results, nil
}

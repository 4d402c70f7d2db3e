package automation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/escapegrid/internal/compute"
	"github.com/san-kum/escapegrid/internal/config"
	"github.com/san-kum/escapegrid/internal/fractal"
)

func testEngine() *fractal.Engine {
	return fractal.NewEngine(compute.NewSerialBackend())
}

func smallRegion() *config.RegionConfig {
	return &config.RegionConfig{XMin: -2, XMax: 2, YMin: -2, YMax: 2, Width: 8, Height: 8}
}

func intPtr(v int) *int { return &v }

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	data := fmt.Sprintf(`name: tour
description: two views
steps:
  - fractal: mandelbrot
    preset: seahorse
    max_iter: 50
    save_as: %s
  - fractal: julia
    c: {re: -0.123, im: 0.745}
    region: {x_min: -2, x_max: 2, y_min: -2, y_max: 2, width: 8, height: 8}
    save_as: %s
`, filepath.Join(dir, "a.png"), filepath.Join(dir, "b.json"))
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "tour" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	cfg, err := sc.Steps[0].Config()
	if err != nil {
		t.Fatal(err)
	}
	seahorse := config.GetPreset("mandelbrot", "seahorse")
	if cfg.Region != seahorse.Region || cfg.MaxIter != 50 {
		t.Errorf("expected seahorse region with 50 iterations, got %+v", cfg)
	}

	cfg, err = sc.Steps[1].Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.C.Re != -0.123 || cfg.Region.Width != 8 || cfg.Colormap != config.DefaultJuliaColormap {
		t.Errorf("unexpected julia step %+v", cfg)
	}
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	sc := &Scenario{Steps: []Step{
		{Fractal: "mandelbrot", Region: smallRegion(), MaxIter: intPtr(20), SaveAs: filepath.Join(dir, "m.png")},
		{Fractal: "julia", Region: smallRegion(), SaveAs: filepath.Join(dir, "j.csv")},
	}}

	var log bytes.Buffer
	results, err := RunScenario(context.Background(), sc, testEngine(), &log)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if _, err := os.Stat(r.Path); err != nil {
			t.Errorf("expected %s written: %v", r.Path, err)
		}
		if r.Summary.Cells != 64 {
			t.Errorf("expected 64 cells, got %d", r.Summary.Cells)
		}
	}
	if !strings.Contains(log.String(), "Running step 2/2") {
		t.Errorf("unexpected log:\n%s", log.String())
	}
}

func TestStepZeroIterations(t *testing.T) {
	unset := Step{Region: smallRegion()}
	cfg, err := unset.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxIter != config.DefaultConfig().MaxIter {
		t.Errorf("expected default iterations, got %d", cfg.MaxIter)
	}

	path := filepath.Join(t.TempDir(), "zero.json")
	sc := &Scenario{Steps: []Step{{Region: smallRegion(), MaxIter: intPtr(0), SaveAs: path}}}
	results, err := RunScenario(context.Background(), sc, testEngine(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if results[0].Params.MaxIter != 0 || results[0].Summary.Max != 0 {
		t.Errorf("expected an all-zero grid, got %+v", results[0].Summary)
	}
}

func TestRunScenarioStopsAtBadStep(t *testing.T) {
	dir := t.TempDir()
	sc := &Scenario{Steps: []Step{
		{Region: smallRegion(), SaveAs: filepath.Join(dir, "ok.png")},
		{Preset: "nope", SaveAs: filepath.Join(dir, "bad.png")},
		{Region: smallRegion(), SaveAs: filepath.Join(dir, "never.png")},
	}}

	results, err := RunScenario(context.Background(), sc, testEngine(), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "step 2") {
		t.Errorf("expected step 2 error, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result before the failure, got %d", len(results))
	}

	bad := Step{Region: &config.RegionConfig{XMin: 1, XMax: 0, YMin: 0, YMax: 1, Width: 4, Height: 4}}
	if _, err := bad.Config(); !errors.Is(err, fractal.ErrInvalidRegion) {
		t.Errorf("expected ErrInvalidRegion, got %v", err)
	}
}

func TestRunScenarioCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := &Scenario{Steps: []Step{{Region: smallRegion(), SaveAs: filepath.Join(t.TempDir(), "x.png")}}}
	results, err := RunScenario(ctx, sc, testEngine(), &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRunSweepJuliaConstant(t *testing.T) {
	base := config.DefaultJuliaConfig()
	base.Region = *smallRegion()
	sweep := &ParameterSweep{
		Base:     base,
		Param:    ParamCRe,
		ParamMin: -0.8,
		ParamMax: -0.4,
		NumSteps: 3,
		Pattern:  filepath.Join(t.TempDir(), "frame_%02d.json"),
	}

	results, err := RunSweep(context.Background(), sweep, testEngine(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(results))
	}
	if results[2].ParamValue != -0.4 || real(results[2].Params.C) != -0.4 {
		t.Errorf("expected last c.re -0.4, got %v", results[2].Params.C)
	}
	if !strings.HasSuffix(results[1].Path, "frame_01.json") {
		t.Errorf("unexpected path %s", results[1].Path)
	}
	if base.C.Re != -0.7 {
		t.Error("sweep modified its base config")
	}
}

func TestRunSweepZoom(t *testing.T) {
	base := config.DefaultConfig()
	base.Region.Width, base.Region.Height = 8, 8
	sweep := &ParameterSweep{
		Base:     base,
		Param:    ParamZoom,
		ParamMin: 1,
		ParamMax: 0.25,
		NumSteps: 4,
		Pattern:  filepath.Join(t.TempDir(), "zoom_%d.png"),
	}

	results, err := RunSweep(context.Background(), sweep, testEngine(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	prev := 5.0
	for _, r := range results {
		w, _ := r.Params.Region.Span()
		if w >= prev {
			t.Errorf("expected shrinking span, got %f after %f", w, prev)
		}
		prev = w
	}
}

func TestRunSweepErrors(t *testing.T) {
	base := config.DefaultConfig()
	tests := []*ParameterSweep{
		{Base: base, Param: "gamma", ParamMin: 0, ParamMax: 1, NumSteps: 2, Pattern: "x_%d.png"},
		{Base: base, Param: ParamZoom, ParamMin: 0, ParamMax: 1, NumSteps: 2, Pattern: "x_%d.png"},
		{Base: base, Param: ParamCRe, NumSteps: 0, Pattern: "x_%d.png"},
		{Base: base, Param: ParamCRe, NumSteps: 2, Pattern: "frame.png"},
		{Base: base, Param: ParamCRe, NumSteps: 1, Pattern: "frame_%s.png"},
	}

	for _, sw := range tests {
		if _, err := RunSweep(context.Background(), sw, testEngine(), &bytes.Buffer{}); err == nil {
			t.Errorf("expected error for %s/%d %q", sw.Param, sw.NumSteps, sw.Pattern)
		}
	}
}

func TestRunSweepRejectsPatternBeforeRendering(t *testing.T) {
	dir := t.TempDir()
	sw := &ParameterSweep{
		Base:     config.DefaultConfig(),
		Param:    ParamCRe,
		NumSteps: 2,
		Pattern:  filepath.Join(dir, "frame.png"),
	}
	results, err := RunSweep(context.Background(), sw, testEngine(), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "frame index") {
		t.Errorf("expected pattern error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no frames, got %d", len(results))
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected nothing written, got %d files", len(entries))
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/san-kum/escapegrid/internal/fractal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFractal  = "mandelbrot"
	DefaultMaxIter  = 100
	DefaultWidth    = 512
	DefaultHeight   = 512
	DefaultColormap = "jet"
	DefaultBackend  = "auto"
	DefaultOutput   = "mandelbrot.png"

	DefaultJuliaWidth    = 800
	DefaultJuliaHeight   = 800
	DefaultJuliaColormap = "hot"
	DefaultJuliaOutput   = "julia.png"
)

var DefaultJuliaC = ComplexConfig{Re: -0.7, Im: 0.27}

type Config struct {
	Fractal  string        `yaml:"fractal"`
	Region   RegionConfig  `yaml:"region"`
	MaxIter  int           `yaml:"max_iter"`
	C        ComplexConfig `yaml:"c"`
	Colormap string        `yaml:"colormap"`
	Backend  string        `yaml:"backend"`
	Workers  int           `yaml:"workers"`
	Output   string        `yaml:"output"`
}

type RegionConfig struct {
	XMin   float64 `yaml:"x_min"`
	XMax   float64 `yaml:"x_max"`
	YMin   float64 `yaml:"y_min"`
	YMax   float64 `yaml:"y_max"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

type ComplexConfig struct {
	Re float64 `yaml:"re"`
	Im float64 `yaml:"im"`
}

func (c ComplexConfig) Complex() complex128 {
	return complex(c.Re, c.Im)
}

func (r RegionConfig) Region() fractal.Region {
	return fractal.Region{
		XMin:   r.XMin,
		XMax:   r.XMax,
		YMin:   r.YMin,
		YMax:   r.YMax,
		Width:  r.Width,
		Height: r.Height,
	}
}

func FromRegion(r fractal.Region) RegionConfig {
	return RegionConfig{
		XMin:   r.XMin,
		XMax:   r.XMax,
		YMin:   r.YMin,
		YMax:   r.YMax,
		Width:  r.Width,
		Height: r.Height,
	}
}

// DefaultConfig is the full Mandelbrot set on a 512x512 grid.
func DefaultConfig() *Config {
	return &Config{
		Fractal: DefaultFractal,
		Region: RegionConfig{
			XMin: -2.5, XMax: 1.5, YMin: -2, YMax: 2,
			Width: DefaultWidth, Height: DefaultHeight,
		},
		MaxIter:  DefaultMaxIter,
		C:        DefaultJuliaC,
		Colormap: DefaultColormap,
		Backend:  DefaultBackend,
		Output:   DefaultOutput,
	}
}

// DefaultJuliaConfig is the c = -0.7+0.27i Julia set on an 800x800 grid.
func DefaultJuliaConfig() *Config {
	return &Config{
		Fractal: string(fractal.Julia),
		Region: RegionConfig{
			XMin: -2, XMax: 2, YMin: -2, YMax: 2,
			Width: DefaultJuliaWidth, Height: DefaultJuliaHeight,
		},
		MaxIter:  DefaultMaxIter,
		C:        DefaultJuliaC,
		Colormap: DefaultJuliaColormap,
		Backend:  DefaultBackend,
		Output:   DefaultJuliaOutput,
	}
}

// DefaultFor returns the default configuration of a fractal kind.
func DefaultFor(kind string) *Config {
	if kind == string(fractal.Julia) {
		return DefaultJuliaConfig()
	}
	return DefaultConfig()
}

// Load reads a YAML file over the defaults of the fractal it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Fractal string `yaml:"fractal"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return decodeOver(path, data, DefaultFor(probe.Fractal))
}

// Overlay reads a YAML file over a copy of base. Keys missing from the
// file keep base's values.
func Overlay(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeOver(path, data, base.Clone())
}

func decodeOver(path string, data []byte, cfg *Config) (*Config, error) {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Params converts the configuration into kernel input.
func (c *Config) Params() (fractal.Params, error) {
	kind, err := fractal.ParseKind(c.Fractal)
	if err != nil {
		return fractal.Params{}, err
	}
	return fractal.Params{
		Kind:    kind,
		Region:  c.Region.Region(),
		MaxIter: c.MaxIter,
		C:       c.C.Complex(),
	}, nil
}

func (c *Config) Validate() error {
	p, err := c.Params()
	if err != nil {
		return err
	}
	return p.Validate()
}

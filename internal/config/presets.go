package config

import "sort"

func mandelPreset(xmin, xmax, ymin, ymax float64, maxIter int) *Config {
	cfg := DefaultConfig()
	cfg.Region.XMin, cfg.Region.XMax = xmin, xmax
	cfg.Region.YMin, cfg.Region.YMax = ymin, ymax
	cfg.MaxIter = maxIter
	return cfg
}

func juliaPreset(re, im float64, maxIter int) *Config {
	cfg := DefaultJuliaConfig()
	cfg.C = ComplexConfig{Re: re, Im: im}
	cfg.MaxIter = maxIter
	return cfg
}

var Presets = map[string]map[string]*Config{
	"mandelbrot": {
		"full":     mandelPreset(-2.5, 1.5, -2, 2, 100),
		"seahorse": mandelPreset(-0.8, -0.7, 0.05, 0.15, 500),
		// large bulb with trunk-like tendrils
		"elephant":      mandelPreset(0.25, 0.35, -0.05, 0.05, 500),
		"spiral":        mandelPreset(-0.7435, -0.7420, 0.1310, 0.1325, 1000),
		"triple_spiral": mandelPreset(-0.7480, -0.7450, 0.0950, 0.0980, 1000),
		"dragon":        mandelPreset(-0.7400, -0.7350, 0.1800, 0.1850, 1000),
		"minibrot":      mandelPreset(-1.7390, -1.7375, -0.0235, -0.0220, 1500),
	},
	"julia": {
		"classic":   juliaPreset(-0.7, 0.27, 100),
		"dendrite":  juliaPreset(0, 1, 200),
		"rabbit":    juliaPreset(-0.123, 0.745, 200),
		"siegel":    juliaPreset(-0.391, -0.587, 300),
		"san_marco": juliaPreset(-0.75, 0, 200),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(fractal, preset string) *Config {
	presets, ok := Presets[fractal]
	if !ok {
		return nil
	}
	cfg, ok := presets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(fractal string) []string {
	presets, ok := Presets[fractal]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

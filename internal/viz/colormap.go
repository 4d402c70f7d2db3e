package viz

import (
	"fmt"
	"image/color"
	"math"
	"sort"
)

// stop is one breakpoint of a piecewise linear channel.
type stop struct {
	at, v float64
}

// Colormap maps a normalized value in [0, 1] to a color. Channels are
// piecewise linear between stops, the same segment data matplotlib uses.
type Colormap struct {
	Name    string
	r, g, b []stop
}

var (
	Jet = Colormap{
		Name: "jet",
		r:    []stop{{0, 0}, {0.35, 0}, {0.66, 1}, {0.89, 1}, {1, 0.5}},
		g:    []stop{{0, 0}, {0.125, 0}, {0.375, 1}, {0.64, 1}, {0.91, 0}, {1, 0}},
		b:    []stop{{0, 0.5}, {0.11, 1}, {0.34, 1}, {0.65, 0}, {1, 0}},
	}

	Hot = Colormap{
		Name: "hot",
		r:    []stop{{0, 0.0416}, {0.365079, 1}, {1, 1}},
		g:    []stop{{0, 0}, {0.365079, 0}, {0.746032, 1}, {1, 1}},
		b:    []stop{{0, 0}, {0.746032, 0}, {1, 1}},
	}

	Gray = Colormap{
		Name: "gray",
		r:    []stop{{0, 0}, {1, 1}},
		g:    []stop{{0, 0}, {1, 1}},
		b:    []stop{{0, 0}, {1, 1}},
	}

	Cool = Colormap{
		Name: "cool",
		r:    []stop{{0, 0}, {1, 1}},
		g:    []stop{{0, 1}, {1, 0}},
		b:    []stop{{0, 1}, {1, 1}},
	}

	Colormaps = []Colormap{Jet, Hot, Gray, Cool}
)

// GetColormap returns a colormap by name.
func GetColormap(name string) (Colormap, error) {
	for _, c := range Colormaps {
		if c.Name == name {
			return c, nil
		}
	}
	return Colormap{}, fmt.Errorf("unknown colormap: %s (available: %v)", name, ColormapNames())
}

func ColormapNames() []string {
	names := make([]string, len(Colormaps))
	for i, c := range Colormaps {
		names[i] = c.Name
	}
	sort.Strings(names)
	return names
}

// NextColormap cycles through Colormaps in declaration order.
func NextColormap(current string) Colormap {
	for i, c := range Colormaps {
		if c.Name == current {
			return Colormaps[(i+1)%len(Colormaps)]
		}
	}
	return Colormaps[0]
}

func channel(stops []stop, t float64) float64 {
	if t <= stops[0].at {
		return stops[0].v
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].at {
			lo, hi := stops[i-1], stops[i]
			f := (t - lo.at) / (hi.at - lo.at)
			return lo.v + f*(hi.v-lo.v)
		}
	}
	return stops[len(stops)-1].v
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// At returns the opaque color for t, clamped to [0, 1]. NaN maps to 0.
func (c Colormap) At(t float64) color.RGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: to8(channel(c.r, t)),
		G: to8(channel(c.g, t)),
		B: to8(channel(c.b, t)),
		A: 0xff,
	}
}

// Hex returns the color for t as #rrggbb.
func (c Colormap) Hex(t float64) string {
	col := c.At(t)
	return fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
}

// Normalizer scales counts linearly so that Lo maps to 0 and Hi to 1.
// When Lo == Hi every count maps to 0.
type Normalizer struct {
	Lo, Hi int
}

func (n Normalizer) Scale(v int) float64 {
	if n.Hi <= n.Lo {
		return 0
	}
	return float64(v-n.Lo) / float64(n.Hi-n.Lo)
}

// Palette precomputes one color per count in [lo, hi].
func (c Colormap) Palette(n Normalizer) []color.RGBA {
	size := n.Hi - n.Lo + 1
	if size < 1 {
		size = 1
	}
	p := make([]color.RGBA, size)
	for i := range p {
		p[i] = c.At(n.Scale(n.Lo + i))
	}
	return p
}

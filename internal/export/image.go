package export

import (
	"image"
	"image/png"
	"io"

	"github.com/san-kum/escapegrid/internal/fractal"
	"github.com/san-kum/escapegrid/internal/viz"
)

// Image colors each cell by its count scaled to the grid's own range.
// Pixel row 0 is the grid's last row, so the imaginary axis points up.
func Image(g *fractal.Grid, cmap viz.Colormap) *image.RGBA {
	lo, hi := g.Bounds()
	palette := cmap.Palette(viz.Normalizer{Lo: lo, Hi: hi})

	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	top := g.Height() - 1
	g.Each(func(x, y, v int) {
		img.SetRGBA(x, top-y, palette[v-lo])
	})
	return img
}

func EncodePNG(w io.Writer, g *fractal.Grid, cmap viz.Colormap) error {
	return png.Encode(w, Image(g, cmap))
}

func WritePNG(path string, g *fractal.Grid, cmap viz.Colormap) error {
	return createFile(path, func(w io.Writer) error {
		return EncodePNG(w, g, cmap)
	})
}

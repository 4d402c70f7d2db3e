package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/escapegrid/internal/fractal"
	"github.com/san-kum/escapegrid/internal/viz"
)

const (
	plotWidth    = 480.0
	minPlotH     = 120.0
	maxPlotH     = 960.0
	marginLeft   = 70.0
	marginTop    = 40.0
	marginRight  = 110.0
	marginBottom = 50.0
	barWidth     = 16.0
	numTicks     = 5
	barStops     = 16
)

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// FigureSVG lays the grid out as a titled figure: the raster stretched
// over the region's extent with tick labels on both axes and a vertical
// colorbar spanning the grid's count range.
func FigureSVG(g *fractal.Grid, r fractal.Region, cmap viz.Colormap, title string) (string, error) {
	var raster bytes.Buffer
	if err := EncodePNG(&raster, g, cmap); err != nil {
		return "", err
	}

	pw := plotWidth
	ph := math.Min(math.Max(pw/r.Aspect(), minPlotH), maxPlotH)
	width := marginLeft + pw + marginRight
	height := marginTop + ph + marginBottom
	bottom := marginTop + ph

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="sans-serif" font-size="12">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="16">%s</text>
`, marginLeft+pw/2, marginTop/2+6, html.EscapeString(title)))

	sb.WriteString(fmt.Sprintf(`<image x="%.1f" y="%.1f" width="%.1f" height="%.1f" preserveAspectRatio="none" style="image-rendering:pixelated" href="data:image/png;base64,%s"/>
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#000000"/>
`, marginLeft, marginTop, pw, ph, base64.StdEncoding.EncodeToString(raster.Bytes()),
		marginLeft, marginTop, pw, ph))

	for i := 0; i < numTicks; i++ {
		t := float64(i) / (numTicks - 1)

		x := marginLeft + t*pw
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000"/>
<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
`, x, bottom, x, bottom+5, x, bottom+18, tickLabel(r.XMin+t*(r.XMax-r.XMin))))

		y := bottom - t*ph
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000"/>
<text x="%.1f" y="%.1f" text-anchor="end">%s</text>
`, marginLeft-5, y, marginLeft, y, marginLeft-8, y+4, tickLabel(r.YMin+t*(r.YMax-r.YMin))))
	}

	// colorbar, low counts at the bottom
	lo, hi := g.Bounds()
	bx := marginLeft + pw + 20
	sb.WriteString(`<defs><linearGradient id="colorbar" x1="0" y1="1" x2="0" y2="0">
`)
	for i := 0; i < barStops; i++ {
		t := float64(i) / (barStops - 1)
		sb.WriteString(fmt.Sprintf(`<stop offset="%.3f" stop-color="%s"/>
`, t, cmap.Hex(t)))
	}
	sb.WriteString("</linearGradient></defs>\n")
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#colorbar)" stroke="#000000"/>
`, bx, marginTop, barWidth, ph))

	for i := 0; i < numTicks; i++ {
		t := float64(i) / (numTicks - 1)
		y := bottom - t*ph
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f">%s</text>
`, bx+barWidth+6, y+4, tickLabel(float64(lo)+t*float64(hi-lo))))
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// CanvasToSVG draws a Braille canvas as one circle per raised dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 dots per char
	height := float64(canvas.Height) * scale * 4 // 4 dots per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill))

	r := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, r))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

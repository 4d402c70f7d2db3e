package viz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/escapegrid/internal/fractal"
)

const upperHalf = "▀"

func lipColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// HalfBlocks renders the grid with one character per column and two grid
// rows per line: the upper half block takes the upper row as foreground
// and the lower row as background. The last grid row is printed first.
func HalfBlocks(g *fractal.Grid, cmap Colormap) string {
	lo, hi := g.Bounds()
	norm := Normalizer{Lo: lo, Hi: hi}
	palette := cmap.Palette(norm)

	styles := make(map[[2]int]lipgloss.Style)
	cell := func(upper, lower int) string {
		key := [2]int{upper, lower}
		st, ok := styles[key]
		if !ok {
			st = lipgloss.NewStyle().Foreground(lipColor(palette[upper-lo]))
			if lower >= 0 {
				st = st.Background(lipColor(palette[lower-lo]))
			}
			styles[key] = st
		}
		return st.Render(upperHalf)
	}

	var b strings.Builder
	for y := g.Height() - 1; y >= 0; y -= 2 {
		for x := 0; x < g.Width(); x++ {
			lower := -1
			if y > 0 {
				lower = g.At(x, y-1)
			}
			b.WriteString(cell(g.At(x, y), lower))
		}
		if y > 1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ColorBar renders a horizontal legend of width cells labelled with the
// count range.
func ColorBar(cmap Colormap, lo, hi, width int) string {
	if width < 1 {
		width = 1
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		t := 0.0
		if width > 1 {
			t = float64(i) / float64(width-1)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipColor(cmap.At(t))).Render("█"))
	}
	return fmt.Sprintf("%s %s %s",
		MetricLabel.Render(fmt.Sprint(lo)),
		b.String(),
		MetricLabel.Render(fmt.Sprint(hi)))
}

// Figure lays out a titled heatmap with imaginary-axis labels on the left,
// real-axis labels underneath and a colorbar legend.
func Figure(title string, g *fractal.Grid, r fractal.Region, cmap Colormap) string {
	body := HalfBlocks(g, cmap)
	lines := strings.Count(body, "\n") + 1

	yTop := fmt.Sprintf("%.4g", r.YMax)
	yBot := fmt.Sprintf("%.4g", r.YMin)
	labelW := lipgloss.Width(yTop)
	if w := lipgloss.Width(yBot); w > labelW {
		labelW = w
	}

	axis := make([]string, lines)
	for i := range axis {
		axis[i] = strings.Repeat(" ", labelW)
	}
	axis[0] = fmt.Sprintf("%*s", labelW, yTop)
	if lines > 1 {
		axis[lines-1] = fmt.Sprintf("%*s", labelW, yBot)
	}
	yAxis := MetricLabel.Render(strings.Join(axis, "\n"))

	xLeft := fmt.Sprintf("%.4g", r.XMin)
	xRight := fmt.Sprintf("%.4g", r.XMax)
	gap := g.Width() - len(xLeft) - len(xRight)
	if gap < 1 {
		gap = 1
	}
	xAxis := strings.Repeat(" ", labelW+1) + MetricLabel.Render(xLeft+strings.Repeat(" ", gap)+xRight)

	lo, hi := g.Bounds()
	plot := lipgloss.JoinHorizontal(lipgloss.Top, yAxis, " ", body)

	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(title),
		plot,
		xAxis,
		"",
		strings.Repeat(" ", labelW+1)+ColorBar(cmap, lo, hi, min(g.Width(), 40)),
	)
}

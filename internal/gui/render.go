package gui

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	numTicks  = 5
	tickLen   = 5
	labelSize = 12
	barGap    = 30
	barWidth  = 20
)

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// drawAxes labels both axes of the plot with the region bounds; the
// imaginary axis increases upward.
func (a *App) drawAxes() {
	r := a.shown
	p := a.plot
	bottom := p.Y + p.Height

	for i := 0; i < numTicks; i++ {
		t := float32(i) / (numTicks - 1)

		x := p.X + t*p.Width
		rl.DrawLine(int32(x), int32(bottom), int32(x), int32(bottom)+tickLen, ColAccent)
		label := tickLabel(r.XMin + float64(t)*(r.XMax-r.XMin))
		w := rl.MeasureText(label, labelSize)
		rl.DrawText(label, int32(x)-w/2, int32(bottom)+tickLen+4, labelSize, ColText)

		y := bottom - t*p.Height
		rl.DrawLine(int32(p.X)-tickLen, int32(y), int32(p.X), int32(y), ColAccent)
		label = tickLabel(r.YMin + float64(t)*(r.YMax-r.YMin))
		w = rl.MeasureText(label, labelSize)
		rl.DrawText(label, int32(p.X)-tickLen-6-w, int32(y)-labelSize/2, labelSize, ColText)
	}

	rl.DrawText("Re", int32(p.X+p.Width/2)-6, int32(bottom)+28, labelSize, ColTextDim)
	rl.DrawText("Im", int32(p.X)-70, int32(p.Y+p.Height/2), labelSize, ColTextDim)
}

// drawColorbar draws the colormap over the grid's count range, low
// counts at the bottom.
func (a *App) drawColorbar() {
	if a.grid == nil {
		return
	}
	p := a.plot
	x := int32(p.X+p.Width) + barGap
	top := int32(p.Y)
	h := int32(p.Height)

	for i := int32(0); i < h; i++ {
		t := 1.0
		if h > 1 {
			t = 1 - float64(i)/float64(h-1)
		}
		rl.DrawRectangle(x, top+i, barWidth, 1, a.cmap.At(t))
	}
	rl.DrawRectangleLines(x, top, barWidth, h, ColAccent)

	lo, hi := a.grid.Bounds()
	for i := 0; i < numTicks; i++ {
		t := float64(i) / (numTicks - 1)
		y := top + h - int32(t*float64(h))
		rl.DrawText(tickLabel(float64(lo)+t*float64(hi-lo)), x+barWidth+6, y-labelSize/2, labelSize, ColText)
	}
	rl.DrawText(a.cmap.Name, x, top+h+12, labelSize, ColTextDim)
}

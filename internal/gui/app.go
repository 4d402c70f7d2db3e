package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/escapegrid/internal/export"
	"github.com/san-kum/escapegrid/internal/fractal"
	"github.com/san-kum/escapegrid/internal/viz"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColAlert   = rl.NewColor(230, 80, 80, 255)
)

const (
	screenW = 1280
	screenH = 720

	plotLeft   = 90
	plotTop    = 60
	plotRight  = 150 // room for the colorbar
	plotBottom = 70

	panStep  = 0.1
	zoomIn   = 0.8
	zoomOut  = 1.25
	maxIters = 1 << 16
)

type App struct {
	engine  *fractal.Engine
	params  fractal.Params
	initial fractal.Params
	cmap    viz.Colormap

	grid    *fractal.Grid
	shown   fractal.Region
	tex     rl.Texture2D
	hasTex  bool
	plot    rl.Rectangle
	elapsed time.Duration
	err     error
	status  string
	quit    bool
}

func initWindow() {
	rl.InitWindow(screenW, screenH, "escapegrid")
	rl.SetTargetFPS(60)
}

// NewApp computes the first grid; the window must already be open.
func NewApp(engine *fractal.Engine, p fractal.Params, cmap viz.Colormap) *App {
	a := &App{
		engine:  engine,
		params:  p,
		initial: p,
		cmap:    cmap,
	}
	a.recompute()
	return a
}

// Run opens the window and blocks until it is closed.
func Run(engine *fractal.Engine, p fractal.Params, cmap viz.Colormap) error {
	if err := p.Validate(); err != nil {
		return err
	}

	initWindow()
	defer rl.CloseWindow()

	app := NewApp(engine, p, cmap)
	defer app.unload()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// layout fits the plot to the window with the region's aspect ratio and
// sets the grid resolution to one cell per screen pixel.
func (a *App) layout() {
	maxW := float32(screenW - plotLeft - plotRight)
	maxH := float32(screenH - plotTop - plotBottom)
	aspect := float32(a.params.Region.Aspect())

	w, h := maxH*aspect, maxH
	if w > maxW {
		w, h = maxW, maxW/aspect
	}
	w, h = max(w, 1), max(h, 1)

	a.plot = rl.NewRectangle(plotLeft, plotTop, float32(int(w)), float32(int(h)))
	a.params.Region = a.params.Region.WithResolution(int(w), int(h))
}

func (a *App) recompute() {
	a.layout()

	start := time.Now()
	g, err := a.engine.Compute(a.params)
	a.elapsed = time.Since(start)
	if err != nil {
		a.err = err
		return
	}

	a.err = nil
	a.grid = g
	a.shown = a.params.Region
	a.upload()
}

func (a *App) upload() {
	if a.grid == nil {
		return
	}
	img := rl.NewImageFromImage(export.Image(a.grid, a.cmap))
	if a.hasTex {
		rl.UnloadTexture(a.tex)
	}
	a.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	a.hasTex = true
}

func (a *App) unload() {
	if a.hasTex {
		rl.UnloadTexture(a.tex)
		a.hasTex = false
	}
}

// complexAt maps a screen position inside the plot to the plane.
func (a *App) complexAt(m rl.Vector2) (complex128, bool) {
	if !rl.CheckCollisionPointRec(m, a.plot) {
		return 0, false
	}
	u := float64((m.X - a.plot.X) / a.plot.Width)
	v := float64((m.Y - a.plot.Y) / a.plot.Height)
	r := a.shown
	return complex(r.XMin+u*(r.XMax-r.XMin), r.YMax-v*(r.YMax-r.YMin)), true
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	r := a.params.Region
	changed := true

	switch wheel := rl.GetMouseWheelMove(); {
	case wheel != 0:
		factor := zoomIn
		if wheel < 0 {
			factor = zoomOut
		}
		if p, ok := a.complexAt(rl.GetMousePosition()); ok {
			a.params.Region = r.ZoomAt(p, factor)
		} else {
			a.params.Region = r.Zoom(factor)
		}
	case rl.IsKeyPressed(rl.KeyLeft):
		a.params.Region = r.Pan(-panStep, 0)
	case rl.IsKeyPressed(rl.KeyRight):
		a.params.Region = r.Pan(panStep, 0)
	case rl.IsKeyPressed(rl.KeyUp):
		a.params.Region = r.Pan(0, panStep)
	case rl.IsKeyPressed(rl.KeyDown):
		a.params.Region = r.Pan(0, -panStep)
	case rl.IsKeyPressed(rl.KeyEqual):
		a.params.Region = r.Zoom(zoomIn)
	case rl.IsKeyPressed(rl.KeyMinus):
		a.params.Region = r.Zoom(zoomOut)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		a.params.MaxIter = min(max(a.params.MaxIter*2, 1), maxIters)
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		a.params.MaxIter = max(a.params.MaxIter/2, 1)
	case rl.IsKeyPressed(rl.KeyR):
		a.params = a.initial
	default:
		changed = false
	}

	if rl.IsKeyPressed(rl.KeyC) {
		a.cmap = viz.NextColormap(a.cmap.Name)
		a.upload()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.save()
	}

	if changed {
		a.recompute()
	}
}

func (a *App) save() {
	if a.grid == nil {
		return
	}
	path := fmt.Sprintf("%s_%d.png", a.params.Kind, time.Now().Unix())
	if err := export.WritePNG(path, a.grid, a.cmap); err != nil {
		a.status = "save failed: " + err.Error()
		return
	}
	a.status = "saved " + path
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.hasTex {
		rl.DrawTexture(a.tex, int32(a.plot.X), int32(a.plot.Y), rl.White)
	}
	rl.DrawRectangleLinesEx(a.plot, 1, ColAccent)

	a.drawAxes()
	a.drawColorbar()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	title := fmt.Sprintf("%s  ::  max_iter %d", a.params.Kind, a.params.MaxIter)
	if a.params.Kind == fractal.Julia {
		title += fmt.Sprintf("  ::  c = %.4g", a.params.C)
	}
	drawText("escapegrid", 30, 20, 24, ColSelect)
	drawText(title, 200, 24, 16, ColText)

	timing := fmt.Sprintf("%dx%d in %s", a.shown.Width, a.shown.Height, a.elapsed.Round(time.Microsecond))
	drawText(timing, screenW-260, 24, 16, ColText)

	if a.err != nil {
		drawText(a.err.Error(), 30, screenH-50, 14, ColAlert)
	} else if a.status != "" {
		drawText(a.status, 30, screenH-50, 14, ColAccent)
	}

	drawText("[WHEEL] ZOOM  [ARROWS] PAN  [ [ ] ] ITER  [C] CMAP  [S] SAVE  [R] RESET  [ESC] QUIT", 400, screenH-26, 14, ColTextDim)
	drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, screenH-26, 14, ColTextDim)
}

func drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

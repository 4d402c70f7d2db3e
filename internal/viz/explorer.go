package viz

import (
	"fmt"
	"maps"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/escapegrid/internal/analysis"
	"github.com/san-kum/escapegrid/internal/fractal"
)

const (
	panelWidth  = 36
	minIter     = 1
	maxIter     = 1 << 16
	panStep     = 0.1
	zoomIn      = 0.8
	zoomOut     = 1.25
	constStep   = 0.01
	chromeLines = 6
)

type gridMsg struct {
	seq     int
	grid    *fractal.Grid
	elapsed time.Duration
	err     error
}

// Explorer is a bubbletea model that recomputes the grid after every
// navigation key and draws it with half blocks.
type Explorer struct {
	engine   *fractal.Engine
	params   fractal.Params
	initial  map[fractal.Kind]fractal.Params
	saved    map[fractal.Kind]fractal.Params
	cmap     Colormap
	theme    Theme
	grid     *fractal.Grid
	shown    fractal.Region
	elapsed  time.Duration
	err      error
	seq      int
	pending  bool
	showHelp bool
	width    int
	height   int
}

// NewExplorer starts from p. initial holds the reset target of each kind;
// kinds missing from it reset to p's region.
func NewExplorer(engine *fractal.Engine, p fractal.Params, initial map[fractal.Kind]fractal.Params, cmap Colormap) Explorer {
	starts := make(map[fractal.Kind]fractal.Params, len(fractal.Kinds))
	for _, k := range fractal.Kinds {
		start := p
		start.Kind = k
		if q, ok := initial[k]; ok {
			start = q
		}
		starts[k] = start
	}
	starts[p.Kind] = p

	return Explorer{
		engine:  engine,
		params:  p,
		initial: starts,
		saved:   maps.Clone(starts),
		cmap:    cmap,
		theme:   Themes[0],
		pending: true,
		width:   80 + panelWidth,
		height:  24 + chromeLines,
	}
}

// WithTheme selects a theme by name; unknown names keep the first theme.
func (m Explorer) WithTheme(name string) Explorer {
	m.theme = GetTheme(name)
	return m
}

func (m Explorer) Params() fractal.Params { return m.params }
func (m Explorer) Grid() *fractal.Grid    { return m.grid }

func (m Explorer) Init() tea.Cmd {
	return m.computeCmd()
}

// plotSize is the grid resolution that fills the space left of the panel.
func (m Explorer) plotSize() (int, int) {
	w := m.width - panelWidth - 10
	h := (m.height - chromeLines) * 2
	return max(w, 8), max(h, 4)
}

func (m *Explorer) compute() tea.Cmd {
	m.seq++
	m.pending = true
	return m.computeCmd()
}

// computeCmd computes the current params in the background, tagged with
// the current sequence number so stale results are dropped.
func (m Explorer) computeCmd() tea.Cmd {
	w, h := m.plotSize()
	p := m.params
	p.Region = p.Region.WithResolution(w, h)
	seq := m.seq
	engine := m.engine

	return func() tea.Msg {
		start := time.Now()
		g, err := engine.Compute(p)
		return gridMsg{seq: seq, grid: g, elapsed: time.Since(start), err: err}
	}
}

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.compute()
	case gridMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.pending = false
		m.err = msg.err
		if msg.err == nil {
			m.grid = msg.grid
			m.elapsed = msg.elapsed
			w, h := m.plotSize()
			m.shown = m.params.Region.WithResolution(w, h)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.params.Region
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "c":
		m.cmap = NextColormap(m.cmap.Name)
		return m, nil
	case "t":
		m.theme = NextTheme(m.theme.Name)
		return m, nil
	case "left", "h":
		m.params.Region = r.Pan(-panStep, 0)
	case "right", "l":
		m.params.Region = r.Pan(panStep, 0)
	case "up", "k":
		m.params.Region = r.Pan(0, panStep)
	case "down", "j":
		m.params.Region = r.Pan(0, -panStep)
	case "+", "=":
		m.params.Region = r.Zoom(zoomIn)
	case "-", "_":
		m.params.Region = r.Zoom(zoomOut)
	case "]":
		m.params.MaxIter = min(max(m.params.MaxIter*2, minIter), maxIter)
	case "[":
		m.params.MaxIter = max(m.params.MaxIter/2, minIter)
	case "x":
		m.params.C -= complex(constStep, 0)
	case "X":
		m.params.C += complex(constStep, 0)
	case "y":
		m.params.C -= complex(0, constStep)
	case "Y":
		m.params.C += complex(0, constStep)
	case "f":
		// copy on write: older model values keep their own view
		m.saved = maps.Clone(m.saved)
		m.saved[m.params.Kind] = m.params
		next := fractal.Mandelbrot
		if m.params.Kind == fractal.Mandelbrot {
			next = fractal.Julia
		}
		m.params = m.saved[next]
	case "r":
		m.params = m.initial[m.params.Kind]
	default:
		return m, nil
	}
	return m, m.compute()
}

func (m Explorer) View() string {
	th := m.theme

	var left string
	switch {
	case m.grid != nil:
		left = Figure(GradientText(" "+string(m.params.Kind)+" ", m.cmap), m.grid, m.shown, m.cmap)
	case m.err != nil:
		left = StatusError.Render(m.err.Error())
	default:
		left = StatusComputing.Render("computing...")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", m.panel(th))
}

func (m Explorer) panel(th Theme) string {
	label, value := th.label(), th.value()
	row := func(k, v string) string {
		return label.Render(fmt.Sprintf("%-9s", k)) + value.Render(v)
	}

	r := m.params.Region
	lines := []string{
		th.accent().Render("escapegrid"),
		"",
		row("kind", string(m.params.Kind)),
		row("re", fmt.Sprintf("[%.6g, %.6g]", r.XMin, r.XMax)),
		row("im", fmt.Sprintf("[%.6g, %.6g]", r.YMin, r.YMax)),
		row("iter", fmt.Sprint(m.params.MaxIter)),
	}
	if m.params.Kind == fractal.Julia {
		lines = append(lines, row("c", fmt.Sprintf("%.4g", m.params.C)))
	}
	lines = append(lines,
		row("cmap", m.cmap.Name),
		row("theme", th.Name),
	)

	status := StatusReady.Render("ready")
	if m.pending {
		status = StatusComputing.Render(AnimatedSpinner(m.seq) + " computing")
	} else if m.err != nil {
		status = StatusError.Render("error")
	}
	lines = append(lines, row("status", status), row("time", m.elapsed.Round(time.Microsecond).String()))

	if m.grid != nil {
		s := analysis.Summarize(m.grid)
		lines = append(lines,
			"",
			Separator(panelWidth-4),
			row("mean", fmt.Sprintf("%.2f", s.Mean)),
			row("bounded", fmt.Sprintf("%.1f%%", 100*s.BoundedFraction)),
			ProgressBar(s.BoundedFraction, panelWidth-6),
			label.Render("row profile"),
			SparklineChart(analysis.RowProfile(m.grid), panelWidth-6),
			label.Render("histogram"),
			asciigraph.Plot(analysis.Trim(analysis.HistogramFloat(m.grid)),
				asciigraph.Height(5),
				asciigraph.Width(panelWidth-14),
			),
		)
	}

	if m.showHelp {
		lines = append(lines, "", KeyHint.Render(helpText))
	} else {
		lines = append(lines, "", KeyHint.Render("? help  q quit"))
	}

	return th.panel().Width(panelWidth).Render(strings.Join(lines, "\n"))
}

const helpText = `arrows/hjkl  pan
+ / -        zoom
[ / ]        iterations
x X y Y      julia constant
f            mandelbrot/julia
c            colormap
t            theme
r            reset
q            quit`

// RunExplorer runs the explorer in the alternate screen until the user
// quits.
func RunExplorer(m Explorer) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

package viz

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/welcome/internal/export"
	"github.com/san-kum/welcome/internal/palette"
	"github.com/san-kum/welcome/internal/scene"
)

const (
	defaultCols     = 72
	defaultRows     = 22
	minCols         = 20
	minRows         = 8
	panelWidth      = 44
	historyCapacity = 240
	trailLength     = 24
)

type TickMsg time.Time

type point struct{ x, y int }

// Model runs a scene inside Bubble Tea. Each tick message advances the
// scene by one frame.
type Model struct {
	message string
	cfg     scene.Config
	seed    int64
	fps     int

	scene  *scene.Scene
	last   scene.Frame
	canvas *Canvas
	trails [][]point

	theme  Theme
	styles styles

	running   bool
	showHelp  bool
	dtHistory []float64

	spring   harmonica.Spring
	gauge    float64
	gaugeVel float64

	snapshotDir string
	status      string
}

// NewModel builds the scene from message, cfg and seed.
func NewModel(message string, cfg scene.Config, seed int64, fps int) (Model, error) {
	if fps <= 0 {
		fps = 60
	}
	sc, err := scene.New(message, cfg, rand.New(rand.NewSource(seed)), nil)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		message:     message,
		cfg:         cfg,
		seed:        seed,
		fps:         fps,
		scene:       sc,
		canvas:      NewCanvas(defaultCols, defaultRows),
		trails:      make([][]point, sc.Len()),
		theme:       DefaultTheme,
		styles:      newStyles(DefaultTheme),
		running:     true,
		dtHistory:   make([]float64, 0, historyCapacity),
		spring:      harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		snapshotDir: ".",
	}
	m.draw()
	return m, nil
}

// WithSnapshotDir sets where the s key writes SVG snapshots.
func (m Model) WithSnapshotDir(dir string) Model {
	m.snapshotDir = dir
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "n":
			if !m.running {
				m.step()
			}
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "s":
			m.snapshot()
		case "?":
			m.showHelp = !m.showHelp
		}
		m.draw()
	case tea.WindowSizeMsg:
		m.resize(msg.Width-panelWidth-4, msg.Height-2)
		m.draw()
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

// step advances the scene and the panel state by one frame.
func (m *Model) step() {
	m.last = m.scene.Step()

	m.dtHistory = append(m.dtHistory, m.last.Dt)
	if len(m.dtHistory) > historyCapacity {
		m.dtHistory = m.dtHistory[1:]
	}

	p := m.cfg.Pacing
	target := 0.0
	if p.RegularSpeed > 0 {
		target = (m.last.Dt - p.Floor()) / p.RegularSpeed
	}
	m.gauge, m.gaugeVel = m.spring.Update(m.gauge, m.gaugeVel, target)

	for i, g := range m.scene.Glyphs() {
		x, y := g.Position()
		sx, sy := m.toSubPixel(x, y)
		m.trails[i] = append(m.trails[i], point{sx, sy})
		if len(m.trails[i]) > trailLength {
			m.trails[i] = m.trails[i][1:]
		}
	}
}

// reset rebuilds the scene from the same seed.
func (m *Model) reset() {
	sc, err := scene.New(m.message, m.cfg, rand.New(rand.NewSource(m.seed)), nil)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.scene = sc
	m.last = scene.Frame{}
	m.trails = make([][]point, sc.Len())
	m.dtHistory = m.dtHistory[:0]
	m.gauge, m.gaugeVel = 0, 0
	m.status = ""
}

func (m *Model) snapshot() {
	name := fmt.Sprintf("welcome_%d.svg", time.Now().Unix())
	path := filepath.Join(m.snapshotDir, name)
	svg := export.SceneToSVG(m.scene.Glyphs(), m.cfg.Width, m.cfg.Height, 32)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m *Model) resize(cols, rows int) {
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	if cols == m.canvas.Width && rows == m.canvas.Height {
		return
	}
	m.canvas = NewCanvas(cols, rows)
	m.trails = make([][]point, m.scene.Len())
}

// toSubPixel maps scene coordinates to braille sub-pixels.
func (m *Model) toSubPixel(x, y float64) (int, int) {
	sx := int(x / m.cfg.Width * float64(m.canvas.Width*2))
	sy := int(y / m.cfg.Height * float64(m.canvas.Height*4))
	return sx, sy
}

// toCell maps scene coordinates to a terminal cell.
func (m *Model) toCell(x, y float64) (int, int) {
	col := int(x / m.cfg.Width * float64(m.canvas.Width))
	row := int(y / m.cfg.Height * float64(m.canvas.Height))
	if col >= m.canvas.Width {
		col = m.canvas.Width - 1
	}
	if row >= m.canvas.Height {
		row = m.canvas.Height - 1
	}
	return col, row
}

func (m *Model) draw() {
	m.canvas.Clear()
	gs := m.scene.Glyphs()
	for i, g := range gs {
		color := palette.Hex(g.Hue(), 1, 1)
		trailColor := palette.Dim(color, m.theme.TrailDim)
		if i < len(m.trails) {
			for _, pt := range m.trails[i] {
				m.canvas.Set(pt.x, pt.y, trailColor)
			}
		}
	}
	for _, g := range gs {
		x, y := g.Position()
		col, row := m.toCell(x, y)
		m.canvas.SetLetter(col, row, g.Rune(), palette.Hex(g.Hue(), 1, 1))
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.styles
	canvasView := st.canvas.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.message)) + "\n")
	if m.running {
		s.WriteString(st.status.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(st.label.Render("Frame") + st.value.Render(fmt.Sprintf("%d", m.scene.Frames())) + "\n")
	s.WriteString(st.label.Render("Clock") + st.value.Render(fmt.Sprintf("%.3f", m.scene.Time())) + "\n")
	s.WriteString(st.label.Render("Spread") + st.value.Render(fmt.Sprintf("%.3f", m.last.Spread)) + "\n")
	s.WriteString(st.label.Render("dt") + st.value.Render(fmt.Sprintf("%.4f", m.last.Dt)) + "\n")
	s.WriteString(st.label.Render("Speed") + ProgressBar(m.gauge, 20, m.theme.Accent) + "\n")
	s.WriteString(st.label.Render("Mode") + st.value.Render(fmt.Sprintf("%s / %s", m.cfg.Clock, m.cfg.Hue)) + "\n")
	s.WriteString(st.label.Render("Seed") + st.value.Render(fmt.Sprintf("%d", m.seed)) + "\n")

	if len(m.dtHistory) > 1 {
		chart := asciigraph.Plot(m.dtHistory,
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.LowerBound(m.cfg.Pacing.Floor()),
			asciigraph.UpperBound(m.cfg.Pacing.Ceiling()),
			asciigraph.Precision(3),
			asciigraph.Caption("dt"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + st.value.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("SP:Pause N:Step R:Reset\nT:Theme S:Snapshot Q:Quit ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume animation   ║
║  N        - Single step when paused  ║
║  R        - Restart with same seed   ║
║  T        - Cycle themes             ║
║  S        - Save SVG snapshot        ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the full-screen animation and blocks until the user quits.
func Run(message string, cfg scene.Config, seed int64, fps int) error {
	m, err := NewModel(message, cfg, seed, fps)
	if err != nil {
		return err
	}
	return RunModel(m)
}

// RunModel runs an already configured model.
func RunModel(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

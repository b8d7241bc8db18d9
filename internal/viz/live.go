package viz

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fizx/internal/metrics"
	"github.com/san-kum/fizx/internal/world"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 300
	trailCapacity   = 80
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(48)
)

type TickMsg time.Time

// Builder produces a fresh world; LiveModel calls it on start and reset.
type Builder func() (*world.World, error)

// LiveModel steps a world in real time and draws particles projected onto
// the XY plane.
type LiveModel struct {
	name     string
	build    Builder
	w        *world.World
	dt       float64
	substeps int
	fps      int

	canvas   *Canvas
	view     Viewport
	trails   [][]trailPoint
	energy   []float64
	steps    int
	running  bool
	err      error
	showHelp bool
}

type trailPoint struct{ x, y int }

// NewLiveModel builds the world and prepares a model that advances it by
// substeps*dt every frame at fps frames per second.
func NewLiveModel(name string, build Builder, dt float64, substeps, fps int) (*LiveModel, error) {
	m := &LiveModel{
		name:     name,
		build:    build,
		dt:       dt,
		substeps: max(1, substeps),
		fps:      max(1, fps),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		running:  true,
	}
	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *LiveModel) reset() error {
	w, err := m.build()
	if err != nil {
		return err
	}
	m.w = w
	m.view = Viewport{}
	m.trails = make([][]trailPoint, w.Len())
	m.energy = make([]float64, 0, historyCapacity)
	m.steps = 0
	m.err = nil
	for _, p := range w.Particles() {
		m.view.Fit(p.Position())
	}
	return nil
}

func (m *LiveModel) World() *world.World { return m.w }
func (m *LiveModel) Steps() int          { return m.steps }
func (m *LiveModel) Running() bool       { return m.running }
func (m *LiveModel) Err() error          { return m.err }

func (m *LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *LiveModel) Init() tea.Cmd { return m.tick() }

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "n", "right":
			if !m.running {
				m.advance()
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance runs one frame worth of substeps and records history.
func (m *LiveModel) advance() {
	for i := 0; i < m.substeps; i++ {
		if err := m.w.Step(m.dt); err != nil {
			m.err = err
			m.running = false
			return
		}
		m.steps++
	}

	for i, p := range m.w.Particles() {
		if !p.IsValid() {
			m.err = fmt.Errorf("particle %d left the finite range", i)
			m.running = false
			return
		}
		m.view.Fit(p.Position())
	}

	m.energy = append(m.energy, metrics.Total(m.w.Particles()))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

func (m *LiveModel) draw() {
	m.canvas.Clear()
	for i, p := range m.w.Particles() {
		x, y := m.view.Project(m.canvas, p.Position())
		trail := append(m.trails[i], trailPoint{x, y})
		if len(trail) > trailCapacity {
			trail = trail[1:]
		}
		m.trails[i] = trail

		for j := 1; j < len(trail); j++ {
			m.canvas.DrawLine(trail[j-1].x, trail[j-1].y, trail[j].x, trail[j].y)
		}
		m.canvas.Dot(x, y)
	}
}

func (m *LiveModel) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.name)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(StatusError.Render("ERROR") + "\n" + Subtle.Render(m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString(GraphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(Row("time", fmt.Sprintf("%.2fs", m.w.Time())) + "\n")
	s.WriteString(Row("steps", fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(Row("particles", fmt.Sprintf("%d", m.w.Len())) + "\n")
	s.WriteString(Row("registrations", fmt.Sprintf("%d", m.w.Registry().Len())) + "\n")
	if n := len(m.energy); n > 0 {
		s.WriteString(Row("energy", fmt.Sprintf("%.4g", m.energy[n-1])) + "\n")
		if peak := slices.Max(m.energy); peak > 0 {
			s.WriteString(Row("of peak", ProgressBar(m.energy[n-1]/peak, 20)) + "\n")
		}
	}

	s.WriteString(KeyHint.Render("\nSPACE pause  N step  R reset  ? help  Q quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		help := Panel.Render(strings.Join([]string{
			Title.Render("KEYS"),
			"space   pause / resume",
			"n, →    single frame while paused",
			"r       rebuild the scenario",
			"q, esc  quit",
		}, "\n"))
		return help + "\n" + mainView
	}
	return mainView
}

// RunLive starts the bubbletea program in the alternate screen.
func RunLive(m *LiveModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/brownsim/internal/sim"
)

// liveTrailLength caps the on-screen trail in real-time mode.
const liveTrailLength = 500

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(36)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Live is the real-time renderer: a terminal view ticking at a fixed frame
// rate, advancing the walk one fixed-dt step per tick until the duration
// budget runs out or the user quits. Stopping happens only at tick
// boundaries, so every displayed state is fully computed.
type Live struct {
	Sim      *sim.Simulator
	Dt       float64
	Duration float64
	FPS      int
	// FrameDir, when non-empty, receives one PNG per tick.
	FrameDir string
}

func (l *Live) Render(ctx context.Context) error {
	m, err := newLiveModel(l)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.writeErr
}

type liveModel struct {
	sim     *sim.Simulator
	scene   *scene
	initial sim.RobotState

	state      sim.RobotState
	t          float64
	dt         float64
	duration   float64
	fps        int
	trail      []sim.Point
	steps      int
	collisions int
	running    bool
	done       bool

	writer   *FrameWriter
	writeErr error
}

func newLiveModel(l *Live) (*liveModel, error) {
	var writer *FrameWriter
	if l.FrameDir != "" {
		var err error
		writer, err = NewFrameWriter(l.FrameDir)
		if err != nil {
			return nil, err
		}
	}

	fps := l.FPS
	if fps <= 0 {
		fps = 30
	}

	initial := l.Sim.InitialState()
	return &liveModel{
		sim:      l.Sim,
		scene:    newScene(l.Sim.Arena(), l.Sim.Robot()),
		initial:  initial,
		state:    initial,
		dt:       l.Dt,
		duration: l.Duration,
		fps:      fps,
		trail:    []sim.Point{initial.Pos},
		running:  true,
		writer:   writer,
	}, nil
}

func (m *liveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *liveModel) Init() tea.Cmd {
	return m.tick()
}

func (m *liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
			if m.writer != nil && m.writeErr == nil {
				m.scene.draw(m.trail, m.state.Pos)
				m.writeErr = m.writer.Write(rasterize(m.scene.canvas))
			}
			if m.t >= m.duration {
				m.done = true
				m.running = false
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the walk by one fixed-dt tick.
func (m *liveModel) step() {
	var hit bool
	m.state, hit = m.sim.Advance(m.state, m.dt)
	m.t += m.dt
	m.steps++
	if hit {
		m.collisions++
	}

	m.trail = append(m.trail, m.state.Pos)
	if len(m.trail) > liveTrailLength {
		m.trail = m.trail[1:]
	}
}

func (m *liveModel) reset() {
	m.state = m.initial
	m.t = 0
	m.steps = 0
	m.collisions = 0
	m.trail = append(m.trail[:0], m.initial.Pos)
	m.running = true
	m.done = false
}

func (m *liveModel) View() string {
	m.scene.draw(m.trail, m.state.Pos)
	canvasView := canvasStyle.Render(m.scene.canvas.String())

	status := "RUNNING"
	if m.done {
		status = "DONE"
	} else if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("BROWNIAN WALK") + "\n")
	s.WriteString(status + "\n\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs / %.0fs", m.t, m.duration)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%.1f, %.1f)", m.state.Pos.X, m.state.Pos.Y)) + "\n")
	s.WriteString(labelStyle.Render("Heading") + valueStyle.Render(fmt.Sprintf("%.2f rad", m.state.Heading)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(fmt.Sprintf("%d", m.collisions)) + "\n")
	if m.writer != nil {
		s.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", m.writer.Count())) + "\n")
		if m.writeErr != nil {
			s.WriteString(valueStyle.Render("frame write failed: "+m.writeErr.Error()) + "\n")
		}
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/molsim/internal/metrics"
	"github.com/san-kum/molsim/internal/particle"
	"github.com/san-kum/molsim/internal/simulation"
)

const (
	canvasWidth     = 48
	canvasHeight    = 18
	historyCapacity = 120
)

// SnapshotMsg carries one observed snapshot into the program.
type SnapshotMsg struct {
	Iteration int
	Time      float64
	Particles []particle.Particle
	Sample    metrics.Sample
}

// DoneMsg ends the program once the simulation returns.
type DoneMsg struct {
	Result *simulation.Result
	Err    error
}

type Model struct {
	title  string
	tEnd   float64
	bounds Bounds
	cancel context.CancelFunc

	canvas    *Canvas
	iteration int
	time      float64
	sample    metrics.Sample
	energy    []float64
	temps     []float64

	done   bool
	result *simulation.Result
	err    error
}

// NewModel builds the view. cancel is called when the user quits and may
// be nil.
func NewModel(title string, tEnd float64, bounds Bounds, cancel context.CancelFunc) Model {
	return Model{
		title:  title,
		tEnd:   tEnd,
		bounds: bounds,
		cancel: cancel,
		canvas: NewCanvas(canvasWidth, canvasHeight),
		energy: make([]float64, 0, historyCapacity),
		temps:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case SnapshotMsg:
		m.iteration = msg.Iteration
		m.time = msg.Time
		m.sample = msg.Sample
		m.energy = pushHistory(m.energy, msg.Sample.Total)
		m.temps = pushHistory(m.temps, msg.Sample.Temperature)
		m.canvas.Plot(msg.Particles, m.bounds)
	case DoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func pushHistory(h []float64, v float64) []float64 {
	if len(h) == historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n\n")

	fraction := 0.0
	if m.tEnd > 0 {
		fraction = m.time / m.tEnd
	}
	s.WriteString(progressBar(fraction, 30) + fmt.Sprintf(" %3.0f%%\n\n", 100*min(fraction, 1)))

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("iteration", fmt.Sprintf("%d", m.iteration))
	row("time", fmt.Sprintf("%.4f / %.4f", m.time, m.tEnd))
	row("particles", fmt.Sprintf("%d", m.sample.Particles))
	row("kinetic", fmt.Sprintf("%.4f", m.sample.Kinetic))
	row("potential", fmt.Sprintf("%.4f", m.sample.Potential))
	row("total", fmt.Sprintf("%.4f", m.sample.Total))
	row("temperature", fmt.Sprintf("%.4f", m.sample.Temperature))
	s.WriteString("\n" + labelStyle.Render("T history") + sparkline(m.temps, 30) + "\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("total energy"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	switch {
	case m.err != nil:
		s.WriteString("\n" + errorStyle.Render("error: "+m.err.Error()) + "\n")
	case m.done:
		s.WriteString("\n" + valueStyle.Render("done") + "\n")
	default:
		s.WriteString(helpStyle.Render("\nq: stop run") + "\n")
	}

	canvasView := canvasStyle.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func (m Model) Done() bool { return m.done }

func (m Model) Err() error { return m.err }

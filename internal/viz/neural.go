package viz

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/artloop/internal/loop"
	"github.com/san-kum/artloop/internal/neural"
)

// NeuralModel shows the layer configurator. Key presses go through the
// controller; the canvas is only redrawn when the configuration changes.
type NeuralModel struct {
	ctrl          *neural.Controller
	surface       *Surface
	driver        *loop.Driver
	log           *slog.Logger
	width, height int
	redraws       int
	err           error
}

func NewNeuralModel(ctrl *neural.Controller, worldW, worldH float64, log *slog.Logger) NeuralModel {
	if log == nil {
		log = slog.Default()
	}
	surface := NewSurface(60, 20, worldW, worldH)
	driver := loop.New(surface, ctrl)
	driver.SetLogger(log)
	m := NeuralModel{ctrl: ctrl, surface: surface, driver: driver, log: log, width: 80, height: 24}
	m.redraw()
	return m
}

func (m NeuralModel) Init() tea.Cmd { return nil }

func (m NeuralModel) Err() error { return m.err }

// Redraws is the number of frames drawn so far.
func (m NeuralModel) Redraws() int { return m.redraws }

func (m NeuralModel) Config() neural.Config { return m.ctrl.Config() }

func (m NeuralModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "t" {
			NextTheme()
			return m, nil
		}
		switch m.ctrl.Key(msg.String()) {
		case neural.Exit:
			return m, tea.Quit
		case neural.Redraw:
			m.redraw()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.surface.Resize(max(msg.Width-statsWidth-8, minCols), max(msg.Height-2, minRows))
		m.redraw()
	}
	return m, nil
}

func (m *NeuralModel) redraw() {
	if err := m.driver.Frame(0); err != nil {
		m.err = err
		m.log.Error("diagram draw failed", "err", err)
		return
	}
	m.redraws++
}

func (m NeuralModel) View() string {
	canvasView := canvasStyle.Render(m.surface.Canvas.Render())

	var s strings.Builder
	for i, l := range m.surface.Labels() {
		switch {
		case i == 0:
			s.WriteString(titleStyle().Render(l.Text))
		case l.Bold:
			s.WriteString(selectedStyle().Render(l.Text))
		default:
			s.WriteString(valueStyle().Render(l.Text))
		}
		s.WriteString("\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle().Render(m.err.Error()) + "\n")
	}
	s.WriteString(hintStyle().Render("\nT : Theme"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle().Render(s.String()))
}

package viz

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/artloop/internal/capture"
	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/export"
	"github.com/san-kum/artloop/internal/loop"
	"github.com/san-kum/artloop/internal/pen"
)

const (
	hueHistory = 60
	statsWidth = 34
	minCols    = 20
	minRows    = 8
)

type TickMsg time.Time

func tick(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// CurveOptions configures a CurveModel.
type CurveOptions struct {
	Title string
	// WorldW and WorldH are the turtle-coordinate extent fitted to the canvas.
	WorldW, WorldH float64
	Step           float64
	FPS            int
	Background     curve.RGB
	// OutDir receives GIF recordings and SVG snapshots.
	OutDir string
	Logger *slog.Logger
}

// CurveModel animates a curve generator on a braille canvas.
type CurveModel struct {
	opts    CurveOptions
	gen     curve.Generator
	painter loop.CurvePainter
	surface *Surface
	last    *pen.Recorder
	driver  *loop.Driver
	log     *slog.Logger

	t, speed      float64
	frame         int
	running       bool
	showHelp      bool
	hues          []float64
	width, height int

	rec        *capture.Recorder
	recPath    string
	status     string
	statusErr  bool
	drawFailed bool
	err        error
}

func NewCurveModel(gen curve.Generator, opts CurveOptions) CurveModel {
	if opts.Step <= 0 {
		opts.Step = loop.DefaultLiveConfig().Step
	}
	if opts.FPS <= 0 {
		opts.FPS = loop.DefaultLiveConfig().FPS
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	surface := NewSurface(60, 20, opts.WorldW, opts.WorldH)
	surface.Background = opts.Background
	last := pen.NewRecorder()
	painter := loop.CurvePainter{Gen: gen}
	driver := loop.New(pen.Tee{surface, last}, painter)
	driver.SetLogger(log)
	return CurveModel{
		opts:    opts,
		gen:     gen,
		painter: painter,
		surface: surface,
		last:    last,
		driver:  driver,
		log:     log,
		speed:   1,
		running: true,
		hues:    make([]float64, 0, hueHistory),
		width:   80,
		height:  24,
	}
}

func (m CurveModel) Init() tea.Cmd { return tick(m.opts.FPS) }

// Err returns the error that stopped the model, if any.
func (m CurveModel) Err() error { return m.err }

// Time is the animation time of the current frame.
func (m CurveModel) Time() float64 { return m.t }

func (m CurveModel) Recording() bool { return m.rec != nil }

// Release finishes a GIF recording still in progress and returns the
// model's error.
func (m CurveModel) Release() error {
	m.stopRecording()
	return m.err
}

func (m CurveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stopRecording()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.t, m.frame = 0, 0
			m.hues = m.hues[:0]
		case "+", "=":
			m.speed = min(m.speed*1.25, 8)
		case "-", "_":
			m.speed = max(m.speed/1.25, 0.125)
		case "t":
			NextTheme()
		case "g":
			if m.rec != nil {
				m.stopRecording()
			} else {
				m.startRecording()
			}
		case "s":
			m.snapshotSVG()
		case "S":
			m.snapshotBraille()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.rec == nil {
			m.surface.Resize(max(msg.Width-statsWidth, minCols), max(msg.Height-4, minRows))
		}
	case TickMsg:
		if m.running {
			m.t += m.opts.Step * m.speed
		}
		m.draw()
		return m, tick(m.opts.FPS)
	}
	return m, nil
}

func (m *CurveModel) draw() {
	if err := m.driver.Frame(m.t); err != nil {
		if !m.drawFailed {
			m.log.Warn("frame draw failed", "t", m.t, "err", err)
		}
		m.drawFailed = true
		m.fail("draw", err)
		return
	}
	m.drawFailed = false
	if specs := m.painter.Scene(m.t).Specs; len(specs) > 0 {
		if len(m.hues) == hueHistory {
			copy(m.hues, m.hues[1:])
			m.hues = m.hues[:hueHistory-1]
		}
		m.hues = append(m.hues, specs[len(specs)/2].Hue)
	}
	if m.rec != nil {
		if err := m.rec.Frame(m.frame, m.t); err != nil {
			m.fail("recording stopped", err)
			m.log.Error("gif frame failed", "frame", m.frame, "err", err)
			m.stopRecording()
		}
	}
	m.frame++
}

func (m *CurveModel) region() image.Rectangle {
	return image.Rect(0, 0, m.surface.Canvas.Width*cellW, m.surface.Canvas.Height*cellH)
}

func (m *CurveModel) startRecording() {
	m.recPath = filepath.Join(m.opts.OutDir, fmt.Sprintf("%s_%d.gif", m.name(), time.Now().Unix()))
	rec := capture.NewRecorder(m.surface, m.region(), capture.OpenWith(capture.Options{
		Path:  m.recPath,
		Codec: capture.CodecGIF,
		FPS:   m.opts.FPS,
	}))
	rec.SetLogger(m.log)
	if err := rec.Start(); err != nil {
		m.fail("record", err)
		m.log.Error("gif open failed", "path", m.recPath, "err", err)
		return
	}
	m.rec = rec
	m.note("recording " + m.recPath)
}

func (m *CurveModel) stopRecording() {
	if m.rec == nil {
		return
	}
	written := m.rec.Written()
	err := m.rec.Close()
	m.rec = nil
	if err != nil {
		m.err = errors.Join(m.err, fmt.Errorf("release gif: %w", err))
		m.fail("gif", err)
		return
	}
	if written == 0 {
		m.note("recording discarded (no frames)")
		return
	}
	m.note(fmt.Sprintf("saved %s (%d frames)", m.recPath, written))
}

func (m *CurveModel) note(msg string) { m.status, m.statusErr = msg, false }

func (m *CurveModel) fail(what string, err error) {
	m.status, m.statusErr = what+": "+err.Error(), true
}

func (m *CurveModel) snapshotSVG() {
	w, h := int(m.opts.WorldW), int(m.opts.WorldH)
	svg := export.CommandsToSVG(m.last.Snapshot(), w, h, m.opts.Background.Hex())
	m.writeSnapshot(fmt.Sprintf("%s_t%.2f.svg", m.name(), m.t), svg)
}

func (m *CurveModel) snapshotBraille() {
	c := m.surface.Canvas
	svg := export.BrailleToSVG(c.Grid, c.Colors, 1, "#ffffff", m.opts.Background.Hex())
	m.writeSnapshot(fmt.Sprintf("%s_t%.2f_braille.svg", m.name(), m.t), svg)
}

func (m *CurveModel) writeSnapshot(name, svg string) {
	path := filepath.Join(m.opts.OutDir, name)
	if err := export.WriteFile(path, svg); err != nil {
		m.fail("svg", err)
		m.log.Error("svg snapshot failed", "path", path, "err", err)
		return
	}
	m.note("saved " + path)
}

func (m CurveModel) name() string {
	if m.opts.Title == "" {
		return "curves"
	}
	return strings.ToLower(m.opts.Title)
}

func (m CurveModel) View() string {
	canvasView := canvasStyle.Render(m.surface.Canvas.Render())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.name()), CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	switch {
	case m.rec != nil:
		s.WriteString(StatusRecording.Render(fmt.Sprintf("● REC %d", m.rec.Written())) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(labelStyle().Render("Time") + valueStyle().Render(fmt.Sprintf("%.2f", m.t)) + "\n")
	s.WriteString(labelStyle().Render("Frame") + valueStyle().Render(fmt.Sprintf("%d", m.frame)) + "\n")
	s.WriteString(labelStyle().Render("Speed") + valueStyle().Render(fmt.Sprintf("%.2fx", m.speed)) + "\n")
	s.WriteString(labelStyle().Render("Theme") + valueStyle().Render(CurrentTheme.Name) + "\n\n")

	if len(m.hues) > 1 {
		chart := asciigraph.Plot(m.hues, asciigraph.Height(4), asciigraph.Width(24),
			asciigraph.LowerBound(0), asciigraph.UpperBound(1), asciigraph.Caption("Hue"))
		s.WriteString(chart + "\n")
		tail := m.hues[max(len(m.hues)-24, 0):]
		s.WriteString(HueStrip(tail, m.gen.Saturation(), m.gen.Value()) + "\n\n")
	}

	if m.status != "" {
		st := hintStyle()
		if m.statusErr {
			st = errorStyle()
		}
		s.WriteString(st.Width(statsWidth-4).Render(m.status) + "\n\n")
	}
	s.WriteString(Separator(statsWidth-6) + "\n")
	s.WriteString(hintStyle().Render("SP:Pause R:Reset Q:Quit\nT:Theme  G:GIF    ?:Help"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle().Render(s.String()))
	if m.showHelp {
		return curveHelp + "\n\n" + main
	}
	return main
}

const curveHelp = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart from t = 0       ║
║  + / -    - Faster / slower          ║
║  T        - Cycle themes             ║
║  G        - Start/stop GIF recording ║
║  S        - Save frame as SVG        ║
║  Shift+S  - Save braille as SVG      ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

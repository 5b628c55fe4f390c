package neural

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/pen"
)

// RandSource yields uniform values in [0, 1).
type RandSource interface {
	Float64() float64
}

// NewRand returns a seeded source. A zero seed picks a random one.
func NewRand(seed uint64) RandSource {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func uniform(r RandSource, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// ActivationColor shades a neuron from blue (0) to red (1).
func ActivationColor(a float64) curve.RGB {
	return curve.RGB{R: a, B: 1 - a}
}

// WeightColor tints a synapse from green (weak) to white (strong).
func WeightColor(w float64) curve.RGB {
	return curve.RGB{R: w, G: 1, B: w}
}

// Panel is where the instruction text goes.
type Panel struct {
	X, Y       float64
	LineHeight float64
	Color      curve.RGB
}

func DefaultPanel() Panel {
	return Panel{X: 200, Y: 250, LineHeight: 30, Color: curve.RGB{R: 1, G: 1, B: 1}}
}

var instructions = []string{
	"Neural Network Layer Configurator",
	"",
	"Controls:",
	"← → : Select Layer",
	"↑ ↓ : Adjust Neurons",
	"R : Reset Network",
	"Q : Quit",
	"",
	"Current Configuration:",
}

type PanelLine struct {
	Text string
	Bold bool
}

// PanelLines is the instruction text followed by one line per layer. The
// selected layer is bold and marked.
func PanelLines(cfg Config) []PanelLine {
	out := make([]PanelLine, 0, len(instructions)+len(cfg.Layers))
	for _, s := range instructions {
		out = append(out, PanelLine{Text: s})
	}
	for i, n := range cfg.Layers {
		line := PanelLine{Text: fmt.Sprintf("Layer %d: %d neurons", i+1, n)}
		if i == cfg.Selected {
			line.Text += "  <<<"
			line.Bold = true
		}
		out = append(out, line)
	}
	return out
}

// Diagram draws a configuration. Each redraw samples fresh activations and
// weights from Rand.
type Diagram struct {
	Geometry Geometry
	Panel    Panel
	Rand     RandSource
	// NoPanel leaves out the instruction text.
	NoPanel bool
}

func NewDiagram(r RandSource) *Diagram {
	return &Diagram{Geometry: DefaultGeometry(), Panel: DefaultPanel(), Rand: r}
}

// Commands draws neurons first, then synapses over them, then the panel.
func (d *Diagram) Commands(cfg Config) []pen.Command {
	layout := d.Geometry.Layout(cfg)
	var cmds []pen.Command

	for _, col := range layout {
		for _, n := range col {
			a := sigmoid(uniform(d.Rand, -2, 2))
			cmds = append(cmds,
				pen.Lift(),
				pen.SetColor(ActivationColor(a)),
				pen.Disc(n.X, n.Y, d.Geometry.Radius),
			)
		}
	}

	for l := 0; l+1 < len(layout); l++ {
		for _, from := range layout[l] {
			for _, to := range layout[l+1] {
				w := uniform(d.Rand, 0.1, 1.0)
				style := pen.Style{Color: WeightColor(w), Width: 2 * w}
				cmds = append(cmds, pen.Segment(from.X, from.Y, to.X, to.Y, style)...)
			}
		}
	}

	if !d.NoPanel {
		cmds = append(cmds, d.panelCommands(cfg)...)
	}
	return cmds
}

func (d *Diagram) panelCommands(cfg Config) []pen.Command {
	lines := PanelLines(cfg)
	cmds := make([]pen.Command, 0, len(lines)+2)
	cmds = append(cmds, pen.Lift(), pen.SetColor(d.Panel.Color))
	for i, line := range lines {
		if line.Text == "" {
			continue
		}
		y := d.Panel.Y - float64(i)*d.Panel.LineHeight
		cmds = append(cmds, pen.Text(d.Panel.X, y, line.Text, line.Bold))
	}
	return cmds
}

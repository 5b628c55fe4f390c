package neural

import "math"

type Neuron struct {
	Layer, Index int
	X, Y         float64
}

// Geometry places layers left to right and centres each column on y = 0.
type Geometry struct {
	Left       float64 `yaml:"left"`
	LayerGap   float64 `yaml:"layer_gap"`
	MaxSpacing float64 `yaml:"max_spacing"`
	Span       float64 `yaml:"span"`
	Radius     float64 `yaml:"radius"`
}

func DefaultGeometry() Geometry {
	return Geometry{Left: -300, LayerGap: 150, MaxSpacing: 40, Span: 300, Radius: 10}
}

// Spacing is the vertical distance between neighbouring neurons.
func (g Geometry) Spacing(cfg Config) float64 {
	largest := cfg.Largest()
	if largest == 0 {
		return g.MaxSpacing
	}
	return math.Min(g.MaxSpacing, g.Span/float64(largest))
}

// Layout returns the neuron positions of every layer.
func (g Geometry) Layout(cfg Config) [][]Neuron {
	spacing := g.Spacing(cfg)
	out := make([][]Neuron, len(cfg.Layers))
	for l, n := range cfg.Layers {
		x := g.Left + float64(l)*g.LayerGap
		top := float64(n-1) * spacing / 2
		col := make([]Neuron, 0, n)
		for i := 0; i < n; i++ {
			col = append(col, Neuron{Layer: l, Index: i, X: x, Y: -top + float64(i)*spacing})
		}
		out[l] = col
	}
	return out
}

func Layout(cfg Config) [][]Neuron {
	return DefaultGeometry().Layout(cfg)
}

package neural

import "fmt"

const (
	MinNeurons = 1
	MaxNeurons = 10
)

// Config is the state that survives between redraws.
type Config struct {
	Layers   []int `yaml:"layers" json:"layers"`
	Selected int   `yaml:"selected" json:"selected"`
}

func DefaultLayers() []int { return []int{4, 6, 6, 4} }

func DefaultConfig() Config {
	return Config{Layers: DefaultLayers()}
}

func (c Config) Clone() Config {
	out := c
	out.Layers = append([]int(nil), c.Layers...)
	return out
}

func (c Config) Validate() error {
	if len(c.Layers) == 0 {
		return ErrNoLayers
	}
	for i, n := range c.Layers {
		if n < MinNeurons || n > MaxNeurons {
			return fmt.Errorf("%w: layer %d has %d neurons (want %d..%d)", ErrLayerSize, i+1, n, MinNeurons, MaxNeurons)
		}
	}
	if c.Selected < 0 || c.Selected >= len(c.Layers) {
		return fmt.Errorf("%w: %d of %d", ErrSelection, c.Selected, len(c.Layers))
	}
	return nil
}

// Largest returns the size of the biggest layer.
func (c Config) Largest() int {
	m := 0
	for _, n := range c.Layers {
		if n > m {
			m = n
		}
	}
	return m
}

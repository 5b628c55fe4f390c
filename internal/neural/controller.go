package neural

import (
	"log/slog"

	"github.com/san-kum/artloop/internal/pen"
)

// Controller owns the live configuration and paints it. It satisfies
// loop.Painter; the time argument is ignored since the diagram only
// changes on key presses. Between changes Paint returns the same frame,
// so surfaces that redraw every tick do not flicker.
type Controller struct {
	cfg     Config
	keys    Keymap
	diagram *Diagram
	dirty   bool
	last    []pen.Command
	log     *slog.Logger
}

func NewController(cfg Config, keys Keymap, diagram *Diagram) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if keys == nil {
		keys = DefaultKeymap()
	}
	return &Controller{cfg: cfg.Clone(), keys: keys, diagram: diagram, dirty: true, log: slog.Default()}, nil
}

func (c *Controller) SetLogger(l *slog.Logger) {
	if l != nil {
		c.log = l
	}
}

func (c *Controller) Config() Config { return c.cfg.Clone() }

// Key handles one key press.
func (c *Controller) Key(key string) Action {
	next, action := c.keys.Dispatch(c.cfg, key)
	switch action {
	case Redraw:
		c.cfg = next
		c.dirty = true
		c.log.Debug("layers changed", "key", key, "layers", next.Layers, "selected", next.Selected)
	case Exit:
		c.log.Debug("quit requested", "key", key)
	}
	return action
}

// Dirty reports whether the configuration changed since the last Paint.
func (c *Controller) Dirty() bool { return c.dirty }

func (c *Controller) Paint(float64) ([]pen.Command, error) {
	if c.dirty || c.last == nil {
		c.last = c.diagram.Commands(c.cfg)
		c.dirty = false
	}
	return append([]pen.Command(nil), c.last...), nil
}

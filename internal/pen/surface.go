package pen

import "github.com/san-kum/artloop/internal/curve"

// Surface is the render target. Coordinates are turtle coordinates with the
// origin at the centre and y pointing up.
type Surface interface {
	Clear()
	Lift()
	SetColor(c curve.RGB)
	SetWidth(w float64)
	DrawTo(x, y float64)
	// Flush pushes the frame to its destination and blocks until done.
	Flush() error
}

// Annotator is implemented by surfaces that can fill discs and write text.
type Annotator interface {
	Disc(x, y, r float64)
	Text(x, y float64, s string, bold bool)
}

// Apply replays commands in order. Annotation commands are skipped on
// surfaces that do not implement Annotator.
func Apply(s Surface, cmds []Command) {
	ann, _ := s.(Annotator)
	for _, c := range cmds {
		switch c.Kind {
		case KindLift:
			s.Lift()
		case KindSetColor:
			s.SetColor(c.Color)
		case KindSetWidth:
			s.SetWidth(c.Width)
		case KindDrawTo:
			s.DrawTo(c.X, c.Y)
		case KindDisc:
			if ann != nil {
				ann.Disc(c.X, c.Y, c.Radius)
			}
		case KindText:
			if ann != nil {
				ann.Text(c.X, c.Y, c.Text, c.Bold)
			}
		}
	}
}

// Tracker holds the pen state shared by surface implementations.
type Tracker struct {
	Up     bool
	X, Y   float64
	Color  curve.RGB
	Width  float64
	placed bool
}

func NewTracker() Tracker {
	return Tracker{Up: true, Color: curve.RGB{R: 1, G: 1, B: 1}, Width: 1}
}

// Move records a draw-to and reports the segment start and whether a line
// should be drawn.
func (t *Tracker) Move(x, y float64) (fromX, fromY float64, draw bool) {
	fromX, fromY = t.X, t.Y
	draw = !t.Up && t.placed
	t.X, t.Y = x, y
	t.Up = false
	t.placed = true
	return fromX, fromY, draw
}

func (t *Tracker) Reset() {
	color, width := t.Color, t.Width
	*t = NewTracker()
	t.Color, t.Width = color, width
}

package pen

import "github.com/san-kum/artloop/internal/curve"

// Recorder is a Surface that keeps every command it receives.
type Recorder struct {
	Commands []Command
	Clears   int
	Flushes  int
	// FlushErr is returned from Flush when set.
	FlushErr error
}

func NewRecorder() *Recorder {
	return &Recorder{Commands: make([]Command, 0, 256)}
}

func (r *Recorder) Clear() {
	r.Clears++
	r.Commands = r.Commands[:0]
}

func (r *Recorder) Lift()                { r.Commands = append(r.Commands, Lift()) }
func (r *Recorder) SetColor(c curve.RGB) { r.Commands = append(r.Commands, SetColor(c)) }
func (r *Recorder) SetWidth(w float64)   { r.Commands = append(r.Commands, SetWidth(w)) }
func (r *Recorder) DrawTo(x, y float64)  { r.Commands = append(r.Commands, DrawTo(x, y)) }
func (r *Recorder) Disc(x, y, rad float64) {
	r.Commands = append(r.Commands, Disc(x, y, rad))
}
func (r *Recorder) Text(x, y float64, s string, bold bool) {
	r.Commands = append(r.Commands, Text(x, y, s, bold))
}

func (r *Recorder) Flush() error {
	r.Flushes++
	return r.FlushErr
}

// Snapshot returns a copy of the recorded commands.
func (r *Recorder) Snapshot() []Command {
	c := make([]Command, len(r.Commands))
	copy(c, r.Commands)
	return c
}

// Strokes splits the recorded commands into polylines, one per lift.
func (r *Recorder) Strokes() []Stroke {
	return Strokes(r.Commands)
}

type Stroke struct {
	Color  curve.RGB
	Width  float64
	Points curve.Points
}

// Strokes groups a command stream into polylines, tracking colour and width.
func Strokes(cmds []Command) []Stroke {
	var (
		out   []Stroke
		cur   *Stroke
		color = curve.RGB{R: 1, G: 1, B: 1}
		width = 1.0
	)
	for _, c := range cmds {
		switch c.Kind {
		case KindLift:
			cur = nil
		case KindSetColor:
			color = c.Color
			if cur != nil {
				cur.Color = color
			}
		case KindSetWidth:
			width = c.Width
			if cur != nil {
				cur.Width = width
			}
		case KindDrawTo:
			if cur == nil {
				out = append(out, Stroke{Color: color, Width: width})
				cur = &out[len(out)-1]
			}
			cur.Points = append(cur.Points, curve.Point{X: c.X, Y: c.Y})
		}
	}
	return out
}

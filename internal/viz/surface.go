package viz

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/san-kum/artloop/internal/capture"
	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/pen"
)

// Pixel size of one braille cell when a canvas is captured.
const (
	cellW = 8
	cellH = 16
)

// Label is a text annotation. The terminal draws labels beside the canvas
// instead of over it.
type Label struct {
	X, Y  float64
	Text  string
	Bold  bool
	Color curve.RGB
}

// Surface draws pen commands onto a braille canvas. World coordinates
// cover worldW x worldH units centred on the origin, y up, scaled to fit.
type Surface struct {
	Canvas     *Canvas
	Background curve.RGB

	worldW, worldH float64
	scale          float64
	pen            pen.Tracker
	labels         []Label
}

func NewSurface(cols, rows int, worldW, worldH float64) *Surface {
	s := &Surface{Canvas: NewCanvas(cols, rows), worldW: worldW, worldH: worldH, pen: pen.NewTracker()}
	s.fit()
	return s
}

func (s *Surface) fit() {
	dw, dh := s.Canvas.Dots()
	s.scale = math.Min(float64(dw)/s.worldW, float64(dh)/s.worldH)
	if s.scale <= 0 || math.IsNaN(s.scale) || math.IsInf(s.scale, 0) {
		s.scale = 1
	}
}

// Resize changes the canvas to cols x rows cells and clears it.
func (s *Surface) Resize(cols, rows int) {
	s.Canvas.Resize(cols, rows)
	s.fit()
}

// Scale is the number of sub-pixels per world unit.
func (s *Surface) Scale() float64 { return s.scale }

func (s *Surface) toDot(x, y float64) (int, int) {
	dw, dh := s.Canvas.Dots()
	return int(math.Round(float64(dw)/2 + x*s.scale)), int(math.Round(float64(dh)/2 - y*s.scale))
}

func (s *Surface) Clear() {
	s.Canvas.Clear()
	s.labels = s.labels[:0]
	s.pen.Reset()
}

func (s *Surface) Lift() { s.pen.Up = true }

func (s *Surface) SetColor(c curve.RGB) {
	s.pen.Color = c
	s.Canvas.Ink = c.Hex()
}

// SetWidth is recorded but a braille line is always one dot wide.
func (s *Surface) SetWidth(w float64) { s.pen.Width = w }

func (s *Surface) DrawTo(x, y float64) {
	fx, fy, draw := s.pen.Move(x, y)
	if !draw {
		return
	}
	x0, y0 := s.toDot(fx, fy)
	x1, y1 := s.toDot(x, y)
	s.Canvas.DrawLine(x0, y0, x1, y1)
}

func (s *Surface) Disc(x, y, r float64) {
	cx, cy := s.toDot(x, y)
	s.Canvas.FillCircle(cx, cy, int(math.Round(r*s.scale)))
}

func (s *Surface) Text(x, y float64, str string, bold bool) {
	s.labels = append(s.labels, Label{X: x, Y: y, Text: str, Bold: bold, Color: s.pen.Color})
}

func (s *Surface) Flush() error { return nil }

// Labels returns the frame's text, top to bottom.
func (s *Surface) Labels() []Label {
	out := append([]Label(nil), s.labels...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Y > out[j].Y })
	return out
}

// Capture rasterises the canvas, one cellW x cellH block per cell.
func (s *Surface) Capture(r image.Rectangle) (capture.Frame, error) {
	r8, g8, b8 := s.Background.Bytes()
	bg := color.RGBA{R: r8, G: g8, B: b8, A: 0xff}
	return capture.FromImage(s.Canvas.Image(cellW, cellH, bg), r)
}

var (
	_ pen.Surface      = (*Surface)(nil)
	_ pen.Annotator    = (*Surface)(nil)
	_ capture.Capturer = (*Surface)(nil)
)

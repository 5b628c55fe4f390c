package raster

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/san-kum/artloop/internal/capture"
	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/pen"
)

const DefaultFontSize = 14

type Option func(*Surface)

func WithFontSize(size float64) Option {
	return func(s *Surface) {
		if size > 0 {
			s.fontSize = size
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.log = l
		}
	}
}

type Surface struct {
	dc       *gg.Context
	width    int
	height   int
	bg       curve.RGB
	pen      pen.Tracker
	pending  int
	errs     []error
	fontSize float64
	regular  text.Face
	bold     text.Face
	log      *slog.Logger
}

// New creates a width x height surface filled with bg.
func New(width, height int, bg curve.RGB, opts ...Option) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", capture.ErrEmptyFrame, width, height)
	}
	s := &Surface{
		width:    width,
		height:   height,
		bg:       bg,
		pen:      pen.NewTracker(),
		fontSize: DefaultFontSize,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	s.regular = regular.Face(s.fontSize)
	s.bold = bold.Face(s.fontSize)

	s.dc = gg.NewContext(width, height)
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	s.Clear()
	return s, nil
}

func (s *Surface) Size() image.Point { return image.Pt(s.width, s.height) }

// toPixel maps turtle coordinates (origin centre, y up) to pixels.
func (s *Surface) toPixel(x, y float64) (float64, float64) {
	return float64(s.width)/2 + x, float64(s.height)/2 - y
}

func (s *Surface) Clear() {
	s.dc.ClearPath()
	s.dc.ClearWithColor(gg.RGB(s.bg.R, s.bg.G, s.bg.B))
	s.pen.Reset()
	s.pending = 0
	s.errs = s.errs[:0]
	s.applyStyle()
}

func (s *Surface) applyStyle() {
	c := s.pen.Color
	s.dc.SetRGB(c.R, c.G, c.B)
	s.dc.SetLineWidth(s.pen.Width)
}

func (s *Surface) stroke() {
	if s.pending == 0 {
		return
	}
	if err := s.dc.Stroke(); err != nil {
		s.errs = append(s.errs, fmt.Errorf("stroke: %w", err))
	}
	s.pending = 0
}

func (s *Surface) Lift() {
	s.stroke()
	s.pen.Up = true
}

func (s *Surface) SetColor(c curve.RGB) {
	s.stroke()
	s.pen.Color = c
	s.applyStyle()
}

func (s *Surface) SetWidth(w float64) {
	s.stroke()
	s.pen.Width = w
	s.applyStyle()
}

func (s *Surface) DrawTo(x, y float64) {
	fx, fy, draw := s.pen.Move(x, y)
	if !draw {
		s.stroke()
		return
	}
	if s.pending == 0 {
		s.dc.MoveTo(s.toPixel(fx, fy))
	}
	s.dc.LineTo(s.toPixel(x, y))
	s.pending++
}

func (s *Surface) Disc(x, y, r float64) {
	s.stroke()
	px, py := s.toPixel(x, y)
	s.dc.DrawCircle(px, py, r)
	if err := s.dc.Fill(); err != nil {
		s.errs = append(s.errs, fmt.Errorf("fill disc: %w", err))
	}
}

func (s *Surface) Text(x, y float64, str string, bold bool) {
	s.stroke()
	face := s.regular
	if bold {
		face = s.bold
	}
	s.dc.SetFont(face)
	px, py := s.toPixel(x, y)
	s.dc.DrawString(str, px, py)
}

// Flush strokes the pending path and reports any draw failures of the
// frame.
func (s *Surface) Flush() error {
	s.stroke()
	if err := s.dc.FlushGPU(); err != nil {
		s.errs = append(s.errs, fmt.Errorf("flush: %w", err))
	}
	if len(s.errs) == 0 {
		return nil
	}
	err := errors.Join(s.errs...)
	s.errs = s.errs[:0]
	return err
}

// Image returns a copy of the current pixels.
func (s *Surface) Image() *image.RGBA {
	if err := s.dc.FlushGPU(); err != nil {
		s.log.Warn("gpu flush before read failed", "err", err)
	}
	img, ok := s.dc.Image().(*image.RGBA)
	if !ok {
		img = image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	}
	return img
}

// Capture reads back the pixels inside r. An empty r captures everything.
func (s *Surface) Capture(r image.Rectangle) (capture.Frame, error) {
	if err := s.dc.FlushGPU(); err != nil {
		return capture.Frame{}, fmt.Errorf("flush before capture: %w", err)
	}
	return capture.FromImage(s.dc.Image(), r)
}

func (s *Surface) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}

func (s *Surface) Close() error {
	return s.dc.Close()
}

var (
	_ pen.Surface      = (*Surface)(nil)
	_ pen.Annotator    = (*Surface)(nil)
	_ capture.Capturer = (*Surface)(nil)
)

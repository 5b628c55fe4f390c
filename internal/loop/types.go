package loop

import (
	"fmt"
	"time"

	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/pen"
)

// Painter produces the pen commands of the frame at time t.
type Painter interface {
	Paint(t float64) ([]pen.Command, error)
}

type PainterFunc func(t float64) ([]pen.Command, error)

func (f PainterFunc) Paint(t float64) ([]pen.Command, error) { return f(t) }

// Observer is notified after every completed frame.
type Observer interface {
	OnFrame(frame int, t float64)
}

type ObserverFunc func(frame int, t float64)

func (f ObserverFunc) OnFrame(frame int, t float64) { f(frame, t) }

// FrameSink receives every rendered frame of a recorded run.
type FrameSink interface {
	Frame(frame int, t float64) error
}

// Scene is the set of curves drawn in one frame.
type Scene struct {
	Time  float64
	Specs []curve.Spec
}

// CurvePainter paints every spec a generator yields for a time value.
type CurvePainter struct {
	Gen curve.Generator
}

func (p CurvePainter) Scene(t float64) Scene {
	return Scene{Time: t, Specs: p.Gen.Specs(t)}
}

func (p CurvePainter) Paint(t float64) ([]pen.Command, error) {
	scene := p.Scene(t)
	var cmds []pen.Command
	for _, spec := range scene.Specs {
		pts, err := p.Gen.Sample(spec)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", spec.Family, spec.Index, err)
		}
		style := pen.Style{
			Color: curve.HSV(spec.Hue, p.Gen.Saturation(), p.Gen.Value()),
			Width: spec.Width,
		}
		cmds = append(cmds, pen.Emit(pts, style)...)
	}
	return cmds, nil
}

type LiveConfig struct {
	Start float64
	Step  float64
	// FPS paces frames with a ticker. Zero renders as fast as possible.
	FPS int
	// MaxFrames stops the run after that many frames. Zero is unbounded.
	MaxFrames int
}

func DefaultLiveConfig() LiveConfig {
	return LiveConfig{Start: 0, Step: 0.03, FPS: 30}
}

type Stats struct {
	Frames      int
	Time        float64
	Elapsed     time.Duration
	FrameErrors int
}

// FPS returns the achieved frame rate.
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/artloop/internal/pen"
)

type Driver struct {
	surface   pen.Surface
	painter   Painter
	observers []Observer
	log       *slog.Logger
}

func New(surface pen.Surface, painter Painter) *Driver {
	return &Driver{
		surface:   surface,
		painter:   painter,
		observers: make([]Observer, 0),
		log:       slog.Default(),
	}
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) SetLogger(l *slog.Logger) {
	if l != nil {
		d.log = l
	}
}

func (d *Driver) Surface() pen.Surface { return d.surface }

// Frame renders one frame: clear, paint, replay, flush. Paint errors match
// ErrPaint; flush errors are returned as-is for the caller to classify.
func (d *Driver) Frame(t float64) error {
	d.surface.Clear()
	cmds, err := d.painter.Paint(t)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPaint, err)
	}
	pen.Apply(d.surface, cmds)
	return d.surface.Flush()
}

func (d *Driver) notify(frame int, t float64) {
	for _, o := range d.observers {
		o.OnFrame(frame, t)
	}
}

// RunLive advances time by cfg.Step every frame until ctx is done or
// cfg.MaxFrames frames have been drawn. Cancellation is not an error.
func (d *Driver) RunLive(ctx context.Context, cfg LiveConfig) (Stats, error) {
	if cfg.Step <= 0 || math.IsNaN(cfg.Step) {
		return Stats{}, fmt.Errorf("%w, got %g", ErrBadStep, cfg.Step)
	}

	var tick <-chan time.Time
	if cfg.FPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	start := time.Now()
	stats := Stats{Time: cfg.Start}
	t := cfg.Start

	for i := 0; cfg.MaxFrames == 0 || i < cfg.MaxFrames; i++ {
		select {
		case <-ctx.Done():
			stats.Elapsed = time.Since(start)
			return stats, nil
		default:
		}

		if err := d.Frame(t); err != nil {
			stats.Elapsed = time.Since(start)
			return stats, &FrameError{Frame: i, Time: t, Wrapped: err}
		}
		stats.Frames++
		stats.Time = t
		d.notify(i, t)

		t += cfg.Step

		if tick != nil {
			select {
			case <-ctx.Done():
				stats.Elapsed = time.Since(start)
				return stats, nil
			case <-tick:
			}
		}
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

// RunSamples renders one frame per time value and passes each to sink.
// A painter failure aborts the run. A surface flush failure on a single
// frame is logged and the frame is still handed to the sink, so the output
// keeps its length; those failures are joined into the returned error.
// Sink failures abort the run.
func (d *Driver) RunSamples(ctx context.Context, times []float64, sink FrameSink) (Stats, error) {
	if err := Validate(times); err != nil {
		return Stats{}, err
	}

	start := time.Now()
	stats := Stats{}
	var frameErrs []error

	for i, t := range times {
		select {
		case <-ctx.Done():
			stats.Elapsed = time.Since(start)
			return stats, errors.Join(append(frameErrs, ctx.Err())...)
		default:
		}

		d.surface.Clear()
		cmds, err := d.painter.Paint(t)
		if err != nil {
			stats.Elapsed = time.Since(start)
			return stats, &FrameError{Frame: i, Time: t, Wrapped: fmt.Errorf("%w: %w", ErrPaint, err)}
		}
		pen.Apply(d.surface, cmds)
		if err := d.surface.Flush(); err != nil {
			d.log.Warn("frame draw failed", "frame", i, "t", t, "err", err)
			frameErrs = append(frameErrs, &FrameError{Frame: i, Time: t, Wrapped: err})
			stats.FrameErrors++
		}

		if sink != nil {
			if err := sink.Frame(i, t); err != nil {
				stats.Elapsed = time.Since(start)
				return stats, errors.Join(append(frameErrs, err)...)
			}
		}

		stats.Frames++
		stats.Time = t
		d.notify(i, t)
	}

	stats.Elapsed = time.Since(start)
	return stats, errors.Join(frameErrs...)
}

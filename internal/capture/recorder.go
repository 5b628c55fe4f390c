package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/san-kum/artloop/internal/loop"
)

// OpenFunc opens the video once the frame size is known.
type OpenFunc func(width, height int) (Encoder, error)

// OpenWith returns an OpenFunc that fills the size into opts.
func OpenWith(opts Options) OpenFunc {
	return func(width, height int) (Encoder, error) {
		opts.Width, opts.Height = width, height
		return Open(opts)
	}
}

// Recorder captures a region of a surface after every frame and appends it
// to a video. The video is opened once by Start and released once by Close.
type Recorder struct {
	src    Capturer
	region image.Rectangle
	open   OpenFunc
	log    *slog.Logger

	enc     Encoder
	size    image.Point
	written int
	opened  int
	closed  bool
}

func NewRecorder(src Capturer, region image.Rectangle, open OpenFunc) *Recorder {
	return &Recorder{src: src, region: region, open: open, log: slog.Default()}
}

func (r *Recorder) SetLogger(l *slog.Logger) {
	if l != nil {
		r.log = l
	}
}

// Start takes a probe capture to fix the frame size and opens the video.
func (r *Recorder) Start() error {
	if r.closed {
		return ErrClosed
	}
	if r.enc != nil {
		return nil
	}
	probe, err := r.src.Capture(r.region)
	if err != nil {
		return fmt.Errorf("probe capture: %w", err)
	}
	if err := probe.Validate(); err != nil {
		return fmt.Errorf("probe capture: %w", err)
	}
	enc, err := r.open(probe.Width, probe.Height)
	if err != nil {
		return fmt.Errorf("open video: %w", err)
	}
	r.enc = enc
	r.size = probe.Size()
	r.opened++
	r.log.Debug("video opened", "width", probe.Width, "height", probe.Height, "order", enc.Order())
	return nil
}

// Frame captures the current surface and appends it to the video.
func (r *Recorder) Frame(frame int, t float64) error {
	if r.closed {
		return ErrClosed
	}
	if r.enc == nil {
		return ErrNotStarted
	}
	f, err := r.src.Capture(r.region)
	if err != nil {
		return &loop.FrameError{Frame: frame, Time: t, Wrapped: err}
	}
	if f.Size() != r.size {
		return &loop.FrameError{Frame: frame, Time: t,
			Wrapped: fmt.Errorf("%w: got %v, video is %v", ErrFrameSize, f.Size(), r.size)}
	}
	f, err = Convert(f, r.enc.Order())
	if err != nil {
		return &loop.FrameError{Frame: frame, Time: t, Wrapped: err}
	}
	if err := r.enc.Write(f); err != nil {
		return &loop.FrameError{Frame: frame, Time: t, Wrapped: err}
	}
	r.written++
	return nil
}

// Close releases the video. Further calls are no-ops.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.enc == nil {
		return nil
	}
	err := r.enc.Close()
	r.log.Debug("video released", "frames", r.written)
	return err
}

// Written returns the number of frames appended.
func (r *Recorder) Written() int { return r.written }

// Size returns the frame size fixed by Start.
func (r *Recorder) Size() image.Point { return r.size }

// Report summarises a recorded run.
type Report struct {
	loop.Stats
	Written int
	Width   int
	Height  int
}

// Record opens the video, renders every time value through d and appends
// each frame. The video is released on every path.
func Record(ctx context.Context, d *loop.Driver, rec *Recorder, times []float64) (rep Report, err error) {
	if err := loop.Validate(times); err != nil {
		return Report{}, err
	}

	// The probe needs a drawn surface of the final size. A failed flush
	// still leaves a surface to measure; a painter failure means nothing
	// would ever be drawn, so no video is opened.
	if err := d.Frame(times[0]); err != nil {
		if errors.Is(err, loop.ErrPaint) {
			return Report{}, &loop.FrameError{Frame: 0, Time: times[0], Wrapped: err}
		}
		rec.log.Warn("probe frame draw failed", "t", times[0], "err", err)
	}
	if err := rec.Start(); err != nil {
		return Report{}, err
	}
	defer func() {
		if cerr := rec.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("release video: %w", cerr))
		}
		rep.Written = rec.Written()
	}()

	stats, err := d.RunSamples(ctx, times, rec)
	size := rec.Size()
	return Report{Stats: stats, Width: size.X, Height: size.Y}, err
}

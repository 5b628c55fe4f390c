package loop_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/loop"
	"github.com/san-kum/artloop/internal/pen"
)

type sinkFunc func(frame int, t float64) error

func (f sinkFunc) Frame(frame int, t float64) error { return f(frame, t) }

type failingSurface struct {
	*pen.Recorder
	failOn int
}

func (s *failingSurface) Flush() error {
	_ = s.Recorder.Flush()
	if s.Flushes == s.failOn {
		return errors.New("draw failed")
	}
	return nil
}

var _ = Describe("Linspace", func() {
	It("includes both ends", func() {
		ts, err := loop.Linspace(0, 10, 120)
		Expect(err).NotTo(HaveOccurred())
		Expect(ts).To(HaveLen(120))
		Expect(ts[0]).To(Equal(0.0))
		Expect(ts[119]).To(Equal(10.0))
		Expect(loop.Validate(ts)).To(Succeed())
	})

	It("yields the lower bound for a single sample", func() {
		ts, err := loop.Linspace(3, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(ts).To(Equal([]float64{3}))
	})

	It("rejects empty and reversed ranges", func() {
		_, err := loop.Linspace(0, 1, 0)
		Expect(err).To(MatchError(loop.ErrEmptySequence))
		_, err = loop.Linspace(1, 1, 5)
		Expect(err).To(MatchError(loop.ErrNotIncreasing))
	})
})

var _ = Describe("Validate", func() {
	DescribeTable("rejects bad sequences",
		func(ts []float64, want error) {
			Expect(loop.Validate(ts)).To(MatchError(want))
		},
		Entry("empty", []float64{}, loop.ErrEmptySequence),
		Entry("repeat", []float64{0, 1, 1}, loop.ErrNotIncreasing),
		Entry("decreasing", []float64{0, 2, 1}, loop.ErrNotIncreasing),
		Entry("nan", []float64{0, math.NaN()}, loop.ErrNotIncreasing),
		Entry("inf", []float64{0, math.Inf(1)}, loop.ErrNotIncreasing),
	)
})

var _ = Describe("Driver", func() {
	var (
		rec *pen.Recorder
		d   *loop.Driver
	)

	BeforeEach(func() {
		rec = pen.NewRecorder()
		d = loop.New(rec, loop.CurvePainter{Gen: curve.DefaultContour()})
	})

	Describe("Frame", func() {
		It("clears, draws every contour row and flushes once", func() {
			Expect(d.Frame(0)).To(Succeed())
			Expect(rec.Clears).To(Equal(1))
			Expect(rec.Flushes).To(Equal(1))

			strokes := rec.Strokes()
			Expect(strokes).To(HaveLen(11))
			for _, s := range strokes {
				Expect(s.Points).To(HaveLen(161))
				Expect(s.Width).To(Equal(2.0))
			}
			Expect(rec.Commands[0].Kind).To(Equal(pen.KindLift))
		})

		It("draws the same frame twice for the same time", func() {
			Expect(d.Frame(1.5)).To(Succeed())
			first := rec.Snapshot()
			Expect(d.Frame(1.5)).To(Succeed())
			Expect(rec.Snapshot()).To(Equal(first))
		})

		It("returns painter errors", func() {
			bad := curve.DefaultContour()
			bad.Stride = 0
			d = loop.New(rec, loop.CurvePainter{Gen: bad})
			err := d.Frame(0)
			Expect(err).To(MatchError(curve.ErrEmptyDomain))
			Expect(err).To(MatchError(loop.ErrPaint))
			Expect(rec.Flushes).To(Equal(0))
		})
	})

	Describe("RunLive", func() {
		It("stops after MaxFrames with strictly increasing time", func() {
			var times []float64
			d.AddObserver(loop.ObserverFunc(func(_ int, t float64) {
				times = append(times, t)
			}))

			stats, err := d.RunLive(context.Background(), loop.LiveConfig{Step: 0.03, MaxFrames: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Frames).To(Equal(5))
			Expect(times).To(HaveLen(5))
			Expect(loop.Validate(times)).To(Succeed())
			Expect(stats.Time).To(BeNumerically("~", 0.12, 1e-9))
		})

		It("stops on cancellation without error", func() {
			ctx, cancel := context.WithCancel(context.Background())
			d.AddObserver(loop.ObserverFunc(func(frame int, _ float64) {
				if frame == 2 {
					cancel()
				}
			}))

			stats, err := d.RunLive(ctx, loop.LiveConfig{Step: 0.03, FPS: 1000})
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Frames).To(Equal(3))
		})

		It("rejects a non-positive step", func() {
			_, err := d.RunLive(context.Background(), loop.LiveConfig{Step: 0, MaxFrames: 1})
			Expect(err).To(MatchError(loop.ErrBadStep))
		})

		It("aborts on a draw failure", func() {
			d = loop.New(&failingSurface{Recorder: rec, failOn: 2}, loop.CurvePainter{Gen: curve.DefaultContour()})
			stats, err := d.RunLive(context.Background(), loop.LiveConfig{Step: 0.03, MaxFrames: 10})

			var fe *loop.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(1))
			Expect(stats.Frames).To(Equal(1))
		})
	})

	Describe("RunSamples", func() {
		It("hands every frame to the sink and keeps going past a bad draw", func() {
			d = loop.New(&failingSurface{Recorder: rec, failOn: 3}, loop.CurvePainter{Gen: curve.DefaultContour()})
			ts, _ := loop.Linspace(0, 1, 6)

			var got []int
			stats, err := d.RunSamples(context.Background(), ts, sinkFunc(func(frame int, _ float64) error {
				got = append(got, frame)
				return nil
			}))

			Expect(got).To(Equal([]int{0, 1, 2, 3, 4, 5}))
			Expect(stats.Frames).To(Equal(6))
			Expect(stats.FrameErrors).To(Equal(1))

			var fe *loop.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(2))
		})

		It("stops on a sink failure", func() {
			ts, _ := loop.Linspace(0, 1, 6)
			boom := errors.New("disk full")
			stats, err := d.RunSamples(context.Background(), ts, sinkFunc(func(frame int, _ float64) error {
				if frame == 1 {
					return boom
				}
				return nil
			}))
			Expect(err).To(MatchError(boom))
			Expect(stats.Frames).To(Equal(1))
		})

		It("refuses a sequence that does not increase", func() {
			_, err := d.RunSamples(context.Background(), []float64{0, 0}, nil)
			Expect(err).To(MatchError(loop.ErrNotIncreasing))
			Expect(rec.Clears).To(Equal(0))
		})

		It("stops when the context is done", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := d.RunSamples(ctx, []float64{0, 1}, nil)
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})

var _ = Describe("CurvePainter", func() {
	It("paints three rose passes of 1800 points", func() {
		r := curve.DefaultRose()
		r.Numerator = nil
		r.N = 4
		cmds, err := loop.CurvePainter{Gen: r}.Paint(0)
		Expect(err).NotTo(HaveOccurred())

		strokes := pen.Strokes(cmds)
		Expect(strokes).To(HaveLen(3))
		for _, s := range strokes {
			Expect(s.Points).To(HaveLen(1800))
		}
	})
})

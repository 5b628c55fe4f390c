// Package loop drives an animation one frame at a time.
//
// Each frame the [Driver] clears its surface, asks a [Painter] for the
// frame's pen commands, replays them and flushes:
//
//	d := loop.New(surface, loop.CurvePainter{Gen: curve.DefaultContour()})
//	stats, err := d.RunLive(ctx, loop.LiveConfig{Step: 0.03, FPS: 30})
//
// Live runs advance time by a fixed step until the context is cancelled or
// a frame limit is reached. Recorded runs replay a precomputed, strictly
// increasing time sequence (see [Linspace]) and hand every frame to a
// [FrameSink].
//
// # Thread Safety
//
// A Driver is NOT safe for concurrent use. One goroutine owns the surface.
package loop

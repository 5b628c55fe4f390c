// Package raster renders pen commands into an offscreen image with gg.
//
// A [Surface] is both a pen.Surface and a capture.Capturer, so a recorded
// run can draw a frame and read its pixels back from the same object.
// Strokes are batched: consecutive draw-tos build one path that is stroked
// when the pen lifts, changes style, or the frame is flushed.
package raster

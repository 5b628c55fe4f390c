// Package curve generates the parametric geometry drawn by every animation.
//
// A frame is described by a list of [Spec] values, one per curve. A
// [Generator] produces the specs for a time value and samples each spec into
// a [Points] sequence:
//
//   - [Contour]: layered sum-of-sines "mountain" rows
//   - [Rose]: concentric polar rose passes, r = scale·cos(k·θ)
//
// Colour is derived from time and offset through [Hue] and converted with
// [HSV].
//
// # Example
//
//	gen := curve.DefaultContour()
//	for _, spec := range gen.Specs(t) {
//		pts, err := gen.Sample(spec)
//		...
//	}
//
// # Determinism
//
// Both families are pure functions of the spec. Sampling the same spec twice
// yields bit-identical points.
package curve

package curve

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB holds channel values in [0, 1].
type RGB struct {
	R, G, B float64
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Bytes returns the 8-bit channels.
func (c RGB) Bytes() (r, g, b uint8) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
}

// Wrap returns the fractional part of x folded into [0, 1).
func Wrap(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	h := x - math.Floor(x)
	// x slightly below an integer can round up to exactly 1.
	if h >= 1 || h < 0 {
		return 0
	}
	return h
}

// Hue derives a hue from time and offset: frac(t/timeDiv + offset/offsetDiv).
func Hue(t, offset, timeDiv, offsetDiv float64) float64 {
	v := 0.0
	if timeDiv != 0 {
		v += t / timeDiv
	}
	if offsetDiv != 0 {
		v += offset / offsetDiv
	}
	return Wrap(v)
}

// HSV converts hue, saturation and value in [0, 1] to RGB.
func HSV(h, s, v float64) RGB {
	c := colorful.Hsv(Wrap(h)*360, clamp01(s), clamp01(v))
	return RGB{R: c.R, G: c.G, B: c.B}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

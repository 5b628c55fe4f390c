package loop

import (
	"fmt"
	"math"
)

// Linspace returns n evenly spaced samples over [lo, hi], both ends
// included. n == 1 yields [lo].
func Linspace(lo, hi float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d samples", ErrEmptySequence, n)
	}
	if n == 1 {
		return []float64{lo}, nil
	}
	if !(hi > lo) || math.IsInf(hi-lo, 0) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrNotIncreasing, lo, hi)
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out, nil
}

// Validate reports whether times is a non-empty, strictly increasing
// sequence of finite values.
func Validate(times []float64) error {
	if len(times) == 0 {
		return ErrEmptySequence
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: sample %d is %g", ErrNotIncreasing, i, t)
		}
		if i > 0 && !(t > times[i-1]) {
			return fmt.Errorf("%w: sample %d (%g) after %g", ErrNotIncreasing, i, t, times[i-1])
		}
	}
	return nil
}

package loop

import (
	"errors"
	"fmt"
)

var (
	// ErrNotIncreasing indicates a time sequence that is not strictly increasing.
	ErrNotIncreasing = errors.New("loop: time sequence not strictly increasing")

	// ErrEmptySequence indicates a sample request that yields no frames.
	ErrEmptySequence = errors.New("loop: empty time sequence")

	// ErrBadStep indicates a live step that would not advance time.
	ErrBadStep = errors.New("loop: time step must be positive")

	// ErrPaint marks a painter failure, as opposed to a surface failure.
	ErrPaint = errors.New("loop: paint failed")
)

// FrameError wraps a failure with the frame it happened on. Encoder
// failures in recorded runs use it too.
type FrameError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}

package capture

import "errors"

var (
	// ErrFrameSize indicates a frame whose dimensions differ from the video's.
	ErrFrameSize = errors.New("capture: frame size mismatch")

	// ErrEmptyFrame indicates a frame with no pixels.
	ErrEmptyFrame = errors.New("capture: empty frame")

	// ErrRegion indicates a capture rectangle outside the surface.
	ErrRegion = errors.New("capture: region outside surface")

	// ErrUnknownCodec indicates a codec name with no encoder.
	ErrUnknownCodec = errors.New("capture: unknown codec")

	// ErrClosed indicates a write to a released encoder.
	ErrClosed = errors.New("capture: encoder already released")

	// ErrNotStarted indicates a frame pushed before the video was opened.
	ErrNotStarted = errors.New("capture: recorder not started")
)

package neural

import "errors"

var (
	ErrNoLayers     = errors.New("neural: no layers")
	ErrLayerSize    = errors.New("neural: layer size out of bounds")
	ErrSelection    = errors.New("neural: selected layer out of range")
	ErrUnknownEvent = errors.New("neural: unknown event")
)

package video

import "errors"

// Sentinel errors for frame validation and conversion.
var (
	// ErrUnsupportedRotation indicates a rotation other than 0, 90, 180 or 270 degrees.
	ErrUnsupportedRotation = errors.New("unsupported rotation")

	// ErrPlaneTooSmall indicates a plane shorter than its stride and height require.
	ErrPlaneTooSmall = errors.New("plane too small")

	// ErrDestinationTooSmall indicates the conversion target cannot hold the frame.
	ErrDestinationTooSmall = errors.New("destination buffer too small")
)

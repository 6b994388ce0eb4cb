// Package limits provides centralized frame size limits for the video pipeline.
// This ensures consistent validation across different components of the system.
package limits

import (
	"errors"
	"fmt"
)

const (
	// BytesPerPixel is the size of one interleaved RGBA display pixel.
	BytesPerPixel = 4

	// MaxFrameDimension is the largest accepted frame width or height.
	MaxFrameDimension = 8192

	// MaxDisplayBuffer is the absolute maximum display buffer size in bytes.
	MaxDisplayBuffer = MaxFrameDimension * MaxFrameDimension * BytesPerPixel
)

var (
	// ErrFrameEmpty indicates a frame with a zero or negative dimension.
	ErrFrameEmpty = errors.New("empty frame")

	// ErrFrameTooLarge indicates a frame dimension exceeds MaxFrameDimension.
	ErrFrameTooLarge = errors.New("frame too large")
)

// ValidateFrameDimensions validates a frame's width and height.
// Returns an error with context including the offending dimensions.
func ValidateFrameDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrFrameEmpty, width, height)
	}
	if width > MaxFrameDimension || height > MaxFrameDimension {
		return fmt.Errorf("%w: %dx%d exceeds limit %d", ErrFrameTooLarge, width, height, MaxFrameDimension)
	}
	return nil
}

// DisplayStride returns the row stride in bytes of a display buffer of the given width.
func DisplayStride(width int) int {
	return width * BytesPerPixel
}

// DisplayBufferSize returns width*height*BytesPerPixel.
func DisplayBufferSize(width, height int) int {
	return width * height * BytesPerPixel
}

// ChromaDimension returns the I420 chroma plane size for a luma dimension.
// Odd luma dimensions round up so the last column or row keeps a chroma sample.
func ChromaDimension(n int) int {
	return (n + 1) / 2
}

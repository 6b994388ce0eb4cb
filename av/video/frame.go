package video

import (
	"fmt"
	"time"

	"github.com/opd-ai/callwindow/limits"
)

// Rotation is the clockwise rotation a frame needs to be displayed upright.
// Values match the rotations a capture device can report.
type Rotation int

const (
	// Rotation0 means the frame is already upright
	Rotation0 Rotation = 0
	// Rotation90 means the frame must be turned 90 degrees clockwise
	Rotation90 Rotation = 90
	// Rotation180 means the frame is upside down
	Rotation180 Rotation = 180
	// Rotation270 means the frame must be turned 270 degrees clockwise
	Rotation270 Rotation = 270
)

// Valid reports whether r is one of the four supported rotations.
func (r Rotation) Valid() bool {
	switch r {
	case Rotation0, Rotation90, Rotation180, Rotation270:
		return true
	}
	return false
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	if r == Rotation0 {
		return Rotation0
	}
	return Rotation(360 - int(r))
}

// SwapsDimensions reports whether rotating by r exchanges width and height.
func (r Rotation) SwapsDimensions() bool {
	return r == Rotation90 || r == Rotation270
}

func (r Rotation) String() string {
	return fmt.Sprintf("%d°", int(r))
}

// VideoFrame represents a decoded video frame in planar I420 (YUV420) format.
//
// The chroma planes are subsampled by two in both directions, rounding up
// for odd dimensions. Strides may exceed the visible width.
type VideoFrame struct {
	Width     int
	Height    int
	Y         []byte // Luminance plane
	U         []byte // Chrominance U plane
	V         []byte // Chrominance V plane
	YStride   int    // Stride for Y plane
	UStride   int    // Stride for U plane
	VStride   int    // Stride for V plane
	Rotation  Rotation
	Timestamp time.Time
}

// NewVideoFrame allocates a tightly packed upright I420 frame.
func NewVideoFrame(width, height int) *VideoFrame {
	cw := limits.ChromaDimension(width)
	ch := limits.ChromaDimension(height)
	return &VideoFrame{
		Width:   width,
		Height:  height,
		Y:       make([]byte, width*height),
		U:       make([]byte, cw*ch),
		V:       make([]byte, cw*ch),
		YStride: width,
		UStride: cw,
		VStride: cw,
	}
}

// ChromaWidth returns the width of the U and V planes.
func (f *VideoFrame) ChromaWidth() int {
	return limits.ChromaDimension(f.Width)
}

// ChromaHeight returns the height of the U and V planes.
func (f *VideoFrame) ChromaHeight() int {
	return limits.ChromaDimension(f.Height)
}

// DisplaySize returns the frame dimensions after its rotation is applied.
func (f *VideoFrame) DisplaySize() (width, height int) {
	if f.Rotation.SwapsDimensions() {
		return f.Height, f.Width
	}
	return f.Width, f.Height
}

// Validate checks that the frame dimensions are supported and that every
// plane holds enough samples for its stride.
func (f *VideoFrame) Validate() error {
	if f == nil {
		return fmt.Errorf("video frame cannot be nil")
	}
	if err := limits.ValidateFrameDimensions(f.Width, f.Height); err != nil {
		return err
	}
	if !f.Rotation.Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedRotation, int(f.Rotation))
	}

	cw, ch := f.ChromaWidth(), f.ChromaHeight()
	if err := checkPlane("Y", f.Y, f.YStride, f.Width, f.Height); err != nil {
		return err
	}
	if err := checkPlane("U", f.U, f.UStride, cw, ch); err != nil {
		return err
	}
	return checkPlane("V", f.V, f.VStride, cw, ch)
}

func checkPlane(name string, plane []byte, stride, width, height int) error {
	if stride < width {
		return fmt.Errorf("%w: %s stride %d below width %d", ErrPlaneTooSmall, name, stride, width)
	}
	need := (height-1)*stride + width
	if len(plane) < need {
		return fmt.Errorf("%w: %s plane has %d bytes, need %d", ErrPlaneTooSmall, name, len(plane), need)
	}
	return nil
}

// Clone returns a deep copy of the frame.
func (f *VideoFrame) Clone() *VideoFrame {
	c := *f
	c.Y = append([]byte(nil), f.Y...)
	c.U = append([]byte(nil), f.U...)
	c.V = append([]byte(nil), f.V...)
	return &c
}

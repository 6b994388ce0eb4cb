package interfaces

import (
	"errors"

	"github.com/opd-ai/callwindow/av/video"
)

// ErrInvalidSinkWants indicates a SinkWants with a negative pixel budget.
var ErrInvalidSinkWants = errors.New("invalid sink wants")

// VideoSink receives a sequence of decoded frames from a FrameSource.
type VideoSink interface {
	// OnFrame is called on the producer goroutine, never concurrently with
	// itself for the same sink.
	OnFrame(frame *video.VideoFrame)
}

// SinkWants describes what a sink asks of the frames it receives.
type SinkWants struct {
	// RotationApplied asks the source to deliver upright frames.
	RotationApplied bool

	// MaxPixelCount bounds width*height of delivered frames. Zero means unbounded.
	MaxPixelCount int
}

// Validate checks that the wants are self-consistent.
func (w SinkWants) Validate() error {
	if w.MaxPixelCount < 0 {
		return ErrInvalidSinkWants
	}
	return nil
}

// FrameSource is a producer of video frames, such as a local capture track
// or a remote peer's decoded track.
type FrameSource interface {
	// AddOrUpdateSink registers sink or updates its wants if already registered.
	AddOrUpdateSink(sink VideoSink, wants SinkWants)

	// RemoveSink deregisters sink. It waits for an OnFrame call in progress
	// for sink to return, and no new call starts after it returns.
	RemoveSink(sink VideoSink)
}

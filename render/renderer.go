package render

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/opd-ai/callwindow/av/video"
	"github.com/opd-ai/callwindow/interfaces"
	"github.com/sirupsen/logrus"
)

// Renderer keeps the most recent frame of one video source in display
// format and hands it to the paint path on request.
//
// OnFrame runs on the producer goroutine; Snapshot runs on the UI goroutine.
// Both take the same mutex, held for one conversion or one copy.
type Renderer struct {
	name   string
	redraw Invalidator
	logger *logrus.Entry

	mu      sync.Mutex
	buffer  FrameBuffer
	convert func(frame *video.VideoFrame, dst []byte, dstStride int) error

	// sourceMu serializes Attach and Detach; it is never held by OnFrame.
	sourceMu sync.Mutex
	source   interfaces.FrameSource

	framesRendered atomic.Uint64
	framesDropped  atomic.Uint64
	reallocations  atomic.Uint64
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger used by the renderer.
func WithLogger(logger *logrus.Entry) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Stats is a point-in-time view of a renderer's counters.
type Stats struct {
	FramesRendered uint64
	FramesDropped  uint64
	Reallocations  uint64
	Width          int
	Height         int
}

// NewRenderer creates a detached renderer. redraw may be nil, in which case
// stored frames are only visible to the next paint that happens anyway.
func NewRenderer(name string, redraw Invalidator, opts ...RendererOption) *Renderer {
	r := &Renderer{
		name:    name,
		redraw:  redraw,
		convert: video.ConvertI420ToRGBA,
		logger: logrus.WithFields(logrus.Fields{
			"component": "renderer",
			"renderer":  name,
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the renderer's name, such as "local" or "remote".
func (r *Renderer) Name() string {
	return r.name
}

// Attach registers the renderer as the sink of source. Frames start arriving
// asynchronously; none is produced by Attach itself.
func (r *Renderer) Attach(source interfaces.FrameSource) error {
	if source == nil {
		return ErrNilSource
	}

	r.sourceMu.Lock()
	defer r.sourceMu.Unlock()

	if r.source != nil {
		r.logger.WithField("function", "Attach").Error("Renderer is already attached")
		return ErrAlreadyAttached
	}

	r.source = source
	source.AddOrUpdateSink(r, interfaces.SinkWants{})

	r.logger.WithField("function", "Attach").Info("Renderer attached to frame source")
	return nil
}

// Detach deregisters the renderer from its source and then releases the
// frame buffer. No frame is stored after Detach returns.
func (r *Renderer) Detach() error {
	r.sourceMu.Lock()
	defer r.sourceMu.Unlock()

	if r.source == nil {
		return ErrNotAttached
	}

	r.source.RemoveSink(r)
	r.source = nil

	r.mu.Lock()
	r.buffer.release()
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"function":        "Detach",
		"frames_rendered": r.framesRendered.Load(),
		"frames_dropped":  r.framesDropped.Load(),
	}).Info("Renderer detached from frame source")
	return nil
}

// Attached reports whether the renderer is registered with a source.
func (r *Renderer) Attached() bool {
	r.sourceMu.Lock()
	defer r.sourceMu.Unlock()
	return r.source != nil
}

// OnFrame stores frame as the current frame. Invalid frames, including
// zero-sized ones and unknown rotations, are dropped without error.
func (r *Renderer) OnFrame(frame *video.VideoFrame) {
	if err := frame.Validate(); err != nil {
		r.drop(err)
		return
	}

	upright := frame
	if frame.Rotation != video.Rotation0 {
		rotated, err := video.Rotate(frame, frame.Rotation)
		if err != nil {
			r.drop(err)
			return
		}
		upright = rotated
	}

	// A new array only replaces the buffer once it holds a converted frame,
	// so a failed conversion leaves the last good frame in place.
	r.mu.Lock()
	pix, stride, reallocated := r.buffer.target(upright.Width, upright.Height)
	err := r.convert(upright, pix, stride)
	if err == nil && reallocated {
		r.buffer.commit(upright.Width, upright.Height, stride, pix)
	}
	r.mu.Unlock()

	if err != nil {
		r.drop(err)
		return
	}
	if reallocated {
		r.reallocations.Add(1)
		r.logger.WithFields(logrus.Fields{
			"function": "OnFrame",
			"width":    upright.Width,
			"height":   upright.Height,
		}).Debug("Frame buffer reallocated")
	}

	r.framesRendered.Add(1)
	if r.redraw != nil {
		r.redraw.Invalidate()
	}
}

func (r *Renderer) drop(err error) {
	r.framesDropped.Add(1)
	r.logger.WithFields(logrus.Fields{
		"function": "OnFrame",
		"error":    err.Error(),
	}).Debug("Dropping unsupported frame")
}

// Snapshot calls fn with a view of the current frame while holding the
// renderer's lock. fn must copy what it needs and must not retain img.
// Snapshot returns false without calling fn when no frame is stored.
func (r *Renderer) Snapshot(fn func(img *image.RGBA)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.buffer.Empty() {
		return false
	}
	fn(r.buffer.Image())
	return true
}

// Size returns the dimensions of the current frame.
func (r *Renderer) Size() (width, height int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffer.Width, r.buffer.Height, !r.buffer.Empty()
}

// Stats returns the renderer's counters and current frame size.
func (r *Renderer) Stats() Stats {
	w, h, _ := r.Size()
	return Stats{
		FramesRendered: r.framesRendered.Load(),
		FramesDropped:  r.framesDropped.Load(),
		Reallocations:  r.reallocations.Load(),
		Width:          w,
		Height:         h,
	}
}

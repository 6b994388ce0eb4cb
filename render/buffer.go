package render

import (
	"image"

	"github.com/opd-ai/callwindow/limits"
)

// FrameBuffer holds the last accepted frame in display format.
//
// len(Pix) is always Width*Height*limits.BytesPerPixel. The backing array is
// replaced, never resized in place, when the dimensions change.
type FrameBuffer struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// target returns the pixel array a width x height frame should be converted
// into. It is the current array when the dimensions match and a new one,
// not yet stored in b, when they differ.
func (b *FrameBuffer) target(width, height int) (pix []byte, stride int, fresh bool) {
	if b.Pix != nil && b.Width == width && b.Height == height {
		return b.Pix, b.Stride, false
	}
	return make([]byte, limits.DisplayBufferSize(width, height)), limits.DisplayStride(width), true
}

// commit stores pix as the buffer for a width x height frame.
func (b *FrameBuffer) commit(width, height, stride int, pix []byte) {
	b.Width = width
	b.Height = height
	b.Stride = stride
	b.Pix = pix
}

func (b *FrameBuffer) release() {
	*b = FrameBuffer{}
}

// Empty reports whether no frame has been stored.
func (b *FrameBuffer) Empty() bool {
	return b.Pix == nil
}

// Image returns a zero-copy RGBA view of the buffer. The view aliases Pix and
// is only valid while the owning renderer's lock is held.
func (b *FrameBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Stride,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

package video

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Rotate returns a new upright copy of frame turned clockwise by rotation.
//
// The result is tightly packed and carries Rotation0. For Rotation90 and
// Rotation270 the width and height are exchanged. Rotating the result by
// rotation.Inverse() reproduces the original samples exactly.
func Rotate(frame *VideoFrame, rotation Rotation) (*VideoFrame, error) {
	if frame == nil {
		return nil, fmt.Errorf("source frame cannot be nil")
	}
	if !rotation.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedRotation, int(rotation))
	}

	logrus.WithFields(logrus.Fields{
		"function": "Rotate",
		"width":    frame.Width,
		"height":   frame.Height,
		"rotation": int(rotation),
	}).Debug("Rotating video frame")

	dstW, dstH := frame.Width, frame.Height
	if rotation.SwapsDimensions() {
		dstW, dstH = frame.Height, frame.Width
	}

	result := NewVideoFrame(dstW, dstH)
	result.Timestamp = frame.Timestamp

	rotatePlane(frame.Y, frame.YStride, frame.Width, frame.Height,
		result.Y, result.YStride, rotation)

	cw, ch := frame.ChromaWidth(), frame.ChromaHeight()
	rotatePlane(frame.U, frame.UStride, cw, ch, result.U, result.UStride, rotation)
	rotatePlane(frame.V, frame.VStride, cw, ch, result.V, result.VStride, rotation)

	return result, nil
}

// rotatePlane writes src (w x h) into dst turned clockwise by rotation.
// dst must already be sized for the rotated plane.
func rotatePlane(src []byte, srcStride, w, h int, dst []byte, dstStride int, rotation Rotation) {
	switch rotation {
	case Rotation0:
		for y := 0; y < h; y++ {
			copy(dst[y*dstStride:y*dstStride+w], src[y*srcStride:y*srcStride+w])
		}
	case Rotation90:
		// source (x, y) lands on (h-1-y, x)
		for y := 0; y < h; y++ {
			row := src[y*srcStride : y*srcStride+w]
			dx := h - 1 - y
			for x, v := range row {
				dst[x*dstStride+dx] = v
			}
		}
	case Rotation180:
		for y := 0; y < h; y++ {
			row := src[y*srcStride : y*srcStride+w]
			out := dst[(h-1-y)*dstStride : (h-1-y)*dstStride+w]
			for x, v := range row {
				out[w-1-x] = v
			}
		}
	case Rotation270:
		// source (x, y) lands on (y, w-1-x)
		for y := 0; y < h; y++ {
			row := src[y*srcStride : y*srcStride+w]
			for x, v := range row {
				dst[(w-1-x)*dstStride+y] = v
			}
		}
	}
}

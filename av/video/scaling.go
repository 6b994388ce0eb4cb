package video

import (
	"fmt"
	"math"

	"github.com/opd-ai/callwindow/limits"
)

// Scale returns a copy of frame resized to width x height using bilinear
// interpolation on each plane. The result keeps frame's rotation and
// timestamp.
func Scale(frame *VideoFrame, width, height int) (*VideoFrame, error) {
	if frame == nil {
		return nil, fmt.Errorf("source frame cannot be nil")
	}
	if err := limits.ValidateFrameDimensions(width, height); err != nil {
		return nil, fmt.Errorf("invalid target dimensions %dx%d: %w", width, height, err)
	}
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	result := NewVideoFrame(width, height)
	result.Rotation = frame.Rotation
	result.Timestamp = frame.Timestamp

	scalePlane(frame.Y, frame.YStride, frame.Width, frame.Height,
		result.Y, result.YStride, width, height)
	cw, ch := frame.ChromaWidth(), frame.ChromaHeight()
	dcw, dch := result.ChromaWidth(), result.ChromaHeight()
	scalePlane(frame.U, frame.UStride, cw, ch, result.U, result.UStride, dcw, dch)
	scalePlane(frame.V, frame.VStride, cw, ch, result.V, result.VStride, dcw, dch)

	return result, nil
}

// FitPixelCount returns the largest size with the aspect ratio of
// width x height whose area does not exceed maxPixels. Sizes already within
// the budget, and a budget of zero, are returned unchanged.
func FitPixelCount(width, height, maxPixels int) (int, int) {
	if maxPixels <= 0 || width*height <= maxPixels {
		return width, height
	}
	factor := math.Sqrt(float64(maxPixels) / float64(width*height))
	w := max(1, int(float64(width)*factor))
	h := max(1, int(float64(height)*factor))
	for w*h > maxPixels && (w > 1 || h > 1) {
		if w >= h {
			w--
		} else {
			h--
		}
	}
	return w, h
}

// scalePlane samples src at the centre of each destination sample and
// interpolates between the four nearest source samples.
func scalePlane(src []byte, srcStride, srcW, srcH int, dst []byte, dstStride, dstW, dstH int) {
	xRatio := float64(srcW) / float64(dstW)
	yRatio := float64(srcH) / float64(dstH)

	for y := 0; y < dstH; y++ {
		sy := math.Max(0, (float64(y)+0.5)*yRatio-0.5)
		y1 := min(int(sy), srcH-1)
		y2 := min(y1+1, srcH-1)
		fy := sy - float64(y1)

		for x := 0; x < dstW; x++ {
			sx := math.Max(0, (float64(x)+0.5)*xRatio-0.5)
			x1 := min(int(sx), srcW-1)
			x2 := min(x1+1, srcW-1)
			fx := sx - float64(x1)

			p11 := float64(src[y1*srcStride+x1])
			p12 := float64(src[y1*srcStride+x2])
			p21 := float64(src[y2*srcStride+x1])
			p22 := float64(src[y2*srcStride+x2])

			top := p11*(1-fx) + p12*fx
			bottom := p21*(1-fx) + p22*fx
			dst[y*dstStride+x] = byte(top*(1-fy) + bottom*fy + 0.5)
		}
	}
}

// Package video provides the decoded video frame model and the pixel
// transforms the presentation pipeline applies to it.
//
// Frames arrive from a producer in planar I420 (YUV420) form, possibly with
// a rotation the capture device reports. Before a frame can be painted it
// goes through two pure transforms:
//
//	I420 (rotated) → Rotate → I420 (upright) → ConvertI420ToRGBA → RGBA
//
// # Video Frames
//
//	frame := video.NewVideoFrame(640, 480)
//	frame.Rotation = video.Rotation90
//
// Chroma planes are half resolution in both directions, rounding up for odd
// sizes. Validate checks dimensions against the limits package and plane
// lengths against the declared strides.
//
// # Rotation
//
// Rotate always returns a new, tightly packed, upright frame. Rotating by a
// rotation and then by its Inverse reproduces the original samples:
//
//	upright, err := video.Rotate(frame, frame.Rotation)
//	back, _ := video.Rotate(upright, frame.Rotation.Inverse())
//
// # Scaling
//
// Scale resizes every plane with bilinear interpolation. FitPixelCount
// picks the largest size of the same aspect within a sink's pixel budget:
//
//	w, h := video.FitPixelCount(frame.Width, frame.Height, wants.MaxPixelCount)
//	small, err := video.Scale(frame, w, h)
//
// # Color Conversion
//
// ConvertI420ToRGBA applies the BT.601 studio-swing matrix in integer fixed
// point and writes opaque interleaved RGBA, four bytes per pixel, into a
// caller-owned buffer. The conversion is deterministic, so a frame converted
// once at ingestion never needs converting again at paint time.
package video

// Package limits provides centralized frame size constants and validation functions
// for the video presentation pipeline. This package ensures consistent size
// enforcement between frame producers, the renderers and the paint path.
//
// # Frame Size Hierarchy
//
//   - BytesPerPixel (4): every display buffer is interleaved RGBA.
//
//   - MaxFrameDimension (8192): the largest width or height accepted from a producer.
//     Anything larger is treated as unsupported input and dropped.
//
//   - MaxDisplayBuffer: the largest display buffer a renderer will ever allocate,
//     MaxFrameDimension squared times BytesPerPixel.
//
// # Validation Functions
//
// Validation rejects empty frames rather than allocating zero-length buffers:
//
//	if err := limits.ValidateFrameDimensions(w, h); err != nil {
//	    // drop the frame
//	}
//
// Errors wrap ErrFrameEmpty or ErrFrameTooLarge so callers can classify them
// with errors.Is.
package limits

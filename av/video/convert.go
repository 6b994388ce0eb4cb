package video

import (
	"fmt"
)

// BT.601 studio-swing coefficients in 8-bit fixed point.
//
//	R = 1.164(Y-16)                + 1.596(V-128)
//	G = 1.164(Y-16) - 0.391(U-128) - 0.813(V-128)
//	B = 1.164(Y-16) + 2.018(U-128)
const (
	coefY  = 298
	coefRV = 409
	coefGU = 100
	coefGV = 208
	coefBU = 516
)

// ConvertI420ToRGBA converts an upright I420 frame into interleaved RGBA.
//
// dst receives frame.Height rows of frame.Width pixels, each row starting
// dstStride bytes after the previous one. Alpha is always opaque. The frame's
// Rotation is ignored; rotate first with Rotate.
func ConvertI420ToRGBA(frame *VideoFrame, dst []byte, dstStride int) error {
	if frame == nil {
		return fmt.Errorf("source frame cannot be nil")
	}
	if dstStride < frame.Width*4 {
		return fmt.Errorf("%w: stride %d for width %d", ErrDestinationTooSmall, dstStride, frame.Width)
	}
	if need := (frame.Height-1)*dstStride + frame.Width*4; len(dst) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrDestinationTooSmall, len(dst), need)
	}

	for y := 0; y < frame.Height; y++ {
		yRow := frame.Y[y*frame.YStride:]
		uRow := frame.U[(y/2)*frame.UStride:]
		vRow := frame.V[(y/2)*frame.VStride:]
		out := dst[y*dstStride:]

		for x := 0; x < frame.Width; x++ {
			c := coefY * (int(yRow[x]) - 16)
			d := int(uRow[x/2]) - 128
			e := int(vRow[x/2]) - 128

			i := x * 4
			out[i] = clamp8((c + coefRV*e + 128) >> 8)
			out[i+1] = clamp8((c - coefGU*d - coefGV*e + 128) >> 8)
			out[i+2] = clamp8((c + coefBU*d + 128) >> 8)
			out[i+3] = 0xff
		}
	}

	return nil
}

func clamp8(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidFrame(width, height int, y, u, v byte) *VideoFrame {
	frame := NewVideoFrame(width, height)
	for i := range frame.Y {
		frame.Y[i] = y
	}
	for i := range frame.U {
		frame.U[i] = u
		frame.V[i] = v
	}
	return frame
}

func TestConvertI420ToRGBA_ReferenceColors(t *testing.T) {
	tests := []struct {
		name    string
		y, u, v byte
		want    [4]byte
	}{
		{"black", 16, 128, 128, [4]byte{0, 0, 0, 255}},
		{"white", 235, 128, 128, [4]byte{255, 255, 255, 255}},
		{"mid gray", 126, 128, 128, [4]byte{128, 128, 128, 255}},
		{"red", 81, 90, 240, [4]byte{255, 0, 0, 255}},
		{"below black clamps", 0, 128, 128, [4]byte{0, 0, 0, 255}},
		{"above white clamps", 255, 128, 128, [4]byte{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := solidFrame(2, 2, tt.y, tt.u, tt.v)
			dst := make([]byte, 2*2*4)

			require.NoError(t, ConvertI420ToRGBA(frame, dst, 8))

			for px := 0; px < 4; px++ {
				assert.Equal(t, tt.want[:], dst[px*4:px*4+4], "pixel %d", px)
			}
		})
	}
}

func TestConvertI420ToRGBA_ChromaSubsampling(t *testing.T) {
	// 4x2 frame: left chroma column neutral, right chroma column red-shifted.
	frame := solidFrame(4, 2, 126, 128, 128)
	frame.V[1] = 240

	dst := make([]byte, 4*2*4)
	require.NoError(t, ConvertI420ToRGBA(frame, dst, 16))

	for row := 0; row < 2; row++ {
		for x := 0; x < 4; x++ {
			r := dst[row*16+x*4]
			if x < 2 {
				assert.Equal(t, byte(128), r, "row %d x %d", row, x)
			} else {
				assert.Equal(t, byte(255), r, "row %d x %d", row, x)
			}
		}
	}
}

func TestConvertI420ToRGBA_OddDimensions(t *testing.T) {
	frame := solidFrame(3, 3, 235, 128, 128)
	dst := make([]byte, 3*3*4)

	require.NoError(t, ConvertI420ToRGBA(frame, dst, 12))
	assert.Equal(t, []byte{255, 255, 255, 255}, dst[len(dst)-4:])
}

func TestConvertI420ToRGBA_DestinationTooSmall(t *testing.T) {
	frame := solidFrame(4, 4, 16, 128, 128)

	err := ConvertI420ToRGBA(frame, make([]byte, 10), 16)
	assert.ErrorIs(t, err, ErrDestinationTooSmall)

	err = ConvertI420ToRGBA(frame, make([]byte, 64), 8)
	assert.ErrorIs(t, err, ErrDestinationTooSmall)

	assert.Error(t, ConvertI420ToRGBA(nil, nil, 0))
}

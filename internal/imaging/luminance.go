package imaging

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates that a pixel buffer's length does not match
// its declared width and height. It is returned (wrapped) by every function
// in this package and by the bounding-box extractor; callers can test for it
// with errors.Is.
var ErrInvalidDimensions = errors.New("buffer length does not match dimensions")

// Luminance converts an interleaved RGBA pixel buffer to a single-channel
// intensity buffer.
//
// Parameters:
//   - pix: Row-major interleaved RGBA bytes, 4 per pixel. The buffer is only
//     read; the caller retains ownership for the duration of the call.
//   - width, height: Image dimensions in pixels.
//
// Returns:
//   - []uint8: Freshly allocated intensity buffer of length width*height,
//     where intensity = (R+G+B)/3 in integer arithmetic, clamped to [0,255].
//     The alpha channel is read but does not contribute.
//   - error: Non-nil (wrapping ErrInvalidDimensions) if len(pix) differs
//     from width*height*4 or either dimension is not positive.
//
// The average of three 8-bit channels never exceeds 255, so the clamp only
// matters if the arithmetic is ever changed.
func Luminance(pix []uint8, width, height int) ([]uint8, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d RGBA (want %d)",
			ErrInvalidDimensions, len(pix), width, height, width*height*4)
	}

	out := make([]uint8, width*height)
	for i := range out {
		o := i * 4
		v := (int(pix[o]) + int(pix[o+1]) + int(pix[o+2])) / 3
		out[i] = uint8(clamp(v, 0, 255))
	}
	return out, nil
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

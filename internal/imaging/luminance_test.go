package imaging

import (
	"errors"
	"testing"
)

func TestLuminance_PureRed(t *testing.T) {
	// (255+0+0)/3 = 85 at every position.
	width, height := 7, 5
	pix := makeRGBA(width, height, 255, 0, 0, 255)

	out, err := Luminance(pix, width, height)
	if err != nil {
		t.Fatalf("Luminance failed: %v", err)
	}

	if len(out) != width*height {
		t.Fatalf("output length: got %d, want %d", len(out), width*height)
	}
	for i, v := range out {
		if v != 85 {
			t.Fatalf("out[%d]: got %d, want 85", i, v)
		}
	}
}

func TestLuminance_ChannelAverage(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a uint8
		want       uint8
	}{
		{"black", 0, 0, 0, 255, 0},
		{"white", 255, 255, 255, 255, 255},
		{"mid gray", 128, 128, 128, 255, 128},
		{"mixed", 30, 60, 90, 255, 60},
		{"truncated", 1, 1, 0, 255, 0}, // 2/3 truncates to 0
		{"alpha ignored", 90, 90, 90, 0, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix := makeRGBA(3, 3, tt.r, tt.g, tt.b, tt.a)
			out, err := Luminance(pix, 3, 3)
			if err != nil {
				t.Fatalf("Luminance failed: %v", err)
			}
			if out[4] != tt.want {
				t.Errorf("got %d, want %d", out[4], tt.want)
			}
		})
	}
}

func TestLuminance_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		pixLen        int
		width, height int
	}{
		{"short buffer", 10, 2, 2},
		{"long buffer", 20, 2, 2},
		{"zero width", 0, 0, 2},
		{"negative height", 0, 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Luminance(make([]uint8, tt.pixLen), tt.width, tt.height)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("got %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 255, 5},
		{-1, 0, 255, 0},
		{300, 0, 255, 255},
		{0, 0, 255, 0},
		{255, 0, 255, 255},
	}

	for _, tt := range tests {
		got := clamp(tt.val, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d",
				tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

// makeRGBA builds a uniform interleaved RGBA buffer for testing.
func makeRGBA(width, height int, r, g, b, a uint8) []uint8 {
	pix := make([]uint8, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
	return pix
}

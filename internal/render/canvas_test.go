package render

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"edgescout/internal/detection"
)

func TestCanvas_ResizeAndSize(t *testing.T) {
	c := NewCanvas(4, 3)
	w, h := c.Size()
	if w != 4 || h != 3 {
		t.Fatalf("initial size: got %dx%d, want 4x3", w, h)
	}

	c.Resize(10, 20)
	w, h = c.Size()
	if w != 10 || h != 20 {
		t.Fatalf("resized: got %dx%d, want 10x20", w, h)
	}
}

func TestCanvas_DrawImagePixelRoundTrip(t *testing.T) {
	c := NewCanvas(3, 3)
	c.DrawImage(solidImage(3, 3, color.NRGBA{R: 255, A: 255}))

	pix := c.Pixels()
	if len(pix) != 3*3*4 {
		t.Fatalf("pixel buffer length: got %d, want %d", len(pix), 3*3*4)
	}
	if pix[0] != 255 || pix[1] != 0 || pix[2] != 0 || pix[3] != 255 {
		t.Errorf("first pixel: got (%d,%d,%d,%d), want (255,0,0,255)",
			pix[0], pix[1], pix[2], pix[3])
	}
}

func TestCanvas_PixelsIsCallerOwned(t *testing.T) {
	c := NewCanvas(2, 2)
	c.DrawImage(solidImage(2, 2, color.NRGBA{G: 200, A: 255}))

	pix := c.Pixels()
	pix[1] = 7

	if again := c.Pixels(); again[1] != 200 {
		t.Errorf("surface mutated through returned buffer: got %d, want 200", again[1])
	}
}

func TestCanvas_Region(t *testing.T) {
	c := NewCanvas(4, 4)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(2, 1, color.NRGBA{B: 255, A: 255})
	c.DrawImage(img)

	region, err := c.Region(image.Rect(2, 1, 4, 3))
	if err != nil {
		t.Fatalf("Region failed: %v", err)
	}
	if len(region) != 2*2*4 {
		t.Fatalf("region length: got %d, want 16", len(region))
	}
	// (2,1) is the region's first pixel.
	if region[2] != 255 {
		t.Errorf("region first pixel blue: got %d, want 255", region[2])
	}
}

func TestCanvas_RegionValidation(t *testing.T) {
	c := NewCanvas(4, 4)

	tests := []struct {
		name string
		r    image.Rectangle
	}{
		{"outside bounds", image.Rect(0, 0, 5, 4)},
		{"negative origin", image.Rect(-1, 0, 2, 2)},
		{"degenerate", image.Rect(2, 2, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Region(tt.r); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestCanvas_StrokePolygon(t *testing.T) {
	c := NewCanvas(12, 12)
	c.DrawImage(solidImage(12, 12, color.NRGBA{A: 255}))

	box := detection.BoundingBox{
		TopLeft:     detection.Point{X: 2, Y: 2},
		TopRight:    detection.Point{X: 9, Y: 2},
		BottomRight: detection.Point{X: 9, Y: 9},
		BottomLeft:  detection.Point{X: 2, Y: 9},
	}
	c.StrokePolygon(box.Corners(), Stroke{Color: color.NRGBA{R: 255, A: 255}, Width: 2})

	pix := c.Pixels()
	// A point on the top edge of the outline must now carry red.
	if pix[(2*12+5)*4] == 0 {
		t.Error("stroke left no mark on the top edge")
	}
	// A point on the left edge as well.
	if pix[(5*12+2)*4] == 0 {
		t.Error("stroke left no mark on the left edge")
	}
	// The box interior stays black.
	if pix[(5*12+5)*4] != 0 {
		t.Error("stroke bled into the box interior")
	}
}

func TestCanvas_StrokePolygonTooFewPoints(t *testing.T) {
	c := NewCanvas(4, 4)
	before := c.Pixels()

	c.StrokePolygon([]detection.Point{{X: 1, Y: 1}}, Stroke{Color: color.White, Width: 1})

	after := c.Pixels()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("single-point stroke modified the surface")
		}
	}
}

func TestCanvas_Snapshot(t *testing.T) {
	c := NewCanvas(6, 4)
	c.DrawImage(solidImage(6, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))

	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.Width != 6 || snap.Height != 4 {
		t.Errorf("snapshot dimensions: got %dx%d, want 6x4", snap.Width, snap.Height)
	}
	if snap.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", snap.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(snap.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded dimensions: got %dx%d, want 6x4",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestCanvas_Save(t *testing.T) {
	c := NewCanvas(5, 5)
	c.DrawImage(solidImage(5, 5, color.NRGBA{G: 255, A: 255}))

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := c.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen saved file: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 5 {
		t.Errorf("saved dimensions: got %dx%d, want 5x5",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

// solidImage creates a uniform image for testing.
func solidImage(width, height int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

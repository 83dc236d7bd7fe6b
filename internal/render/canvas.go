package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"edgescout/internal/detection"
)

// Stroke describes the pen used for overlay drawing.
type Stroke struct {
	Color color.Color
	Width float64
}

// Canvas is a raster drawing surface backed by an in-memory RGBA context.
//
// The zero value is not usable; create one with NewCanvas. Resize discards
// the current contents, matching a display surface that is re-sized to each
// incoming frame and redrawn from scratch.
type Canvas struct {
	gc *gg.Context
}

// NewCanvas creates a canvas with the given initial dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{gc: gg.NewContext(width, height)}
}

// Size returns the current surface dimensions in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.gc.Width(), c.gc.Height()
}

// Resize replaces the surface with a fresh, zeroed one of the given
// dimensions. Previous contents are discarded.
func (c *Canvas) Resize(width, height int) {
	c.gc = gg.NewContext(width, height)
}

// DrawImage draws img with its top-left corner at the surface origin.
func (c *Canvas) DrawImage(img image.Image) {
	c.gc.DrawImage(img, 0, 0)
}

// Pixels returns the surface contents as interleaved RGBA bytes, row-major,
// 4 per pixel. The returned buffer is a copy owned by the caller; later
// drawing does not mutate it.
func (c *Canvas) Pixels() []uint8 {
	return clone.AsRGBA(c.gc.Image()).Pix
}

// Region returns the interleaved RGBA bytes of a sub-rectangle of the
// surface, row-major within the region. The region must lie entirely within
// the surface bounds and be non-degenerate.
func (c *Canvas) Region(r image.Rectangle) ([]uint8, error) {
	w, h := c.Size()
	if r.Min.X < 0 || r.Min.Y < 0 || r.Max.X > w || r.Max.Y > h {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside surface bounds %dx%d",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, w, h)
	}
	if r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y {
		return nil, fmt.Errorf("invalid region: min must be < max on both axes")
	}

	rgba := clone.AsRGBA(c.gc.Image())
	out := make([]uint8, r.Dx()*r.Dy()*4)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := rgba.Pix[y*rgba.Stride+r.Min.X*4 : y*rgba.Stride+r.Max.X*4]
		copy(out[(y-r.Min.Y)*r.Dx()*4:], src)
	}
	return out, nil
}

// StrokePolygon draws a closed polygon through pts in order, using the given
// stroke. Fewer than two points is a no-op.
func (c *Canvas) StrokePolygon(pts []detection.Point, s Stroke) {
	if len(pts) < 2 {
		return
	}
	c.gc.SetColor(s.Color)
	c.gc.SetLineWidth(s.Width)
	c.gc.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		c.gc.LineTo(float64(p.X), float64(p.Y))
	}
	c.gc.ClosePath()
	c.gc.Stroke()
}

// SnapshotResult contains the current surface contents encoded as base64 PNG.
type SnapshotResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Snapshot encodes the current surface contents as a base64 PNG.
func (c *Canvas) Snapshot() (*SnapshotResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.gc.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	w, h := c.Size()
	return &SnapshotResult{
		Width:       w,
		Height:      h,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes the current surface contents to path. The format is inferred
// from the file extension.
func (c *Canvas) Save(path string) error {
	if err := imaging.Save(c.gc.Image(), path); err != nil {
		return fmt.Errorf("failed to save surface: %w", err)
	}
	return nil
}

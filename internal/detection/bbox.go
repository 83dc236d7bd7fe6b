package detection

import (
	"fmt"

	"edgescout/internal/imaging"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// BoundingBox is the smallest axis-aligned rectangle enclosing all pixels
// that exceeded the detection threshold, expressed as its four corners.
//
// Invariants for a non-empty box: TopLeft.X == BottomLeft.X (minX),
// TopRight.X == BottomRight.X (maxX), TopLeft.Y == TopRight.Y (minY),
// BottomLeft.Y == BottomRight.Y (maxY), with minX <= maxX and minY <= maxY.
// An empty box (see Empty) carries the inverted min/max values instead.
type BoundingBox struct {
	TopLeft     Point `json:"top_left"`
	TopRight    Point `json:"top_right"`
	BottomRight Point `json:"bottom_right"`
	BottomLeft  Point `json:"bottom_left"`
}

// Empty reports whether the box represents "no detection": no pixel ever
// widened the initial inverted min/max bounds, leaving min > max on at
// least one axis.
func (b BoundingBox) Empty() bool {
	return b.TopLeft.X > b.TopRight.X || b.TopLeft.Y > b.BottomLeft.Y
}

// Width returns the horizontal extent in pixels. Negative for an empty box.
func (b BoundingBox) Width() int { return b.TopRight.X - b.TopLeft.X }

// Height returns the vertical extent in pixels. Negative for an empty box.
func (b BoundingBox) Height() int { return b.BottomLeft.Y - b.TopLeft.Y }

// Corners returns the corners in overlay drawing order: top-left, top-right,
// bottom-right, bottom-left. Closing the path back to the first point yields
// the box outline.
func (b BoundingBox) Corners() []Point {
	return []Point{b.TopLeft, b.TopRight, b.BottomRight, b.BottomLeft}
}

// Extract scans a gradient magnitude buffer and returns the bounding box of
// all pixels with magnitude strictly greater than threshold.
//
// Parameters:
//   - mag: Row-major gradient magnitude buffer, one value per pixel.
//   - width, height: Image dimensions in pixels.
//   - threshold: Detection threshold. Pixels equal to it are excluded.
//
// Returns:
//   - BoundingBox: Corners built from the final min/max coordinates. When no
//     pixel exceeds the threshold the min/max values never move off their
//     initialization and the result is the inverted rectangle minX=width,
//     minY=height, maxX=0, maxY=0 rather than an error. Callers that need an
//     explicit signal should use Locate or check Empty.
//   - error: Non-nil (wrapping imaging.ErrInvalidDimensions) if len(mag)
//     differs from width*height.
func Extract(mag []float64, width, height int, threshold float64) (BoundingBox, error) {
	if width <= 0 || height <= 0 {
		return BoundingBox{}, fmt.Errorf("%w: %dx%d", imaging.ErrInvalidDimensions, width, height)
	}
	if len(mag) != width*height {
		return BoundingBox{}, fmt.Errorf("%w: got %d magnitude values for %dx%d (want %d)",
			imaging.ErrInvalidDimensions, len(mag), width, height, width*height)
	}

	minX, minY := width, height
	maxX, maxY := 0, 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mag[y*width+x] > threshold {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	return BoundingBox{
		TopLeft:     Point{X: minX, Y: minY},
		TopRight:    Point{X: maxX, Y: minY},
		BottomRight: Point{X: maxX, Y: maxY},
		BottomLeft:  Point{X: minX, Y: maxY},
	}, nil
}

// Locate is Extract with an explicit detection signal: the boolean is false
// when no pixel exceeded the threshold, in which case the returned box is
// the zero value and must not be drawn.
func Locate(mag []float64, width, height int, threshold float64) (BoundingBox, bool, error) {
	box, err := Extract(mag, width, height, threshold)
	if err != nil {
		return BoundingBox{}, false, err
	}
	if box.Empty() {
		return BoundingBox{}, false, nil
	}
	return box, true, nil
}

// Package imaging implements the pixel-level stages of the edge detection
// pipeline: luminance conversion and gradient magnitude computation.
//
// Both stages operate on flat, row-major buffers rather than image.Image
// values. The pipeline reads interleaved RGBA bytes back from the render
// surface, converts them to a single-channel intensity buffer, and derives a
// per-pixel edge strength map from that:
//
//	RGBA bytes (w*h*4) -> Luminance -> intensity (w*h) ->
//	GradientMagnitude -> magnitude (w*h, float64)
//
// # Coordinate System
//
// All buffers are row-major with (0,0) at the top-left corner: index
// y*width+x addresses the pixel at column x, row y. X increases rightward,
// Y increases downward.
//
// # Boundary Policy
//
// GradientMagnitude visits interior pixels only. The one-pixel outer border
// of the output is never written and stays at its zero value. There is no
// reflection, clamping, or wraparound at the image edge; downstream
// consumers must treat border values as zero. This policy determines how
// bounding boxes behave for objects touching the frame and must not change.
//
// # Error Handling
//
// Both functions validate that the input buffer length matches the declared
// dimensions and fail with an error wrapping ErrInvalidDimensions instead of
// indexing out of bounds. They perform no other I/O and have no side effects
// beyond allocating the output buffer.
//
// # Concurrency
//
// Luminance and GradientMagnitude are pure functions and safe to call
// concurrently on distinct buffers. GradientMagnitudeParallel splits the
// convolution across row bands; each row's output depends only on read-only
// input, so the bands never contend.
package imaging

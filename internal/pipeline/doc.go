// Package pipeline sequences the detection stages against one loaded image
// and renders the result as an overlay on the render surface.
//
// # Protocol
//
// Each trigger (an image locator) drives one run through five states:
//
//	Idle -> Loading -> Sizing -> Processing -> Overlay -> Idle
//
//  1. Loading: the locator is resolved and decoded asynchronously; the run
//     suspends until the decode completes. A decode failure abandons the
//     run with no overlay and no diagnostic beyond a log line.
//  2. Sizing: the surface is resized to the image's natural dimensions and
//     the raw image is drawn into it.
//  3. Processing: the pixel buffer is read back from the surface and fed
//     through luminance conversion, gradient computation, and bounding-box
//     extraction with the configured threshold.
//  4. Overlay: the box corners are stroked as a closed polygon onto the
//     surface.
//
// No result is communicated back to whoever delivered the trigger; the only
// observable effect is the overlay (and, optionally, an archived snapshot).
//
// # Single-Run Gate
//
// The surface is a single shared drawing target, so concurrent runs would
// interleave their Sizing and Overlay steps and corrupt the visible result.
// The detector therefore admits one run at a time: a trigger arriving while
// a run is active is dropped with ErrBusy. Serve logs the drop and moves on.
//
// # Degenerate Detections
//
// When no pixel clears the threshold the extractor has nothing to box. By
// default the overlay is skipped and the empty result logged. Setting
// Config.DrawEmpty instead strokes the literal inverted rectangle that the
// legacy extraction produces, for bit-faithful compatibility.
package pipeline

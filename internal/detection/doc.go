// Package detection reduces a gradient magnitude map to an axis-aligned
// bounding box around the pixels whose edge strength exceeds a threshold.
//
// Two entry points cover the two contracts callers need:
//
//   - Locate reports whether anything exceeded the threshold at all, so
//     callers can distinguish "no detection" from a real box.
//   - Extract reproduces the legacy behavior exactly: when no pixel exceeds
//     the threshold it returns the inverted rectangle that falls out of the
//     min/max initialization (minX=width, minY=height, maxX=0, maxY=0)
//     instead of an explicit empty signal. Use it only where bit-faithful
//     compatibility with that behavior is required.
//
// The threshold comparison is strict: a pixel exactly equal to the threshold
// does not count as a detection.
//
// Coordinates are 0-based with the origin at the top-left corner. A box
// derived from a real detection always lies within [0,width) x [0,height).
package detection

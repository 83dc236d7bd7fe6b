// Package render provides the drawing surface the pipeline renders onto and
// the locator-based image loader that feeds it.
//
// Canvas is an in-memory raster surface offering exactly the primitives the
// pipeline needs: resize, draw an image at the origin, read interleaved RGBA
// pixels back, and stroke a closed polygon overlay. Loader resolves an image
// locator (file path, http(s) URL, or data: URI) to a decoded image.
//
// A Canvas is a single shared drawing target and is not safe for concurrent
// use; interleaved runs corrupt the visible result. The pipeline serializes
// access with its single-run gate.
package render

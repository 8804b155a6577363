// Package sink renders a [scene.Scene] to its output formats.
//
// # Overview
//
// Two renderers consume the same scene:
//
//   - [RenderSVG] produces the live preview: vector groups with CSS
//     mix-blend-mode, feTurbulence for the cotton texture, feGaussianBlur
//     for soft shadows, and the artwork as transformed <image> elements.
//   - [Rasterize] produces the export bitmap: the same groups rasterized with
//     golang.org/x/image/vector and fogleman/gg, blurred with imaging, and
//     blended with the same multiply and screen formulas the browser uses.
//
// Because both renderers read one scene, an export always matches what the
// preview showed, at whatever output size is requested.
//
// # Raster Output
//
//	img, err := sink.Rasterize(ctx, s, sink.WithRasterSize(2000))
//	if err != nil {
//	    return err // DECODE_FAILURE if any artwork fails to decode
//	}
//	err = sink.FormatPNG.Encode(w, img)
//
// Artwork is decoded before any painting starts. One failed decode aborts
// the whole render; no partial image is produced.
//
// # Formats
//
// [Format] names the encodings an export can use: [FormatPNG] (imaging),
// [FormatWebP] (nativewebp) and [FormatSVG].
package sink

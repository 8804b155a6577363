// Package render draws the t-shirt mockup.
//
// # Overview
//
// Rendering is split into small packages that feed each other:
//
//   - [pathdata]: parses the SVG path strings that describe the garment
//   - [draw]: the draw-command model (paths, fills, gradients, images, text)
//   - [silhouette]: the garment outline and its shading for each view
//   - [scene]: one composed frame with garment, artwork and watermark
//   - [sink]: output formats (SVG preview, PNG and WebP rasters)
//
// The same [scene.Scene] is rendered by both sinks, so the browser preview
// and the downloaded mockup show identical geometry.
//
//	d, _ := silhouette.Render(garment.Front, silhouette.Base, color)
//	svg := sink.RenderSVG(scene.Scene{View: garment.Front, Base: d})
//
// [pathdata]: github.com/furiarock/mockstudio/pkg/render/pathdata
// [draw]: github.com/furiarock/mockstudio/pkg/render/draw
// [silhouette]: github.com/furiarock/mockstudio/pkg/render/silhouette
// [scene]: github.com/furiarock/mockstudio/pkg/render/scene
// [scene.Scene]: github.com/furiarock/mockstudio/pkg/render/scene#Scene
// [sink]: github.com/furiarock/mockstudio/pkg/render/sink
package render

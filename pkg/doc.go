// Package pkg provides the core libraries for mockstudio, the Furia Rock
// t-shirt mockup customizer.
//
// # Overview
//
// Mockstudio lets a customer place artwork on the print zones of a t-shirt,
// look at the garment from four sides and export the result as a mockup
// image. The pkg directory is organized into four areas:
//
//  1. Geometry and state: [garment], [layer], [project], [placement]
//  2. Rendering: [render] and its subpackages, [fonts], [artwork]
//  3. Output: [compose], [quote], [tryon]
//  4. Infrastructure: [cache], [session], [config], [errors], [observability]
//
// # Architecture
//
// The data flow for one export:
//
//	project.State (color, view, layers)
//	         ↓
//	    [compose] package (request → scene)
//	         ↓
//	    [render/silhouette] + [render/scene] (garment, artwork, watermark)
//	         ↓
//	    [render/sink] package (SVG preview, PNG/WebP raster)
//	         ↓
//	    [cache] package (content-addressed artifact cache)
//
// # Quick Start
//
// Load a project file and export the front view:
//
//	import (
//	    "context"
//	    "github.com/furiarock/mockstudio/pkg/cache"
//	    "github.com/furiarock/mockstudio/pkg/compose"
//	    "github.com/furiarock/mockstudio/pkg/project"
//	    "github.com/furiarock/mockstudio/pkg/render/sink"
//	)
//
//	st, _ := project.Load("tour.toml")
//	req, _ := compose.RequestFromState(st, sink.FormatPNG)
//	res, _ := compose.NewExporter(cache.NewNullCache(), nil, nil).Export(context.Background(), req)
//	os.WriteFile(req.Filename(), res.Data, 0o644)
//
// # Main Packages
//
// [garment] - The fixed print zones, the four camera views and the mapping
// from a 360° rotation to the view it shows.
//
// [layer] - One design layer per print zone. Values are clamped on input and
// layers are updated through patches.
//
// [project] - The immutable project state and the TOML project file format.
//
// [placement] - Pointer drags and rotation input turned into layer patches.
//
// [compose] - Builds scenes from project state and exports them, with caching.
//
// [tryon] - Sends the mockup and a customer photo to an image model and
// returns the generated try-on photo.
//
// [garment]: github.com/furiarock/mockstudio/pkg/garment
// [layer]: github.com/furiarock/mockstudio/pkg/layer
// [project]: github.com/furiarock/mockstudio/pkg/project
// [placement]: github.com/furiarock/mockstudio/pkg/placement
// [render]: github.com/furiarock/mockstudio/pkg/render
// [render/silhouette]: github.com/furiarock/mockstudio/pkg/render/silhouette
// [render/scene]: github.com/furiarock/mockstudio/pkg/render/scene
// [render/sink]: github.com/furiarock/mockstudio/pkg/render/sink
// [fonts]: github.com/furiarock/mockstudio/pkg/fonts
// [artwork]: github.com/furiarock/mockstudio/pkg/artwork
// [compose]: github.com/furiarock/mockstudio/pkg/compose
// [quote]: github.com/furiarock/mockstudio/pkg/quote
// [tryon]: github.com/furiarock/mockstudio/pkg/tryon
// [cache]: github.com/furiarock/mockstudio/pkg/cache
// [session]: github.com/furiarock/mockstudio/pkg/session
// [config]: github.com/furiarock/mockstudio/pkg/config
// [errors]: github.com/furiarock/mockstudio/pkg/errors
// [observability]: github.com/furiarock/mockstudio/pkg/observability
package pkg

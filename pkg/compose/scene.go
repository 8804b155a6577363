// Package compose turns project state into finished mockups.
//
// [BuildScene] is the one place a frame is assembled: it picks the zones
// of the view, sizes the artwork, and decides which decorations appear.
// The preview and the exporter both go through it, so they draw the same
// picture. [Exporter] adds caching and encoding on top.
package compose

import (
	"image/color"

	"github.com/furiarock/mockstudio/pkg/artwork"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/layer"
	"github.com/furiarock/mockstudio/pkg/project"
	"github.com/furiarock/mockstudio/pkg/render/draw"
	"github.com/furiarock/mockstudio/pkg/render/scene"
	"github.com/furiarock/mockstudio/pkg/render/silhouette"
)

// Frame is everything a scene depends on.
type Frame struct {
	View       garment.View
	Color      string
	Background color.NRGBA
	Layers     layer.Set

	// Guides outlines the zones of View, highlighting Selected.
	Guides   bool
	Selected garment.ZoneID

	// Watermark is the watermark text. Empty means no watermark.
	Watermark string

	// Comparing draws the bare white garment with no artwork.
	Comparing bool
}

// PreviewFrame returns the frame the live preview shows for s.
func PreviewFrame(s project.State, watermarkText string) Frame {
	f := Frame{
		View:       s.View,
		Color:      s.Color,
		Background: draw.White,
		Layers:     s.Layers,
		Guides:     s.ShowGuides,
		Selected:   s.SelectedZone,
		Comparing:  s.Comparing,
	}
	if s.ShowWatermark {
		f.Watermark = watermarkOrDefault(watermarkText)
	}
	return f
}

func watermarkOrDefault(text string) string {
	if text == "" {
		return scene.WatermarkText
	}
	return text
}

// BuildScene assembles the scene for f. Decode failures surface when the
// scene is rasterized, not here.
func BuildScene(f Frame) (scene.Scene, error) {
	if !f.View.Valid() {
		return scene.Scene{}, errors.New(errors.ErrCodeRenderSurface, "no render surface for view %q", f.View)
	}

	colorHex := f.Color
	if f.Comparing {
		colorHex = garment.ComparisonColor
	}
	c, err := garment.ParseColor(colorHex)
	if err != nil {
		return scene.Scene{}, err
	}
	base, err := silhouette.Render(f.View, silhouette.Base, c)
	if err != nil {
		return scene.Scene{}, err
	}
	shadows, err := silhouette.Render(f.View, silhouette.Shadows, c)
	if err != nil {
		return scene.Scene{}, err
	}

	s := scene.Scene{
		View:       f.View,
		Background: f.Background,
		Base:       base,
		Shadows:    shadows,
	}
	if f.Comparing {
		return s, nil
	}

	zones := garment.ZonesForView(f.View)
	ids := make([]garment.ZoneID, len(zones))
	for i, z := range zones {
		ids[i] = z.ID
	}
	for _, l := range f.Layers.Drawable(ids...) {
		s.Placements = append(s.Placements, Place(l))
	}

	if f.Guides {
		for _, z := range zones {
			s.Guides = append(s.Guides, scene.Guide{
				Zone:     z.ID,
				Name:     z.Name,
				Area:     z.Area,
				Selected: z.ID == f.Selected,
			})
		}
	}
	if f.Watermark != "" {
		s.Watermark = scene.DefaultWatermark(f.Watermark)
	}
	return s, nil
}

// Place positions layer l inside its zone. Unreadable artwork is sized as
// a square.
func Place(l layer.Layer) scene.Placement {
	z := garment.Lookup(l.Zone)
	w, h, err := artwork.DecodeConfig(l.Image)
	if err != nil {
		w, h = 0, 0
	}
	p := scene.NewPlacement(z.ID, z.Area, w, h)
	p.Source = l.Image
	p.X, p.Y = l.X, l.Y
	p.Scale = l.Scale
	p.Rotation = float64(l.Rotation)
	p.Opacity = float64(l.Opacity) / 100
	return p
}

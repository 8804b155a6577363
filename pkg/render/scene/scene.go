// Package scene describes one fully composed frame of the mockup: the garment
// base, the placed artwork, the shadow overlay and the optional decorations.
//
// A Scene is what both sinks consume. The SVG sink turns it into the live
// preview; the raster sink turns it into the exported bitmap. Building the
// scene once and rendering it twice is what keeps preview and export in sync.
package scene

import (
	"image/color"

	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/render/draw"
)

// Scene is a composed frame in unit space.
type Scene struct {
	View       garment.View
	Background color.NRGBA

	Base       draw.Drawing
	Placements []Placement
	Shadows    draw.Drawing

	// Guides outline print zones. Only the preview draws them.
	Guides []Guide

	Watermark *Watermark
}

// Placement is one artwork image positioned inside a print zone.
type Placement struct {
	Zone garment.ZoneID
	Area garment.Rect

	// Source is the artwork as a data URL.
	Source string

	X, Y     float64 // percent of the zone, 0..100
	Scale    float64
	Rotation float64 // degrees
	Opacity  float64 // 0..1

	// Width and Height are the drawn size before scale and rotation. Width
	// always equals the zone width; Height follows the image aspect ratio.
	Width, Height float64
}

// NewPlacement sizes artwork of imgW×imgH pixels for zone area a.
func NewPlacement(zone garment.ZoneID, a garment.Rect, imgW, imgH int) Placement {
	p := Placement{Zone: zone, Area: a, Width: a.Width, Height: a.Width}
	if imgW > 0 && imgH > 0 {
		p.Height = a.Width * float64(imgH) / float64(imgW)
	}
	return p
}

// Center returns the placement anchor in unit space: the zone origin plus
// the zone size scaled by the percentage position.
func (p Placement) Center() (float64, float64) {
	return p.Area.X + p.Area.Width*p.X/100, p.Area.Y + p.Area.Height*p.Y/100
}

// Transform maps the placement's local box, centered on the origin and
// spanning ±Width/2 × ±Height/2, into unit space: scale, then rotate, then
// move to Center.
func (p Placement) Transform() Affine {
	cx, cy := p.Center()
	return Scale(p.Scale, p.Scale).Then(Rotate(p.Rotation)).Then(Translate(cx, cy))
}

// Contains reports whether the unit-space point (x, y) falls on the
// transformed artwork box.
func (p Placement) Contains(x, y float64) bool {
	inv, err := p.Transform().Invert()
	if err != nil {
		return false
	}
	lx, ly := inv.Apply(x, y)
	return lx >= -p.Width/2 && lx <= p.Width/2 && ly >= -p.Height/2 && ly <= p.Height/2
}

// Corners returns the four transformed corners of the artwork box.
func (p Placement) Corners() [4][2]float64 {
	t := p.Transform()
	hw, hh := p.Width/2, p.Height/2
	var out [4][2]float64
	for i, c := range [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}} {
		out[i][0], out[i][1] = t.Apply(c[0], c[1])
	}
	return out
}

// Guide is a print zone outline drawn on the preview.
type Guide struct {
	Zone     garment.ZoneID
	Name     string
	Area     garment.Rect
	Selected bool
}

// Watermark is a line of text anchored at its right end, on the baseline.
type Watermark struct {
	Text  string
	X, Y  float64
	Size  float64 // font size in unit space
	Color color.NRGBA
}

// Watermark defaults, in unit space. At the default 2000px export they are a
// 40px bold font placed 50px from the bottom-right corner.
const (
	WatermarkText   = "Furia Rock T-Shirts"
	WatermarkSize   = 20.0
	WatermarkMargin = 25.0
)

// DefaultWatermark returns the standard watermark with the given text.
func DefaultWatermark(text string) *Watermark {
	if text == "" {
		text = WatermarkText
	}
	return &Watermark{
		Text:  text,
		X:     garment.UnitSize - WatermarkMargin,
		Y:     garment.UnitSize - WatermarkMargin,
		Size:  WatermarkSize,
		Color: color.NRGBA{R: 255, G: 255, B: 255, A: 128},
	}
}

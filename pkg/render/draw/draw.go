// Package draw defines the draw-command model shared by the SVG preview and
// the raster exporter.
//
// A [Drawing] is an ordered list of [Group]s. Each group composites onto
// whatever is below it with its own blend mode and opacity, the same way an
// SVG <g> with mix-blend-mode does. Inside a group, [Op]s are painted with
// normal source-over blending in order.
//
// All coordinates are in the garment unit space (1000×1000). Sinks scale to
// their output size.
package draw

import (
	"image/color"

	"github.com/tdewolff/canvas"
)

// Blend is a separable blend mode.
type Blend int

const (
	Normal Blend = iota
	Multiply
	Screen
)

// String returns the CSS mix-blend-mode keyword.
func (b Blend) String() string {
	switch b {
	case Multiply:
		return "multiply"
	case Screen:
		return "screen"
	default:
		return "normal"
	}
}

// Stroke describes an outline.
type Stroke struct {
	Color color.NRGBA
	Width float64
	Round bool // round caps and joins
}

// Op paints a single shape.
type Op struct {
	Path *canvas.Path

	// Fill paints the interior. Nil means no fill.
	Fill *color.NRGBA

	// Texture fills the interior with the cotton noise texture instead of
	// Fill.
	Texture bool

	// Stroke paints the outline. Nil means no stroke.
	Stroke *Stroke

	// Opacity multiplies the alpha of everything the op paints. Zero is
	// treated as fully opaque so literal ops can omit it.
	Opacity float64

	// Blur is a gaussian standard deviation in unit space. Zero disables it.
	Blur float64
}

// Alpha returns the effective opacity in [0, 1].
func (o Op) Alpha() float64 {
	if o.Opacity <= 0 {
		return 1
	}
	if o.Opacity > 1 {
		return 1
	}
	return o.Opacity
}

// Group is a set of ops composited together.
type Group struct {
	Name    string
	Blend   Blend
	Opacity float64 // zero means fully opaque
	Ops     []Op
}

// Alpha returns the effective group opacity in [0, 1].
func (g Group) Alpha() float64 {
	if g.Opacity <= 0 || g.Opacity > 1 {
		return 1
	}
	return g.Opacity
}

// Drawing is an ordered list of groups.
type Drawing struct {
	Groups []Group
}

// Empty reports whether d paints nothing.
func (d Drawing) Empty() bool {
	for _, g := range d.Groups {
		if len(g.Ops) > 0 {
			return false
		}
	}
	return true
}

// Blurs returns the distinct blur radii used in d, in first-use order.
// The SVG sink declares one filter per radius.
func (d Drawing) Blurs() []float64 {
	var out []float64
	seen := map[float64]bool{}
	for _, g := range d.Groups {
		for _, op := range g.Ops {
			if op.Blur > 0 && !seen[op.Blur] {
				seen[op.Blur] = true
				out = append(out, op.Blur)
			}
		}
	}
	return out
}

// UsesTexture reports whether any op in d uses the cotton texture.
func (d Drawing) UsesTexture() bool {
	for _, g := range d.Groups {
		for _, op := range g.Ops {
			if op.Texture {
				return true
			}
		}
	}
	return false
}

// RGBA returns an NRGBA color pointer for use as Op.Fill.
func RGBA(r, g, b uint8, a float64) *color.NRGBA {
	return &color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

// Black and White are opaque fill colors.
var (
	Black = color.NRGBA{A: 255}
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

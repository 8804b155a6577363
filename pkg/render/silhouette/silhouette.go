// Package silhouette draws the garment outline and its procedural shading.
//
// [Render] is a pure function of (view, mode, color): the same arguments
// always produce the same [draw.Drawing]. The preview and the exporter both
// call it, which is what keeps the two outputs identical.
//
// Two modes are drawn separately because artwork goes between them:
//
//	base     ground shadow + outline filled with the garment color
//	shadows  cotton texture, collar, folds, highlights, outline and seams
//
// Front and back have their own geometry. Left and right share one side
// profile; right is the mirror image x → 1000 - x.
package silhouette

import (
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/render/draw"
	"github.com/furiarock/mockstudio/pkg/render/pathdata"
)

// Mode selects which layer of the garment is drawn.
type Mode string

const (
	Base    Mode = "base"
	Shadows Mode = "shadows"
)

// ParseMode converts an external string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Base, Shadows:
		return Mode(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown render mode %q (want base or shadows)", s)
}

// Render returns the drawing for one view and mode.
func Render(v garment.View, m Mode, c color.NRGBA) (draw.Drawing, error) {
	if !v.Valid() {
		return draw.Drawing{}, errors.New(errors.ErrCodeInvalidView, "unknown view %q", v)
	}

	var d draw.Drawing
	switch m {
	case Base:
		d = base(v, c)
	case Shadows:
		d = shadows(v)
	default:
		return draw.Drawing{}, errors.New(errors.ErrCodeInvalidInput, "unknown render mode %q", m)
	}

	if v == garment.Right {
		d = mirror(d)
	}
	return d, nil
}

// Outline returns the garment outline for v in unit space.
func Outline(v garment.View) *canvas.Path {
	o := outline(v)
	if v == garment.Right {
		return pathdata.MirrorX(o, garment.UnitSize)
	}
	return o
}

func outline(v garment.View) *canvas.Path {
	switch v {
	case garment.Front:
		return frontOutline
	case garment.Back:
		return backOutline
	default:
		return sideOutline
	}
}

func base(v garment.View, c color.NRGBA) draw.Drawing {
	fill := c
	return draw.Drawing{Groups: []draw.Group{
		{Name: "ground", Ops: []draw.Op{
			{Path: groundShadow, Fill: draw.RGBA(0, 0, 0, 1), Opacity: 0.25, Blur: foldBlur},
		}},
		{Name: "body", Ops: []draw.Op{
			{Path: outline(v), Fill: &fill},
		}},
	}}
}

func shadows(v garment.View) draw.Drawing {
	switch v {
	case garment.Front:
		return frontShadows()
	case garment.Back:
		return backShadows()
	default:
		return sideShadows()
	}
}

// texture is the cotton grain overlay shared by every view.
func texture(o *canvas.Path) draw.Group {
	return draw.Group{Name: "texture", Blend: draw.Multiply, Opacity: 0.5, Ops: []draw.Op{
		{Path: o, Texture: true},
	}}
}

// finish is the faint outline stroke drawn last on every view.
func finish(o *canvas.Path, extra ...draw.Op) draw.Group {
	ops := append([]draw.Op{{Path: o, Stroke: &draw.Stroke{Color: color.NRGBA{A: 26}, Width: 1}}}, extra...)
	return draw.Group{Name: "outline", Ops: ops}
}

func black(a float64) *color.NRGBA { return draw.RGBA(0, 0, 0, a) }
func white(a float64) *color.NRGBA { return draw.RGBA(255, 255, 255, a) }

func frontShadows() draw.Drawing {
	return draw.Drawing{Groups: []draw.Group{
		texture(frontOutline),
		{Name: "neck", Ops: []draw.Op{
			{Path: frontCollarInside, Fill: draw.RGBA(0x1a, 0x1a, 0x1a, 1), Opacity: 0.3},
			{Path: frontCollarRib, Stroke: &draw.Stroke{Color: draw.Black, Width: 18, Round: true}, Opacity: 0.1},
			{Path: frontCollarRib, Stroke: &draw.Stroke{Color: draw.White, Width: 2, Round: true}, Opacity: 0.3},
		}},
		{Name: "folds", Blend: draw.Multiply, Opacity: 0.6, Ops: []draw.Op{
			{Path: frontArmpitLeft1, Fill: black(1), Opacity: 0.1, Blur: foldBlur},
			{Path: frontArmpitLeft2, Fill: black(1), Opacity: 0.08, Blur: foldBlur},
			{Path: frontArmpitRight1, Fill: black(1), Opacity: 0.1, Blur: foldBlur},
			{Path: frontArmpitRight2, Fill: black(1), Opacity: 0.08, Blur: foldBlur},
			{Path: frontDrapeLeft, Fill: black(1), Opacity: 0.05, Blur: foldBlur},
			{Path: frontDrapeRight, Fill: black(1), Opacity: 0.05, Blur: foldBlur},
			{Path: frontHem, Fill: black(1), Opacity: 0.4, Blur: seamBlur},
		}},
		{Name: "highlights", Blend: draw.Screen, Opacity: 0.4, Ops: []draw.Op{
			{Path: frontChestLeft, Fill: white(1), Opacity: 0.3, Blur: highlightBlur},
			{Path: frontChestRight, Fill: white(1), Opacity: 0.3, Blur: highlightBlur},
			{Path: frontShoulderLeft, Fill: white(1), Opacity: 0.2, Blur: highlightBlur},
			{Path: frontShoulderRight, Fill: white(1), Opacity: 0.2, Blur: highlightBlur},
			{Path: frontRidgeLeft, Stroke: &draw.Stroke{Color: draw.White, Width: 15}, Opacity: 0.1, Blur: foldBlur},
			{Path: frontRidgeRight, Stroke: &draw.Stroke{Color: draw.White, Width: 15}, Opacity: 0.1, Blur: foldBlur},
		}},
		finish(frontOutline,
			draw.Op{Path: frontSeamLeft, Stroke: &draw.Stroke{Color: draw.Black, Width: 1}, Opacity: 0.1},
			draw.Op{Path: frontSeamRight, Stroke: &draw.Stroke{Color: draw.Black, Width: 1}, Opacity: 0.1},
		),
	}}
}

func backShadows() draw.Drawing {
	return draw.Drawing{Groups: []draw.Group{
		texture(backOutline),
		{Name: "neck", Ops: []draw.Op{
			{Path: backNeckRib, Stroke: &draw.Stroke{Color: draw.Black, Width: 15, Round: true}, Opacity: 0.1},
			{Path: backSpine, Stroke: &draw.Stroke{Color: draw.Black, Width: 20}, Opacity: 0.05, Blur: foldBlur},
		}},
		{Name: "highlights", Blend: draw.Screen, Opacity: 0.3, Ops: []draw.Op{
			{Path: backBladeLeft, Fill: white(1), Blur: highlightBlur},
			{Path: backBladeRight, Fill: white(1), Blur: highlightBlur},
		}},
		finish(backOutline),
	}}
}

func sideShadows() draw.Drawing {
	return draw.Drawing{Groups: []draw.Group{
		texture(sideOutline),
		{Name: "torso", Ops: []draw.Op{
			{Path: sideTorsoShadow, Fill: black(1), Opacity: 0.1, Blur: foldBlur},
		}},
		finish(sideOutline),
	}}
}

// mirror reflects every path in d about the vertical center line.
func mirror(d draw.Drawing) draw.Drawing {
	out := draw.Drawing{Groups: make([]draw.Group, len(d.Groups))}
	for i, g := range d.Groups {
		ng := g
		ng.Ops = make([]draw.Op, len(g.Ops))
		for j, op := range g.Ops {
			op.Path = pathdata.MirrorX(op.Path, garment.UnitSize)
			ng.Ops[j] = op
		}
		out.Groups[i] = ng
	}
	return out
}

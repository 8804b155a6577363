package sink

import (
	"bytes"
	"fmt"
	"html"
	"image/color"
	"strconv"
	"strings"

	"github.com/furiarock/mockstudio/pkg/fonts"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/render/draw"
	"github.com/furiarock/mockstudio/pkg/render/pathdata"
	"github.com/furiarock/mockstudio/pkg/render/scene"
)

const guideCSS = `
    .guide { fill: none; stroke: #94a3b8; stroke-width: 2; stroke-dasharray: 8 6; }
    .guide.selected { stroke: #ef4444; }
    .guide-label { font-family: sans-serif; font-size: 14px; fill: #64748b; }
    .design { cursor: move; }`

// The texture filter paints fractal noise tinted to the texture grey and
// keeps it only where the source shape is opaque.
const cottonFilter = `<filter id="cotton" x="0" y="0" width="100%%" height="100%%" filterUnits="objectBoundingBox">` +
	`<feTurbulence type="fractalNoise" baseFrequency="%g" numOctaves="%d" stitchTiles="stitch" result="noise"/>` +
	`<feColorMatrix in="noise" type="matrix" values="0 0 0 0 %[3]g  0 0 0 0 %[3]g  0 0 0 0 %[3]g  0 0 0 %[4]g 0" result="tint"/>` +
	`<feComposite in="tint" in2="SourceGraphic" operator="in"/>` +
	`</filter>`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	size        int
	interactive bool
	embedFont   bool
	transparent bool
}

// WithSVGSize sets the width and height attributes in pixels (default 1000).
func WithSVGSize(px int) SVGOption { return func(r *svgRenderer) { r.size = px } }

// WithInteractive adds the design class and zone data attributes the
// browser preview uses for hit testing.
func WithInteractive() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithoutFontEmbed skips the @font-face data URL for the watermark.
func WithoutFontEmbed() SVGOption { return func(r *svgRenderer) { r.embedFont = false } }

// WithoutBackground leaves the canvas transparent, for drawing one garment
// layer over another.
func WithoutBackground() SVGOption { return func(r *svgRenderer) { r.transparent = true } }

// RenderSVG renders s as a standalone SVG document in unit space.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{size: int(garment.UnitSize), embedFont: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%d" height="%d" data-view="%s">`+"\n",
		garment.UnitSize, garment.UnitSize, r.size, r.size, s.View)

	r.renderDefs(&buf, s)

	if !r.transparent {
		bg := s.Background
		bg.A = 0xff
		fmt.Fprintf(&buf, `  <rect width="%g" height="%g" fill="%s"/>`+"\n", garment.UnitSize, garment.UnitSize, hexColor(bg))
	}

	renderDrawing(&buf, "base", s.Base)
	r.renderPlacements(&buf, s.Placements)
	renderDrawing(&buf, "shadows", s.Shadows)
	r.renderGuides(&buf, s.Guides)
	if s.Watermark != nil {
		renderWatermark(&buf, *s.Watermark)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderDefs(buf *bytes.Buffer, s scene.Scene) {
	blurs := mergeBlurs(s.Base.Blurs(), s.Shadows.Blurs())
	texture := s.Base.UsesTexture() || s.Shadows.UsesTexture()
	font := s.Watermark != nil && r.embedFont
	guides := len(s.Guides) > 0

	if len(blurs) == 0 && !texture && !font && !guides {
		return
	}

	buf.WriteString("  <defs>\n")
	if font || guides {
		buf.WriteString("    <style>")
		if font {
			fmt.Fprintf(buf, "\n    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); font-weight: bold; }",
				fonts.FontFamily, fonts.BoldTTFBase64())
		}
		if guides {
			buf.WriteString(guideCSS)
		}
		buf.WriteString("\n    </style>\n")
	}
	if texture {
		buf.WriteString("    ")
		fmt.Fprintf(buf, cottonFilter, draw.TextureFrequency, draw.TextureOctaves, draw.TextureGrey, draw.TextureAlpha)
		buf.WriteByte('\n')
	}
	for _, b := range blurs {
		fmt.Fprintf(buf, `    <filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%"><feGaussianBlur stdDeviation="%g"/></filter>`+"\n",
			blurID(b), b)
	}
	buf.WriteString("  </defs>\n")
}

func mergeBlurs(a, b []float64) []float64 {
	out := append([]float64(nil), a...)
	for _, v := range b {
		dup := false
		for _, u := range out {
			if u == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

func blurID(sigma float64) string {
	return "blur-" + strings.ReplaceAll(strconv.FormatFloat(sigma, 'f', -1, 64), ".", "_")
}

func renderDrawing(buf *bytes.Buffer, id string, d draw.Drawing) {
	if d.Empty() {
		return
	}
	fmt.Fprintf(buf, `  <g id="%s">`+"\n", id)
	for _, g := range d.Groups {
		if len(g.Ops) == 0 {
			continue
		}
		fmt.Fprintf(buf, `    <g class="%s"`, html.EscapeString(g.Name))
		if g.Blend != draw.Normal {
			fmt.Fprintf(buf, ` style="mix-blend-mode:%s"`, g.Blend)
		}
		if a := g.Alpha(); a < 1 {
			fmt.Fprintf(buf, ` opacity="%g"`, a)
		}
		buf.WriteString(">\n")
		for _, op := range g.Ops {
			renderOp(buf, op)
		}
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func renderOp(buf *bytes.Buffer, op draw.Op) {
	fmt.Fprintf(buf, `      <path d="%s"`, pathdata.SVG(op.Path))
	switch {
	case op.Texture:
		buf.WriteString(` fill="#fff" filter="url(#cotton)"`)
	case op.Fill != nil:
		writePaint(buf, "fill", *op.Fill)
	default:
		buf.WriteString(` fill="none"`)
	}
	if s := op.Stroke; s != nil {
		writePaint(buf, "stroke", s.Color)
		fmt.Fprintf(buf, ` stroke-width="%g"`, s.Width)
		if s.Round {
			buf.WriteString(` stroke-linecap="round" stroke-linejoin="round"`)
		}
	}
	if a := op.Alpha(); a < 1 {
		fmt.Fprintf(buf, ` opacity="%g"`, a)
	}
	if op.Blur > 0 && !op.Texture {
		fmt.Fprintf(buf, ` filter="url(#%s)"`, blurID(op.Blur))
	}
	buf.WriteString("/>\n")
}

func writePaint(buf *bytes.Buffer, attr string, c color.NRGBA) {
	fmt.Fprintf(buf, ` %s="%s"`, attr, hexColor(c))
	if c.A < 0xff {
		fmt.Fprintf(buf, ` %s-opacity="%s"`, attr, alpha(c.A))
	}
}

func (r svgRenderer) renderPlacements(buf *bytes.Buffer, ps []scene.Placement) {
	if len(ps) == 0 {
		return
	}
	buf.WriteString(`  <g id="designs">` + "\n")
	for _, p := range ps {
		fmt.Fprintf(buf, `    <image href="%s" x="%g" y="%g" width="%g" height="%g" preserveAspectRatio="none" transform="%s" style="mix-blend-mode:multiply"`,
			html.EscapeString(p.Source), -p.Width/2, -p.Height/2, p.Width, p.Height, p.Transform().SVG())
		if p.Opacity < 1 {
			fmt.Fprintf(buf, ` opacity="%g"`, p.Opacity)
		}
		if r.interactive {
			fmt.Fprintf(buf, ` class="design" data-zone="%s"`, p.Zone)
		}
		buf.WriteString("/>\n")
	}
	buf.WriteString("  </g>\n")
}

func (r svgRenderer) renderGuides(buf *bytes.Buffer, gs []scene.Guide) {
	if len(gs) == 0 {
		return
	}
	buf.WriteString(`  <g id="guides" pointer-events="none">` + "\n")
	for _, g := range gs {
		class := "guide"
		if g.Selected {
			class += " selected"
		}
		a := g.Area
		fmt.Fprintf(buf, `    <rect class="%s" x="%g" y="%g" width="%g" height="%g" data-zone="%s"/>`+"\n",
			class, a.X, a.Y, a.Width, a.Height, g.Zone)
		if g.Selected {
			fmt.Fprintf(buf, `    <text class="guide-label" x="%g" y="%g">%s</text>`+"\n",
				a.X, a.Y-6, html.EscapeString(g.Name))
		}
	}
	buf.WriteString("  </g>\n")
}

func renderWatermark(buf *bytes.Buffer, w scene.Watermark) {
	fmt.Fprintf(buf, `  <text x="%g" y="%g" text-anchor="end" font-family="%s" font-weight="bold" font-size="%g" fill="%s" fill-opacity="%s">%s</text>`+"\n",
		w.X, w.Y, html.EscapeString(fonts.FallbackFontFamily), w.Size, hexColor(w.Color), alpha(w.Color.A), html.EscapeString(w.Text))
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func alpha(a uint8) string {
	return strconv.FormatFloat(float64(a)/255, 'f', 3, 64)
}

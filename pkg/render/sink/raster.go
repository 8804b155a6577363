package sink

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/tdewolff/canvas"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/furiarock/mockstudio/pkg/artwork"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/fonts"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/render/draw"
	"github.com/furiarock/mockstudio/pkg/render/pathdata"
	"github.com/furiarock/mockstudio/pkg/render/scene"
)

// DefaultRasterSize is the export edge length in pixels.
const DefaultRasterSize = 2000

// Decoder turns a placement source into an image.
type Decoder func(src string) (image.Image, error)

// RasterOption configures rasterization.
type RasterOption func(*rasterizer)

type rasterizer struct {
	size   int
	decode Decoder
}

// WithRasterSize sets the output edge length in pixels.
func WithRasterSize(px int) RasterOption { return func(r *rasterizer) { r.size = px } }

// WithDecoder replaces the data URL decoder used for artwork.
func WithDecoder(d Decoder) RasterOption { return func(r *rasterizer) { r.decode = d } }

// Rasterize renders s into a square opaque bitmap.
//
// Artwork is decoded in draw order, one image at a time. If any image
// fails, Rasterize returns a DECODE_FAILURE error and no bitmap. A
// non-positive size or an unknown view fails with RENDER_SURFACE_NOT_READY.
func Rasterize(ctx context.Context, s scene.Scene, opts ...RasterOption) (*image.RGBA, error) {
	r := rasterizer{size: DefaultRasterSize, decode: artwork.Decode}
	for _, opt := range opts {
		opt(&r)
	}
	if r.size <= 0 {
		return nil, errors.New(errors.ErrCodeRenderSurface, "render surface size %d is not positive", r.size)
	}
	if !s.View.Valid() {
		return nil, errors.New(errors.ErrCodeRenderSurface, "no render surface for view %q", s.View)
	}

	k := float64(r.size) / garment.UnitSize
	dst := image.NewRGBA(image.Rect(0, 0, r.size, r.size))
	bg := s.Background
	bg.A = 0xff
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)

	if err := paintDrawing(ctx, dst, s.Base, k); err != nil {
		return nil, err
	}
	for _, p := range s.Placements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := r.decode(p.Source)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode artwork for %s", p.Zone)
		}
		paintPlacement(dst, img, p, k)
	}
	if err := paintDrawing(ctx, dst, s.Shadows, k); err != nil {
		return nil, err
	}
	if s.Watermark != nil {
		if err := paintWatermark(dst, *s.Watermark, k); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// paintDrawing paints each group into its own layer and blends the layer
// onto dst.
func paintDrawing(ctx context.Context, dst *image.RGBA, d draw.Drawing, k float64) error {
	for _, g := range d.Groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(g.Ops) == 0 {
			continue
		}
		layer := image.NewRGBA(dst.Bounds())
		var dirty image.Rectangle
		for _, op := range g.Ops {
			dirty = dirty.Union(paintOp(layer, op, k))
		}
		composite(dst, layer, dirty, g.Blend, g.Alpha())
	}
	return nil
}

// paintOp paints op into layer and returns the rectangle it touched.
func paintOp(layer *image.RGBA, op draw.Op, k float64) image.Rectangle {
	if pathdata.Empty(op.Path) || (op.Fill == nil && !op.Texture && op.Stroke == nil) {
		return image.Rectangle{}
	}
	lo, hi := pathdata.Bounds(op.Path)
	pad := 2.0
	if op.Stroke != nil {
		pad += op.Stroke.Width * k / 2
	}
	if op.Blur > 0 {
		pad += 3 * op.Blur * k
	}
	r := image.Rect(
		int(math.Floor(lo.X*k-pad)), int(math.Floor(lo.Y*k-pad)),
		int(math.Ceil(hi.X*k+pad)), int(math.Ceil(hi.Y*k+pad)),
	).Intersect(layer.Bounds())
	if r.Empty() {
		return r
	}

	tmp := image.NewRGBA(r)
	a := op.Alpha()
	if op.Fill != nil {
		fillPath(tmp, op.Path, k, *op.Fill, a)
	}
	if op.Texture {
		fillTexture(tmp, op.Path, k, a)
	}
	if op.Stroke != nil {
		strokePath(tmp, op.Path, k, *op.Stroke, a)
	}

	var src image.Image = tmp
	sp := r.Min
	if op.Blur > 0 {
		src = imaging.Blur(tmp, op.Blur*k)
		sp = image.Point{}
	}
	xdraw.Draw(layer, r, src, sp, xdraw.Over)
	return r
}

func scaleAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}

// coverage rasterizes p, scaled by k, into a rasterizer the size of r.
func coverage(r image.Rectangle, p *canvas.Path, k float64) *vector.Rasterizer {
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	v := &vectorSink{z: z, k: k, ox: float64(r.Min.X), oy: float64(r.Min.Y)}
	pathdata.Walk(p, v)
	v.ClosePath()
	return z
}

func fillPath(dst *image.RGBA, p *canvas.Path, k float64, c color.NRGBA, a float64) {
	z := coverage(dst.Bounds(), p, k)
	z.DrawOp = xdraw.Over
	z.Draw(dst, dst.Bounds(), image.NewUniform(scaleAlpha(c, a)), image.Point{})
}

// fillTexture paints the cotton noise inside p.
func fillTexture(dst *image.RGBA, p *canvas.Path, k, a float64) {
	r := dst.Bounds()
	mask := image.NewAlpha(r)
	z := coverage(r, p, k)
	z.DrawOp = xdraw.Src
	z.Draw(mask, r, image.Opaque, image.Point{})

	grey := draw.TextureGrey * 255
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m := mask.AlphaAt(x, y).A
			if m == 0 {
				continue
			}
			n := draw.FractalNoise((float64(x)+0.5)/k, (float64(y)+0.5)/k)
			sa := draw.TextureAlpha * n * float64(m) / 255 * a
			i := dst.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				dst.Pix[i+c] = uint8(grey*sa + float64(dst.Pix[i+c])*(1-sa) + 0.5)
			}
			dst.Pix[i+3] = uint8(255*sa + float64(dst.Pix[i+3])*(1-sa) + 0.5)
		}
	}
}

func strokePath(dst *image.RGBA, p *canvas.Path, k float64, s draw.Stroke, a float64) {
	r := dst.Bounds()
	dc := gg.NewContext(r.Dx(), r.Dy())
	pathdata.Walk(p, &ggSink{dc: dc, k: k, ox: float64(r.Min.X), oy: float64(r.Min.Y)})
	dc.SetColor(scaleAlpha(s.Color, a))
	dc.SetLineWidth(s.Width * k)
	if s.Round {
		dc.SetLineCap(gg.LineCapRound)
		dc.SetLineJoin(gg.LineJoinRound)
	} else {
		dc.SetLineCap(gg.LineCapButt)
		dc.SetLineJoin(gg.LineJoinBevel)
	}
	dc.Stroke()
	xdraw.Draw(dst, r, dc.Image(), image.Point{}, xdraw.Over)
}

// paintPlacement draws artwork with multiply blending at the placement
// opacity.
func paintPlacement(dst *image.RGBA, img image.Image, p scene.Placement, k float64) {
	b := img.Bounds()
	if b.Empty() || p.Opacity <= 0 || p.Scale <= 0 || p.Width <= 0 || p.Height <= 0 {
		return
	}
	m := scene.Translate(-float64(b.Min.X), -float64(b.Min.Y)).
		Then(scene.Scale(p.Width/float64(b.Dx()), p.Height/float64(b.Dy()))).
		Then(scene.Translate(-p.Width/2, -p.Height/2)).
		Then(p.Transform()).
		Then(scene.Scale(k, k))

	r := cornerBounds(p, k).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	scratch := image.NewRGBA(r)
	xdraw.CatmullRom.Transform(scratch, m.Aff3(), img, b, xdraw.Over, nil)
	composite(dst, scratch, r, draw.Multiply, math.Min(p.Opacity, 1))
}

func cornerBounds(p scene.Placement, k float64) image.Rectangle {
	c := p.Corners()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range c {
		minX, maxX = math.Min(minX, pt[0]), math.Max(maxX, pt[0])
		minY, maxY = math.Min(minY, pt[1]), math.Max(maxY, pt[1])
	}
	return image.Rect(
		int(math.Floor(minX*k))-1, int(math.Floor(minY*k))-1,
		int(math.Ceil(maxX*k))+1, int(math.Ceil(maxY*k))+1,
	)
}

func paintWatermark(dst *image.RGBA, w scene.Watermark, k float64) error {
	if w.Text == "" || w.Size <= 0 {
		return nil
	}
	face, err := fonts.BoldFace(w.Size * k)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "load watermark font")
	}
	defer face.Close()

	dc := gg.NewContextForRGBA(dst)
	dc.SetFontFace(face)
	dc.SetColor(w.Color)
	dc.DrawStringAnchored(w.Text, w.X*k, w.Y*k, 1, 0)
	return nil
}

// composite blends the premultiplied src onto the opaque dst within r:
//
//	result = (1 - αs)·Cb + αs·B(Cb, Cs)
func composite(dst, src *image.RGBA, r image.Rectangle, mode draw.Blend, opacity float64) {
	r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(r.Min.X, y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, si, di = x+1, si+4, di+4 {
			sa := src.Pix[si+3]
			if sa == 0 {
				continue
			}
			as := float64(sa) / 255 * opacity
			for c := 0; c < 3; c++ {
				cs := math.Min(float64(src.Pix[si+c])/float64(sa), 1)
				cb := float64(dst.Pix[di+c]) / 255
				out := (1-as)*cb + as*blend(mode, cb, cs)
				dst.Pix[di+c] = uint8(out*255 + 0.5)
			}
			dst.Pix[di+3] = 0xff
		}
	}
}

func blend(mode draw.Blend, cb, cs float64) float64 {
	switch mode {
	case draw.Multiply:
		return cb * cs
	case draw.Screen:
		return cb + cs - cb*cs
	default:
		return cs
	}
}

// vectorSink feeds path segments to a vector.Rasterizer, closing each
// subpath before the next one starts.
type vectorSink struct {
	z      *vector.Rasterizer
	k      float64
	ox, oy float64
	open   bool
}

func (v *vectorSink) pt(x, y float64) (float32, float32) {
	return float32(x*v.k - v.ox), float32(y*v.k - v.oy)
}

func (v *vectorSink) MoveTo(x, y float64) {
	v.ClosePath()
	v.z.MoveTo(v.pt(x, y))
	v.open = true
}

func (v *vectorSink) LineTo(x, y float64) { v.z.LineTo(v.pt(x, y)) }

func (v *vectorSink) QuadTo(x1, y1, x, y float64) {
	bx, by := v.pt(x1, y1)
	cx, cy := v.pt(x, y)
	v.z.QuadTo(bx, by, cx, cy)
}

func (v *vectorSink) CubeTo(x1, y1, x2, y2, x, y float64) {
	bx, by := v.pt(x1, y1)
	cx, cy := v.pt(x2, y2)
	dx, dy := v.pt(x, y)
	v.z.CubeTo(bx, by, cx, cy, dx, dy)
}

func (v *vectorSink) ClosePath() {
	if v.open {
		v.z.ClosePath()
		v.open = false
	}
}

// ggSink feeds path segments to a gg context.
type ggSink struct {
	dc     *gg.Context
	k      float64
	ox, oy float64
}

func (g *ggSink) pt(x, y float64) (float64, float64) { return x*g.k - g.ox, y*g.k - g.oy }

func (g *ggSink) MoveTo(x, y float64) { g.dc.MoveTo(g.pt(x, y)) }
func (g *ggSink) LineTo(x, y float64) { g.dc.LineTo(g.pt(x, y)) }

func (g *ggSink) QuadTo(x1, y1, x, y float64) {
	ax, ay := g.pt(x1, y1)
	bx, by := g.pt(x, y)
	g.dc.QuadraticTo(ax, ay, bx, by)
}

func (g *ggSink) CubeTo(x1, y1, x2, y2, x, y float64) {
	ax, ay := g.pt(x1, y1)
	bx, by := g.pt(x2, y2)
	cx, cy := g.pt(x, y)
	g.dc.CubicTo(ax, ay, bx, by, cx, cy)
}

func (g *ggSink) ClosePath() { g.dc.ClosePath() }

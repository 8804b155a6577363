// Package pathdata adapts [canvas.Path] for the render sinks. Garment
// geometry is written as SVG path data and parsed with
// [canvas.ParseSVGPath]; the sinks replay it through a [Sink].
//
//	p := pathdata.MustParse("M400,120 Q500,170 600,120")
//	pathdata.Walk(p, rasterizerAdapter)
package pathdata

import (
	"fmt"
	"math"

	"github.com/tdewolff/canvas"
)

// Sink receives path operations. Rasterizers and graphics contexts are
// adapted to it.
type Sink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(x1, y1, x, y float64)
	CubeTo(x1, y1, x2, y2, x, y float64)
	ClosePath()
}

// MustParse parses SVG path data and panics on error. It is meant for
// package-level geometry.
func MustParse(d string) *canvas.Path {
	p, err := canvas.ParseSVGPath(d)
	if err != nil {
		panic(fmt.Sprintf("pathdata: %q: %v", d, err))
	}
	return p
}

// Walk replays p into s. Arcs are replayed as a line to their end point;
// garment geometry has none.
func Walk(p *canvas.Path, s Sink) {
	if p == nil {
		return
	}
	for sc := p.Scanner(); sc.Scan(); {
		end := sc.End()
		switch sc.Cmd() {
		case canvas.MoveToCmd:
			s.MoveTo(end.X, end.Y)
		case canvas.LineToCmd, canvas.ArcToCmd:
			s.LineTo(end.X, end.Y)
		case canvas.QuadToCmd:
			c := sc.CP1()
			s.QuadTo(c.X, c.Y, end.X, end.Y)
		case canvas.CubeToCmd:
			c1, c2 := sc.CP1(), sc.CP2()
			s.CubeTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
		case canvas.CloseCmd:
			s.ClosePath()
		}
	}
}

// Bounds returns the box around every point of p, control points
// included, so it always contains the drawn curve.
func Bounds(p *canvas.Path) (min, max canvas.Point) {
	if p == nil {
		return canvas.Point{}, canvas.Point{}
	}
	min = canvas.Point{X: math.Inf(1), Y: math.Inf(1)}
	max = canvas.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	grow := func(pt canvas.Point) {
		min.X, min.Y = math.Min(min.X, pt.X), math.Min(min.Y, pt.Y)
		max.X, max.Y = math.Max(max.X, pt.X), math.Max(max.Y, pt.Y)
	}
	n := 0
	for sc := p.Scanner(); sc.Scan(); n++ {
		switch sc.Cmd() {
		case canvas.QuadToCmd:
			grow(sc.CP1())
		case canvas.CubeToCmd:
			grow(sc.CP1())
			grow(sc.CP2())
		}
		grow(sc.End())
	}
	if n == 0 {
		return canvas.Point{}, canvas.Point{}
	}
	return min, max
}

// MirrorX returns a copy of p reflected across the vertical line x = w/2.
func MirrorX(p *canvas.Path, w float64) *canvas.Path {
	return p.Copy().Transform(canvas.Identity.Translate(w, 0).Scale(-1, 1))
}

// SVG formats p as path data for a d attribute.
func SVG(p *canvas.Path) string {
	if p == nil {
		return ""
	}
	return p.ToSVG()
}

// Empty reports whether p draws nothing.
func Empty(p *canvas.Path) bool {
	return p == nil || p.Empty()
}

// kappa places cubic control points so four segments approximate a
// quarter ellipse each.
const kappa = 0.5522847498307936

// Ellipse returns a closed path approximating the axis-aligned ellipse
// centered at (cx, cy) with radii rx and ry.
func Ellipse(cx, cy, rx, ry float64) *canvas.Path {
	kx, ky := rx*kappa, ry*kappa
	p := &canvas.Path{}
	p.MoveTo(cx+rx, cy)
	p.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.Close()
	return p
}

// Rect returns a closed rectangular path.
func Rect(x, y, w, h float64) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}

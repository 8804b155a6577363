package silhouette

import (
	"fmt"
	"image/color"
	"math"
	"reflect"
	"testing"

	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/render/draw"
	"github.com/furiarock/mockstudio/pkg/render/pathdata"
)

var navy = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 255}

func TestRenderDeterministic(t *testing.T) {
	for _, v := range garment.Views() {
		for _, m := range []Mode{Base, Shadows} {
			a, err := Render(v, m, navy)
			if err != nil {
				t.Fatalf("Render(%s, %s): %v", v, m, err)
			}
			b, _ := Render(v, m, navy)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("Render(%s, %s) not deterministic", v, m)
			}
			if a.Empty() {
				t.Errorf("Render(%s, %s) is empty", v, m)
			}
		}
	}
}

func TestRenderBaseUsesColor(t *testing.T) {
	d, err := Render(garment.Front, Base, navy)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Groups) != 2 {
		t.Fatalf("base groups = %d, want 2 (ground, body)", len(d.Groups))
	}
	body := d.Groups[1].Ops[0]
	if body.Fill == nil || *body.Fill != navy {
		t.Errorf("body fill = %v, want %v", body.Fill, navy)
	}
	ground := d.Groups[0].Ops[0]
	if ground.Blur != foldBlur || ground.Opacity != 0.25 {
		t.Errorf("ground shadow = blur %v opacity %v", ground.Blur, ground.Opacity)
	}
}

func TestShadowsIgnoreColor(t *testing.T) {
	a, _ := Render(garment.Back, Shadows, navy)
	b, _ := Render(garment.Back, Shadows, color.NRGBA{R: 255, A: 255})
	if !reflect.DeepEqual(a, b) {
		t.Error("shadow overlay should not depend on garment color")
	}
}

func TestFrontShadowGroups(t *testing.T) {
	d, _ := Render(garment.Front, Shadows, navy)
	var names []string
	for _, g := range d.Groups {
		names = append(names, fmt.Sprintf("%s/%s", g.Name, g.Blend))
	}
	want := []string{"texture/multiply", "neck/normal", "folds/multiply", "highlights/screen", "outline/normal"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("groups = %v, want %v", names, want)
	}
	if !d.UsesTexture() {
		t.Error("front shadows should use the cotton texture")
	}
	blurs := d.Blurs()
	if !reflect.DeepEqual(blurs, []float64{foldBlur, seamBlur, highlightBlur}) {
		t.Errorf("blurs = %v", blurs)
	}
}

// points records every point a path visits, control points included.
type points []float64

func (p *points) MoveTo(x, y float64) { *p = append(*p, x, y) }
func (p *points) LineTo(x, y float64) { *p = append(*p, x, y) }
func (p *points) QuadTo(x1, y1, x, y float64) {
	*p = append(*p, x1, y1, x, y)
}
func (p *points) CubeTo(x1, y1, x2, y2, x, y float64) {
	*p = append(*p, x1, y1, x2, y2, x, y)
}
func (p *points) ClosePath() {}

func TestRightMirrorsLeft(t *testing.T) {
	for _, m := range []Mode{Base, Shadows} {
		left, _ := Render(garment.Left, m, navy)
		right, _ := Render(garment.Right, m, navy)
		if len(left.Groups) != len(right.Groups) {
			t.Fatalf("%s: group count differs", m)
		}
		for i := range left.Groups {
			lops, rops := left.Groups[i].Ops, right.Groups[i].Ops
			for j := range lops {
				var l, r points
				pathdata.Walk(lops[j].Path, &l)
				pathdata.Walk(rops[j].Path, &r)
				if len(l) != len(r) {
					t.Fatalf("%s group %d op %d: %d points, mirror has %d", m, i, j, len(l), len(r))
				}
				for k := 0; k < len(l); k += 2 {
					if math.Abs(r[k]-(1000-l[k])) > 1e-9 || math.Abs(r[k+1]-l[k+1]) > 1e-9 {
						t.Fatalf("%s group %d op %d: right (%v, %v) is not the mirror of left (%v, %v)",
							m, i, j, r[k], r[k+1], l[k], l[k+1])
					}
				}
			}
		}
	}
}

func TestOutlineMirror(t *testing.T) {
	lmin, lmax := pathdata.Bounds(Outline(garment.Left))
	rmin, rmax := pathdata.Bounds(Outline(garment.Right))
	if math.Abs(rmin.X-(1000-lmax.X)) > 1e-9 || math.Abs(rmax.X-(1000-lmin.X)) > 1e-9 {
		t.Errorf("right bounds x [%v, %v], left [%v, %v]", rmin.X, rmax.X, lmin.X, lmax.X)
	}
}

func TestOutlinesWithinCanvas(t *testing.T) {
	for _, v := range garment.Views() {
		min, max := pathdata.Bounds(Outline(v))
		if min.X < 0 || min.Y < 0 || max.X > 1000 || max.Y > 1000 {
			t.Errorf("%s outline bounds %v..%v outside canvas", v, min, max)
		}
	}
}

func TestZonesInsideOutline(t *testing.T) {
	for _, z := range garment.Zones() {
		min, max := pathdata.Bounds(Outline(z.View))
		cx := z.Area.X + z.Area.Width/2
		cy := z.Area.Y + z.Area.Height/2
		if cx < min.X || cx > max.X || cy < min.Y || cy > max.Y {
			t.Errorf("zone %s center (%v, %v) outside %s outline bounds", z.ID, cx, cy, z.View)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render("top", Base, navy); !errors.Is(err, errors.ErrCodeInvalidView) {
		t.Errorf("invalid view error = %v", err)
	}
	if _, err := Render(garment.Front, "glow", navy); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invalid mode error = %v", err)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("shadows"); err != nil || m != Shadows {
		t.Errorf("ParseMode(shadows) = %q, %v", m, err)
	}
	if _, err := ParseMode("glow"); err == nil {
		t.Error("ParseMode(glow) expected error")
	}
}

func ExampleRender() {
	d, _ := Render(garment.Back, Shadows, draw.White)
	for _, g := range d.Groups {
		fmt.Println(g.Name, g.Blend, len(g.Ops))
	}
	// Output:
	// texture multiply 1
	// neck normal 2
	// highlights screen 2
	// outline normal 1
}

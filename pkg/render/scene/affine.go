package scene

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/mat"
)

// Affine is a 2D affine transform:
//
//	x' = A*x + B*y + TX
//	y' = C*x + D*y + TY
type Affine struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity is the identity transform.
var Identity = Affine{A: 1, D: 1}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{A: 1, D: 1, TX: tx, TY: ty}
}

// Rotate returns a rotation by deg degrees, clockwise on a y-down canvas.
func Rotate(deg float64) Affine {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Affine{A: c, B: -s, C: s, D: c}
}

// Scale returns a scale by (sx, sy).
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Then returns the transform that applies t first and then u.
func (t Affine) Then(u Affine) Affine {
	return Affine{
		A:  u.A*t.A + u.B*t.C,
		B:  u.A*t.B + u.B*t.D,
		TX: u.A*t.TX + u.B*t.TY + u.TX,
		C:  u.C*t.A + u.D*t.C,
		D:  u.C*t.B + u.D*t.D,
		TY: u.C*t.TX + u.D*t.TY + u.TY,
	}
}

// Apply transforms the point (x, y).
func (t Affine) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.TX, t.C*x + t.D*y + t.TY
}

// Invert returns the inverse transform. It fails for degenerate transforms
// such as a zero scale.
func (t Affine) Invert() (Affine, error) {
	m := mat.NewDense(3, 3, []float64{
		t.A, t.B, t.TX,
		t.C, t.D, t.TY,
		0, 0, 1,
	})
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return Affine{}, fmt.Errorf("invert transform: %w", err)
	}
	return Affine{
		A: inv.At(0, 0), B: inv.At(0, 1), TX: inv.At(0, 2),
		C: inv.At(1, 0), D: inv.At(1, 1), TY: inv.At(1, 2),
	}, nil
}

// Aff3 converts t to the row-major matrix golang.org/x/image/draw expects.
func (t Affine) Aff3() f64.Aff3 {
	return f64.Aff3{t.A, t.B, t.TX, t.C, t.D, t.TY}
}

// SVG formats t as an SVG matrix() transform.
func (t Affine) SVG() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", t.A, t.C, t.B, t.D, t.TX, t.TY)
}

package sink

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/render/draw"
	"github.com/furiarock/mockstudio/pkg/render/scene"
	"github.com/furiarock/mockstudio/pkg/render/silhouette"
)

func solid(c color.NRGBA) image.Image {
	return image.NewUniform(c)
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func decodeTo(img image.Image) RasterOption {
	return WithDecoder(func(string) (image.Image, error) { return img, nil })
}

func centerPlacement(opacity float64) scene.Placement {
	z := garment.Lookup(garment.FrontCenter)
	p := scene.NewPlacement(z.ID, z.Area, 10, 10)
	p.Source = "data:image/png;base64,"
	p.X, p.Y, p.Scale, p.Opacity = 50, 50, 1, opacity
	return p
}

func rgbAt(img *image.RGBA, x, y int) [3]uint8 {
	c := img.RGBAAt(x, y)
	return [3]uint8{c.R, c.G, c.B}
}

func TestRasterizeSize(t *testing.T) {
	s := scene.Scene{View: garment.Front, Background: draw.White}
	img, err := Rasterize(context.Background(), s, WithRasterSize(64))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("bounds = %v, want 64×64", b)
	}
	if c := img.RGBAAt(0, 0); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v, want opaque white", c)
	}
}

func TestRasterizeSurfaceErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := Rasterize(ctx, scene.Scene{View: garment.Front}, WithRasterSize(0)); !errors.Is(err, errors.ErrCodeRenderSurface) {
		t.Errorf("size 0: err = %v", err)
	}
	if _, err := Rasterize(ctx, scene.Scene{View: "top"}, WithRasterSize(10)); !errors.Is(err, errors.ErrCodeRenderSurface) {
		t.Errorf("bad view: err = %v", err)
	}
}

func TestRasterizeDecodeFailureAborts(t *testing.T) {
	calls := 0
	dec := WithDecoder(func(src string) (image.Image, error) {
		calls++
		if calls == 2 {
			return nil, fmt.Errorf("corrupt")
		}
		return solid(color.NRGBA{A: 255}), nil
	})
	s := scene.Scene{
		View:       garment.Front,
		Background: draw.White,
		Placements: []scene.Placement{centerPlacement(1), centerPlacement(1), centerPlacement(1)},
	}
	img, err := Rasterize(context.Background(), s, WithRasterSize(50), dec)
	if !errors.Is(err, errors.ErrCodeDecode) {
		t.Fatalf("err = %v, want DECODE_FAILURE", err)
	}
	if img != nil {
		t.Error("a failed render must not return an image")
	}
	if calls != 2 {
		t.Errorf("decoder called %d times, want 2", calls)
	}
}

func TestRasterizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := scene.Scene{View: garment.Front, Placements: []scene.Placement{centerPlacement(1)}}
	if _, err := Rasterize(ctx, s, WithRasterSize(10), decodeTo(solid(draw.Black))); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRasterizeMultiply(t *testing.T) {
	red := solidImage(10, 10, color.NRGBA{R: 255, A: 255})
	tests := []struct {
		name    string
		bg      color.NRGBA
		art     image.Image
		opacity float64
		want    [3]uint8
	}{
		{"red on white", draw.White, red, 1, [3]uint8{255, 0, 0}},
		{"red on grey", color.NRGBA{128, 128, 128, 255}, red, 1, [3]uint8{128, 0, 0}},
		{"white vanishes on blue", color.NRGBA{B: 255, A: 255}, solidImage(10, 10, draw.White), 1, [3]uint8{0, 0, 255}},
		{"half opacity", draw.White, red, 0.5, [3]uint8{255, 128, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.Scene{View: garment.Front, Background: tt.bg, Placements: []scene.Placement{centerPlacement(tt.opacity)}}
			img, err := Rasterize(context.Background(), s, WithRasterSize(100), decodeTo(tt.art))
			if err != nil {
				t.Fatal(err)
			}
			got := rgbAt(img, 50, 50)
			for i := range got {
				if d := int(got[i]) - int(tt.want[i]); d < -2 || d > 2 {
					t.Fatalf("center = %v, want %v", got, tt.want)
				}
			}
			// Outside the artwork box the background is untouched.
			bg := tt.bg
			if c := rgbAt(img, 2, 2); c != [3]uint8{bg.R, bg.G, bg.B} {
				t.Errorf("corner = %v, want background", c)
			}
		})
	}
}

func TestRasterizeSilhouette(t *testing.T) {
	red := color.NRGBA{R: 220, G: 20, B: 60, A: 255}
	base, err := silhouette.Render(garment.Front, silhouette.Base, red)
	if err != nil {
		t.Fatal(err)
	}
	shadows, err := silhouette.Render(garment.Front, silhouette.Shadows, red)
	if err != nil {
		t.Fatal(err)
	}
	s := scene.Scene{View: garment.Front, Background: draw.White, Base: base, Shadows: shadows}
	img, err := Rasterize(context.Background(), s, WithRasterSize(120))
	if err != nil {
		t.Fatal(err)
	}

	// Body fill shows through the shadow overlay at the chest.
	c := img.RGBAAt(60, 60)
	if c.R < 120 || int(c.R)-int(c.G) < 60 {
		t.Errorf("chest pixel = %v, want garment red", c)
	}
	// Canvas corners stay white.
	if c := rgbAt(img, 1, 1); c != [3]uint8{255, 255, 255} {
		t.Errorf("corner = %v, want white", c)
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	base, _ := silhouette.Render(garment.Back, silhouette.Base, draw.White)
	shadows, _ := silhouette.Render(garment.Back, silhouette.Shadows, draw.White)
	s := scene.Scene{
		View:       garment.Back,
		Background: draw.White,
		Base:       base,
		Shadows:    shadows,
		Watermark:  scene.DefaultWatermark(""),
	}
	a, err := Rasterize(context.Background(), s, WithRasterSize(80))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Rasterize(context.Background(), s, WithRasterSize(80))
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two renders of the same scene differ")
	}
}

func TestRasterizeWatermark(t *testing.T) {
	black := color.NRGBA{A: 255}
	s := scene.Scene{View: garment.Front, Background: black, Watermark: scene.DefaultWatermark("")}
	img, err := Rasterize(context.Background(), s, WithRasterSize(400))
	if err != nil {
		t.Fatal(err)
	}

	// Text sits left of and above the anchor at (390, 390).
	lit := 0
	for y := 370; y < 392; y++ {
		for x := 200; x < 392; x++ {
			if img.RGBAAt(x, y).R > 40 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no watermark pixels in the bottom-right corner")
	}
	if c := rgbAt(img, 395, 395); c != [3]uint8{0, 0, 0} {
		t.Errorf("margin pixel = %v, want black", c)
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		mode   draw.Blend
		cb, cs float64
		want   float64
	}{
		{draw.Normal, 0.2, 0.7, 0.7},
		{draw.Multiply, 0.5, 0.5, 0.25},
		{draw.Multiply, 1, 0.3, 0.3},
		{draw.Screen, 0.5, 0.5, 0.75},
		{draw.Screen, 0, 0.4, 0.4},
	}
	for _, tt := range tests {
		if got := blend(tt.mode, tt.cb, tt.cs); got != tt.want {
			t.Errorf("blend(%s, %v, %v) = %v, want %v", tt.mode, tt.cb, tt.cs, got, tt.want)
		}
	}
}

func TestCompositeOpacity(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	dst.Pix = []uint8{200, 100, 0, 255}
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Pix = []uint8{0, 0, 0, 255}

	composite(dst, src, dst.Bounds(), draw.Multiply, 0.5)
	if want := []uint8{100, 50, 0, 255}; !bytes.Equal(dst.Pix, want) {
		t.Errorf("pix = %v, want %v", dst.Pix, want)
	}
}

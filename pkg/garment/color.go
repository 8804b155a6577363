package garment

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/furiarock/mockstudio/pkg/errors"
)

// DefaultColor is the garment color of a fresh project.
const DefaultColor = "#ffffff"

// ComparisonColor is the base color used while comparing before/after.
const ComparisonColor = "#ffffff"

// PresetColors are the quick-pick garment colors, in display order.
var PresetColors = []string{"#ffffff", "#000000", "#1f2937"}

// ParseColor parses a "#rgb" or "#rrggbb" hex color into an opaque NRGBA.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid garment color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// NormalizeColor validates s and returns it in lowercase "#rrggbb" form.
func NormalizeColor(s string) (string, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid garment color %q", s)
	}
	return c.Hex(), nil
}

// Size is a garment size. It does not affect rendering.
type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// DefaultSize is the size of a fresh project.
const DefaultSize = SizeM

// Sizes returns the available sizes in display order.
func Sizes() []Size {
	return []Size{SizeS, SizeM, SizeL, SizeXL}
}

// ParseSize converts an external string into a Size. Matching ignores case.
func ParseSize(s string) (Size, error) {
	sz := Size(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Sizes() {
		if sz == known {
			return sz, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown size %q (want S, M, L or XL)", s)
}

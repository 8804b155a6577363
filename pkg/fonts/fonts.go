// Package fonts provides the embedded watermark font.
//
// The Go Bold TrueType font ships inside golang.org/x/image, so exports and
// previews render the same glyphs without system font lookups.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name the SVG preview declares for the
// embedded font.
const FontFamily = "Mockstudio Bold"

// FallbackFontFamily lists fallbacks for renderers that ignore @font-face.
const FallbackFontFamily = `'Mockstudio Bold', 'Helvetica Neue', Arial, sans-serif`

// BoldTTF returns the raw TTF data.
func BoldTTF() []byte {
	return gobold.TTF
}

var (
	boldFont     *opentype.Font
	boldFontErr  error
	boldFontOnce sync.Once
)

// Bold returns the parsed bold font. Parsing happens once.
func Bold() (*opentype.Font, error) {
	boldFontOnce.Do(func() {
		boldFont, boldFontErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, boldFontErr
}

// BoldFace returns a face of the bold font at size pixels.
func BoldFace(size float64) (font.Face, error) {
	f, err := Bold()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// BoldTTFBase64 returns the TTF data as a base64 string for @font-face
// data URLs. The result is cached after first computation.
func BoldTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(gobold.TTF)
	})
	return ttfBase64
}

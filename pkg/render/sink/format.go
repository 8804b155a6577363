package sink

import (
	"image"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"

	"github.com/furiarock/mockstudio/pkg/errors"
)

// Format is an export encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatSVG  Format = "svg"
)

// Formats returns the supported formats, PNG first.
func Formats() []Format {
	return []Format{FormatPNG, FormatWebP, FormatSVG}
}

// ParseFormat parses a format name. The empty string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPNG, nil
	case FormatPNG, FormatWebP, FormatSVG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q: use png, webp or svg", s)
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string { return string(f) }

// ContentType returns the MIME type.
func (f Format) ContentType() string {
	switch f {
	case FormatWebP:
		return "image/webp"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// Raster reports whether the format encodes a bitmap.
func (f Format) Raster() bool { return f != FormatSVG }

// Encode writes img in format f. SVG is not a bitmap encoding; use
// [RenderSVG] for it.
func (f Format) Encode(w io.Writer, img image.Image) error {
	var err error
	switch f {
	case FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "%s is not a raster format", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", f)
	}
	return nil
}

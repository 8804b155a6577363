package artwork

import (
	"bytes"
	"io"

	"github.com/disintegration/imaging"

	"github.com/furiarock/mockstudio/pkg/errors"
)

// PhotoMaxSide bounds the longer side of reference photos sent for try-on.
const PhotoMaxSide = 1024

// MaxPhotoBytes bounds try-on reference photos. They are downscaled before
// sending, so the limit is looser than for artwork.
const MaxPhotoBytes = 20 << 20

// ReadPhoto reads a reference photo from r, failing as soon as it exceeds
// MaxPhotoBytes.
func ReadPhoto(r io.Reader) ([]byte, error) {
	return readLimited(r, MaxPhotoBytes)
}

// PreparePhoto decodes a reference photo, shrinks it to fit within
// PhotoMaxSide and re-encodes it as JPEG.
func PreparePhoto(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty photo")
	}
	if len(data) > MaxPhotoBytes {
		return nil, errors.New(errors.ErrCodeFileTooLarge, "photo exceeds the %dMB limit", MaxPhotoBytes>>20)
	}
	if _, err := Sniff(data); err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode photo")
	}
	b := img.Bounds()
	if b.Dx() > PhotoMaxSide || b.Dy() > PhotoMaxSide {
		img = imaging.Fit(img, PhotoMaxSide, PhotoMaxSide, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode photo")
	}
	return buf.Bytes(), nil
}

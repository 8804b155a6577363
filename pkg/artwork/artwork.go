// Package artwork validates, encodes and decodes user artwork.
//
// Artwork travels through the system as a data URL ("data:image/png;base64,…"),
// which is what the layer store holds and what both sinks consume. Uploads
// are limited to PNG and JPEG under [MaxUploadBytes].
package artwork

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/jpeg" // register decoder for DecodeConfig
	_ "image/png"  // register decoder for DecodeConfig
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/furiarock/mockstudio/pkg/errors"
)

// MaxUploadBytes is the upload size limit (5 MiB).
const MaxUploadBytes = 5 * 1024 * 1024

// Supported media types.
const (
	TypePNG  = "image/png"
	TypeJPEG = "image/jpeg"
)

// Sniff returns the media type of data. Only PNG and JPEG are accepted;
// anything else fails with ErrCodeUnsupportedMedia.
func Sniff(data []byte) (string, error) {
	ct := http.DetectContentType(data)
	switch ct {
	case TypePNG, TypeJPEG:
		return ct, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedMedia, "unsupported image type %q: only PNG and JPEG are accepted", ct)
}

// Validate checks the size and type of an upload and returns its media type.
func Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "empty upload")
	}
	if len(data) > MaxUploadBytes {
		return "", tooLarge(int64(len(data)))
	}
	return Sniff(data)
}

func tooLarge(n int64) error {
	return errors.New(errors.ErrCodeFileTooLarge, "image is %.1fMB: the limit is 5MB", float64(n)/(1024*1024))
}

// Encode validates data and returns it as a data URL.
func Encode(data []byte) (string, error) {
	ct, err := Validate(data)
	if err != nil {
		return "", err
	}
	return DataURL(ct, data), nil
}

// DataURL formats data as a base64 data URL of media type ct.
func DataURL(ct string, data []byte) string {
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL splits a base64 data URL into its media type and payload.
func ParseDataURL(u string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return "", nil, errors.New(errors.ErrCodeDecode, "artwork is not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New(errors.ErrCodeDecode, "malformed data URL")
	}
	ct, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, errors.New(errors.ErrCodeDecode, "data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeDecode, err, "decode data URL")
	}
	return ct, data, nil
}

// Decode decodes a data URL into an image.
func Decode(u string) (image.Image, error) {
	_, data, err := ParseDataURL(u)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode artwork")
	}
	return img, nil
}

// DecodeConfig returns the pixel size of a data URL image without decoding
// the pixels.
func DecodeConfig(u string) (int, int, error) {
	_, data, err := ParseDataURL(u)
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeDecode, err, "decode artwork header")
	}
	return cfg.Width, cfg.Height, nil
}

// Read reads an artwork upload from r, failing as soon as it exceeds
// MaxUploadBytes.
func Read(r io.Reader) ([]byte, error) {
	return readLimited(r, MaxUploadBytes)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New(errors.ErrCodeFileTooLarge, "file exceeds the %dMB limit", limit>>20)
	}
	return data, nil
}

// Load reads an artwork file and returns it as a data URL.
func Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "artwork %s", path)
		}
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "stat %s", path)
	}
	if info.Size() > MaxUploadBytes {
		return "", tooLarge(info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Encode(data)
}

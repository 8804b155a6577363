package artwork

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/furiarock/mockstudio/pkg/errors"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// padded returns a valid PNG header followed by filler up to n bytes.
func padded(t *testing.T, n int) []byte {
	t.Helper()
	b := pngBytes(t, 1, 1)
	return append(b, make([]byte, n-len(b))...)
}

func TestValidate(t *testing.T) {
	const mb = 1024 * 1024
	tests := []struct {
		name string
		data []byte
		want string
		code errors.Code
	}{
		{"png", pngBytes(t, 2, 2), TypePNG, ""},
		{"jpeg", jpegBytes(t, 2, 2), TypeJPEG, ""},
		{"4.9MB accepted", padded(t, int(4.9*mb)), TypePNG, ""},
		{"5.1MB rejected", padded(t, int(5.1*mb)), "", errors.ErrCodeFileTooLarge},
		{"gif rejected", []byte("GIF89a\x01\x00\x01\x00"), "", errors.ErrCodeUnsupportedMedia},
		{"text rejected", []byte("hello"), "", errors.ErrCodeUnsupportedMedia},
		{"empty", nil, "", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.data)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("err = %v, want code %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	u, err := Encode(pngBytes(t, 8, 4))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "data:image/png;base64,") {
		t.Fatalf("data URL prefix = %.30s", u)
	}

	img, err := Decode(u)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("decoded %v, want 8×4", b)
	}
	w, h, err := DecodeConfig(u)
	if err != nil || w != 8 || h != 4 {
		t.Errorf("DecodeConfig = %d, %d, %v", w, h, err)
	}
}

func TestDecodeFailure(t *testing.T) {
	for _, u := range []string{
		"not a url",
		"data:image/png,raw",
		"data:image/png;base64,!!!",
		DataURL(TypePNG, []byte("definitely not a png")),
	} {
		if _, err := Decode(u); !errors.Is(err, errors.ErrCodeDecode) {
			t.Errorf("Decode(%.30q) err = %v, want DECODE_FAILURE", u, err)
		}
	}
}

func TestRead(t *testing.T) {
	data, err := Read(bytes.NewReader(pngBytes(t, 1, 1)))
	if err != nil || len(data) == 0 {
		t.Fatalf("Read = %d bytes, %v", len(data), err)
	}
	_, err = Read(bytes.NewReader(make([]byte, MaxUploadBytes+1)))
	if !errors.Is(err, errors.ErrCodeFileTooLarge) {
		t.Errorf("err = %v, want FILE_TOO_LARGE", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(path, pngBytes(t, 3, 3), 0o644); err != nil {
		t.Fatal(err)
	}
	u, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "data:image/png;base64,") {
		t.Errorf("Load returned %.30s", u)
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestPreparePhoto(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2048, 1024))
	for i := range src.Pix {
		src.Pix[i] = 0x80
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	out, err := PreparePhoto(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not JPEG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 512 {
		t.Errorf("photo size = %v, want 1024×512", b)
	}
	if c := color.GrayModel.Convert(img.At(10, 10)).(color.Gray); c.Y < 0x70 || c.Y > 0x90 {
		t.Errorf("photo grey = %#x, want about 0x80", c.Y)
	}
}

func TestReadPhoto(t *testing.T) {
	six := make([]byte, 6<<20)
	if _, err := Read(bytes.NewReader(six)); !errors.Is(err, errors.ErrCodeFileTooLarge) {
		t.Errorf("Read(6MB) err = %v, want FILE_TOO_LARGE", err)
	}
	data, err := ReadPhoto(bytes.NewReader(six))
	if err != nil || len(data) != len(six) {
		t.Errorf("ReadPhoto(6MB) = %d bytes, %v", len(data), err)
	}
	if _, err := ReadPhoto(bytes.NewReader(make([]byte, MaxPhotoBytes+1))); !errors.Is(err, errors.ErrCodeFileTooLarge) {
		t.Errorf("ReadPhoto over limit err = %v, want FILE_TOO_LARGE", err)
	}
}

func TestPreparePhotoAboveArtworkLimit(t *testing.T) {
	// Trailing bytes after IEND are ignored by the decoder.
	data := append(pngBytes(t, 4, 4), make([]byte, MaxUploadBytes)...)
	if _, err := PreparePhoto(data); err != nil {
		t.Errorf("PreparePhoto(%d bytes) err = %v", len(data), err)
	}
	if _, err := PreparePhoto(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty photo err = %v", err)
	}
	if _, err := PreparePhoto([]byte("GIF89a....")); !errors.Is(err, errors.ErrCodeUnsupportedMedia) {
		t.Errorf("gif photo err = %v", err)
	}
}

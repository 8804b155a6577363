package fonts

import (
	"encoding/base64"
	"testing"

	"golang.org/x/image/font"
)

func TestBoldFace(t *testing.T) {
	face, err := BoldFace(40)
	if err != nil {
		t.Fatalf("BoldFace: %v", err)
	}
	defer face.Close()

	w := font.MeasureString(face, "Furia Rock T-Shirts").Round()
	if w <= 0 {
		t.Errorf("measured width = %d, want > 0", w)
	}
	if m := face.Metrics(); m.Ascent.Round() <= 0 {
		t.Errorf("ascent = %v, want > 0", m.Ascent)
	}
}

func TestBoldCached(t *testing.T) {
	a, err := Bold()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Bold()
	if a != b {
		t.Error("Bold() should return the same parsed font")
	}
}

func TestBoldTTFBase64(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(BoldTTFBase64())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != len(BoldTTF()) {
		t.Errorf("decoded %d bytes, want %d", len(data), len(BoldTTF()))
	}
}

package garment

import (
	"image/color"
	"testing"

	"github.com/furiarock/mockstudio/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ffffff", color.NRGBA{255, 255, 255, 255}, false},
		{"#000000", color.NRGBA{0, 0, 0, 255}, false},
		{"#1f2937", color.NRGBA{0x1f, 0x29, 0x37, 255}, false},
		{"#fff", color.NRGBA{255, 255, 255, 255}, false},
		{" #FF0000 ", color.NRGBA{255, 0, 0, 255}, false},
		{"red", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidColor) {
					t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidColor)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPresetColorsParse(t *testing.T) {
	for _, c := range PresetColors {
		if _, err := ParseColor(c); err != nil {
			t.Errorf("preset %s: %v", c, err)
		}
	}
	if PresetColors[0] != DefaultColor {
		t.Errorf("first preset = %s, want default %s", PresetColors[0], DefaultColor)
	}
}

func TestNormalizeColor(t *testing.T) {
	got, err := NormalizeColor("#1F2937")
	if err != nil {
		t.Fatal(err)
	}
	if got != "#1f2937" {
		t.Errorf("NormalizeColor = %s, want #1f2937", got)
	}
}

func TestParseSize(t *testing.T) {
	for _, in := range []string{"s", "M", " l ", "xl"} {
		if _, err := ParseSize(in); err != nil {
			t.Errorf("ParseSize(%q) error = %v", in, err)
		}
	}
	if _, err := ParseSize("XXL"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseSize(XXL) error = %v", err)
	}
}

package palette

import (
	"errors"
	"image/color"
	"testing"

	"github.com/notekit/supernote/core"
	"github.com/notekit/supernote/model"
)

// TestDefaultColors tests the device palette values
func TestDefaultColors(t *testing.T) {
	tests := []struct {
		class model.PixelClass
		want  color.NRGBA
	}{
		{model.ClassBlack, color.NRGBA{0x00, 0x00, 0x00, 0xff}},
		{model.ClassDarkGray, color.NRGBA{0x9d, 0x9d, 0x9d, 0xff}},
		{model.ClassGray, color.NRGBA{0xc9, 0xc9, 0xc9, 0xff}},
		{model.ClassWhite, color.NRGBA{0xfe, 0xfe, 0xfe, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			got, ok := Default.Color(tt.class)
			if !ok {
				t.Fatal("expected a paintable color")
			}
			if got != tt.want {
				t.Errorf("Color = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestTransparentNotPaintable tests that the sentinel never maps to a color
func TestTransparentNotPaintable(t *testing.T) {
	if _, ok := Default.Color(model.ClassTransparent); ok {
		t.Error("transparent must not resolve to a palette color")
	}
}

// TestParse tests override parsing
func TestParse(t *testing.T) {
	p, err := Parse("#ff0000,#9d9d9d,#c9c9c9,#fefefe")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Black != (color.NRGBA{0xff, 0x00, 0x00, 0xff}) {
		t.Errorf("black = %v, want red", p.Black)
	}
	if p.White != (color.NRGBA{0xfe, 0xfe, 0xfe, 0xff}) {
		t.Errorf("white = %v", p.White)
	}
}

// TestParseRejectsWrongCardinality tests the 4-color rule
func TestParseRejectsWrongCardinality(t *testing.T) {
	tests := []string{
		"#ff0000,#9d9d9d,#c9c9c9",                  // 3 colors
		"#ff0000,#9d9d9d,#c9c9c9,#fefefe,#000000",  // 5 colors
		"",                                         // none
	}
	for _, s := range tests {
		if _, err := Parse(s); !errors.Is(err, core.ErrInvalidPalette) {
			t.Errorf("Parse(%q) = %v, want ErrInvalidPalette", s, err)
		}
	}
}

// TestParseRejectsBadCodes tests malformed color codes
func TestParseRejectsBadCodes(t *testing.T) {
	if _, err := Parse("#ff00,#9d9d9d,#c9c9c9,#fefefe"); !errors.Is(err, core.ErrInvalidPalette) {
		t.Errorf("short hex accepted: %v", err)
	}
	if _, err := Parse("red,#9d9d9d,#c9c9c9,#fefefe"); !errors.Is(err, core.ErrInvalidPalette) {
		t.Errorf("named color accepted: %v", err)
	}
}

// TestNewCardinality tests the programmatic constructor
func TestNewCardinality(t *testing.T) {
	if _, err := New(color.NRGBA{}, color.NRGBA{}); !errors.Is(err, core.ErrInvalidPalette) {
		t.Errorf("New with 2 colors = %v, want ErrInvalidPalette", err)
	}
}

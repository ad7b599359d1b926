// Package palette maps the four visible pixel classes to concrete output
// colors. The device draws in black, dark gray, gray and white; a palette
// assigns one output color to each slot, in that order. Transparency is not
// a palette slot: it is a reserved no-paint sentinel that survives
// colorization untouched.
package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/notekit/supernote/core"
	"github.com/notekit/supernote/model"
)

// Palette assigns an output color to each visible pixel class.
type Palette struct {
	Black    color.NRGBA
	DarkGray color.NRGBA
	Gray     color.NRGBA
	White    color.NRGBA
}

// slots is the palette cardinality: black, darkgray, gray, white.
const slots = 4

// Default is the device's own rendering palette.
var Default = Palette{
	Black:    color.NRGBA{0x00, 0x00, 0x00, 0xff},
	DarkGray: color.NRGBA{0x9d, 0x9d, 0x9d, 0xff},
	Gray:     color.NRGBA{0xc9, 0xc9, 0xc9, 0xff},
	White:    color.NRGBA{0xfe, 0xfe, 0xfe, 0xff},
}

// Color returns the output color for a visible pixel class. The second
// return is false for ClassTransparent (and any unknown class): nothing
// should be painted.
func (p Palette) Color(c model.PixelClass) (color.NRGBA, bool) {
	switch c {
	case model.ClassBlack:
		return p.Black, true
	case model.ClassDarkGray:
		return p.DarkGray, true
	case model.ClassGray:
		return p.Gray, true
	case model.ClassWhite:
		return p.White, true
	}
	return color.NRGBA{}, false
}

// New builds a palette override. Exactly 4 colors are required, in
// black, darkgray, gray, white order; any other count fails with
// ErrInvalidPalette before decoding work can start.
func New(colors ...color.NRGBA) (Palette, error) {
	if len(colors) != slots {
		return Palette{}, fmt.Errorf("%w: got %d colors, need %d (black, darkgray, gray, white)",
			core.ErrInvalidPalette, len(colors), slots)
	}
	return Palette{
		Black:    colors[0],
		DarkGray: colors[1],
		Gray:     colors[2],
		White:    colors[3],
	}, nil
}

// Parse builds a palette override from comma-separated #rrggbb codes in
// black, darkgray, gray, white order, the form the convert command accepts.
func Parse(s string) (Palette, error) {
	codes := strings.Split(s, ",")
	if len(codes) != slots {
		return Palette{}, fmt.Errorf("%w: got %d color codes, need %d (black, darkgray, gray, white)",
			core.ErrInvalidPalette, len(codes), slots)
	}
	colors := make([]color.NRGBA, slots)
	for i, code := range codes {
		c, err := parseHexColor(strings.TrimSpace(code))
		if err != nil {
			return Palette{}, err
		}
		colors[i] = c
	}
	return New(colors...)
}

func parseHexColor(code string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(code, "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: bad color code %q", core.ErrInvalidPalette, code)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.ToLower(hex), "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: bad color code %q", core.ErrInvalidPalette, code)
	}
	return color.NRGBA{r, g, b, 0xff}, nil
}

package render

import (
	"fmt"
	"image"

	"github.com/notekit/supernote/core"
	"github.com/notekit/supernote/model"
	"github.com/notekit/supernote/palette"
)

// Colorize maps a decoded plane through a palette. Visible classes take
// their palette color; the transparency sentinel becomes an alpha-0 pixel,
// a no-paint marker rather than a visible color.
func Colorize(bm *model.Bitmap, pal palette.Palette) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, bm.Width, bm.Height))
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			c, ok := pal.Color(bm.At(x, y))
			if !ok {
				continue // transparent: leave the zero pixel
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Composite stacks colorized layer rasters bottom-to-top into one page
// bitmap. Layers must already be in z-order; nil entries (absent, hidden
// or blank layers) are skipped. A pixel contributes only when opaque, and
// the last contributing layer wins; there is no blending beyond the binary
// transparent/opaque distinction. If nothing contributes at all the page
// has no visible content and the composite fails.
func Composite(width, height int, layers []*image.NRGBA) (*image.NRGBA, error) {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	contributed := false

	for _, layer := range layers {
		if layer == nil {
			continue
		}
		b := layer.Bounds()
		for y := 0; y < height && y < b.Dy(); y++ {
			for x := 0; x < width && x < b.Dx(); x++ {
				c := layer.NRGBAAt(x, y)
				if c.A == 0 {
					continue
				}
				out.SetNRGBA(x, y, c)
				contributed = true
			}
		}
	}

	if !contributed {
		return nil, fmt.Errorf("%w: every layer is absent or blank", core.ErrNoVisibleContent)
	}
	return out, nil
}

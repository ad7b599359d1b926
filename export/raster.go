package export

import (
	"fmt"
	"image"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/notekit/supernote/palette"
	"github.com/notekit/supernote/reader"
)

// RenderPNG decodes one page and writes it as a PNG. A scale of 0 or 1
// keeps the device resolution; any other positive scale resamples with a
// Catmull-Rom kernel.
func RenderPNG(w io.Writer, r *reader.Reader, index int, pal palette.Palette, scale float64) error {
	img, err := r.DecodePage(index, pal)
	if err != nil {
		return err
	}

	var out image.Image = img
	if scale > 0 && scale != 1 {
		out = resample(img, scale)
	}
	if err := png.Encode(w, out); err != nil {
		return fmt.Errorf("failed to encode page %d: %w", index, err)
	}
	return nil
}

func resample(src *image.NRGBA, scale float64) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0,
		int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

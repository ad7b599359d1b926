package export

import (
	"github.com/notekit/supernote/model"
	"github.com/notekit/supernote/palette"
)

// Point is one vertex of a traced outline, in pixel coordinates.
type Point struct {
	X, Y int
}

// Outline is one traced stroke segment: an ordered point sequence tagged
// with the ink class it was traced from. Closed outlines loop back to
// their first point.
type Outline struct {
	Class  model.PixelClass
	Points []Point
	Closed bool
}

// Tracer converts a decoded pixel-class plane into vector outlines. The
// palette is passed through so tracers that emit color hints can resolve
// ink classes without re-deciding the mapping.
type Tracer interface {
	Trace(bm *model.Bitmap, pal palette.Palette) ([]Outline, error)
}

// RunTracer is the default tracer. It emits one open two-point outline
// per maximal horizontal run of a single ink class. The output is crude
// but exact: rendering every outline as a 1px stroke reproduces the
// bitmap.
type RunTracer struct{}

func (RunTracer) Trace(bm *model.Bitmap, _ palette.Palette) ([]Outline, error) {
	var outlines []Outline
	for y := 0; y < bm.Height; y++ {
		x := 0
		for x < bm.Width {
			class := bm.At(x, y)
			if class == model.ClassTransparent {
				x++
				continue
			}
			start := x
			for x < bm.Width && bm.At(x, y) == class {
				x++
			}
			outlines = append(outlines, Outline{
				Class:  class,
				Points: []Point{{start, y}, {x - 1, y}},
			})
		}
	}
	return outlines, nil
}

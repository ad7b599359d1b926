package export

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/notekit/supernote/palette"
	"github.com/notekit/supernote/reader"
)

// RenderSVG decodes one page down to pixel classes, traces it with the
// given tracer, and writes an SVG document. A nil tracer uses [RunTracer].
func RenderSVG(w io.Writer, r *reader.Reader, index int, pal palette.Palette, tr Tracer) error {
	if tr == nil {
		tr = RunTracer{}
	}

	bm, err := r.DecodePageClasses(index)
	if err != nil {
		return err
	}
	outlines, err := tr.Trace(bm, pal)
	if err != nil {
		return fmt.Errorf("failed to trace page %d: %w", index, err)
	}

	canvas := svg.New(w)
	canvas.Start(bm.Width, bm.Height)
	canvas.Rect(0, 0, bm.Width, bm.Height, "fill:white")
	for _, o := range outlines {
		c, ok := pal.Color(o.Class)
		if !ok || len(o.Points) == 0 {
			continue
		}
		style := fmt.Sprintf("stroke:%s;stroke-width:1;fill:none", hexColor(c))
		xs := make([]int, len(o.Points))
		ys := make([]int, len(o.Points))
		for i, p := range o.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		switch {
		case o.Closed:
			canvas.Polygon(xs, ys, style)
		case len(o.Points) == 2:
			canvas.Line(xs[0], ys[0], xs[1], ys[1], style)
		default:
			canvas.Polyline(xs, ys, style)
		}
	}
	canvas.End()
	return nil
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

package reader

import (
	"fmt"
	"image"
	"iter"
	"os"
	"sync"

	"github.com/notekit/supernote/core"
	"github.com/notekit/supernote/internal/filters"
	"github.com/notekit/supernote/model"
	"github.com/notekit/supernote/pages"
	"github.com/notekit/supernote/palette"
	"github.com/notekit/supernote/render"
	"github.com/notekit/supernote/text"
)

// Reader is the facade over one opened notebook container. It is immutable
// after construction; all methods are safe for concurrent use.
type Reader struct {
	data []byte
	nb   *pages.Notebook
}

// NewReader parses a notebook from raw container bytes.
func NewReader(data []byte) (*Reader, error) {
	nb, err := pages.Parse(data)
	if err != nil {
		return nil, err
	}
	logger().Debug("notebook opened",
		"variant", nb.Variant.String(),
		"pages", nb.PageCount(),
		"width", nb.PageWidth,
		"height", nb.PageHeight)
	return &Reader{data: data, nb: nb}, nil
}

// Open reads a notebook file into memory and parses it.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open notebook: %w", err)
	}
	return NewReader(data)
}

// Close releases the reader. The container bytes are held in memory, so
// there is nothing to release today; Close exists so callers can treat a
// Reader like any other file-backed handle.
func (r *Reader) Close() error {
	return nil
}

// Notebook returns the parsed metadata model.
func (r *Reader) Notebook() *pages.Notebook {
	return r.nb
}

// PageCount returns the number of pages in the notebook.
func (r *Reader) PageCount() int {
	return r.nb.PageCount()
}

// PageWidth returns the page width in pixels.
func (r *Reader) PageWidth() int {
	return r.nb.PageWidth
}

// PageHeight returns the page height in pixels.
func (r *Reader) PageHeight() int {
	return r.nb.PageHeight
}

// PageMetadata returns the raw metadata block of one page.
func (r *Reader) PageMetadata(index int) (core.Params, error) {
	page, err := r.nb.Page(index)
	if err != nil {
		return nil, err
	}
	return page.Meta, nil
}

// DecodePage decodes and composites one page into a colorized raster using
// the given palette. Layers are decoded in parallel; the composite follows
// the fixed z-order with later layers drawn over earlier ones. Fails with
// [core.ErrIndexOutOfRange], [core.ErrCorruptBitmapStream] on a broken
// layer stream, or [core.ErrNoVisibleContent] when nothing paints.
func (r *Reader) DecodePage(index int, pal palette.Palette) (*image.NRGBA, error) {
	planes, err := r.decodeLayers(index)
	if err != nil {
		return nil, err
	}

	rasters := make([]*image.NRGBA, len(planes))
	for i, bm := range planes {
		if bm == nil {
			continue
		}
		rasters[i] = render.Colorize(bm, pal)
	}
	return render.Composite(r.nb.PageWidth, r.nb.PageHeight, rasters)
}

// DecodePageClasses decodes one page down to a single pixel-class plane,
// compositing layers in z-order without colorizing. Vector tracers consume
// this form together with the palette of their choice.
func (r *Reader) DecodePageClasses(index int) (*model.Bitmap, error) {
	planes, err := r.decodeLayers(index)
	if err != nil {
		return nil, err
	}

	out := model.NewBitmap(r.nb.PageWidth, r.nb.PageHeight)
	contributed := false
	for _, bm := range planes {
		if bm == nil {
			continue
		}
		for i, c := range bm.Pix {
			if c == model.ClassTransparent {
				continue
			}
			out.Pix[i] = c
			contributed = true
		}
	}
	if !contributed {
		return nil, fmt.Errorf("%w: page %d", core.ErrNoVisibleContent, index)
	}
	return out, nil
}

// TextFragments returns the notebook's recognized text as a lazy,
// restartable sequence. Notebooks without recognition data yield an empty
// sequence.
func (r *Reader) TextFragments() iter.Seq[text.Fragment] {
	return text.Fragments(r.nb)
}

// decodeLayers decodes every present, visible layer of a page in z-order.
// The result has one slot per z position; absent or hidden layers stay nil
// and are never read. Layer streams are independent byte ranges, so they
// decode in parallel.
func (r *Reader) decodeLayers(index int) ([]*model.Bitmap, error) {
	page, err := r.nb.Page(index)
	if err != nil {
		return nil, err
	}

	table := filters.Current
	if r.nb.Variant.LegacyRLE() {
		table = filters.Legacy
	}

	planes := make([]*model.Bitmap, len(pages.ZOrder))
	errs := make([]error, len(pages.ZOrder))

	var wg sync.WaitGroup
	for z, role := range pages.ZOrder {
		layer := page.Layer(role)
		if !layer.Present() || !layer.Visible {
			continue
		}
		wg.Add(1)
		go func(z int, role pages.LayerRole, layer *pages.Layer) {
			defer wg.Done()
			planes[z], errs[z] = r.decodeLayer(page, role, layer, table)
		}(z, role, layer)
	}
	wg.Wait()

	for z, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("page %d, %s layer: %w", index, pages.ZOrder[z], err)
		}
	}
	return planes, nil
}

func (r *Reader) decodeLayer(page *pages.Page, role pages.LayerRole, layer *pages.Layer, table filters.CodeTable) (*model.Bitmap, error) {
	payload, err := core.ReadBlock(r.data, layer.BitmapAddress)
	if err != nil {
		return nil, err
	}

	opts := filters.RLEOptions{
		Table: table,
		// White-styled backgrounds are stored as an abbreviated blank
		// stream on some firmware.
		AllBlank: role == pages.RoleBackground && page.Style() == "style_white",
	}

	bm, err := filters.Decode(layer.Protocol, payload, r.nb.PageWidth, r.nb.PageHeight, opts)
	if err != nil {
		return nil, err
	}
	logger().Debug("layer decoded",
		"page", page.Index,
		"role", role.String(),
		"protocol", layer.Protocol,
		"bytes", len(payload))
	return bm, nil
}

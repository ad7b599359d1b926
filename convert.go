package supernote

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/notekit/supernote/core"
	"github.com/notekit/supernote/export"
	"github.com/notekit/supernote/ocr"
	"github.com/notekit/supernote/palette"
	"github.com/notekit/supernote/reader"
	"github.com/notekit/supernote/text"
	"github.com/notekit/supernote/vfs"
)

// Converter provides a fluent interface over one notebook. Each
// configuration method returns a new Converter instance, so a configured
// chain is safe to share and branch.
type Converter struct {
	// Source (one of)
	filename string
	data     []byte
	reader   *reader.Reader

	// Lifecycle
	ownsReader   bool
	readerOpened bool

	// Configuration
	options convertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy with a deep copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename:     c.filename,
		data:         c.data,
		reader:       c.reader,
		ownsReader:   c.ownsReader,
		readerOpened: c.readerOpened,
		options:      c.options.clone(),
		err:          c.err,
	}
}

// ensureReader opens the underlying reader if not already open.
func (c *Converter) ensureReader() error {
	if c.err != nil {
		return c.err
	}
	if c.readerOpened {
		return nil
	}

	var (
		r   *reader.Reader
		err error
	)
	switch {
	case c.data != nil:
		r, err = reader.NewReader(c.data)
	case c.filename != "":
		r, err = reader.Open(c.filename)
	default:
		return fmt.Errorf("no notebook source specified")
	}
	if err != nil {
		return err
	}

	c.reader = r
	c.ownsReader = true
	c.readerOpened = true
	return nil
}

// Close releases resources. Safe to call multiple times; a Converter
// built with FromReader never closes the caller's reader.
func (c *Converter) Close() error {
	if c.ownsReader && c.reader != nil {
		err := c.reader.Close()
		c.reader = nil
		c.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Pages selects which pages to convert (1-indexed). Multiple calls are
// cumulative; the default is all pages.
//
// Example:
//
//	err := supernote.Open("meeting.note").Pages(1, 3).PDF(out)
func (c *Converter) Pages(pages ...int) *Converter {
	newConv := c.clone()
	newConv.options.pages = append(newConv.options.pages, pages...)
	return newConv
}

// PageRange selects an inclusive range of pages (1-indexed).
func (c *Converter) PageRange(start, end int) *Converter {
	newConv := c.clone()
	for i := start; i <= end; i++ {
		newConv.options.pages = append(newConv.options.pages, i)
	}
	return newConv
}

// Palette overrides the output colors for the four ink classes.
func (c *Converter) Palette(pal palette.Palette) *Converter {
	newConv := c.clone()
	newConv.options.palette = pal
	return newConv
}

// PaletteString overrides the palette from four comma-separated hex
// colors in black, darkgray, gray, white order. A malformed or
// wrong-cardinality string fails the chain with
// [core.ErrInvalidPalette] before any page is decoded.
//
// Example:
//
//	img, err := supernote.Open("meeting.note").
//	    PaletteString("#ff0000,#9d9d9d,#c9c9c9,#fefefe").
//	    Image(1)
func (c *Converter) PaletteString(s string) *Converter {
	newConv := c.clone()
	pal, err := palette.Parse(s)
	if err != nil {
		if newConv.err == nil {
			newConv.err = err
		}
		return newConv
	}
	newConv.options.palette = pal
	return newConv
}

// Scale sets the raster output scale factor (1 keeps the device
// resolution). Applies to PNG output only.
func (c *Converter) Scale(scale float64) *Converter {
	newConv := c.clone()
	newConv.options.scale = scale
	return newConv
}

// Separator sets the string placed between pages in Text output.
func (c *Converter) Separator(sep string) *Converter {
	newConv := c.clone()
	newConv.options.separator = sep
	return newConv
}

// OCR enables Tesseract recognition as a Text fallback: when the notebook
// carries no recognized-text blocks, each page is rendered and run through
// the engine instead. lang selects the recognition language(s),
// "+"-separated for multiple; "" keeps the engine default. Requires
// building with the "ocr" tag, otherwise the fallback fails with
// [ocr.ErrNotEnabled].
//
// Example:
//
//	text, err := supernote.Open("scan.note").OCR("eng").Text()
func (c *Converter) OCR(lang string) *Converter {
	newConv := c.clone()
	newConv.options.ocr = true
	newConv.options.ocrLang = lang
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount opens the notebook and returns its page count.
func (c *Converter) PageCount() (int, error) {
	if err := c.ensureReader(); err != nil {
		return 0, err
	}
	return c.reader.PageCount(), nil
}

// Metadata returns the raw metadata block of one page (1-indexed).
func (c *Converter) Metadata(page int) (core.Params, error) {
	if err := c.ensureReader(); err != nil {
		return nil, err
	}
	return c.reader.PageMetadata(page - 1)
}

// Image decodes one page (1-indexed) to a colorized raster.
func (c *Converter) Image(page int) (*image.NRGBA, error) {
	if err := c.ensureReader(); err != nil {
		return nil, err
	}
	return c.reader.DecodePage(page-1, c.options.palette)
}

// PNG decodes one page (1-indexed) and writes it as a PNG.
func (c *Converter) PNG(w io.Writer, page int) error {
	if err := c.ensureReader(); err != nil {
		return err
	}
	return export.RenderPNG(w, c.reader, page-1, c.options.palette, c.options.scale)
}

// SVG traces one page (1-indexed) and writes it as an SVG document.
func (c *Converter) SVG(w io.Writer, page int) error {
	if err := c.ensureReader(); err != nil {
		return err
	}
	return export.RenderSVG(w, c.reader, page-1, c.options.palette, nil)
}

// PDF writes the selected pages (default all) as a PDF document.
func (c *Converter) PDF(w io.Writer) error {
	if err := c.ensureReader(); err != nil {
		return err
	}
	indexes, err := c.pageIndexes()
	if err != nil {
		return err
	}
	return export.RenderPDF(w, c.reader, indexes, c.options.palette)
}

// Text returns the notebook's recognized text, pages joined with the
// configured separator. Notebooks without recognized text yield "".
func (c *Converter) Text() (string, error) {
	if err := c.ensureReader(); err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := export.RenderText(&sb, c.reader, c.options.separator); err != nil {
		return "", err
	}
	if sb.Len() == 0 && c.options.ocr {
		return c.recognizeText()
	}
	return sb.String(), nil
}

// recognizeText renders every page and runs it through the OCR engine.
// Pages with no visible content contribute an empty string.
func (c *Converter) recognizeText() (string, error) {
	client, err := ocr.New()
	if err != nil {
		return "", err
	}
	defer client.Close()
	if c.options.ocrLang != "" {
		if err := client.SetLanguage(c.options.ocrLang); err != nil {
			return "", err
		}
	}

	var pageTexts []string
	for i := 0; i < c.reader.PageCount(); i++ {
		var buf bytes.Buffer
		if err := export.RenderPNG(&buf, c.reader, i, c.options.palette, 1); err != nil {
			if errors.Is(err, core.ErrNoVisibleContent) {
				pageTexts = append(pageTexts, "")
				continue
			}
			return "", err
		}
		recognized, err := client.RecognizePage(buf.Bytes())
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		pageTexts = append(pageTexts, recognized)
	}
	return strings.Join(pageTexts, c.options.separator), nil
}

// HTML writes the notebook's recognized text as an HTML document.
func (c *Converter) HTML(w io.Writer, title string) error {
	if err := c.ensureReader(); err != nil {
		return err
	}
	return export.RenderHTML(w, c.reader, title)
}

// Fragments returns all recognized text fragments in capture order.
func (c *Converter) Fragments() ([]text.Fragment, error) {
	if err := c.ensureReader(); err != nil {
		return nil, err
	}
	var frags []text.Fragment
	for frag := range c.reader.TextFragments() {
		frags = append(frags, frag)
	}
	return frags, nil
}

// FS returns a read-only filesystem view over the notebook, one PNG per
// page, using the configured palette.
func (c *Converter) FS() (*vfs.FS, error) {
	if err := c.ensureReader(); err != nil {
		return nil, err
	}
	return vfs.New(c.reader, c.options.palette), nil
}

// pageIndexes maps the 1-indexed page selection to 0-indexed reader
// indexes, nil when all pages are selected.
func (c *Converter) pageIndexes() ([]int, error) {
	if c.options.pages == nil {
		return nil, nil
	}
	indexes := make([]int, len(c.options.pages))
	for i, p := range c.options.pages {
		if p < 1 || p > c.reader.PageCount() {
			return nil, fmt.Errorf("%w: page %d of %d", core.ErrIndexOutOfRange, p, c.reader.PageCount())
		}
		indexes[i] = p - 1
	}
	return indexes, nil
}

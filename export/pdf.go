package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/notekit/supernote/palette"
	"github.com/notekit/supernote/reader"
)

// deviceDPI is the pixel density of the e-ink panel; used to size PDF
// pages so printed output matches the physical notebook.
const deviceDPI = 226.0

// RenderPDF writes the selected pages as a PDF, one full-bleed raster
// image per page. A nil page selection exports every page.
func RenderPDF(w io.Writer, r *reader.Reader, pageIndexes []int, pal palette.Palette) error {
	if pageIndexes == nil {
		pageIndexes = make([]int, r.PageCount())
		for i := range pageIndexes {
			pageIndexes[i] = i
		}
	}

	widthPt := float64(r.PageWidth()) * 72 / deviceDPI
	heightPt := float64(r.PageHeight()) * 72 / deviceDPI
	size := fpdf.SizeType{Wd: widthPt, Ht: heightPt}

	doc := fpdf.NewCustom(&fpdf.InitType{UnitStr: "pt", Size: size})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	for _, index := range pageIndexes {
		img, err := r.DecodePage(index, pal)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("failed to encode page %d: %w", index, err)
		}

		name := fmt.Sprintf("page-%d", index)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader(name, opts, &buf)

		doc.AddPageFormat("P", size)
		doc.ImageOptions(name, 0, 0, widthPt, heightPt, false, opts, 0, "")
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

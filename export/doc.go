// Package export renders decoded notebook pages into interchange formats.
//
// Four surfaces are provided:
//
//   - [RenderPNG] encodes one composited page as a PNG raster, with
//     optional high-quality rescaling.
//   - [RenderSVG] traces a page's pixel-class plane into vector outlines
//     and writes an SVG document.
//   - [RenderPDF] writes a multi-page PDF with one raster image per page.
//   - [RenderText] and [RenderHTML] emit the recognized-text layer as
//     plain text or a minimal HTML document.
//
// All exporters take an opened [reader.Reader] and write to an io.Writer;
// none of them mutate the reader.
package export

// Package reader provides the notebook facade: it opens a container,
// exposes page count and per-page metadata, and decodes pages on demand.
//
//	r, err := reader.Open("meeting.note")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	img, err := r.DecodePage(0, palette.Default)
//
// A Reader is immutable after open and holds no decoded-page cache:
// DecodePage is idempotent and safe to call concurrently for any mix of
// page indices. Within one DecodePage call the page's layers are decoded
// in parallel before compositing.
package reader

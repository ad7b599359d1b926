// Package filters decompresses per-layer bitmap streams into pixel-class
// planes.
//
// Two stream protocols exist, named by the LAYERPROTOCOL (or page-level
// PROTOCOL) metadata key:
//
// RATTA_RLE is a run-length code used by every layered firmware. Records
// are (colorcode, count) byte pairs with two escapes: a count of 0xFF is a
// fixed long run, and a count with the high bit set chains with the record
// that follows it to express runs longer than one count field can hold. The
// colorcode alphabet changed once (the X2 generation moved the gray codes),
// so the decoder is parameterized by a [CodeTable] chosen per layer from
// metadata, never sniffed from the stream.
//
// SN_ASA_COMPRESS is the original-series protocol: a zlib stream of 16-bit
// codes in device orientation, rotated into page orientation on decode.
//
// Decoding is strictly sequential and single-pass. The decompressed pixel
// count must equal the declared page geometry exactly; a run that would
// overshoot, a shortfall at end of stream, or an unknown colorcode fails
// with core.ErrCorruptBitmapStream rather than being silently patched.
package filters

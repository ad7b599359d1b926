// Package core implements the low-level Supernote container format:
// signature detection, the tail-anchored trailer, length-prefixed blocks,
// and the <KEY:VALUE> metadata record syntax.
//
// A .note file is written append-style: page and layer blocks first, then
// metadata blocks describing them, then a footer block indexing everything,
// and finally a 4-byte little-endian address pointing back at the footer.
// Parsing therefore starts at the end of the file and never scans content:
//
//	addr, _ := core.TrailerAddress(data)
//	footer, _ := core.ParseBlock(data, addr)
//	header, _ := core.ParseBlock(data, footer.Int64("FILE_FEATURE"))
//
// # Metadata records
//
// Metadata blocks are flat ASCII sequences of <KEY:VALUE> records. A key may
// repeat (the footer lists one PAGE entry per page on original-series
// firmware); repeated keys accumulate in order:
//
//	params := core.ExtractParams(blockBytes)
//	params.Get("FILE_FEATURE") // first value
//	params.All("PAGE")         // every value, in record order
//
// # Format variants
//
// Firmware generations are modeled as a closed set of named variants
// selected once from the file signature (see [DetectVariant]). Variants only
// differ in which optional keys and which run-length code table to expect;
// the block and record syntax is shared by all of them.
package core

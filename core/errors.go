package core

import "errors"

// Error kinds surfaced by this module. Callers select on them with
// errors.Is; every failure wraps exactly one of these sentinels.
var (
	// ErrMalformedContainer reports that the trailer or address table cannot
	// be read, a block pointer is out of range, or a required metadata key is
	// missing. Fatal for the whole notebook: open fails entirely.
	ErrMalformedContainer = errors.New("supernote: malformed container")

	// ErrIndexOutOfRange reports a page index at or beyond the page count.
	// Fails the requesting call only.
	ErrIndexOutOfRange = errors.New("supernote: page index out of range")

	// ErrCorruptBitmapStream reports a run-length stream inconsistent with
	// the declared page geometry, or an unknown pixel-class code. Fails that
	// page's decode only; sibling pages remain decodable.
	ErrCorruptBitmapStream = errors.New("supernote: corrupt bitmap stream")

	// ErrNoVisibleContent reports a page whose every layer is absent or
	// blank. Callers may treat it as "render a blank page" rather than fatal.
	ErrNoVisibleContent = errors.New("supernote: no visible content")

	// ErrInvalidPalette reports a palette override with the wrong number of
	// colors. Raised before any decoding work begins.
	ErrInvalidPalette = errors.New("supernote: invalid palette configuration")
)

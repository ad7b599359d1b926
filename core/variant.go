package core

import (
	"bytes"
	"fmt"
)

// Variant identifies one firmware generation of the container format.
// The set is closed: parsing logic is shared, variants only differ in which
// optional metadata keys exist and which run-length code table layers use.
type Variant int

const (
	// VariantOriginal is the first-generation A5 device. Pages carry a
	// single content plane (DATA/PROTOCOL keys) instead of named layers.
	VariantOriginal Variant = iota

	// VariantX is the X-series (firmware C.053 through C.130): five named
	// layers per page, legacy run-length code table.
	VariantX

	// VariantXR is the X-series from firmware C.159: as VariantX, plus the
	// real-time recognized-text block.
	VariantXR

	// VariantX2 is the X2 generation: current run-length code table (with
	// legacy compat aliases) and recognized text.
	VariantX2
)

// signatures maps each known file signature to its variant. Reverse
// engineered from observed files; an unknown signature is rejected rather
// than guessed at.
var signatures = map[string]Variant{
	"SN_FILE_ASA_20190529": VariantOriginal,

	"noteSN_FILE_VER_20200001": VariantX, // firmware C.053
	"noteSN_FILE_VER_20200005": VariantX, // firmware C.077
	"noteSN_FILE_VER_20200006": VariantX, // firmware C.130

	"noteSN_FILE_VER_20200007": VariantXR, // firmware C.159

	"noteSN_FILE_VER_20200008": VariantX2,
	"noteSN_FILE_VER_20210009": VariantX2,
	"noteSN_FILE_VER_20210010": VariantX2,
	"noteSN_FILE_VER_20220011": VariantX2,
	"noteSN_FILE_VER_20230001": VariantX2,
}

// DetectVariant matches the container's leading signature against the known
// set and returns the variant together with the matched signature string.
func DetectVariant(data []byte) (Variant, string, error) {
	for sig, v := range signatures {
		if len(data) >= len(sig) && bytes.Equal(data[:len(sig)], []byte(sig)) {
			return v, sig, nil
		}
	}
	return 0, "", fmt.Errorf("%w: unknown file signature", ErrMalformedContainer)
}

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantOriginal:
		return "original"
	case VariantX:
		return "x-series"
	case VariantXR:
		return "x-series-recognition"
	case VariantX2:
		return "x2-series"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// HasLayers reports whether pages carry the five named layer planes.
// Original-series pages store one unnamed content plane instead.
func (v Variant) HasLayers() bool {
	return v != VariantOriginal
}

// HasRecognition reports whether the firmware can embed a recognized-text
// block. Absence of the capability means TextFragments is empty, not an
// error.
func (v Variant) HasRecognition() bool {
	return v == VariantXR || v == VariantX2
}

// LegacyRLE reports whether layers of this variant use the legacy
// run-length code table. The X2 generation introduced new gray codes.
func (v Variant) LegacyRLE() bool {
	return v != VariantX2
}

package filters

import (
	"fmt"

	"github.com/notekit/supernote/core"
	"github.com/notekit/supernote/model"
)

// CodeTable selects the RATTA_RLE colorcode alphabet.
type CodeTable int

const (
	// Legacy is the original and X-series table.
	Legacy CodeTable = iota
	// Current is the X2-series table (new gray codes, legacy codes kept as
	// compatibility aliases).
	Current
)

// RATTA_RLE colorcodes, as observed on device.
const (
	codeBlack      = 0x61
	codeBackground = 0x62 // decodes to the transparency sentinel
	codeWhite      = 0x65

	codeDarkGrayLegacy       = 0x63
	codeGrayLegacy           = 0x64
	codeMarkerBlack          = 0x66
	codeMarkerDarkGrayLegacy = 0x67
	codeMarkerGrayLegacy     = 0x68

	codeDarkGrayCurrent       = 0x9d
	codeGrayCurrent           = 0xc9
	codeMarkerDarkGrayCurrent = 0x9e
	codeMarkerGrayCurrent     = 0xca
)

// Long-run escape: a count byte of 0xFF stands for a fixed-size run.
// Planes flagged all-blank use a shorter fixed run.
const (
	longRunMarker  = 0xff
	longRunLength  = 0x4000
	blankRunLength = 0x400
)

// classify maps a colorcode to its pixel class under the given table.
// Marker strokes share the class of their base ink.
func classify(table CodeTable, code byte) (model.PixelClass, bool) {
	switch code {
	case codeBlack, codeMarkerBlack:
		return model.ClassBlack, true
	case codeBackground:
		return model.ClassTransparent, true
	case codeWhite:
		return model.ClassWhite, true
	case codeDarkGrayLegacy, codeMarkerDarkGrayLegacy:
		return model.ClassDarkGray, true
	case codeGrayLegacy, codeMarkerGrayLegacy:
		return model.ClassGray, true
	}
	if table == Current {
		switch code {
		case codeDarkGrayCurrent, codeMarkerDarkGrayCurrent:
			return model.ClassDarkGray, true
		case codeGrayCurrent, codeMarkerGrayCurrent:
			return model.ClassGray, true
		}
	}
	return 0, false
}

// RLEOptions parameterize one layer's decode. Both fields come from layer
// metadata, selected once before decoding starts.
type RLEOptions struct {
	Table    CodeTable
	AllBlank bool // plane is flagged blank; the long-run escape shrinks
}

// DecodeRLE decompresses a RATTA_RLE stream into a width x height plane.
func DecodeRLE(data []byte, width, height int, opts RLEOptions) (*model.Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid geometry %dx%d", core.ErrCorruptBitmapStream, width, height)
	}

	bm := model.NewBitmap(width, height)
	expected := width * height
	pos := 0

	emit := func(code byte, length int) error {
		class, ok := classify(opts.Table, code)
		if !ok {
			return fmt.Errorf("%w: unknown colorcode 0x%02x at pixel %d", core.ErrCorruptBitmapStream, code, pos)
		}
		if pos+length > expected {
			return fmt.Errorf("%w: run of %d overshoots plane at pixel %d of %d",
				core.ErrCorruptBitmapStream, length, pos, expected)
		}
		for i := 0; i < length; i++ {
			bm.Pix[pos+i] = class
		}
		pos += length
		return nil
	}

	// A record whose count has the high bit set is held: it either chains
	// with the following record of the same colorcode or is emitted alone
	// with its count promoted by 7 bits.
	var heldCode, heldCount byte
	holding := false

	for i := 0; i+1 < len(data); i += 2 {
		code, count := data[i], data[i+1]
		chained := false

		if holding {
			prevCode, prevCount := heldCode, heldCount
			holding = false
			if code == prevCode {
				length := 1 + int(count) + ((int(prevCount&0x7f) + 1) << 7)
				if err := emit(code, length); err != nil {
					return nil, err
				}
				chained = true
			} else {
				if err := emit(prevCode, (int(prevCount&0x7f)+1)<<7); err != nil {
					return nil, err
				}
			}
		}

		if chained {
			continue
		}
		switch {
		case count == longRunMarker:
			length := longRunLength
			if opts.AllBlank {
				length = blankRunLength
			}
			if err := emit(code, length); err != nil {
				return nil, err
			}
		case count&0x80 != 0:
			heldCode, heldCount = code, count
			holding = true
		default:
			if err := emit(code, int(count)+1); err != nil {
				return nil, err
			}
		}
	}

	// A record still held at end of stream is fitted to the remaining gap:
	// the largest power-of-two promotion of its count that does not
	// overshoot. Observed device behavior for the final run of a plane.
	if holding {
		if length := tailRunLength(heldCount, expected-pos); length > 0 {
			if err := emit(heldCode, length); err != nil {
				return nil, err
			}
		}
	}

	if pos != expected {
		return nil, fmt.Errorf("%w: decoded %d pixels, geometry declares %d", core.ErrCorruptBitmapStream, pos, expected)
	}
	return bm, nil
}

// tailRunLength fits a trailing held count to the remaining pixel gap.
func tailRunLength(count byte, gap int) int {
	for shift := 7; shift >= 0; shift-- {
		if length := (int(count&0x7f) + 1) << shift; length <= gap {
			return length
		}
	}
	return 0
}

package filters

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/notekit/supernote/core"
	"github.com/notekit/supernote/model"
)

// The original series stores planes in device orientation with 16 spare
// lines; decode rotates into page orientation and discards them.
const flateSpareLines = 16

// SN_ASA_COMPRESS 16-bit pixel codes.
const (
	flateBlack      = 0x0000
	flateBackground = 0xffff
	flateDarkGray   = 0x2104
	flateGray       = 0xe1e2
)

// DecodeFlate decompresses an SN_ASA_COMPRESS stream into a width x height
// plane. Original-series pages are single-plane, so the background code
// decodes to white rather than the transparency sentinel.
func DecodeFlate(data []byte, width, height int) (*model.Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid geometry %dx%d", core.ErrCorruptBitmapStream, width, height)
	}

	raw, err := zlibDecompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrCorruptBitmapStream, err)
	}

	// Device grid: width rows of (height + spare) 16-bit codes.
	gridCols := height + flateSpareLines
	if len(raw) != width*gridCols*2 {
		return nil, fmt.Errorf("%w: decompressed %d bytes, device grid needs %d",
			core.ErrCorruptBitmapStream, len(raw), width*gridCols*2)
	}

	bm := model.NewBitmap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Rotate 90 degrees clockwise out of device orientation.
			src := ((width-1-x)*gridCols + y) * 2
			code := binary.LittleEndian.Uint16(raw[src:])
			class, ok := classifyFlate(code)
			if !ok {
				return nil, fmt.Errorf("%w: unknown pixel code 0x%04x at (%d,%d)",
					core.ErrCorruptBitmapStream, code, x, y)
			}
			bm.Pix[y*width+x] = class
		}
	}
	return bm, nil
}

func classifyFlate(code uint16) (model.PixelClass, bool) {
	switch code {
	case flateBlack:
		return model.ClassBlack, true
	case flateBackground:
		return model.ClassWhite, true
	case flateDarkGray:
		return model.ClassDarkGray, true
	case flateGray:
		return model.ClassGray, true
	}
	return 0, false
}

func zlibDecompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib: %v", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("zlib: %v", err)
	}
	return buf.Bytes(), nil
}

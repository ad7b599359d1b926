package filters

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"testing"

	"github.com/notekit/supernote/model"
)

// buildFlatePlane compresses a device-orientation grid of 16-bit codes for
// a width x height page (the grid carries 16 spare columns per row).
func buildFlatePlane(t *testing.T, width, height int, set map[[2]int]uint16) []byte {
	t.Helper()
	gridCols := height + flateSpareLines
	raw := make([]byte, width*gridCols*2)
	for i := 0; i < width*gridCols; i++ {
		binary.LittleEndian.PutUint16(raw[i*2:], flateBackground)
	}
	for rc, code := range set {
		binary.LittleEndian.PutUint16(raw[(rc[0]*gridCols+rc[1])*2:], code)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("compress close: %v", err)
	}
	return buf.Bytes()
}

// TestDecodeFlateRotation tests the device-to-page orientation mapping
func TestDecodeFlateRotation(t *testing.T) {
	const w, h = 2, 3
	// Page position (x, y) reads grid row (w-1-x), column y.
	stream := buildFlatePlane(t, w, h, map[[2]int]uint16{
		{1, 0}: flateBlack,    // -> page (0, 0)
		{0, 2}: flateGray,     // -> page (1, 2)
		{1, 1}: flateDarkGray, // -> page (0, 1)
	})

	bm, err := DecodeFlate(stream, w, h)
	if err != nil {
		t.Fatalf("DecodeFlate failed: %v", err)
	}
	if got := bm.At(0, 0); got != model.ClassBlack {
		t.Errorf("(0,0) = %v, want black", got)
	}
	if got := bm.At(1, 2); got != model.ClassGray {
		t.Errorf("(1,2) = %v, want gray", got)
	}
	if got := bm.At(0, 1); got != model.ClassDarkGray {
		t.Errorf("(0,1) = %v, want darkgray", got)
	}
	// Background decodes to white on single-plane pages.
	if got := bm.At(1, 0); got != model.ClassWhite {
		t.Errorf("(1,0) = %v, want white", got)
	}
}

// TestDecodeFlateSpareLinesDiscarded tests that codes in the 16 spare
// columns never reach the page
func TestDecodeFlateSpareLinesDiscarded(t *testing.T) {
	const w, h = 2, 3
	stream := buildFlatePlane(t, w, h, map[[2]int]uint16{
		{0, h}:     flateBlack, // first spare column
		{1, h + 5}: flateBlack,
	})

	bm, err := DecodeFlate(stream, w, h)
	if err != nil {
		t.Fatalf("DecodeFlate failed: %v", err)
	}
	for i, c := range bm.Pix {
		if c != model.ClassWhite {
			t.Fatalf("pixel %d = %v, want white", i, c)
		}
	}
}

// TestDecodeFlateCorruption tests size and code validation
func TestDecodeFlateCorruption(t *testing.T) {
	const w, h = 2, 3

	t.Run("not zlib", func(t *testing.T) {
		if _, err := DecodeFlate([]byte("garbage"), w, h); !isCorrupt(err) {
			t.Errorf("expected ErrCorruptBitmapStream, got %v", err)
		}
	})

	t.Run("wrong grid size", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		zw.Write(make([]byte, 10))
		zw.Close()
		if _, err := DecodeFlate(buf.Bytes(), w, h); !isCorrupt(err) {
			t.Errorf("expected ErrCorruptBitmapStream, got %v", err)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		stream := buildFlatePlane(t, w, h, map[[2]int]uint16{{0, 0}: 0x1234})
		if _, err := DecodeFlate(stream, w, h); !isCorrupt(err) {
			t.Errorf("expected ErrCorruptBitmapStream, got %v", err)
		}
	})
}

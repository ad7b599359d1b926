package filters

import (
	"errors"
	"testing"

	"github.com/notekit/supernote/core"
	"github.com/notekit/supernote/internal/notetest"
	"github.com/notekit/supernote/model"
)

func isCorrupt(err error) bool {
	return errors.Is(err, core.ErrCorruptBitmapStream)
}

// TestDecodeRLERoundTrip tests that encoded runs decode to exactly the
// encoded pixels at the expected positions
func TestDecodeRLERoundTrip(t *testing.T) {
	const w, h = 16, 8
	stream := notetest.EncodeRLE(
		notetest.Run{Class: model.ClassTransparent, Length: 40},
		notetest.Run{Class: model.ClassBlack, Length: 17},
		notetest.Run{Class: model.ClassGray, Length: 71},
	)

	bm, err := DecodeRLE(stream, w, h, RLEOptions{Table: Legacy})
	if err != nil {
		t.Fatalf("DecodeRLE failed: %v", err)
	}

	for i, want := range map[int]model.PixelClass{
		0:   model.ClassTransparent,
		39:  model.ClassTransparent,
		40:  model.ClassBlack,
		56:  model.ClassBlack,
		57:  model.ClassGray,
		127: model.ClassGray,
	} {
		if got := bm.Pix[i]; got != want {
			t.Errorf("pixel %d = %v, want %v", i, got, want)
		}
	}
}

// TestDecodeRLERunSplitting tests runs longer than one count field
func TestDecodeRLERunSplitting(t *testing.T) {
	const w, h = 100, 10
	bm, err := DecodeRLE(notetest.UniformPlane(model.ClassDarkGray, w, h), w, h, RLEOptions{Table: Legacy})
	if err != nil {
		t.Fatalf("DecodeRLE failed: %v", err)
	}
	for i, c := range bm.Pix {
		if c != model.ClassDarkGray {
			t.Fatalf("pixel %d = %v, want darkgray", i, c)
		}
	}
}

// TestDecodeRLELongRunEscape tests the 0xFF fixed-run escape
func TestDecodeRLELongRunEscape(t *testing.T) {
	// 0x4000 black pixels from a single escape record, then the remainder.
	const w, h = 128, 130 // 16640 pixels
	stream := []byte{0x61, 0xff}
	stream = append(stream, notetest.EncodeRLE(notetest.Run{Class: model.ClassWhite, Length: w*h - 0x4000})...)

	bm, err := DecodeRLE(stream, w, h, RLEOptions{Table: Legacy})
	if err != nil {
		t.Fatalf("DecodeRLE failed: %v", err)
	}
	if bm.Pix[0x3fff] != model.ClassBlack {
		t.Error("pixel 0x3fff should be black")
	}
	if bm.Pix[0x4000] != model.ClassWhite {
		t.Error("pixel 0x4000 should be white")
	}
}

// TestDecodeRLEBlankEscape tests the shorter escape on all-blank planes
func TestDecodeRLEBlankEscape(t *testing.T) {
	const w, h = 32, 32 // 1024 = 0x400 pixels
	stream := []byte{0x62, 0xff}

	bm, err := DecodeRLE(stream, w, h, RLEOptions{Table: Legacy, AllBlank: true})
	if err != nil {
		t.Fatalf("DecodeRLE failed: %v", err)
	}
	if !bm.Blank() {
		t.Error("plane should be fully transparent")
	}

	// Without the flag the escape means 0x4000 pixels and overshoots.
	if _, err := DecodeRLE(stream, w, h, RLEOptions{Table: Legacy}); !isCorrupt(err) {
		t.Errorf("expected ErrCorruptBitmapStream, got %v", err)
	}
}

// TestDecodeRLEChainedRun tests high-bit records chaining with their
// successor of the same colorcode
func TestDecodeRLEChainedRun(t *testing.T) {
	// (0x61,0x80) held, then (0x61,0x7f): 1 + 127 + ((0x00)+1)<<7 = 256.
	const w, h = 16, 16
	stream := []byte{0x61, 0x80, 0x61, 0x7f}

	bm, err := DecodeRLE(stream, w, h, RLEOptions{Table: Legacy})
	if err != nil {
		t.Fatalf("DecodeRLE failed: %v", err)
	}
	for i, c := range bm.Pix {
		if c != model.ClassBlack {
			t.Fatalf("pixel %d = %v, want black", i, c)
		}
	}
}

// TestDecodeRLEHeldRunDifferentCode tests a held record released by a
// record of a different colorcode
func TestDecodeRLEHeldRunDifferentCode(t *testing.T) {
	// (0x61,0x81) held -> released as ((1)+1)<<7 = 256 black,
	// then (0x64,0x3f) = 64 gray.
	const w, h = 16, 20
	stream := []byte{0x61, 0x81, 0x64, 0x3f}

	bm, err := DecodeRLE(stream, w, h, RLEOptions{Table: Legacy})
	if err != nil {
		t.Fatalf("DecodeRLE failed: %v", err)
	}
	if bm.Pix[255] != model.ClassBlack {
		t.Error("pixel 255 should be black")
	}
	if bm.Pix[256] != model.ClassGray {
		t.Error("pixel 256 should be gray")
	}
	if bm.Pix[319] != model.ClassGray {
		t.Error("pixel 319 should be gray")
	}
}

// TestDecodeRLETailFit tests a record still held at end of stream being
// fitted to the remaining gap
func TestDecodeRLETailFit(t *testing.T) {
	const w, h = 16, 16 // 256 pixels
	stream := append(
		notetest.EncodeRLE(notetest.Run{Class: model.ClassTransparent, Length: 128}),
		0x61, 0x80, // held at EOF; gap 128 fits (0+1)<<7
	)

	bm, err := DecodeRLE(stream, w, h, RLEOptions{Table: Legacy})
	if err != nil {
		t.Fatalf("DecodeRLE failed: %v", err)
	}
	if bm.Pix[127] != model.ClassTransparent {
		t.Error("pixel 127 should be transparent")
	}
	if bm.Pix[128] != model.ClassBlack || bm.Pix[255] != model.ClassBlack {
		t.Error("tail run should fill the remaining 128 pixels with black")
	}
}

// TestDecodeRLECorruption tests overshoot, shortfall and unknown codes
func TestDecodeRLECorruption(t *testing.T) {
	tests := []struct {
		name   string
		stream []byte
		opts   RLEOptions
	}{
		{
			"overshoot",
			notetest.EncodeRLE(notetest.Run{Class: model.ClassBlack, Length: 300}),
			RLEOptions{Table: Legacy},
		},
		{
			"shortfall",
			notetest.EncodeRLE(notetest.Run{Class: model.ClassBlack, Length: 100}),
			RLEOptions{Table: Legacy},
		},
		{
			"unknown colorcode",
			[]byte{0x42, 0x10},
			RLEOptions{Table: Legacy},
		},
		{
			"current-table code under legacy table",
			[]byte{0x9d, 0x7f},
			RLEOptions{Table: Legacy},
		},
		{
			"empty stream",
			nil,
			RLEOptions{Table: Legacy},
		},
	}

	const w, h = 16, 16
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeRLE(tt.stream, w, h, tt.opts); !isCorrupt(err) {
				t.Errorf("expected ErrCorruptBitmapStream, got %v", err)
			}
		})
	}
}

// TestDecodeRLECurrentTable tests the X2 code table including compat codes
func TestDecodeRLECurrentTable(t *testing.T) {
	const w, h = 16, 16
	stream := []byte{
		0x9d, 0x3f, // 64 darkgray (current code)
		0xc9, 0x3f, // 64 gray (current code)
		0x63, 0x3f, // 64 darkgray (compat alias)
		0x64, 0x3f, // 64 gray (compat alias)
	}

	bm, err := DecodeRLE(stream, w, h, RLEOptions{Table: Current})
	if err != nil {
		t.Fatalf("DecodeRLE failed: %v", err)
	}
	for i, want := range map[int]model.PixelClass{
		0:   model.ClassDarkGray,
		64:  model.ClassGray,
		128: model.ClassDarkGray,
		192: model.ClassGray,
	} {
		if got := bm.Pix[i]; got != want {
			t.Errorf("pixel %d = %v, want %v", i, got, want)
		}
	}
}

// TestDecodeUnknownProtocol tests the protocol dispatcher
func TestDecodeUnknownProtocol(t *testing.T) {
	if _, err := Decode("NOT_A_PROTOCOL", nil, 4, 4, RLEOptions{}); !isCorrupt(err) {
		t.Errorf("expected ErrCorruptBitmapStream, got %v", err)
	}
}

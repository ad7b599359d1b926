package model

import "fmt"

// PixelClass is one symbolic ink/background code of a decoded layer plane.
// The alphabet has four visible classes plus the transparency sentinel.
type PixelClass uint8

const (
	// ClassTransparent marks "no paint here": the layer below shows through.
	// It is the zero value so a fresh plane is fully transparent.
	ClassTransparent PixelClass = iota
	ClassBlack
	ClassDarkGray
	ClassGray
	ClassWhite
)

// String returns the class name.
func (c PixelClass) String() string {
	switch c {
	case ClassTransparent:
		return "transparent"
	case ClassBlack:
		return "black"
	case ClassDarkGray:
		return "darkgray"
	case ClassGray:
		return "gray"
	case ClassWhite:
		return "white"
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// Bitmap is a dense grid of pixel classes in row-major order. Width and
// height come from the notebook's page geometry, never from the stream.
type Bitmap struct {
	Width  int
	Height int
	Pix    []PixelClass
}

// NewBitmap allocates a fully transparent plane of the given geometry.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]PixelClass, width*height),
	}
}

// At returns the class at (x, y). Out-of-bounds positions read as
// transparent, matching the compositor's skip semantics.
func (b *Bitmap) At(x, y int) PixelClass {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return ClassTransparent
	}
	return b.Pix[y*b.Width+x]
}

// Set writes the class at (x, y). Out-of-bounds positions are ignored.
func (b *Bitmap) Set(x, y int, c PixelClass) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = c
}

// Blank reports whether every pixel is transparent.
func (b *Bitmap) Blank() bool {
	for _, c := range b.Pix {
		if c != ClassTransparent {
			return false
		}
	}
	return true
}

// Package supernote provides a fluent API for reading Supernote .note
// files: decoding handwritten pages to images and exporting them as PNG,
// SVG, PDF, plain text or HTML.
//
// Basic usage:
//
//	img, err := supernote.Open("meeting.note").Image(1)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	err := supernote.Open("meeting.note").
//	    Pages(1, 2, 3).
//	    PaletteString("#ff0000,#9d9d9d,#c9c9c9,#fefefe").
//	    PDF(out)
//
// For advanced use cases, the lower-level reader package is also
// available.
package supernote

import (
	"github.com/notekit/supernote/reader"
)

// Open prepares a Converter over a notebook file. The file is opened
// lazily on the first terminal operation; the returned Converter should
// be closed when done.
//
// Example:
//
//	img, err := supernote.Open("meeting.note").Image(1)
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes prepares a Converter over container bytes already in memory.
//
// Example:
//
//	count, err := supernote.FromBytes(data).PageCount()
func FromBytes(data []byte) *Converter {
	return &Converter{
		data:    data,
		options: defaultOptions(),
	}
}

// FromReader wraps an already-opened reader.Reader. The caller keeps
// ownership of the reader and is responsible for closing it.
//
// Example:
//
//	r, err := reader.Open("meeting.note")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	text, err := supernote.FromReader(r).Text()
func FromReader(r *reader.Reader) *Converter {
	return &Converter{
		reader:       r,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must wraps a call returning (T, error) and panics on error. Intended
// for scripts and tests.
//
// Example:
//
//	count := supernote.Must(supernote.Open("meeting.note").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

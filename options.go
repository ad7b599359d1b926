package supernote

import "github.com/notekit/supernote/palette"

// convertOptions holds configuration for page conversion.
type convertOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Output
	palette   palette.Palette
	scale     float64
	separator string

	// OCR fallback for Text on notebooks without recognized text
	ocr     bool
	ocrLang string
}

// defaultOptions returns the default conversion options.
func defaultOptions() convertOptions {
	return convertOptions{
		pages:     nil, // nil means all pages
		palette:   palette.Default,
		scale:     1,
		separator: "\n\n",
	}
}

// clone creates a deep copy of convertOptions.
func (o convertOptions) clone() convertOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}

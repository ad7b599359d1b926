// Package text extracts recognized handwriting text from notebooks.
//
// Devices with real-time recognition firmware store a recognition result
// alongside each page as a base64-encoded JSON document. This package
// decodes those documents into ordered [Fragment] values:
//
//	for frag := range text.Fragments(nb) {
//		fmt.Println(frag.Text)
//	}
//
// Notebooks without recognition data yield an empty sequence, never an
// error. Extracted text is normalized to Unicode NFC form so that
// downstream comparison and search behave consistently across firmware
// versions.
package text

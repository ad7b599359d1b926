//go:build ocr

// Package ocr recognizes text on rendered notebook pages. It is the
// fallback for notebooks whose firmware never produced a recognized-text
// block: render the page to an image, then run it through Tesseract.
//
// This package wraps the Tesseract engine via gosseract and requires
// Tesseract to be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Built only with the "ocr" build tag; without it a stub returning
// [ErrNotEnabled] is compiled instead.
package ocr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ErrNotEnabled is returned by the stub build. Declared in both builds so
// callers can reference it regardless of tags.
var ErrNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Client wraps a Tesseract session.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. Close it when done to release the Tesseract
// session.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases the Tesseract session.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizePage runs OCR over an encoded page image (PNG, JPEG, TIFF)
// and returns the recognized text, whitespace-trimmed.
func (c *Client) RecognizePage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set page image: %w", err)
	}
	out, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// SetLanguage selects the recognition language(s), "+"-separated for
// multiple (e.g. "eng+fra"). Default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

//go:build !ocr

// Package ocr recognizes text on rendered notebook pages. It is the
// fallback for notebooks whose firmware never produced a recognized-text
// block.
//
// This is the stub compiled when the "ocr" build tag is not set; every
// operation fails with [ErrNotEnabled]. Rebuild with:
//
//	go build -tags ocr
//
// which requires Tesseract to be installed on the system.
package ocr

import "errors"

// ErrNotEnabled is returned when OCR is called but support was not
// compiled in.
var ErrNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Client is the stub OCR client.
type Client struct{}

// New fails with ErrNotEnabled.
func New() (*Client, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op; safe on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizePage fails with ErrNotEnabled.
func (c *Client) RecognizePage([]byte) (string, error) {
	return "", ErrNotEnabled
}

// SetLanguage fails with ErrNotEnabled.
func (c *Client) SetLanguage(string) error {
	return ErrNotEnabled
}

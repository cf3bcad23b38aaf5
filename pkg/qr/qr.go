package qr

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// DefaultSize is the rendered edge length in pixels.
	DefaultSize = 256
	minSize     = 64
	maxSize     = 1024
)

// ErrEmptyContent is returned when there is nothing to encode.
var ErrEmptyContent = errors.New("qr content is empty")

// PNG renders the content as a QR code PNG. Sizes outside the supported
// range are clamped.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size < minSize {
		size = minSize
	}
	if size > maxSize {
		size = maxSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}

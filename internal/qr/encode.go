// Package qr wraps the QR rasterizer behind a single function.
package qr

import qrcode "github.com/skip2/go-qrcode"

// ImageSize is the edge length in pixels of generated codes.
const ImageSize = 512

// Encode renders text as a PNG-encoded QR code.
func Encode(text string) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, ImageSize)
}

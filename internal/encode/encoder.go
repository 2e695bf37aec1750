// Package encode turns rendered tiles into image bytes.
package encode

import (
	"fmt"
	"image"
	"strings"
)

// Format is a tile image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
)

// ParseFormat accepts a format name or file extension ("jpg", ".webp", ...).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("unsupported tile format: %q (supported: png, jpeg, webp)", s)
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Lossless reports whether decoding returns the encoded pixels unchanged.
func (f Format) Lossless() bool { return f == FormatPNG }

// Encoder encodes an image into tile bytes.
type Encoder interface {
	// Encode encodes an image to bytes in the tile format.
	Encode(img image.Image) ([]byte, error)

	// Format returns the tile format.
	Format() Format
}

// NewEncoder creates an encoder for the given format name and quality.
// Quality only applies to lossy formats; values <= 0 mean 85.
func NewEncoder(format string, quality int) (Encoder, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if quality <= 0 {
		quality = 85
	}
	switch f {
	case FormatJPEG:
		return &JPEGEncoder{Quality: quality}, nil
	case FormatWebP:
		return &WebPEncoder{Quality: quality}, nil
	default:
		return &PNGEncoder{}, nil
	}
}

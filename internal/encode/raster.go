package encode

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
)

// PNGEncoder encodes tiles as PNG. Transparency is preserved, which the
// diagnostic tiles rely on for pixels without data.
type PNGEncoder struct{}

func (e *PNGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *PNGEncoder) Format() Format { return FormatPNG }

// JPEGEncoder encodes tiles as JPEG. Alpha is dropped.
type JPEGEncoder struct {
	Quality int // 1-100
}

func (e *JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *JPEGEncoder) Format() Format { return FormatJPEG }

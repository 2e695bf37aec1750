package encode

import (
	"image"
	"image/color"
	"testing"
)

// testImage creates a size x size RGBA image with a gradient pattern and a
// transparent right half.
func testImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x >= size/2 {
				continue
			}
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x % 256),
				G: uint8(y % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantExt string
		wantErr bool
	}{
		{"png", FormatPNG, ".png", false},
		{"PNG", FormatPNG, ".png", false},
		{"jpeg", FormatJPEG, ".jpg", false},
		{"jpg", FormatJPEG, ".jpg", false},
		{".webp", FormatWebP, ".webp", false},
		{"bmp", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFormat(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if got.Extension() != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", got.Extension(), tt.wantExt)
			}
		})
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range []string{"png", "jpeg", "webp"} {
		enc, err := NewEncoder(name, 0)
		if err != nil {
			t.Fatalf("NewEncoder(%q): %v", name, err)
		}
		if string(enc.Format()) != name {
			t.Errorf("NewEncoder(%q).Format() = %q", name, enc.Format())
		}
	}
	if enc, _ := NewEncoder("jpg", 0); enc.(*JPEGEncoder).Quality != 85 {
		t.Errorf("default JPEG quality = %d, want 85", enc.(*JPEGEncoder).Quality)
	}
	if _, err := NewEncoder("gif", 80); err == nil {
		t.Error("NewEncoder(gif) succeeded, want error")
	}
}

func TestPNG_RoundTripLossless(t *testing.T) {
	img := testImage(64)
	data, err := (&PNGEncoder{}).Encode(img)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := DecodeImage(data, FormatPNG)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("decoded size = %dx%d, want 64x64", b.Dx(), b.Dy())
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			or, og, ob, oa := img.At(x, y).RGBA()
			dr, dg, db, da := decoded.At(x, y).RGBA()
			if or != dr || og != dg || ob != db || oa != da {
				t.Fatalf("pixel mismatch at (%d,%d)", x, y)
			}
		}
	}
}

func TestLossyFormats_RoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJPEG, FormatWebP} {
		t.Run(string(f), func(t *testing.T) {
			enc, err := NewEncoder(string(f), 90)
			if err != nil {
				t.Fatal(err)
			}
			data, err := enc.Encode(testImage(64))
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if len(data) == 0 {
				t.Fatal("Encode produced empty data")
			}
			decoded, err := DecodeImage(data, f)
			if err != nil {
				t.Fatalf("DecodeImage: %v", err)
			}
			if b := decoded.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
				t.Errorf("decoded size = %dx%d, want 64x64", b.Dx(), b.Dy())
			}
		})
	}
}

func TestDecodeImage_Errors(t *testing.T) {
	if _, err := DecodeImage([]byte("not an image"), FormatPNG); err == nil {
		t.Error("DecodeImage(garbage) succeeded")
	}
	if _, err := DecodeImage(nil, Format("tiff")); err == nil {
		t.Error("DecodeImage(tiff) succeeded")
	}
}

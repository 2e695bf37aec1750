package errmap

import (
	"image/color"
	"math"
)

// Errors are coloured on a log scale between these bounds, in meters.
const (
	minLogError = -9 // 1 nm
	maxLogError = -2 // 1 cm
)

var ramp = []color.RGBA{
	{0x30, 0x12, 0x3b, 0xff},
	{0x28, 0x6d, 0xe6, 0xff},
	{0x1a, 0xe4, 0xb6, 0xff},
	{0xa4, 0xfc, 0x3c, 0xff},
	{0xfa, 0xba, 0x39, 0xff},
	{0xe4, 0x46, 0x0a, 0xff},
	{0x7a, 0x04, 0x03, 0xff},
}

// ErrorColor maps an error in meters to an opaque colour, dark blue for
// exact results through red for a centimeter or more.
func ErrorColor(meters float64) color.RGBA {
	t := 0.0
	if meters > 0 {
		t = (math.Log10(meters) - minLogError) / (maxLogError - minLogError)
	}
	t = math.Max(0, math.Min(1, t))

	pos := t * float64(len(ramp)-1)
	i := int(pos)
	if i >= len(ramp)-1 {
		return ramp[len(ramp)-1]
	}
	f := pos - float64(i)
	a, b := ramp[i], ramp[i+1]
	return color.RGBA{
		R: lerp(a.R, b.R, f),
		G: lerp(a.G, b.G, f),
		B: lerp(a.B, b.B, f),
		A: 0xff,
	}
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

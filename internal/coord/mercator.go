package coord

import "math"

const (
	// EarthRadius is the radius of the sphere Web Mercator projects from.
	// It is the WGS84 semi-major axis, but the model is spherical.
	EarthRadius = 6378137.0
	// MaxCoordinate bounds |x| and |y| of valid EPSG:3857 coordinates.
	MaxCoordinate = 20037508.34
	// MaxLat is the largest latitude that can be projected. Its y is
	// (almost exactly) MaxCoordinate, which makes the projected world square.
	MaxLat = 85.0511288

	// fastLatLimit bounds the open interval where LatToY uses the
	// rational approximation.
	fastLatLimit = 78.0
)

func degToRad(deg float64) float64 { return deg * (math.Pi / 180.0) }
func radToDeg(rad float64) float64 { return rad * (180.0 / math.Pi) }

// InFastBand reports whether LatToY evaluates the rational approximation at
// lat. It is false everywhere in the slowmercator build.
func InFastBand(lat float64) bool {
	return !ExactLatToY && lat > -fastLatLimit && lat < fastLatLimit
}

// LonToX converts a longitude in degrees to a Web Mercator x in meters.
func LonToX(lon float64) float64 {
	return EarthRadius * degToRad(lon)
}

// LatToYExact converts a latitude in degrees to a Web Mercator y in meters
// using the closed form R * ln(tan(π/4 + φ/2)).
func LatToYExact(lat float64) float64 {
	return EarthRadius * math.Log(math.Tan(math.Pi/4+degToRad(lat)/2))
}

// XToLon converts a Web Mercator x in meters to a longitude in degrees.
func XToLon(x float64) float64 {
	return radToDeg(x) / EarthRadius
}

// YToLat converts a Web Mercator y in meters to a latitude in degrees.
func YToLat(y float64) float64 {
	return radToDeg(2*math.Atan(math.Exp(y/EarthRadius)) - math.Pi/2)
}

// LonLatToMercator projects WGS84 lon/lat (degrees) to Web Mercator x/y
// (meters).
//
// The input must satisfy lon in [-180, 180] and lat in [-MaxLat, MaxLat].
// Nothing is checked unless the package is built with the mercdebug tag;
// out-of-range input yields meaningless numbers, not an error.
func LonLatToMercator(lon, lat float64) (x, y float64) {
	checkLonLat(lon, lat)
	return LonToX(lon), LatToY(lat)
}

// MercatorToLonLat converts Web Mercator x/y (meters) back to WGS84 lon/lat
// (degrees). The inverse always uses the exact formulas.
//
// The input must satisfy |x|, |y| <= MaxCoordinate.
func MercatorToLonLat(x, y float64) (lon, lat float64) {
	checkMercator(x, y)
	return XToLon(x), YToLat(y)
}

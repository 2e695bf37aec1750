//go:build slowmercator

package coord

// ExactLatToY reports whether LatToY always evaluates the exact formula.
const ExactLatToY = true

// LatToY converts a latitude in degrees to a Web Mercator y in meters.
// This build uses the exact formula over the whole domain.
func LatToY(lat float64) float64 {
	return LatToYExact(lat)
}

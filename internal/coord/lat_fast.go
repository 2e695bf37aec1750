//go:build !slowmercator

package coord

// ExactLatToY reports whether LatToY always evaluates the exact formula.
// Build with -tags slowmercator to set it.
const ExactLatToY = false

// Coefficients of the rational approximation of ln(tan(π/4 + φ/2)) with φ
// in degrees, highest degree first. They were fitted offline and must stay
// bit-identical so output matches tiles already rendered with them.
var (
	latNum = [10]float64{
		-3.1112583378460085319e-23,
		2.0465852743943268009e-19,
		6.4905282018672673884e-18,
		-1.9685447939983315591e-14,
		-2.2022588158115104182e-13,
		5.1617537365509453239e-10,
		2.5380136069803016519e-9,
		-5.1448323697228488745e-6,
		-9.4888671473357768301e-6,
		1.7453292518154191887e-2,
	}
	latDen = [10]float64{
		-1.9741136066814230637e-22,
		-1.258514031244679556e-20,
		4.8141483273572351796e-17,
		8.6876090870176172185e-16,
		-2.3298743439377541768e-12,
		-1.9300094785736130185e-11,
		4.3251609106864178231e-8,
		1.7301944508516974048e-7,
		-3.4554675198786337842e-4,
		-5.4367203601085991108e-4,
	}
)

// LatToY converts a latitude in degrees to a Web Mercator y in meters.
//
// Inside (-78°, 78°) it evaluates a degree 10 rational polynomial instead of
// tan and log; the result stays within 5 mm of LatToYExact (the worst case,
// about 3.5 mm, is near ±76°). At and beyond ±78° the exact formula is used.
func LatToY(lat float64) float64 {
	if lat <= -fastLatLimit || lat >= fastLatLimit {
		return LatToYExact(lat)
	}

	// The numerator has no constant term, the denominator's is 1.
	var num, den float64
	for i := range latNum {
		num = (num + latNum[i]) * lat
		den = (den + latDen[i]) * lat
	}
	return EarthRadius * num / (den + 1.0)
}

//go:build mercdebug

package coord

import (
	"fmt"
	"math"
)

// MaxLat is rounded up, so its y lands about 2.6 cm past OriginShift.
const mercatorSlack = 0.05

func checkLonLat(lon, lat float64) {
	if !(lon >= -180 && lon <= 180) {
		panic(fmt.Sprintf("coord: longitude %v outside [-180, 180]", lon))
	}
	if !(lat >= -MaxLat && lat <= MaxLat) {
		panic(fmt.Sprintf("coord: latitude %v outside [-%v, %v]", lat, MaxLat, MaxLat))
	}
}

func checkMercator(x, y float64) {
	limit := OriginShift + mercatorSlack
	if !(math.Abs(x) <= limit) {
		panic(fmt.Sprintf("coord: mercator x %v outside ±%v", x, MaxCoordinate))
	}
	if !(math.Abs(y) <= limit) {
		panic(fmt.Sprintf("coord: mercator y %v outside ±%v", y, MaxCoordinate))
	}
}

package errmap

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"

	"github.com/pspoerri/webmerc/internal/coord"
)

// Metric selects what a diagnostic tile shows.
type Metric int

const (
	// MetricApprox is |LatToY - LatToYExact| in meters. Pixels outside the
	// band where the approximation is used have no value.
	MetricApprox Metric = iota
	// MetricRoundTrip is the ground distance in meters between a location
	// and MercatorToLonLat(LonLatToMercator(location)).
	MetricRoundTrip
)

// ParseMetric parses "approx" or "roundtrip".
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "approx":
		return MetricApprox, nil
	case "roundtrip":
		return MetricRoundTrip, nil
	default:
		return 0, fmt.Errorf("unknown metric %q (supported: approx, roundtrip)", s)
	}
}

func (m Metric) String() string {
	if m == MetricRoundTrip {
		return "roundtrip"
	}
	return "approx"
}

// dependsOnLon reports whether the metric can vary along a pixel row.
func (m Metric) dependsOnLon() bool { return m == MetricRoundTrip }

// Sample evaluates the metric at a WGS84 location. ok is false when the
// metric is undefined there.
func (m Metric) Sample(lon, lat float64) (meters float64, ok bool) {
	switch m {
	case MetricRoundTrip:
		x, y := coord.LonLatToMercator(lon, lat)
		gotLon, gotLat := coord.MercatorToLonLat(x, y)
		d := s2.LatLngFromDegrees(lat, lon).Distance(s2.LatLngFromDegrees(gotLat, gotLon))
		return d.Radians() * coord.EarthRadius, true
	default:
		if !coord.InFastBand(lat) {
			return 0, false
		}
		return math.Abs(coord.LatToY(lat) - coord.LatToYExact(lat)), true
	}
}

package coord

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s2"
)

// S2Projection projects s2 points and LatLngs to Web Mercator meters with
// the same fast latitude path. It has the method set of s2.Projection, but
// that interface is sealed, so S2Projection is used directly rather than
// through it.
type S2Projection struct{}

// Project converts a point on the sphere to Web Mercator meters.
func (p S2Projection) Project(pt s2.Point) r2.Point {
	return p.FromLatLng(s2.LatLngFromPoint(pt))
}

// Unproject converts Web Mercator meters to a point on the sphere.
func (p S2Projection) Unproject(pt r2.Point) s2.Point {
	return s2.PointFromLatLng(p.ToLatLng(pt))
}

// FromLatLng projects a LatLng to Web Mercator meters.
func (S2Projection) FromLatLng(ll s2.LatLng) r2.Point {
	x, y := LonLatToMercator(ll.Lng.Degrees(), ll.Lat.Degrees())
	return r2.Point{X: x, Y: y}
}

// ToLatLng returns the LatLng of a Web Mercator point.
func (S2Projection) ToLatLng(pt r2.Point) s2.LatLng {
	lon, lat := MercatorToLonLat(pt.X, pt.Y)
	return s2.LatLngFromDegrees(lat, lon)
}

// Interpolate returns the point obtained by interpolating the given
// fraction of the distance along the line from A to B.
func (S2Projection) Interpolate(f float64, a, b r2.Point) r2.Point {
	return a.Mul(1 - f).Add(b.Mul(f))
}

// WrapDistance reports the coordinate wrapping distance along each axis.
// x wraps at the antimeridian, y never wraps.
func (S2Projection) WrapDistance() r2.Point {
	return r2.Point{X: EarthCircumference, Y: 0}
}

// WrapDestination returns b shifted by whole wrap distances so that it is
// as close as possible to a.
func (p S2Projection) WrapDestination(a, b r2.Point) r2.Point {
	wrap := p.WrapDistance()
	x, y := b.X, b.Y
	if wrap.X > 0 && math.Abs(x-a.X) > 0.5*wrap.X {
		x = a.X + math.Remainder(x-a.X, wrap.X)
	}
	if wrap.Y > 0 && math.Abs(y-a.Y) > 0.5*wrap.Y {
		y = a.Y + math.Remainder(y-a.Y, wrap.Y)
	}
	return r2.Point{X: x, Y: y}
}

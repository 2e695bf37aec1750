package coord

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

var (
	// ToMercator projects a [lon, lat] point to [x, y] meters.
	ToMercator orb.Projection = MercatorProjection{}.Point

	// ToWGS84 converts an [x, y] meter point back to [lon, lat].
	ToWGS84 orb.Projection = func(p orb.Point) orb.Point {
		lon, lat := MercatorToLonLat(p.X(), p.Y())
		return orb.Point{lon, lat}
	}
)

// ProjectGeometry projects every point of g to Web Mercator. Like
// orb/project, it rewrites the points of g in place and returns it.
func ProjectGeometry(g orb.Geometry) orb.Geometry {
	return project.Geometry(g, ToMercator)
}

// UnprojectGeometry is the inverse of ProjectGeometry.
func UnprojectGeometry(g orb.Geometry) orb.Geometry {
	return project.Geometry(g, ToWGS84)
}

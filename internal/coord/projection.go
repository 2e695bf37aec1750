package coord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// ErrUnsupportedEPSG is returned by ParseEPSG for codes ForEPSG doesn't know.
var ErrUnsupportedEPSG = errors.New("unsupported EPSG code")

// Descriptor labels a coordinate reference system. It carries no behavior.
type Descriptor struct {
	epsg  int
	proj  string
	title string
}

var (
	// WebMercator describes EPSG:3857 on a sphere of EarthRadius.
	WebMercator = Descriptor{
		epsg:  3857,
		proj:  "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +wktext +no_defs",
		title: "WGS 84 / Pseudo-Mercator",
	}
	// WGS84 describes plain longitude/latitude in degrees.
	WGS84 = Descriptor{
		epsg:  4326,
		proj:  "+proj=longlat +datum=WGS84 +no_defs",
		title: "WGS 84",
	}
)

// EPSG returns the authority code.
func (d Descriptor) EPSG() int { return d.epsg }

// ProjString returns the PROJ parameter string.
func (d Descriptor) ProjString() string { return d.proj }

// Title returns the human readable CRS name.
func (d Descriptor) Title() string { return d.title }

// URN returns the OGC URN, e.g. "urn:ogc:def:crs:EPSG::3857".
func (d Descriptor) URN() string { return fmt.Sprintf("urn:ogc:def:crs:EPSG::%d", d.epsg) }

func (d Descriptor) String() string { return fmt.Sprintf("EPSG:%d", d.epsg) }

// Projection defines the interface for converting between a CRS and WGS84.
type Projection interface {
	// ToWGS84 converts CRS coordinates to WGS84 longitude/latitude (degrees).
	ToWGS84(x, y float64) (lon, lat float64)

	// FromWGS84 converts WGS84 longitude/latitude (degrees) to CRS coordinates.
	FromWGS84(lon, lat float64) (x, y float64)

	// EPSG returns the EPSG code for this projection.
	EPSG() int
}

// ForEPSG returns a Projection for the given EPSG code.
// Returns nil if the EPSG code is not supported.
func ForEPSG(epsg int) Projection {
	switch epsg {
	case 4326:
		return WGS84Identity{}
	case 3857, 900913:
		return MercatorProjection{}
	default:
		return nil
	}
}

// ParseEPSG parses "3857" or "EPSG:3857" (any case) into a supported code.
func ParseEPSG(s string) (int, error) {
	code := strings.TrimSpace(s)
	if len(code) > 5 && strings.EqualFold(code[:5], "EPSG:") {
		code = code[5:]
	}
	epsg, err := strconv.Atoi(code)
	if err != nil {
		return 0, fmt.Errorf("parsing EPSG code %q: %w", s, err)
	}
	if ForEPSG(epsg) == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedEPSG, epsg)
	}
	return epsg, nil
}

// WGS84Identity is a no-op projection for data already in EPSG:4326.
type WGS84Identity struct{}

func (WGS84Identity) ToWGS84(x, y float64) (lon, lat float64)   { return x, y }
func (WGS84Identity) FromWGS84(lon, lat float64) (x, y float64) { return lon, lat }
func (WGS84Identity) EPSG() int                                 { return WGS84.EPSG() }

// MercatorProjection projects WGS84 locations to EPSG:3857. The zero value
// is ready to use and it holds no state.
type MercatorProjection struct{}

// Project is LonLatToMercator.
func (MercatorProjection) Project(lon, lat float64) (x, y float64) {
	return LonLatToMercator(lon, lat)
}

// Point projects an orb.Point holding [lon, lat]. Its method value has the
// orb.Projection signature.
func (MercatorProjection) Point(p orb.Point) orb.Point {
	x, y := LonLatToMercator(p.Lon(), p.Lat())
	return orb.Point{x, y}
}

// Node projects the location of an OSM node.
func (MercatorProjection) Node(n *osm.Node) orb.Point {
	x, y := LonLatToMercator(n.Lon, n.Lat)
	return orb.Point{x, y}
}

// Descriptor returns WebMercator.
func (MercatorProjection) Descriptor() Descriptor { return WebMercator }

func (MercatorProjection) EPSG() int { return WebMercator.EPSG() }

func (MercatorProjection) FromWGS84(lon, lat float64) (x, y float64) {
	return LonLatToMercator(lon, lat)
}

func (MercatorProjection) ToWGS84(x, y float64) (lon, lat float64) {
	return MercatorToLonLat(x, y)
}

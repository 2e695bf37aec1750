package coord

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	// EarthCircumference is the equatorial circumference of the Web
	// Mercator sphere in meters.
	EarthCircumference = 2 * math.Pi * EarthRadius
	// OriginShift is half the earth's circumference: the exact extent of
	// the projected square on each side of the origin.
	OriginShift = EarthCircumference / 2.0
	// DefaultTileSize is the standard web map tile dimension.
	DefaultTileSize = 256
)

func tilesAtZoom(zoom int) float64 { return math.Exp2(float64(zoom)) }

// MercatorToTile returns the tile at the given zoom level containing the
// Web Mercator point (x, y). Points outside the world are clamped to the
// edge tiles.
func MercatorToTile(x, y float64, zoom int) (tx, ty int) {
	n := tilesAtZoom(zoom)
	fx := math.Floor((x + OriginShift) / EarthCircumference * n)
	fy := math.Floor((OriginShift - y) / EarthCircumference * n)

	tx = int(math.Min(math.Max(fx, 0), n-1))
	ty = int(math.Min(math.Max(fy, 0), n-1))
	return
}

// LonLatToTile converts WGS84 lon/lat to tile coordinates at the given zoom
// level. Latitudes beyond ±MaxLat land in the first or last tile row.
func LonLatToTile(lon, lat float64, zoom int) (x, y int) {
	lat = math.Max(-MaxLat, math.Min(MaxLat, lat))
	mx, my := LonLatToMercator(clampLon(lon), lat)
	return MercatorToTile(mx, my, zoom)
}

func clampLon(lon float64) float64 {
	return math.Max(-180, math.Min(180, lon))
}

// TileBound returns the Web Mercator extent of a tile in meters.
func TileBound(z, x, y int) orb.Bound {
	size := EarthCircumference / tilesAtZoom(z)
	return orb.Bound{
		Min: orb.Point{float64(x)*size - OriginShift, OriginShift - float64(y+1)*size},
		Max: orb.Point{float64(x+1)*size - OriginShift, OriginShift - float64(y)*size},
	}
}

// TileBounds returns the WGS84 bounding box of a tile at the given zoom level.
func TileBounds(z, x, y int) (minLon, minLat, maxLon, maxLat float64) {
	b := TileBound(z, x, y)
	minLon, minLat = MercatorToLonLat(b.Min.X(), b.Min.Y())
	maxLon, maxLat = MercatorToLonLat(b.Max.X(), b.Max.Y())
	return
}

// PixelToMercator converts a pixel position within a tile to Web Mercator
// meters. Pixel (0, 0) is the top-left corner of the tile.
func PixelToMercator(z, tileX, tileY, tileSize int, px, py float64) (x, y float64) {
	res := EarthCircumference / (tilesAtZoom(z) * float64(tileSize))
	x = (float64(tileX*tileSize)+px)*res - OriginShift
	y = OriginShift - (float64(tileY*tileSize)+py)*res
	return
}

// PixelToLonLat converts a pixel position within a tile to WGS84 lon/lat.
func PixelToLonLat(z, tileX, tileY, tileSize int, px, py float64) (lon, lat float64) {
	return MercatorToLonLat(PixelToMercator(z, tileX, tileY, tileSize, px, py))
}

// TilePixelCoords returns the fractional pixel coordinates within a tile
// for a given WGS84 lon/lat and tile (z,x,y), using the given tile size.
func TilePixelCoords(lon, lat float64, z, tileX, tileY, tileSize int) (px, py float64) {
	x, y := LonLatToMercator(lon, lat)
	res := EarthCircumference / (tilesAtZoom(z) * float64(tileSize))
	px = (x+OriginShift)/res - float64(tileX*tileSize)
	py = (OriginShift-y)/res - float64(tileY*tileSize)
	return
}

// ResolutionAtLat returns the ground resolution in meters/pixel at the given
// latitude and zoom level for DefaultTileSize tiles.
func ResolutionAtLat(lat float64, zoom int) float64 {
	return resolution(lat, zoom, DefaultTileSize)
}

func resolution(lat float64, zoom, tileSize int) float64 {
	return EarthCircumference * math.Cos(degToRad(lat)) / tilesAtZoom(zoom) / float64(tileSize)
}

// MaxZoomForResolution returns the highest zoom level whose ground
// resolution is still at least pixelSize meters. Non-positive sizes give 0.
func MaxZoomForResolution(pixelSize, centerLat float64, tileSize int) int {
	if pixelSize <= 0 || tileSize <= 0 {
		return 0
	}
	for z := 30; z >= 0; z-- {
		if resolution(centerLat, z, tileSize) >= pixelSize {
			return z
		}
	}
	return 0
}

// TilesInBounds returns all tile coordinates at the given zoom level that
// intersect the given WGS84 bounds.
func TilesInBounds(zoom int, minLon, minLat, maxLon, maxLat float64) [][3]int {
	minTX, minTY := LonLatToTile(minLon, maxLat, zoom) // maxLat is the top row
	maxTX, maxTY := LonLatToTile(maxLon, minLat, zoom)

	var tiles [][3]int
	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			tiles = append(tiles, [3]int{zoom, tx, ty})
		}
	}
	return tiles
}

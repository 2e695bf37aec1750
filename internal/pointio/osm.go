package pointio

import (
	"context"
	"fmt"
	"io"

	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"

	"github.com/pspoerri/webmerc/internal/coord"
	"github.com/pspoerri/webmerc/internal/tagfilter"
)

// NodeStats counts what ProjectNodes saw.
type NodeStats struct {
	Nodes   int
	Kept    int
	Skipped int // ways, relations and other objects
}

// KeepNode reports whether a node passes the filter: untagged nodes take
// the filter's default, tagged nodes need at least one accepted tag.
func KeepNode(f *tagfilter.Filter, tags osm.Tags) bool {
	if len(tags) == 0 {
		return f.Default()
	}
	return f.Any(tags)
}

// ProjectNodes reads OSM XML from r and returns the nodes that pass the
// filter as Web Mercator point features. Node tags become properties, and
// the collection is labelled with the EPSG:3857 CRS.
func ProjectNodes(ctx context.Context, r io.Reader, f *tagfilter.Filter) (*geojson.FeatureCollection, NodeStats, error) {
	var (
		proj  coord.MercatorProjection
		stats NodeStats
	)
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"crs": map[string]interface{}{
			"type":       "name",
			"properties": map[string]interface{}{"name": proj.Descriptor().URN()},
		},
	}

	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Nodes++
		if !KeepNode(f, n.Tags) {
			continue
		}

		feature := geojson.NewFeature(proj.Node(n))
		feature.ID = int64(n.ID)
		for k, v := range n.Tags.Map() {
			feature.Properties[k] = v
		}
		fc.Append(feature)
		stats.Kept++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading OSM XML: %w", err)
	}
	return fc, stats, nil
}

// Package geo holds map-support helpers: GeoJSON encoding of locations and
// small spherical geometry utilities.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/groundlog/borelog-viewer/db"
)

// FeatureCollection encodes locations as GeoJSON point features for the map
// layer. Properties carry what the map tooltip and popup need.
func FeatureCollection(locations []db.Location) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, loc := range locations {
		feat := geojson.NewFeature(orb.Point{loc.Lon, loc.Lat})
		feat.ID = loc.ID
		feat.Properties["id"] = loc.ID
		feat.Properties["ground_level"] = loc.GroundLevel
		feat.Properties["easting"] = loc.Easting
		feat.Properties["northing"] = loc.Northing
		fc.Append(feat)
	}

	return fc
}

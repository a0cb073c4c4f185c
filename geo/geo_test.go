package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundlog/borelog-viewer/db"
)

var testLocations = []db.Location{
	{ID: "BH01", GroundLevel: 50.0, Easting: 551000, Northing: 180000, Lat: 51.50, Lon: 0.17},
	{ID: "BH02", GroundLevel: 48.5, Easting: 552000, Northing: 180500, Lat: 51.504, Lon: 0.185},
	{ID: "BH03", GroundLevel: 46.0, Easting: 551500, Northing: 181000, Lat: 51.509, Lon: 0.178},
}

func TestFeatureCollection(t *testing.T) {
	fc := FeatureCollection(testLocations)
	require.Len(t, fc.Features, 3)

	feat := fc.Features[0]
	assert.Equal(t, "BH01", feat.ID)
	assert.Equal(t, "BH01", feat.Properties["id"])
	assert.Equal(t, 50.0, feat.Properties["ground_level"])

	// GeoJSON positions are lon, lat.
	point := feat.Point()
	assert.InDelta(t, 0.17, point[0], 1e-9)
	assert.InDelta(t, 51.50, point[1], 1e-9)
}

func TestFeatureCollectionMarshals(t *testing.T) {
	out, err := json.Marshal(FeatureCollection(testLocations))
	require.NoError(t, err)

	assert.Contains(t, string(out), `"type":"FeatureCollection"`)
	assert.Contains(t, string(out), `"BH02"`)
}

func TestMeanCenter(t *testing.T) {
	lat, lon := MeanCenter(testLocations)

	assert.InDelta(t, 51.5043, lat, 1e-3)
	assert.InDelta(t, 0.1777, lon, 1e-3)

	lat, lon = MeanCenter(nil)
	assert.Zero(t, lat)
	assert.Zero(t, lon)
}

func TestDistance(t *testing.T) {
	// BH01 and BH02 are 1000 m east and 500 m north of each other on the
	// grid, so about 1118 m apart.
	d := Distance(testLocations[0].Lat, testLocations[0].Lon, testLocations[1].Lat, testLocations[1].Lon)
	assert.InDelta(t, 1118, d, 120)

	assert.Zero(t, Distance(51.5, 0.17, 51.5, 0.17))
}

func TestNearest(t *testing.T) {
	loc, d := Nearest(testLocations, 51.5095, 0.1785)
	require.NotNil(t, loc)
	assert.Equal(t, "BH03", loc.ID)
	assert.Less(t, d, 100.0)

	loc, _ = Nearest(nil, 51.5, 0.17)
	assert.Nil(t, loc)
}

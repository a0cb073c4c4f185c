package db

import (
	"context"
	"sort"

	"github.com/groundlog/borelog-viewer/osgrid"
)

// sampleLocations is the built-in survey: three boreholes over the Harwich
// Formation, grid references in the TQ London square. Stands in for real AGS
// data until an external source is wired to the sqlite or postgres provider.
var sampleLocations = []Location{
	{ID: "BH01", GroundLevel: 50.0, Easting: 551000, Northing: 180000},
	{ID: "BH02", GroundLevel: 48.5, Easting: 552000, Northing: 180500},
	{ID: "BH03", GroundLevel: 46.0, Easting: 551500, Northing: 181000},
}

var sampleIntervals = []LithologyInterval{
	{LocationID: "BH01", TopDepth: 0, BaseDepth: 1, GeologyCode: "HWH_CLAY", GeologyDescription: "Harwich Formation silty clay"},
	{LocationID: "BH01", TopDepth: 1, BaseDepth: 3, GeologyCode: "HWH_SILTSTONE", GeologyDescription: "Harwich siltstone"},
	{LocationID: "BH01", TopDepth: 3, BaseDepth: 5, GeologyCode: "LONDON_CLAY", GeologyDescription: "London Clay very stiff"},
	{LocationID: "BH02", TopDepth: 0, BaseDepth: 2, GeologyCode: "HWH_CLAY", GeologyDescription: "Harwich Formation silty clay"},
	{LocationID: "BH02", TopDepth: 2, BaseDepth: 3.5, GeologyCode: "LONDON_CLAY", GeologyDescription: "London Clay sandy"},
	{LocationID: "BH03", TopDepth: 0, BaseDepth: 1.2, GeologyCode: "HWH_CLAY", GeologyDescription: "Harwich Formation silty clay"},
	{LocationID: "BH03", TopDepth: 1.2, BaseDepth: 4.0, GeologyCode: "LONDON_CLAY", GeologyDescription: "London Clay laminated"},
}

var sampleFormations = map[string]string{
	"HWH_CLAY":      "#e377c2",
	"HWH_SILTSTONE": "#17becf",
	"LONDON_CLAY":   "#bcbd22",
}

// MemoryStore serves a fixed in-memory survey. It is the default provider so
// the service runs with no environment at all.
type MemoryStore struct {
	locations  []Location
	intervals  []LithologyInterval
	formations map[string]string
}

// NewMemoryStore builds a store over the built-in sample survey.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithData(sampleLocations, sampleIntervals, sampleFormations)
}

// NewMemoryStoreWithData builds a store over caller-supplied tables. Lat/Lon
// are derived from the grid reference once, here.
func NewMemoryStoreWithData(locations []Location, intervals []LithologyInterval, formations map[string]string) *MemoryStore {
	locs := make([]Location, len(locations))
	copy(locs, locations)
	for i := range locs {
		locs[i].Lat, locs[i].Lon = osgrid.ToLatLon(locs[i].Easting, locs[i].Northing)
	}

	ivs := make([]LithologyInterval, len(intervals))
	copy(ivs, intervals)

	colors := make(map[string]string, len(formations))
	for code, color := range formations {
		colors[code] = color
	}

	return &MemoryStore{locations: locs, intervals: ivs, formations: colors}
}

// ListLocations returns all locations.
func (m *MemoryStore) ListLocations(ctx context.Context) ([]Location, error) {
	out := make([]Location, len(m.locations))
	copy(out, m.locations)
	return out, nil
}

// GetLocation returns one location, or nil when the id is unknown.
func (m *MemoryStore) GetLocation(ctx context.Context, id string) (*Location, error) {
	for _, loc := range m.locations {
		if loc.ID == id {
			found := loc
			return &found, nil
		}
	}
	return nil, nil
}

// ListIntervals returns the lithology intervals for one location, ordered by
// top depth ascending.
func (m *MemoryStore) ListIntervals(ctx context.Context, locationID string) ([]LithologyInterval, error) {
	out := make([]LithologyInterval, 0)
	for _, iv := range m.intervals {
		if iv.LocationID == locationID {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TopDepth < out[j].TopDepth })
	return out, nil
}

// FormationColors returns the geology code to display color mapping.
func (m *MemoryStore) FormationColors(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m.formations))
	for code, color := range m.formations {
		out[code] = color
	}
	return out, nil
}

// Close is a no-op for the memory provider.
func (m *MemoryStore) Close() {}

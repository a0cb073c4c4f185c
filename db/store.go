package db

import (
	"context"
	"fmt"

	"github.com/groundlog/borelog-viewer/config"
)

// Location represents a borehole (exploratory hole) record. Lat and Lon are
// derived from the grid reference on the way out of the store.
type Location struct {
	ID          string  `json:"id"`
	GroundLevel float64 `json:"ground_level"`
	Easting     float64 `json:"easting"`
	Northing    float64 `json:"northing"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// LithologyInterval represents one logged depth interval at a location.
// Depths are metres below ground level, base below top. Contiguity between
// consecutive intervals is expected but not enforced.
type LithologyInterval struct {
	LocationID         string  `json:"location_id"`
	TopDepth           float64 `json:"top_depth"`
	BaseDepth          float64 `json:"base_depth"`
	GeologyCode        string  `json:"geology_code"`
	GeologyDescription string  `json:"geology_description"`
}

// Store is the data-access seam between the API and whatever holds the
// survey data. GetLocation returns (nil, nil) for an unknown id.
// ListIntervals returns intervals ordered by top depth ascending.
type Store interface {
	ListLocations(ctx context.Context) ([]Location, error)
	GetLocation(ctx context.Context, id string) (*Location, error)
	ListIntervals(ctx context.Context, locationID string) ([]LithologyInterval, error)
	FormationColors(ctx context.Context) (map[string]string, error)
	Close()
}

// Open constructs the store named by the configuration.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Provider {
	case config.ProviderMemory:
		return NewMemoryStore(), nil
	case config.ProviderSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case config.ProviderPostgres:
		return NewPostgresStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown data provider: %s", cfg.Provider)
	}
}

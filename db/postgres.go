package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groundlog/borelog-viewer/osgrid"
)

// PostgresStore wraps database access helpers over a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var postgresSchemaSQL = []string{
	`CREATE SCHEMA IF NOT EXISTS borelog`,
	`CREATE TABLE IF NOT EXISTS borelog.locations (
        id text PRIMARY KEY,
        ground_level double precision NOT NULL,
        easting double precision NOT NULL,
        northing double precision NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS borelog.lithology (
        location_id text NOT NULL REFERENCES borelog.locations(id),
        top_depth double precision NOT NULL,
        base_depth double precision NOT NULL,
        geology_code text NOT NULL,
        geology_description text NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS borelog.formations (
        geology_code text PRIMARY KEY,
        color text NOT NULL
    )`,
}

// NewPostgresStore creates a store backed by a pgx pool and ensures the
// schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	for _, stmt := range postgresSchemaSQL {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool resources.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const listLocationsSQL = `
    SELECT id, ground_level, easting, northing
    FROM borelog.locations
    ORDER BY id
`

// ListLocations returns all locations with derived lat/lon.
func (s *PostgresStore) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := s.pool.Query(ctx, listLocationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]Location, 0)
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.GroundLevel, &loc.Easting, &loc.Northing); err != nil {
			return nil, err
		}
		loc.Lat, loc.Lon = osgrid.ToLatLon(loc.Easting, loc.Northing)
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

const getLocationSQL = `
    SELECT id, ground_level, easting, northing
    FROM borelog.locations
    WHERE id = $1
`

// GetLocation returns one location, or nil when the id is unknown.
func (s *PostgresStore) GetLocation(ctx context.Context, id string) (*Location, error) {
	var loc Location
	err := s.pool.QueryRow(ctx, getLocationSQL, id).Scan(&loc.ID, &loc.GroundLevel, &loc.Easting, &loc.Northing)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	loc.Lat, loc.Lon = osgrid.ToLatLon(loc.Easting, loc.Northing)
	return &loc, nil
}

const listIntervalsSQL = `
    SELECT location_id, top_depth, base_depth, geology_code, geology_description
    FROM borelog.lithology
    WHERE location_id = $1
    ORDER BY top_depth
`

// ListIntervals returns the lithology intervals for one location.
func (s *PostgresStore) ListIntervals(ctx context.Context, locationID string) ([]LithologyInterval, error) {
	rows, err := s.pool.Query(ctx, listIntervalsSQL, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	intervals := make([]LithologyInterval, 0)
	for rows.Next() {
		var iv LithologyInterval
		if err := rows.Scan(&iv.LocationID, &iv.TopDepth, &iv.BaseDepth, &iv.GeologyCode, &iv.GeologyDescription); err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

const listFormationsSQL = `
    SELECT geology_code, color
    FROM borelog.formations
`

// FormationColors returns the geology code to display color mapping.
func (s *PostgresStore) FormationColors(ctx context.Context) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, listFormationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colors := make(map[string]string)
	for rows.Next() {
		var code, color string
		if err := rows.Scan(&code, &color); err != nil {
			return nil, err
		}
		colors[code] = color
	}
	return colors, rows.Err()
}

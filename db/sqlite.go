package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/groundlog/borelog-viewer/osgrid"
)

// SQLiteStore serves survey data from a local sqlite file, for single-host
// deployments where postgres is overkill.
type SQLiteStore struct {
	db *sql.DB
}

var sqliteSchemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS locations (
        id TEXT PRIMARY KEY,
        ground_level REAL NOT NULL,
        easting REAL NOT NULL,
        northing REAL NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS lithology (
        location_id TEXT NOT NULL REFERENCES locations(id),
        top_depth REAL NOT NULL,
        base_depth REAL NOT NULL,
        geology_code TEXT NOT NULL,
        geology_description TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS formations (
        geology_code TEXT PRIMARY KEY,
        color TEXT NOT NULL
    )`,
}

// NewSQLiteStore opens (or creates) the database file and ensures the schema
// exists. Missing parent directories are created, so the default
// ./data/borelog.db path works on a fresh checkout.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	for _, stmt := range sqliteSchemaSQL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database file.
func (s *SQLiteStore) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// ListLocations returns all locations with derived lat/lon.
func (s *SQLiteStore) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, ground_level, easting, northing FROM locations ORDER BY id")
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

// GetLocation returns one location, or nil when the id is unknown.
func (s *SQLiteStore) GetLocation(ctx context.Context, id string) (*Location, error) {
	var loc Location
	err := s.db.QueryRowContext(ctx,
		"SELECT id, ground_level, easting, northing FROM locations WHERE id = ?", id).
		Scan(&loc.ID, &loc.GroundLevel, &loc.Easting, &loc.Northing)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	loc.Lat, loc.Lon = osgrid.ToLatLon(loc.Easting, loc.Northing)
	return &loc, nil
}

// ListIntervals returns the lithology intervals for one location.
func (s *SQLiteStore) ListIntervals(ctx context.Context, locationID string) ([]LithologyInterval, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT location_id, top_depth, base_depth, geology_code, geology_description FROM lithology WHERE location_id = ? ORDER BY top_depth", locationID)
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

// FormationColors returns the geology code to display color mapping.
func (s *SQLiteStore) FormationColors(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT geology_code, color FROM formations")
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

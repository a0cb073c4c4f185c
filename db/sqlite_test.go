package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "borelog_test.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func seedTestSQLite(t *testing.T, store *SQLiteStore) {
	t.Helper()
	_, err := store.db.Exec(
		"INSERT INTO locations(id, ground_level, easting, northing) VALUES (?, ?, ?, ?), (?, ?, ?, ?)",
		"BH01", 50.0, 551000.0, 180000.0,
		"BH04", 44.0, 552500.0, 179500.0)
	require.NoError(t, err)

	_, err = store.db.Exec(
		"INSERT INTO lithology(location_id, top_depth, base_depth, geology_code, geology_description) VALUES (?, ?, ?, ?, ?), (?, ?, ?, ?, ?)",
		"BH01", 1.0, 3.0, "HWH_SILTSTONE", "Harwich siltstone",
		"BH01", 0.0, 1.0, "HWH_CLAY", "Harwich Formation silty clay")
	require.NoError(t, err)

	_, err = store.db.Exec(
		"INSERT INTO formations(geology_code, color) VALUES (?, ?)",
		"HWH_CLAY", "#e377c2")
	require.NoError(t, err)
}

func TestSQLiteStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "borelog.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	locations, err := store.ListLocations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestSQLiteStoreEmpty(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()

	locations, err := store.ListLocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, locations)

	loc, err := store.GetLocation(ctx, "BH01")
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := openTestSQLite(t)
	seedTestSQLite(t, store)
	ctx := context.Background()

	locations, err := store.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, "BH01", locations[0].ID)
	assert.InDelta(t, 51.5, locations[0].Lat, 0.1)
	assert.InDelta(t, 0.17, locations[0].Lon, 0.1)

	loc, err := store.GetLocation(ctx, "BH04")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, 44.0, loc.GroundLevel)
}

func TestSQLiteStoreIntervalsOrdered(t *testing.T) {
	store := openTestSQLite(t)
	seedTestSQLite(t, store)

	intervals, err := store.ListIntervals(context.Background(), "BH01")
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	// Inserted out of order; the store returns top depth ascending.
	assert.Equal(t, "HWH_CLAY", intervals[0].GeologyCode)
	assert.Equal(t, "HWH_SILTSTONE", intervals[1].GeologyCode)
}

func TestSQLiteStoreFormationColors(t *testing.T) {
	store := openTestSQLite(t)
	seedTestSQLite(t, store)

	colors, err := store.FormationColors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"HWH_CLAY": "#e377c2"}, colors)
}

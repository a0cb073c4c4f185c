package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLocations(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	locations, err := store.ListLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 3)

	for _, loc := range locations {
		assert.GreaterOrEqual(t, loc.Lat, 49.0, "%s latitude", loc.ID)
		assert.LessOrEqual(t, loc.Lat, 61.0, "%s latitude", loc.ID)
		assert.GreaterOrEqual(t, loc.Lon, -8.0, "%s longitude", loc.ID)
		assert.LessOrEqual(t, loc.Lon, 2.0, "%s longitude", loc.ID)
	}
}

func TestMemoryStoreGetLocation(t *testing.T) {
	store := NewMemoryStore()

	loc, err := store.GetLocation(context.Background(), "BH01")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, 50.0, loc.GroundLevel)

	missing, err := store.GetLocation(context.Background(), "BH99")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreIntervalsSortedAndContiguous(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	locations, err := store.ListLocations(ctx)
	require.NoError(t, err)

	for _, loc := range locations {
		intervals, err := store.ListIntervals(ctx, loc.ID)
		require.NoError(t, err)
		require.NotEmpty(t, intervals, "sample set logs every borehole")

		for i, iv := range intervals {
			assert.Equal(t, loc.ID, iv.LocationID)
			assert.Greater(t, iv.BaseDepth, iv.TopDepth)
			if i > 0 {
				assert.GreaterOrEqual(t, iv.TopDepth, intervals[i-1].TopDepth, "sorted by top depth")
				// The sample survey happens to be contiguous; this is a
				// property of the data, not a store guarantee.
				assert.InDelta(t, intervals[i-1].BaseDepth, iv.TopDepth, 1e-9)
			}
		}
	}
}

func TestMemoryStoreIntervalsUnknownLocation(t *testing.T) {
	store := NewMemoryStore()

	intervals, err := store.ListIntervals(context.Background(), "BH99")
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestMemoryStoreFormationColors(t *testing.T) {
	store := NewMemoryStore()

	colors, err := store.FormationColors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "#e377c2", colors["HWH_CLAY"])
	assert.Equal(t, "#17becf", colors["HWH_SILTSTONE"])
	assert.Equal(t, "#bcbd22", colors["LONDON_CLAY"])
}

func TestMemoryStoreIntervalReferencesResolve(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, iv := range sampleIntervals {
		loc, err := store.GetLocation(ctx, iv.LocationID)
		require.NoError(t, err)
		assert.NotNil(t, loc, "interval references %s", iv.LocationID)
	}
}

package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/groundlog/borelog-viewer/db"
	"github.com/groundlog/borelog-viewer/geo"
	"github.com/groundlog/borelog-viewer/litho"
	"github.com/groundlog/borelog-viewer/web"
)

const defaultMapZoom = 13

// handleIndex serves the embedded single-page UI.
func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

// handleListLocations returns all borehole locations with derived lat/lon.
// GET /api/v1/locations
func (s *Server) handleListLocations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": locations,
		"meta": gin.H{"count": len(locations)},
	})
}

// handleLocationsGeoJSON returns the locations as a GeoJSON
// FeatureCollection for the map layer.
// GET /api/v1/locations.geojson
func (s *Server) handleLocationsGeoJSON(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, geo.FeatureCollection(locations))
}

// handleViewport returns the map auto-center (mean of all locations) and a
// default zoom.
// GET /api/v1/viewport
func (s *Server) handleViewport(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(locations) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no locations available"})
		return
	}

	lat, lon := geo.MeanCenter(locations)
	c.JSON(http.StatusOK, gin.H{"lat": lat, "lon": lon, "zoom": defaultMapZoom})
}

// handleGetLocation returns one location.
// GET /api/v1/locations/:id
func (s *Server) handleGetLocation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location id is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	location, err := s.store.GetLocation(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": location})
}

// handleListIntervals returns the lithology intervals for one location,
// sorted by top depth, with derived top/base elevations. A borehole with no
// logged lithology yields an empty list, not an error.
// GET /api/v1/locations/:id/intervals
func (s *Server) handleListIntervals(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	location, err := s.store.GetLocation(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}

	column, ok := s.buildColumn(ctx, c, *location)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location_id":  location.ID,
		"ground_level": location.GroundLevel,
		"data":         column.Segments,
		"meta":         gin.H{"count": len(column.Segments)},
	})
}

// handleColumnSVG returns the rendered lithology column.
// GET /api/v1/locations/:id/column.svg
func (s *Server) handleColumnSVG(c *gin.Context) {
	column, ok := s.columnForRender(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", s.renderer.ColumnSVG(*column))
}

// handleColumnPNG returns the rasterized lithology column.
// GET /api/v1/locations/:id/column.png
func (s *Server) handleColumnPNG(c *gin.Context) {
	column, ok := s.columnForRender(c)
	if !ok {
		return
	}

	out, err := s.renderer.ColumnPNG(*column)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", out)
}

// handleNearestLocation resolves the borehole closest to a point, so a map
// click can drive the selection control.
// GET /api/v1/locations/nearest?lat=..&lon=..
func (s *Server) handleNearestLocation(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lon"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	nearest, distance := geo.Nearest(locations, lat, lon)
	if nearest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no locations available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": nearest, "distance_m": distance})
}

// handleFormations returns the formation color map.
// GET /api/v1/formations
func (s *Server) handleFormations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	colors, err := s.store.FormationColors(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": colors, "default": litho.DefaultColor})
}

// columnForRender looks up the location and builds its column, writing the
// 404 empty state when the borehole has no lithology rows.
func (s *Server) columnForRender(c *gin.Context) (*litho.Column, bool) {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	location, err := s.store.GetLocation(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return nil, false
	}

	column, ok := s.buildColumn(ctx, c, *location)
	if !ok {
		return nil, false
	}
	if len(column.Segments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no lithology data available for this location"})
		return nil, false
	}
	return column, true
}

// buildColumn fetches intervals and formation colors and derives the column.
func (s *Server) buildColumn(ctx context.Context, c *gin.Context, location db.Location) (*litho.Column, bool) {
	intervals, err := s.store.ListIntervals(ctx, location.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	colors, err := s.store.FormationColors(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	column := litho.BuildColumn(location, intervals, colors)
	return &column, true
}

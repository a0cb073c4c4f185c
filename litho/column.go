// Package litho models and renders vertical lithology columns.
package litho

import (
	"sort"

	"github.com/groundlog/borelog-viewer/db"
)

// DefaultColor is used for geology codes absent from the formation map.
const DefaultColor = "#cccccc"

// axisMargin is the elevation padding above ground level and below the
// deepest base, in metres.
const axisMargin = 0.5

// Segment is one lithology interval with its derived elevations and display
// color. Elevations are metres relative to the vertical datum (m OD).
type Segment struct {
	TopDepth           float64 `json:"top_depth"`
	BaseDepth          float64 `json:"base_depth"`
	TopElevation       float64 `json:"top_elevation"`
	BaseElevation      float64 `json:"base_elevation"`
	GeologyCode        string  `json:"geology_code"`
	GeologyDescription string  `json:"geology_description"`
	Color              string  `json:"color"`
}

// Column is a renderable lithology column for one location. MaxElevation and
// MinElevation bound the vertical axis, ground at the top.
type Column struct {
	LocationID   string    `json:"location_id"`
	GroundLevel  float64   `json:"ground_level"`
	Segments     []Segment `json:"segments"`
	MinElevation float64   `json:"min_elevation"`
	MaxElevation float64   `json:"max_elevation"`
}

// BuildColumn derives a column from a location's intervals: sorted by top
// depth ascending, elevations computed as ground level minus depth, colored
// by formation. Intervals are drawn as given; gaps or overlaps in the source
// data are not corrected.
func BuildColumn(loc db.Location, intervals []db.LithologyInterval, colors map[string]string) Column {
	sorted := make([]db.LithologyInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TopDepth < sorted[j].TopDepth })

	col := Column{
		LocationID:   loc.ID,
		GroundLevel:  loc.GroundLevel,
		Segments:     make([]Segment, 0, len(sorted)),
		MinElevation: loc.GroundLevel - axisMargin,
		MaxElevation: loc.GroundLevel + axisMargin,
	}

	for _, iv := range sorted {
		color, ok := colors[iv.GeologyCode]
		if !ok {
			color = DefaultColor
		}
		seg := Segment{
			TopDepth:           iv.TopDepth,
			BaseDepth:          iv.BaseDepth,
			TopElevation:       loc.GroundLevel - iv.TopDepth,
			BaseElevation:      loc.GroundLevel - iv.BaseDepth,
			GeologyCode:        iv.GeologyCode,
			GeologyDescription: iv.GeologyDescription,
			Color:              color,
		}
		if seg.BaseElevation-axisMargin < col.MinElevation {
			col.MinElevation = seg.BaseElevation - axisMargin
		}
		col.Segments = append(col.Segments, seg)
	}

	return col
}

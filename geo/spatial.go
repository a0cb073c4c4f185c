package geo

import (
	"github.com/golang/geo/s2"

	"github.com/groundlog/borelog-viewer/db"
)

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between two points in metres.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}

// MeanCenter returns the arithmetic mean latitude/longitude of the
// locations, the map's auto-center. Returns zeros for an empty slice.
func MeanCenter(locations []db.Location) (lat, lon float64) {
	if len(locations) == 0 {
		return 0, 0
	}
	for _, loc := range locations {
		lat += loc.Lat
		lon += loc.Lon
	}
	n := float64(len(locations))
	return lat / n, lon / n
}

// Nearest returns the location closest to the given point and its distance
// in metres, or nil for an empty slice.
func Nearest(locations []db.Location, lat, lon float64) (*db.Location, float64) {
	var best *db.Location
	bestDist := 0.0
	for i := range locations {
		d := Distance(lat, lon, locations[i].Lat, locations[i].Lon)
		if best == nil || d < bestDist {
			best = &locations[i]
			bestDist = d
		}
	}
	return best, bestDist
}

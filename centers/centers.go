package centers

import (
	"sort"

	"github.com/golang/geo/s2"
)

// earthRadiusKm converts angular distance on the unit sphere to kilometers.
const earthRadiusKm = 6371.0

// Center is one entry in the static recycling-center directory.
type Center struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Phone         string   `json:"phone,omitempty"`
	Hours         string   `json:"hours"`
	AcceptedItems []string `json:"accepted_items"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	DistanceKm    float64  `json:"distance_km,omitempty"`
}

// Directory holds the static center list and answers filtered queries.
type Directory struct {
	centers []Center
}

// NewDirectory returns the built-in directory.
func NewDirectory() *Directory {
	return &Directory{centers: recyclingCenters}
}

// Filter returns centers matching the given state and type. Empty arguments
// match everything.
func (d *Directory) Filter(state, centerType string) []Center {
	var result []Center
	for _, c := range d.centers {
		if state != "" && c.State != state {
			continue
		}
		if centerType != "" && c.Type != centerType {
			continue
		}
		result = append(result, c)
	}
	return result
}

// Nearest filters like Filter and sorts the result by great-circle distance
// from the given point, filling DistanceKm on each entry.
func (d *Directory) Nearest(state, centerType string, lat, lng float64) []Center {
	result := d.Filter(state, centerType)
	origin := s2.LatLngFromDegrees(lat, lng)

	for i := range result {
		point := s2.LatLngFromDegrees(result[i].Latitude, result[i].Longitude)
		result[i].DistanceKm = origin.Distance(point).Radians() * earthRadiusKm
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	return result
}

// States lists the states present in the directory, sorted.
func (d *Directory) States() []string {
	seen := make(map[string]bool)
	var states []string
	for _, c := range d.centers {
		if !seen[c.State] {
			seen[c.State] = true
			states = append(states, c.State)
		}
	}
	sort.Strings(states)
	return states
}

package library

import (
	"bookfinder/internal/platform/upstream"
)

// ErrNotFound is returned when no library in the snapshot carries a name.
var ErrNotFound = upstream.ErrNotFound

// Geocode is a WGS84 point.
type Geocode struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Library is one public library branch. SystemID names the municipal system
// that answers holding checks; LibKey names the branch within that system.
type Library struct {
	Name       string  `json:"name"`
	SystemID   string  `json:"system_id"`
	SystemName string  `json:"system_name"`
	LibKey     string  `json:"lib_key"`
	Category   string  `json:"category"`
	URL        string  `json:"url"`
	Address    string  `json:"address"`
	Prefecture string  `json:"prefecture"`
	City       string  `json:"city"`
	Postcode   string  `json:"postcode"`
	Tel        string  `json:"tel"`
	Geocode    Geocode `json:"geocode"`
	// DistanceMeters is only set on proximity results.
	DistanceMeters *uint32 `json:"distance_m,omitempty"`
}

// Chunk is one page of libraries.
type Chunk struct {
	Libraries  []Library `json:"libraries"`
	TotalCount int       `json:"total_count"`
}

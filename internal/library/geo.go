package library

import (
	"math"
)

const earthRadiusMeters = 6371 * 1000

// haversineMeters returns the great circle distance between two points.
func haversineMeters(a, b Geocode) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// distanceKey truncates to whole meters so that near-equal distances tie.
func distanceKey(a, b Geocode) uint32 {
	d := haversineMeters(a, b)
	if d >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(d)
}

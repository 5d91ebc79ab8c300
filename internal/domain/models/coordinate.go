package models

import "fmt"

// Coordinate is an immutable latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Key returns a stable cache key at 5 decimals (~1m) so floating point noise
// does not explode the reverse-geocode cache.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}

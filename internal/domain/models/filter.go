package models

// TripFilter holds search predicates. Every field is optional; a zero value
// means "match any".
type TripFilter struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	MinSeats    int    `json:"minSeats"`
	TripTime    string `json:"tripTime"` // exact HH:MM when set
	TripDate    string `json:"tripDate"` // exact YYYY-MM-DD when set
}

// IsEmpty reports whether no predicate is set at all.
func (f TripFilter) IsEmpty() bool {
	return f.Origin == "" && f.Destination == "" && f.MinSeats <= 0 &&
		f.TripTime == "" && f.TripDate == ""
}

package models

// TripStatus is the driver-facing lifecycle of a posted trip.
type TripStatus string

const (
	StatusAvailable   TripStatus = "available"
	StatusUnavailable TripStatus = "unavailable"
	StatusCancelled   TripStatus = "cancelled"
	// StatusCompleted exists for time-based closing; nothing in the core sets it.
	StatusCompleted TripStatus = "completed"
)

// PickupPoint is one passenger pickup on a trip route. Coord stays nil when
// geocoding could not resolve the address; the UI simply renders no marker.
type PickupPoint struct {
	Address       string      `json:"address"`
	Coord         *Coordinate `json:"coord,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	ReservationID int64       `json:"reservationId,omitempty"`
}

// Trip is a driver-posted ride offer. Available never exceeds Capacity; it
// only moves through reservation commits and cancellations.
type Trip struct {
	ID          int64         `json:"id"`
	DriverID    int64         `json:"driverId"`
	VehicleCode string        `json:"vehicleCode,omitempty"`
	Origin      string        `json:"origin"`
	OriginCoord *Coordinate   `json:"originCoord,omitempty"`
	Destination string        `json:"destination"`
	DestCoord   *Coordinate   `json:"destCoord,omitempty"`
	TripDate    string        `json:"tripDate"` // YYYY-MM-DD
	TripTime    string        `json:"tripTime"` // HH:MM
	Capacity    int           `json:"capacity"`
	Available   int           `json:"available"`
	Fare        int64         `json:"fare"`
	Route       string        `json:"route,omitempty"`
	Pickups     []PickupPoint `json:"pickups"`
	Status      TripStatus    `json:"status"`
}

// Clone returns a deep copy so catalog snapshots never alias live state.
func (t Trip) Clone() Trip {
	out := t
	if t.OriginCoord != nil {
		c := *t.OriginCoord
		out.OriginCoord = &c
	}
	if t.DestCoord != nil {
		c := *t.DestCoord
		out.DestCoord = &c
	}
	if t.Pickups != nil {
		out.Pickups = make([]PickupPoint, len(t.Pickups))
		for i, p := range t.Pickups {
			cp := p
			if p.Coord != nil {
				c := *p.Coord
				cp.Coord = &c
			}
			out.Pickups[i] = cp
		}
	}
	return out
}

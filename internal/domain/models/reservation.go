package models

import "time"

// ReservationStatus tracks a passenger claim on trip seats.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
	// ReservationVoid marks claims orphaned by a driver cancelling the whole trip.
	ReservationVoid ReservationStatus = "void"
)

// Reservation is a passenger's claim on Seats seats of a trip, one pickup
// point per seat.
type Reservation struct {
	ID        int64             `json:"id"`
	TripID    int64             `json:"tripId"`
	RiderID   int64             `json:"riderId"`
	Seats     int               `json:"seats"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

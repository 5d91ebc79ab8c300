package services

import (
	"context"
	"fmt"

	"carpool/internal/booking"
	"carpool/internal/catalog"
	"carpool/internal/domain/models"
	"carpool/internal/utils"
)

// ReservationService fronts the booking manager for authenticated passengers.
type ReservationService struct {
	Catalog   *catalog.Catalog
	Bookings  *booking.Manager
	RequestID string
}

type ReserveInput struct {
	Seats   int                  `json:"seats"`
	Pickups []models.PickupPoint `json:"pickups"`
}

func (s ReservationService) Reserve(ctx context.Context, riderID, tripID int64, in ReserveInput) (models.Reservation, error) {
	id, err := s.Bookings.Reserve(ctx, tripID, riderID, in.Seats, in.Pickups)
	if err != nil {
		return models.Reservation{}, err
	}
	utils.LogEvent(s.RequestID, "reservation", "reserve",
		fmt.Sprintf("trip_id=%d rider_id=%d seats=%d reservation_id=%d", tripID, riderID, in.Seats, id))
	return s.Bookings.GetReservation(id)
}

// Cancel reverses a reservation's seat decrement and pickup points. Any
// authenticated caller may cancel; identity checks stay with the session guard.
func (s ReservationService) Cancel(tripID, reservationID int64) error {
	if err := s.Bookings.CancelReservation(tripID, reservationID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "reservation", "cancel",
		fmt.Sprintf("trip_id=%d reservation_id=%d", tripID, reservationID))
	return nil
}

func (s ReservationService) Get(reservationID int64) (models.Reservation, error) {
	return s.Bookings.GetReservation(reservationID)
}

func (s ReservationService) ListForRider(riderID int64) []models.Reservation {
	return s.Bookings.ListByRider(riderID)
}

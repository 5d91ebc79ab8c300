package services

import (
	"context"
	"fmt"
	"strings"

	"carpool/internal/booking"
	"carpool/internal/catalog"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/matching"
	"carpool/internal/utils"
)

// EndpointResolver is the slice of the geocode resolver trip creation needs.
type EndpointResolver interface {
	ResolveForward(ctx context.Context, address string) (models.Coordinate, error)
}

// TripService wraps the catalog with validation, endpoint resolution and the
// driver-ownership rule for mutating operations.
type TripService struct {
	Catalog   *catalog.Catalog
	Resolver  EndpointResolver
	Bookings  *booking.Manager
	RequestID string
}

type CreateTripInput struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	TripDate    string `json:"tripDate"`
	TripTime    string `json:"tripTime"`
	Capacity    int    `json:"capacity"`
	Fare        int64  `json:"fare"`
	VehicleCode string `json:"vehicleCode"`
	Route       string `json:"route"`
}

// CreateTrip validates and inserts a trip. Endpoint geocoding is best-effort:
// an unresolved address leaves the coordinate nil and never blocks creation.
func (s TripService) CreateTrip(ctx context.Context, driverID int64, in CreateTripInput) (models.Trip, error) {
	in.Origin = utils.NormalizeSpace(in.Origin)
	in.Destination = utils.NormalizeSpace(in.Destination)

	if in.Origin == "" {
		return models.Trip{}, domain.ValidationError{Field: "origin", Msg: "required"}
	}
	if in.Destination == "" {
		return models.Trip{}, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if !utils.ValidDate(in.TripDate) {
		return models.Trip{}, domain.ValidationError{Field: "tripDate", Msg: "expected YYYY-MM-DD"}
	}
	if !utils.ValidTimeOfDay(in.TripTime) {
		return models.Trip{}, domain.ValidationError{Field: "tripTime", Msg: "expected HH:MM"}
	}
	if in.Capacity < 1 {
		return models.Trip{}, domain.ValidationError{Field: "capacity", Msg: "must be at least 1"}
	}
	if in.Fare < 0 {
		return models.Trip{}, domain.ValidationError{Field: "fare", Msg: "must not be negative"}
	}

	trip := models.Trip{
		DriverID:    driverID,
		VehicleCode: strings.TrimSpace(in.VehicleCode),
		Origin:      in.Origin,
		Destination: in.Destination,
		TripDate:    strings.TrimSpace(in.TripDate),
		TripTime:    strings.TrimSpace(in.TripTime),
		Capacity:    in.Capacity,
		Available:   in.Capacity,
		Fare:        in.Fare,
		Route:       strings.TrimSpace(in.Route),
	}

	if s.Resolver != nil {
		if coord, err := s.Resolver.ResolveForward(ctx, trip.Origin); err == nil {
			c := coord
			trip.OriginCoord = &c
		}
		if coord, err := s.Resolver.ResolveForward(ctx, trip.Destination); err == nil {
			c := coord
			trip.DestCoord = &c
		}
	}

	id := s.Catalog.Insert(trip)
	utils.LogEvent(s.RequestID, "trip", "create", fmt.Sprintf("trip_id=%d driver_id=%d", id, driverID))
	return s.Catalog.Get(id)
}

func (s TripService) GetTrip(tripID int64) (models.Trip, error) {
	return s.Catalog.Get(tripID)
}

func (s TripService) ListTrips() []models.Trip {
	return s.Catalog.List()
}

// SearchTrips runs the filter over a catalog snapshot, preserving insertion
// order.
func (s TripService) SearchTrips(filter models.TripFilter) []models.Trip {
	return matching.Match(filter, s.Catalog.List())
}

// CancelTrip is driver-only; the caller must own the trip. Outstanding
// reservations become void and are not restored.
func (s TripService) CancelTrip(tripID, driverID int64) error {
	if err := s.requireOwner(tripID, driverID); err != nil {
		return err
	}
	if err := s.Bookings.CancelTrip(tripID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trip", "cancel", fmt.Sprintf("trip_id=%d driver_id=%d", tripID, driverID))
	return nil
}

func (s TripService) RemoveTrip(tripID, driverID int64) error {
	if err := s.requireOwner(tripID, driverID); err != nil {
		return err
	}
	return s.Catalog.Remove(tripID)
}

func (s TripService) ChangeStatus(tripID, driverID int64, status models.TripStatus) error {
	if err := s.requireOwner(tripID, driverID); err != nil {
		return err
	}
	return s.Bookings.ChangeStatus(tripID, status)
}

func (s TripService) RemovePickupPoint(tripID, driverID int64, index int) error {
	if err := s.requireOwner(tripID, driverID); err != nil {
		return err
	}
	return s.Bookings.RemovePickupPoint(tripID, index)
}

func (s TripService) requireOwner(tripID, driverID int64) error {
	trip, err := s.Catalog.Get(tripID)
	if err != nil {
		return err
	}
	if trip.DriverID != driverID {
		return domain.UnauthorizedError{Msg: "trip belongs to another driver"}
	}
	return nil
}

package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// InsufficientSeatsError rejects a reservation asking for more seats than the trip holds.
type InsufficientSeatsError struct {
	TripID    int64
	Requested int
	Available int
}

func (e InsufficientSeatsError) Error() string {
	return fmt.Sprintf("trip %d: %d seats requested, %d available", e.TripID, e.Requested, e.Available)
}

// IncompletePickupError rejects a reservation whose pickup list has a blank entry.
// Every seat needs a pickup address before the reservation commits.
type IncompletePickupError struct {
	Index int
}

func (e IncompletePickupError) Error() string {
	return fmt.Sprintf("pickup address %d is empty", e.Index)
}

// TripUnavailableError rejects operations on trips that are not open for booking.
type TripUnavailableError struct {
	TripID int64
	Status string
}

func (e TripUnavailableError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("trip %d is not available", e.TripID)
	}
	return fmt.Sprintf("trip %d is not available (status %s)", e.TripID, e.Status)
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string {
	if e.Msg == "" {
		return "unauthorized"
	}
	return e.Msg
}

// ResolutionError signals a geocoding miss or timeout. Callers absorb it and
// carry on without a coordinate; it never aborts the surrounding operation.
type ResolutionError struct {
	Query string
	Err   error
}

func (e ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not resolve %q: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("could not resolve %q", e.Query)
}

func (e ResolutionError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	if errors.As(err, &target) {
		return true
	}
	return IsIncompletePickup(err)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInsufficientSeats(err error) bool {
	var target InsufficientSeatsError
	return errors.As(err, &target)
}

func IsIncompletePickup(err error) bool {
	var target IncompletePickupError
	return errors.As(err, &target)
}

func IsTripUnavailable(err error) bool {
	var target TripUnavailableError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsResolutionFailed(err error) bool {
	var target ResolutionError
	return errors.As(err, &target)
}

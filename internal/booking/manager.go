package booking

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"carpool/internal/catalog"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
)

// AddressResolver is the slice of the geocode resolver the manager needs.
// Resolution is best-effort: a failure just leaves the pickup without a
// coordinate.
type AddressResolver interface {
	ResolveForward(ctx context.Context, address string) (models.Coordinate, error)
}

// Manager owns seat and pickup-point allocation per trip. Every mutation of a
// trip's seats funnels through Catalog.Update under the manager's own lock, so
// concurrent reserve/cancel calls on the same trip serialize and the available
// counter never goes negative or above capacity.
type Manager struct {
	catalog  *catalog.Catalog
	resolver AddressResolver

	mu           sync.Mutex
	reservations map[int64]*models.Reservation
	nextID       int64
}

func NewManager(c *catalog.Catalog, resolver AddressResolver) *Manager {
	return &Manager{
		catalog:      c,
		resolver:     resolver,
		reservations: make(map[int64]*models.Reservation),
	}
}

// Reserve claims seats on a trip, one pickup point per seat. The commit is
// atomic: on any failure the trip is untouched.
func (m *Manager) Reserve(ctx context.Context, tripID, riderID int64, seats int, pickups []models.PickupPoint) (int64, error) {
	if seats < 1 {
		return 0, domain.InsufficientSeatsError{TripID: tripID, Requested: seats}
	}
	if len(pickups) != seats {
		return 0, domain.ValidationError{Field: "pickups", Msg: "one pickup point per seat required"}
	}
	for i, p := range pickups {
		if strings.TrimSpace(p.Address) == "" {
			return 0, domain.IncompletePickupError{Index: i}
		}
	}

	// Resolve outside the locks; the network must not stall other trips.
	resolved := make([]models.PickupPoint, len(pickups))
	for i, p := range pickups {
		rp := models.PickupPoint{
			Address: strings.TrimSpace(p.Address),
			Phone:   strings.TrimSpace(p.Phone),
		}
		if m.resolver != nil {
			if coord, err := m.resolver.ResolveForward(ctx, rp.Address); err == nil {
				c := coord
				rp.Coord = &c
			}
		}
		resolved[i] = rp
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	reservationID := m.nextID + 1
	err := m.catalog.Update(tripID, func(t *models.Trip) error {
		if t.Status != models.StatusAvailable {
			return domain.TripUnavailableError{TripID: tripID, Status: string(t.Status)}
		}
		if seats > t.Available {
			return domain.InsufficientSeatsError{TripID: tripID, Requested: seats, Available: t.Available}
		}
		for _, p := range resolved {
			p.ReservationID = reservationID
			t.Pickups = append(t.Pickups, p)
		}
		t.Available -= seats
		return nil
	})
	if err != nil {
		return 0, err
	}

	m.nextID = reservationID
	m.reservations[reservationID] = &models.Reservation{
		ID:        reservationID,
		TripID:    tripID,
		RiderID:   riderID,
		Seats:     seats,
		Status:    models.ReservationActive,
		CreatedAt: time.Now(),
	}
	return reservationID, nil
}

// CancelReservation restores the seats a reservation held and drops its
// pickup points from the trip.
func (m *Manager) CancelReservation(tripID, reservationID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.reservations[reservationID]
	if !ok || res.TripID != tripID || res.Status != models.ReservationActive {
		return domain.NotFoundError{Resource: "reservation"}
	}

	err := m.catalog.Update(tripID, func(t *models.Trip) error {
		kept := t.Pickups[:0]
		for _, p := range t.Pickups {
			if p.ReservationID != reservationID {
				kept = append(kept, p)
			}
		}
		t.Pickups = kept
		t.Available += res.Seats
		if t.Available > t.Capacity {
			t.Available = t.Capacity
		}
		return nil
	})
	if err != nil {
		return err
	}

	res.Status = models.ReservationCancelled
	return nil
}

// CancelTrip marks the trip Cancelled (terminal) and voids its outstanding
// reservations. Seats are not restored and nobody is notified from here;
// notification belongs to an outer collaborator.
func (m *Manager) CancelTrip(tripID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.catalog.Update(tripID, func(t *models.Trip) error {
		if t.Status == models.StatusCancelled {
			return domain.TripUnavailableError{TripID: tripID, Status: string(t.Status)}
		}
		t.Status = models.StatusCancelled
		return nil
	})
	if err != nil {
		return err
	}

	for _, res := range m.reservations {
		if res.TripID == tripID && res.Status == models.ReservationActive {
			res.Status = models.ReservationVoid
		}
	}
	return nil
}

// RemovePickupPoint drops a single pickup point by position. This is a driver
// override: the seat count and available counter stay as they are.
func (m *Manager) RemovePickupPoint(tripID int64, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.catalog.Update(tripID, func(t *models.Trip) error {
		if index < 0 || index >= len(t.Pickups) {
			return domain.NotFoundError{Resource: "pickup point"}
		}
		t.Pickups = append(t.Pickups[:index], t.Pickups[index+1:]...)
		return nil
	})
}

// ChangeStatus toggles driver-controlled visibility between Available and
// Unavailable, independent of seat count. Cancelled is terminal.
func (m *Manager) ChangeStatus(tripID int64, status models.TripStatus) error {
	if status != models.StatusAvailable && status != models.StatusUnavailable {
		return domain.ValidationError{Field: "status", Msg: "must be available or unavailable"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.catalog.Update(tripID, func(t *models.Trip) error {
		if t.Status == models.StatusCancelled {
			return domain.TripUnavailableError{TripID: tripID, Status: string(t.Status)}
		}
		t.Status = status
		return nil
	})
}

// GetReservation returns a copy of one reservation.
func (m *Manager) GetReservation(reservationID int64) (models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.reservations[reservationID]
	if !ok {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
	}
	return *res, nil
}

// ListByTrip returns the trip's reservations ordered by id, for rendering.
func (m *Manager) ListByTrip(tripID int64) []models.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Reservation{}
	for _, res := range m.reservations {
		if res.TripID == tripID {
			out = append(out, *res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListByRider returns a rider's reservations ordered by id.
func (m *Manager) ListByRider(riderID int64) []models.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Reservation{}
	for _, res := range m.reservations {
		if res.RiderID == riderID {
			out = append(out, *res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

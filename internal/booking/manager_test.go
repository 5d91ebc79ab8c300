package booking

import (
	"context"
	"sync"
	"testing"

	"carpool/internal/catalog"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
)

type fixedResolver struct {
	coord models.Coordinate
	fail  bool
}

func (r fixedResolver) ResolveForward(ctx context.Context, address string) (models.Coordinate, error) {
	if r.fail {
		return models.Coordinate{}, domain.ResolutionError{Query: address}
	}
	return r.coord, nil
}

func setupTrip(t *testing.T, available int) (*catalog.Catalog, *Manager, int64) {
	t.Helper()
	c := catalog.New()
	m := NewManager(c, fixedResolver{coord: models.Coordinate{Lat: 4.7, Lon: -74.0}})
	id := c.Insert(models.Trip{
		DriverID:    1,
		Origin:      "Titan Plaza",
		Destination: "Universidad de La Sabana",
		TripDate:    "2024-11-15",
		TripTime:    "09:00",
		Capacity:    available,
		Available:   available,
		Fare:        8000,
	})
	return c, m, id
}

func pickups(addrs ...string) []models.PickupPoint {
	out := make([]models.PickupPoint, len(addrs))
	for i, a := range addrs {
		out[i] = models.PickupPoint{Address: a, Phone: "3001234567"}
	}
	return out
}

func TestReserveDecrementsAndAppendsPickups(t *testing.T) {
	c, m, id := setupTrip(t, 4)

	rid, err := m.Reserve(context.Background(), id, 42, 2, pickups("Calle 80 #10", "Calle 100 #15"))
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}

	trip, _ := c.Get(id)
	if trip.Available != 2 {
		t.Fatalf("expected 2 available, got %d", trip.Available)
	}
	if len(trip.Pickups) != 2 {
		t.Fatalf("expected 2 pickup points, got %d", len(trip.Pickups))
	}
	for _, p := range trip.Pickups {
		if p.ReservationID != rid {
			t.Fatalf("pickup not tagged with reservation id: %+v", p)
		}
		if p.Coord == nil {
			t.Fatalf("pickup coordinate should be resolved: %+v", p)
		}
	}

	res, err := m.GetReservation(rid)
	if err != nil {
		t.Fatalf("get reservation error: %v", err)
	}
	if res.Seats != 2 || res.RiderID != 42 || res.Status != models.ReservationActive {
		t.Fatalf("unexpected reservation %+v", res)
	}
}

func TestReserveUnresolvedPickupStillCommits(t *testing.T) {
	c := catalog.New()
	m := NewManager(c, fixedResolver{fail: true})
	id := c.Insert(models.Trip{Capacity: 3, Available: 3, Status: models.StatusAvailable})

	if _, err := m.Reserve(context.Background(), id, 1, 1, pickups("Calle 80")); err != nil {
		t.Fatalf("resolution failure must not block the reservation: %v", err)
	}

	trip, _ := c.Get(id)
	if trip.Available != 2 || len(trip.Pickups) != 1 {
		t.Fatalf("reservation not committed: %+v", trip)
	}
	if trip.Pickups[0].Coord != nil {
		t.Fatalf("unresolved pickup should carry no coordinate")
	}
}

func TestReserveValidations(t *testing.T) {
	c, m, id := setupTrip(t, 2)

	if _, err := m.Reserve(context.Background(), id, 1, 0, nil); !domain.IsInsufficientSeats(err) {
		t.Fatalf("zero seats: expected insufficient seats, got %v", err)
	}
	if _, err := m.Reserve(context.Background(), id, 1, 3, pickups("a", "b", "c")); !domain.IsInsufficientSeats(err) {
		t.Fatalf("over capacity: expected insufficient seats, got %v", err)
	}
	if _, err := m.Reserve(context.Background(), id, 1, 2, pickups("only one")); !domain.IsValidation(err) {
		t.Fatalf("pickup count mismatch: expected validation error, got %v", err)
	}
	if _, err := m.Reserve(context.Background(), id, 1, 2, pickups("Calle 80", "   ")); !domain.IsIncompletePickup(err) {
		t.Fatalf("blank pickup: expected incomplete pickup, got %v", err)
	}
	if _, err := m.Reserve(context.Background(), 99, 1, 1, pickups("x")); !domain.IsNotFound(err) {
		t.Fatalf("missing trip: expected not found, got %v", err)
	}

	// None of the failures may have touched the trip.
	trip, _ := c.Get(id)
	if trip.Available != 2 || len(trip.Pickups) != 0 {
		t.Fatalf("failed reservations must leave the trip unchanged: %+v", trip)
	}
}

func TestReserveOnUnavailableTrip(t *testing.T) {
	c, m, id := setupTrip(t, 2)
	if err := c.SetStatus(id, models.StatusUnavailable); err != nil {
		t.Fatalf("set status error: %v", err)
	}

	if _, err := m.Reserve(context.Background(), id, 1, 1, pickups("Calle 80")); !domain.IsTripUnavailable(err) {
		t.Fatalf("expected trip unavailable, got %v", err)
	}
}

func TestCancelReservationRoundTrip(t *testing.T) {
	c, m, id := setupTrip(t, 4)

	before, _ := c.Get(id)
	rid, err := m.Reserve(context.Background(), id, 42, 2, pickups("Calle 80", "Calle 100"))
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}

	if err := m.CancelReservation(id, rid); err != nil {
		t.Fatalf("cancel error: %v", err)
	}

	after, _ := c.Get(id)
	if after.Available != before.Available {
		t.Fatalf("available not restored: %d vs %d", after.Available, before.Available)
	}
	if len(after.Pickups) != len(before.Pickups) {
		t.Fatalf("pickup points not restored: %d vs %d", len(after.Pickups), len(before.Pickups))
	}

	if err := m.CancelReservation(id, rid); !domain.IsNotFound(err) {
		t.Fatalf("second cancel should be not found, got %v", err)
	}
}

func TestCancelReservationKeepsOtherPickups(t *testing.T) {
	c, m, id := setupTrip(t, 4)

	first, _ := m.Reserve(context.Background(), id, 42, 1, pickups("Calle 80"))
	second, _ := m.Reserve(context.Background(), id, 43, 2, pickups("Calle 100", "Calle 127"))

	if err := m.CancelReservation(id, first); err != nil {
		t.Fatalf("cancel error: %v", err)
	}

	trip, _ := c.Get(id)
	if trip.Available != 2 {
		t.Fatalf("expected 2 available after cancelling 1 of 3 seats, got %d", trip.Available)
	}
	if len(trip.Pickups) != 2 {
		t.Fatalf("expected the other reservation's 2 pickups to survive, got %d", len(trip.Pickups))
	}
	for _, p := range trip.Pickups {
		if p.ReservationID != second {
			t.Fatalf("wrong pickup survived: %+v", p)
		}
	}
}

func TestConcurrentReservesNeverOversell(t *testing.T) {
	const n = 8
	c, m, id := setupTrip(t, n-1)

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Reserve(context.Background(), id, int64(100+i), 1, pickups("Calle 80"))
		}(i)
	}
	wg.Wait()

	succeeded, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case domain.IsInsufficientSeats(err):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != n-1 || insufficient != 1 {
		t.Fatalf("expected %d successes and 1 rejection, got %d/%d", n-1, succeeded, insufficient)
	}

	trip, _ := c.Get(id)
	if trip.Available != 0 {
		t.Fatalf("expected 0 available, got %d", trip.Available)
	}
	if trip.Available < 0 || trip.Available > trip.Capacity {
		t.Fatalf("seat invariant violated: %+v", trip)
	}
}

func TestCancelTripVoidsReservations(t *testing.T) {
	c, m, id := setupTrip(t, 4)

	rid, _ := m.Reserve(context.Background(), id, 42, 2, pickups("Calle 80", "Calle 100"))

	if err := m.CancelTrip(id); err != nil {
		t.Fatalf("cancel trip error: %v", err)
	}

	trip, _ := c.Get(id)
	if trip.Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", trip.Status)
	}
	// Seats are not restored; the reservation is void, not cancelled.
	if trip.Available != 2 {
		t.Fatalf("cancelling the trip must not restore seats, got %d", trip.Available)
	}
	res, _ := m.GetReservation(rid)
	if res.Status != models.ReservationVoid {
		t.Fatalf("expected void reservation, got %s", res.Status)
	}

	if err := m.CancelTrip(id); !domain.IsTripUnavailable(err) {
		t.Fatalf("second cancel should report unavailable, got %v", err)
	}
	if _, err := m.Reserve(context.Background(), id, 50, 1, pickups("x")); !domain.IsTripUnavailable(err) {
		t.Fatalf("reserving on a cancelled trip should fail, got %v", err)
	}
}

func TestRemovePickupPointKeepsSeatCount(t *testing.T) {
	c, m, id := setupTrip(t, 4)
	_, _ = m.Reserve(context.Background(), id, 42, 2, pickups("Calle 80", "Calle 100"))

	if err := m.RemovePickupPoint(id, 0); err != nil {
		t.Fatalf("remove pickup error: %v", err)
	}

	trip, _ := c.Get(id)
	if len(trip.Pickups) != 1 {
		t.Fatalf("expected 1 pickup left, got %d", len(trip.Pickups))
	}
	if trip.Available != 2 {
		t.Fatalf("driver override must not change available, got %d", trip.Available)
	}

	if err := m.RemovePickupPoint(id, 5); !domain.IsNotFound(err) {
		t.Fatalf("out-of-range index should be not found, got %v", err)
	}
}

func TestChangeStatus(t *testing.T) {
	c, m, id := setupTrip(t, 4)

	if err := m.ChangeStatus(id, models.StatusUnavailable); err != nil {
		t.Fatalf("change status error: %v", err)
	}
	trip, _ := c.Get(id)
	if trip.Status != models.StatusUnavailable {
		t.Fatalf("expected unavailable, got %s", trip.Status)
	}

	if err := m.ChangeStatus(id, models.StatusCancelled); !domain.IsValidation(err) {
		t.Fatalf("cancel via change-status must be rejected, got %v", err)
	}

	_ = m.CancelTrip(id)
	if err := m.ChangeStatus(id, models.StatusAvailable); !domain.IsTripUnavailable(err) {
		t.Fatalf("cancelled trips cannot be reopened, got %v", err)
	}
}

package catalog

import (
	"testing"

	"carpool/internal/domain"
	"carpool/internal/domain/models"
)

func newTrip(origin string) models.Trip {
	return models.Trip{
		DriverID:    7,
		Origin:      origin,
		Destination: "Universidad de La Sabana",
		TripDate:    "2024-11-15",
		TripTime:    "09:00",
		Capacity:    4,
		Available:   4,
		Fare:        8000,
	}
}

func TestInsertAssignsIDAndStatus(t *testing.T) {
	c := New()

	id := c.Insert(newTrip("Titan Plaza"))
	if id != 1 {
		t.Fatalf("expected first id 1, got %d", id)
	}

	trip, err := c.Get(id)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if trip.Status != models.StatusAvailable {
		t.Fatalf("inserted trip should be available, got %s", trip.Status)
	}

	if id2 := c.Insert(newTrip("Portal Norte")); id2 != 2 {
		t.Fatalf("expected second id 2, got %d", id2)
	}
}

func TestGetMissing(t *testing.T) {
	c := New()
	if _, err := c.Get(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListInsertionOrderAndSnapshot(t *testing.T) {
	c := New()
	c.Insert(newTrip("Titan Plaza"))
	c.Insert(newTrip("Portal Norte"))
	c.Insert(newTrip("Calle 100"))

	snapshot := c.List()
	if len(snapshot) != 3 {
		t.Fatalf("expected 3 trips, got %d", len(snapshot))
	}
	for i, want := range []string{"Titan Plaza", "Portal Norte", "Calle 100"} {
		if snapshot[i].Origin != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, snapshot[i].Origin)
		}
	}

	// Mutating the snapshot must not leak into the catalog.
	snapshot[0].Available = 0
	snapshot[0].Pickups = append(snapshot[0].Pickups, models.PickupPoint{Address: "x"})

	fresh, err := c.Get(snapshot[0].ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if fresh.Available != 4 || len(fresh.Pickups) != 0 {
		t.Fatalf("snapshot mutation leaked into catalog: %+v", fresh)
	}
}

func TestRemove(t *testing.T) {
	c := New()
	id := c.Insert(newTrip("Titan Plaza"))

	if err := c.Remove(id); err != nil {
		t.Fatalf("remove error: %v", err)
	}
	if _, err := c.Get(id); !domain.IsNotFound(err) {
		t.Fatalf("expected not found after remove, got %v", err)
	}
	if err := c.Remove(id); !domain.IsNotFound(err) {
		t.Fatalf("second remove should be not found, got %v", err)
	}
	if len(c.List()) != 0 {
		t.Fatalf("list should be empty after remove")
	}
}

func TestSetStatus(t *testing.T) {
	c := New()
	id := c.Insert(newTrip("Titan Plaza"))

	if err := c.SetStatus(id, models.StatusUnavailable); err != nil {
		t.Fatalf("set status error: %v", err)
	}
	trip, _ := c.Get(id)
	if trip.Status != models.StatusUnavailable {
		t.Fatalf("expected unavailable, got %s", trip.Status)
	}

	if err := c.SetStatus(99, models.StatusAvailable); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for missing trip, got %v", err)
	}
}

func TestUpdateFailureLeavesTripUntouched(t *testing.T) {
	c := New()
	id := c.Insert(newTrip("Titan Plaza"))

	err := c.Update(id, func(tr *models.Trip) error {
		tr.Available = 0
		tr.Status = models.StatusCancelled
		return domain.ValidationError{Field: "seats", Msg: "boom"}
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error back, got %v", err)
	}

	trip, _ := c.Get(id)
	if trip.Available != 4 || trip.Status != models.StatusAvailable {
		t.Fatalf("failed update must not change the trip: %+v", trip)
	}
}

package catalog

import (
	"sync"

	"carpool/internal/domain"
	"carpool/internal/domain/models"
)

// Catalog owns the authoritative set of posted trips for its lifetime.
// Readers always get deep copies; mutation happens only under the write lock,
// so Update gives callers a single-writer discipline per trip.
type Catalog struct {
	mu     sync.RWMutex
	trips  map[int64]*models.Trip
	order  []int64
	nextID int64
}

func New() *Catalog {
	return &Catalog{trips: make(map[int64]*models.Trip)}
}

// Insert assigns a fresh id, marks the trip Available and stores it.
func (c *Catalog) Insert(t models.Trip) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	t.ID = c.nextID
	t.Status = models.StatusAvailable

	stored := t.Clone()
	c.trips[t.ID] = &stored
	c.order = append(c.order, t.ID)
	return t.ID
}

func (c *Catalog) Get(id int64) (models.Trip, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.trips[id]
	if !ok {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t.Clone(), nil
}

// List returns a point-in-time snapshot in insertion order. The result never
// aliases live trips, so it stays consistent while inserts and updates run.
func (c *Catalog) List() []models.Trip {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Trip, 0, len(c.order))
	for _, id := range c.order {
		if t, ok := c.trips[id]; ok {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (c *Catalog) Remove(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.trips[id]; !ok {
		return domain.NotFoundError{Resource: "trip"}
	}
	delete(c.trips, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Catalog) SetStatus(id int64, status models.TripStatus) error {
	return c.Update(id, func(t *models.Trip) error {
		t.Status = status
		return nil
	})
}

// Update runs fn on a scratch copy under the write lock and commits the result
// only when fn succeeds. A failed operation leaves the trip exactly as it was
// and stays invisible to concurrent readers.
func (c *Catalog) Update(id int64, fn func(*models.Trip) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.trips[id]
	if !ok {
		return domain.NotFoundError{Resource: "trip"}
	}

	scratch := t.Clone()
	if err := fn(&scratch); err != nil {
		return err
	}
	scratch.ID = id
	c.trips[id] = &scratch
	return nil
}

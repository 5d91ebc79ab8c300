package matching

import (
	"strings"

	"carpool/internal/domain/models"
)

// Match evaluates every trip against the filter and keeps those satisfying all
// present predicates. Input order is preserved; insertion order is the
// implicit recency signal, so no re-sorting happens here. Pure function.
func Match(filter models.TripFilter, trips []models.Trip) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if Matches(filter, t) {
			out = append(out, t)
		}
	}
	return out
}

// Matches reports whether a single trip satisfies the filter. Only trips with
// status Available ever match.
func Matches(filter models.TripFilter, t models.Trip) bool {
	if t.Status != models.StatusAvailable {
		return false
	}
	if filter.Origin != "" && !containsEither(t.Origin, filter.Origin) {
		return false
	}
	if filter.Destination != "" && !containsEither(t.Destination, filter.Destination) {
		return false
	}
	if filter.MinSeats > 0 && t.Available < filter.MinSeats {
		return false
	}
	if filter.TripTime != "" && t.TripTime != filter.TripTime {
		return false
	}
	if filter.TripDate != "" && t.TripDate != filter.TripDate {
		return false
	}
	return true
}

// containsEither is the bidirectional substring rule: the trip field may
// contain the query or the query may contain the trip field. Both directions
// are load-bearing for recall; do not reduce this to a one-way contains.
func containsEither(field, query string) bool {
	f := strings.ToLower(strings.TrimSpace(field))
	q := strings.ToLower(strings.TrimSpace(query))
	if f == "" || q == "" {
		return f == q
	}
	return strings.Contains(f, q) || strings.Contains(q, f)
}

package geocode

import (
	"context"

	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/utils"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Unknown is the display-name fallback when reverse geocoding yields nothing.
const Unknown = "location unknown"

type cacheValue struct {
	coord models.Coordinate
	name  string
}

// Resolver memoizes forward and reverse geocoding behind a single bounded LRU
// shared by every component that needs resolution. Concurrent lookups for the
// same key coalesce into one provider call; all waiters get the same result.
type Resolver struct {
	provider Provider
	cache    *lru.Cache[string, cacheValue]
	flight   singleflight.Group
}

func NewResolver(provider Provider, cacheSize int) (*Resolver, error) {
	cache, err := lru.New[string, cacheValue](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{provider: provider, cache: cache}, nil
}

// ResolveForward maps an address to a coordinate. A provider miss, failure or
// timeout comes back as ResolutionError; the cache only stores successes.
func (r *Resolver) ResolveForward(ctx context.Context, address string) (models.Coordinate, error) {
	norm := utils.NormalizeAddress(address)
	if norm == "" {
		return models.Coordinate{}, domain.ResolutionError{Query: address}
	}

	key := "addr|" + norm
	if v, ok := r.cache.Get(key); ok {
		return v.coord, nil
	}

	res, err, _ := r.flight.Do(key, func() (any, error) {
		coord, found, err := r.provider.Forward(ctx, address)
		if err != nil {
			return nil, domain.ResolutionError{Query: address, Err: err}
		}
		if !found {
			return nil, domain.ResolutionError{Query: address}
		}
		r.cache.Add(key, cacheValue{coord: coord})
		return coord, nil
	})
	if err != nil {
		return models.Coordinate{}, err
	}
	return res.(models.Coordinate), nil
}

// ResolveReverse maps a coordinate to a display name, falling back to Unknown.
// The key uses fixed precision so float noise cannot blow up the cache.
func (r *Resolver) ResolveReverse(ctx context.Context, coord models.Coordinate) string {
	key := "coord|" + coord.Key()
	if v, ok := r.cache.Get(key); ok {
		return v.name
	}

	res, err, _ := r.flight.Do(key, func() (any, error) {
		name, found, err := r.provider.Reverse(ctx, coord.Lat, coord.Lon)
		if err != nil || !found {
			return Unknown, nil
		}
		r.cache.Add(key, cacheValue{name: name})
		return name, nil
	})
	if err != nil {
		return Unknown
	}
	return res.(string)
}

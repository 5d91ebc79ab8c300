package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"carpool/internal/domain/models"
)

// Provider is the external geocoding capability. Forward returns the single
// best match for a free-text address; Reverse returns a display name for a
// coordinate. The second return value is false when the provider has no match.
type Provider interface {
	Forward(ctx context.Context, address string) (models.Coordinate, bool, error)
	Reverse(ctx context.Context, lat, lon float64) (string, bool, error)
}

// NominatimClient talks to a Nominatim-compatible endpoint. Requests are
// time-bounded so a slow provider cannot stall trip creation.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNominatimClient(baseURL string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *NominatimClient) Forward(ctx context.Context, address string) (models.Coordinate, bool, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	var places []nominatimPlace
	if err := c.getJSON(ctx, "/search", q, &places); err != nil {
		return models.Coordinate{}, false, err
	}
	if len(places) == 0 {
		return models.Coordinate{}, false, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return models.Coordinate{}, false, fmt.Errorf("malformed latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return models.Coordinate{}, false, fmt.Errorf("malformed longitude %q: %w", places[0].Lon, err)
	}

	return models.Coordinate{Lat: lat, Lon: lon}, true, nil
}

func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (string, bool, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "json")

	var place nominatimPlace
	if err := c.getJSON(ctx, "/reverse", q, &place); err != nil {
		return "", false, err
	}
	if place.DisplayName == "" {
		return "", false, nil
	}
	return place.DisplayName, true, nil
}

func (c *NominatimClient) getJSON(ctx context.Context, path string, q url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "carpool-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}

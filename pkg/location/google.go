package location

import (
	"context"
	"log"
	"net/http"

	"googlemaps.github.io/maps"

	"scout/internal/models"
	"scout/pkg/gmaps"
)

// GoogleClient geocodes through the Google Maps Geocoding API.
type GoogleClient struct {
	maps *maps.Client
}

// NewGoogleClient returns a client for the given key. baseURL is optional and
// only set to point the client at a non-Google host.
func NewGoogleClient(apiKey, baseURL string, httpClient *http.Client) (*GoogleClient, error) {
	c, err := gmaps.NewClient(apiKey, baseURL, httpClient)
	if err != nil {
		return nil, err
	}
	return &GoogleClient{maps: c}, nil
}

func (g *GoogleClient) Name() string {
	return "google"
}

func (g *GoogleClient) Geocode(ctx context.Context, query string) (models.Coordinate, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return models.Coordinate{}, err
	}
	log.Printf("Geocoding %q with %s", query, g.Name())

	results, err := g.maps.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil && !gmaps.ZeroResults(err) {
		return models.Coordinate{}, &ProviderError{Provider: g.Name(), Err: err}
	}
	if len(results) == 0 {
		return models.Coordinate{}, ErrNotFound
	}

	loc := results[0].Geometry.Location
	log.Printf("Found coordinates for %q: %v, %v", query, loc.Lat, loc.Lng)
	return models.NewCoordinate(loc.Lat, loc.Lng), nil
}

// Package places finds points of interest around a coordinate with the
// Google Places Text Search API. The category is sent as the search text and
// the coordinate plus radius bias the results toward the area.
package places

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"googlemaps.github.io/maps"

	"scout/internal/config"
	"scout/internal/models"
	"scout/pkg/gmaps"
)

// DefaultRadius is the search radius in meters used when none is configured.
const DefaultRadius = 5000

var (
	ErrInvalidRadius = errors.New("search radius must be at least 1 meter")
	ErrEmptyCategory = errors.New("empty place category")
)

// Finder is the contract the aggregator depends on.
type Finder interface {
	FindNearby(ctx context.Context, center models.Coordinate, category string, radius float64) ([]models.Place, error)
}

type Client struct {
	maps *maps.Client
}

func NewClient(apiKey, baseURL string, httpClient *http.Client) (*Client, error) {
	c, err := gmaps.NewClient(apiKey, baseURL, httpClient)
	if err != nil {
		return nil, err
	}
	return &Client{maps: c}, nil
}

// NewFromConfig builds a client from the shared configuration.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	return NewClient(cfg.APIKey, cfg.MapsBaseURL, &http.Client{Timeout: cfg.HTTPTimeout})
}

// FindNearby returns the places matching category around center, in the
// provider's order. An empty slice with a nil error means nothing was found.
func (c *Client) FindNearby(ctx context.Context, center models.Coordinate, category string, radius float64) ([]models.Place, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}
	// The API takes whole meters; anything below one would be sent as zero.
	if radius < 1 {
		return nil, ErrInvalidRadius
	}
	log.Printf("Searching nearby %q at %s within %.0fm", category, center, radius)

	resp, err := c.maps.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    category,
		Location: &maps.LatLng{Lat: center.Latitude, Lng: center.Longitude},
		Radius:   uint(radius),
	})
	if err != nil {
		if gmaps.ZeroResults(err) {
			log.Printf("No %s found in the area", category)
			return []models.Place{}, nil
		}
		return nil, fmt.Errorf("places search for %q: %w", category, err)
	}

	out := make([]models.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, toPlace(r))
	}
	log.Printf("Found %d nearby %s(s)", len(out), category)
	return out, nil
}

// toPlace prefers the short vicinity form and falls back to the formatted
// address only when vicinity is absent.
func toPlace(r maps.PlacesSearchResult) models.Place {
	address := r.Vicinity
	if address == "" {
		address = r.FormattedAddress
	}
	return models.Place{Name: r.Name, Address: address}
}

// Package location resolves free-text addresses and place names into
// coordinates. Two providers are supported: the Google Geocoding API and
// OpenStreetMap's Nominatim.
package location

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"scout/internal/config"
	"scout/internal/models"
)

var (
	// ErrNotFound is returned when the provider answered but had no match.
	ErrNotFound = errors.New("location not found")
	// ErrEmptyQuery is returned for blank input; no request is made.
	ErrEmptyQuery = errors.New("empty location query")
)

// ProviderError wraps a transport or provider-side failure.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Geocoder converts a location description into the coordinate of its first
// match.
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, query string) (models.Coordinate, error)
}

// New builds the geocoder selected in cfg.
func New(cfg *config.Config) (Geocoder, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	switch cfg.Geocoder {
	case config.GeocoderNominatim:
		return NewNominatimClient(cfg.NominatimBaseURL, cfg.UserAgent, httpClient), nil
	case config.GeocoderGoogle, "":
		return NewGoogleClient(cfg.APIKey, cfg.MapsBaseURL, httpClient)
	default:
		return nil, &config.ConfigurationError{Field: "GEOCODER", Reason: fmt.Sprintf("unknown provider %q", cfg.Geocoder)}
	}
}

func normalizeQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	return query, nil
}

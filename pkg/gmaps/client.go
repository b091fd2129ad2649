// Package gmaps holds what the geocoding and places clients share about the
// googlemaps.github.io/maps library.
package gmaps

import (
	"net/http"
	"strings"

	"googlemaps.github.io/maps"

	"scout/internal/config"
)

// NewClient returns a maps client for apiKey. baseURL is optional and only
// set to point the client at a non-Google host.
func NewClient(apiKey, baseURL string, httpClient *http.Client) (*maps.Client, error) {
	if apiKey == "" {
		return nil, &config.ConfigurationError{Field: "GOOGLE_MAPS_API_KEY", Reason: "is not set"}
	}
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if httpClient != nil {
		opts = append(opts, maps.WithHTTPClient(httpClient))
	}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, &config.ConfigurationError{Field: "GOOGLE_MAPS_API_KEY", Reason: err.Error()}
	}
	return c, nil
}

// ZeroResults reports whether err is the API answering "no match" rather than
// failing. The library returns non-OK statuses as plain errors formatted
// "maps: <STATUS> - <error_message>" with no typed value to match on.
func ZeroResults(err error) bool {
	return err != nil && strings.Contains(err.Error(), "maps: ZERO_RESULTS")
}

package location

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"scout/internal/models"
)

// NominatimResponse is shaped for the search API response. Only the fields
// needed to place a result are decoded.
type NominatimResponse []struct {
	PlaceID     int64  `json:"place_id"`
	OsmType     string `json:"osm_type"`
	OsmID       int64  `json:"osm_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// NominatimClient geocodes through an OpenStreetMap Nominatim instance. It
// needs no credential, but the usage policy requires a real User-Agent.
type NominatimClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewNominatimClient(baseURL, userAgent string, httpClient *http.Client) *NominatimClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NominatimClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

func (n *NominatimClient) Name() string {
	return "nominatim"
}

func (n *NominatimClient) Geocode(ctx context.Context, query string) (models.Coordinate, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return models.Coordinate{}, err
	}
	log.Printf("Geocoding %q with %s", query, n.Name())

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("accept-language", "en")
	u := fmt.Sprintf("%s/search?%s", n.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.Coordinate{}, &ProviderError{Provider: n.Name(), Err: err}
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return models.Coordinate{}, &ProviderError{Provider: n.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, &ProviderError{Provider: n.Name(), Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	var results NominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Coordinate{}, &ProviderError{Provider: n.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(results) == 0 {
		return models.Coordinate{}, ErrNotFound
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return models.Coordinate{}, &ProviderError{Provider: n.Name(), Err: fmt.Errorf("bad latitude %q: %w", first.Lat, err)}
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return models.Coordinate{}, &ProviderError{Provider: n.Name(), Err: fmt.Errorf("bad longitude %q: %w", first.Lon, err)}
	}

	log.Printf("Found coordinates for %q: %v, %v (%s)", query, lat, lon, first.DisplayName)
	return models.NewCoordinate(lat, lon), nil
}

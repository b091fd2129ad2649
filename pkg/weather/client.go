// Package weather reads current conditions for a coordinate from wttr.in.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"scout/internal/config"
	"scout/internal/models"
)

var (
	// ErrNoConditions is returned when the payload has no current_condition entry.
	ErrNoConditions = errors.New("weather payload has no current conditions")
	// ErrIncompleteConditions is returned when the current condition lacks a
	// field the summary needs.
	ErrIncompleteConditions = errors.New("weather payload has incomplete current conditions")
)

// Reporter is the contract the aggregator depends on.
type Reporter interface {
	Current(ctx context.Context, center models.Coordinate) (*models.WeatherSummary, error)
}

// Response is the subset of the wttr.in j1 document that is consumed. The
// numeric fields arrive as strings but are accepted as numbers as well.
type Response struct {
	CurrentCondition []Condition `json:"current_condition"`
}

type Condition struct {
	TempC         json.Number `json:"temp_C"`
	FeelsLikeC    json.Number `json:"FeelsLikeC"`
	Humidity      json.Number `json:"humidity"`
	WindspeedKmph json.Number `json:"windspeedKmph"`
	WeatherDesc   []struct {
		Value string `json:"value"`
	} `json:"weatherDesc"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, userAgent: userAgent}
}

func NewFromConfig(cfg *config.Config) *Client {
	return NewClient(cfg.WeatherBaseURL, cfg.UserAgent, &http.Client{Timeout: cfg.HTTPTimeout})
}

// Current returns the conditions at center. Any failure yields a nil summary
// and an error; callers treat both as "no weather".
func (c *Client) Current(ctx context.Context, center models.Coordinate) (*models.WeatherSummary, error) {
	log.Printf("Fetching weather at %s", center)
	u := fmt.Sprintf("%s/%s?format=j1", c.baseURL, center)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather provider returned %s: %s", resp.Status, string(b))
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather payload: %w", err)
	}
	summary, err := payload.Summary()
	if err != nil {
		return nil, err
	}
	log.Printf("Retrieved weather at %s: %s", center, summary.Description)
	return summary, nil
}

// Summary converts the first current condition into a WeatherSummary.
func (r Response) Summary() (*models.WeatherSummary, error) {
	if len(r.CurrentCondition) == 0 {
		return nil, ErrNoConditions
	}
	cc := r.CurrentCondition[0]
	if len(cc.WeatherDesc) == 0 || cc.WeatherDesc[0].Value == "" {
		return nil, fmt.Errorf("%w: weatherDesc missing", ErrIncompleteConditions)
	}
	fields := []struct {
		name string
		val  json.Number
	}{
		{"temp_C", cc.TempC},
		{"FeelsLikeC", cc.FeelsLikeC},
		{"humidity", cc.Humidity},
		{"windspeedKmph", cc.WindspeedKmph},
	}
	for _, f := range fields {
		if f.val == "" {
			return nil, fmt.Errorf("%w: %s missing", ErrIncompleteConditions, f.name)
		}
	}
	return &models.WeatherSummary{
		Description: cc.WeatherDesc[0].Value,
		Temperature: fmt.Sprintf("%s °C", cc.TempC),
		FeelsLike:   fmt.Sprintf("%s °C", cc.FeelsLikeC),
		Humidity:    fmt.Sprintf("%s%%", cc.Humidity),
		WindSpeed:   fmt.Sprintf("%s km/h", cc.WindspeedKmph),
	}, nil
}

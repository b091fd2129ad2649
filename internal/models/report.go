package models

import "time"

// Variant names the kind of report an aggregation run produces.
type Variant string

const (
	PropertyVariant Variant = "property"
	TripVariant     Variant = "trip"
)

func (v Variant) Valid() bool {
	return v == PropertyVariant || v == TripVariant
}

type Place struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// PlaceList is the result of one category lookup. Err is set when the lookup
// failed, which keeps "nothing nearby" and "lookup failed" apart.
type PlaceList struct {
	Category string  `json:"category"`
	Places   []Place `json:"places"`
	Err      error   `json:"-"`
}

func (l PlaceList) Failed() bool {
	return l.Err != nil
}

type WeatherSummary struct {
	Description string `json:"description"`
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feels_like"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
}

// Report aggregates everything one run collected around a single coordinate.
// It lives for the duration of one invocation.
type Report struct {
	ID          string          `json:"id"`
	Variant     Variant         `json:"variant"`
	Query       string          `json:"query"`
	Location    Coordinate      `json:"location"`
	Radius      float64         `json:"radius"`
	Places      []PlaceList     `json:"places"`
	Weather     *WeatherSummary `json:"weather,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// PlacesFor returns the list collected for category, if any.
func (r *Report) PlacesFor(category string) (PlaceList, bool) {
	for _, l := range r.Places {
		if l.Category == category {
			return l, true
		}
	}
	return PlaceList{}, false
}

// BatchRequest is the object dropped into the batch bucket. Every query is an
// independent aggregation run of the same variant.
type BatchRequest struct {
	ID      string   `json:"id"`
	Variant Variant  `json:"variant"`
	Queries []string `json:"queries"`
}

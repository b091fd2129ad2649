// Package aggregator resolves a location once and then runs the lookups of a
// report variant against the resulting coordinate.
//
// Only a geocoding failure aborts a run. A failed places or weather lookup
// leaves its own slice of the report empty and everything else intact.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"scout/internal/enrich"
	"scout/internal/models"
	"scout/pkg/location"
	"scout/pkg/places"
	"scout/pkg/weather"
)

type Aggregator struct {
	variant  Variant
	geocoder location.Geocoder
	places   places.Finder
	weather  weather.Reporter
	radius   float64
	now      func() time.Time
}

// New wires an aggregator. weather may be nil for variants that do not
// report it. A radius below one meter is replaced by the default.
func New(v Variant, g location.Geocoder, p places.Finder, w weather.Reporter, radius float64) *Aggregator {
	if radius < 1 {
		radius = places.DefaultRadius
	}
	return &Aggregator{
		variant:  v,
		geocoder: g,
		places:   p,
		weather:  w,
		radius:   radius,
		now:      time.Now,
	}
}

func (a *Aggregator) Variant() Variant {
	return a.variant
}

// Run produces the report for query. When the location cannot be resolved it
// returns the geocoding error and no report, and no other lookup is made.
func (a *Aggregator) Run(ctx context.Context, query string) (*models.Report, error) {
	log.Printf("Starting %s report for %q", a.variant.Kind, query)

	center, err := a.geocoder.Geocode(ctx, query)
	if err != nil {
		var perr *location.ProviderError
		switch {
		case errors.Is(err, location.ErrNotFound):
			log.Printf("No location found for %q", query)
		case errors.As(err, &perr):
			log.Printf("Geocoding provider %s failed for %q: %v", perr.Provider, query, perr.Err)
		default:
			log.Printf("Geocoding %q failed: %v", query, err)
		}
		return nil, fmt.Errorf("resolving %q: %w", query, err)
	}

	report := &models.Report{
		ID:          uuid.NewString(),
		Variant:     a.variant.Kind,
		Query:       query,
		Location:    center,
		Radius:      a.radius,
		Places:      make([]models.PlaceList, len(a.variant.Categories)),
		GeneratedAt: a.now().UTC(),
	}

	var steps []enrich.Step[models.Report]
	if a.variant.Weather && a.weather != nil {
		steps = append(steps, a.weatherStep(center))
	}
	for i, category := range a.variant.Categories {
		report.Places[i].Category = category
		steps = append(steps, a.placesStep(i, category, center))
	}

	failed := enrich.NewPipeline(enrich.NewStage("lookups", steps...)).Run(ctx, report)
	log.Printf("Finished %s report for %q with %d failed lookup(s)", a.variant.Kind, query, failed)
	return report, nil
}

// placesStep fills report.Places[slot] and nothing else.
func (a *Aggregator) placesStep(slot int, category string, center models.Coordinate) enrich.Step[models.Report] {
	return func(ctx context.Context, r *models.Report) error {
		found, err := a.places.FindNearby(ctx, center, category, a.radius)
		if err != nil {
			r.Places[slot] = models.PlaceList{Category: category, Places: []models.Place{}, Err: err}
			return err
		}
		r.Places[slot] = models.PlaceList{Category: category, Places: found}
		return nil
	}
}

func (a *Aggregator) weatherStep(center models.Coordinate) enrich.Step[models.Report] {
	return func(ctx context.Context, r *models.Report) error {
		summary, err := a.weather.Current(ctx, center)
		if err != nil {
			return fmt.Errorf("weather: %w", err)
		}
		r.Weather = summary
		return nil
	}
}

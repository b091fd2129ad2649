// Package report renders aggregation results as plain text for a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"scout/internal/models"
)

var headings = map[string]string{
	"school":             "Nearby Schools",
	"park":               "Nearby Parks",
	"grocery store":      "Nearby Grocery Stores",
	"tourist_attraction": "Nearby Attractions",
	"restaurant":         "Nearby Restaurants",
}

// Heading returns the section title for a category.
func Heading(category string) string {
	if h, ok := headings[category]; ok {
		return h
	}
	return "Nearby " + strings.ReplaceAll(category, "_", " ")
}

func Title(r *models.Report) string {
	switch r.Variant {
	case models.TripVariant:
		return fmt.Sprintf("Trip Plan for %s", r.Query)
	default:
		return "Property Analysis"
	}
}

// Render writes the report as human-readable text.
func Render(w io.Writer, r *models.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n--- %s Complete ---\n", Title(r))
	if r.Variant == models.PropertyVariant {
		fmt.Fprintf(&b, "Analysis for: %s\n", r.Query)
	}
	fmt.Fprintf(&b, "Location: %s (search radius %s)\n", r.Location, humanize.SI(r.Radius, "m"))

	if r.Variant == models.TripVariant {
		b.WriteString("\nWeather Forecast:\n")
		if r.Weather == nil {
			b.WriteString("  (unavailable)\n")
		} else {
			fmt.Fprintf(&b, "  %s, %s (feels like %s)\n", r.Weather.Description, r.Weather.Temperature, r.Weather.FeelsLike)
			fmt.Fprintf(&b, "  Humidity %s, wind %s\n", r.Weather.Humidity, r.Weather.WindSpeed)
		}
	}

	for _, list := range r.Places {
		fmt.Fprintf(&b, "\n%s:\n", Heading(list.Category))
		switch {
		case list.Failed():
			b.WriteString("  (lookup failed)\n")
		case len(list.Places) == 0:
			b.WriteString("  (none found)\n")
		default:
			for i, p := range list.Places {
				if p.Address == "" {
					fmt.Fprintf(&b, "  %d. %s\n", i+1, p.Name)
					continue
				}
				fmt.Fprintf(&b, "  %d. %s (%s)\n", i+1, p.Name, p.Address)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderFailure writes the notice shown when no report could be produced.
func RenderFailure(w io.Writer, variant models.Variant, query string, cause error) error {
	what := "Analysis"
	if variant == models.TripVariant {
		what = "Planning"
	}
	_, err := fmt.Fprintf(w, "\nCould not find coordinates for %q. %s failed: %v\n", query, what, cause)
	return err
}

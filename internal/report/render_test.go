package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"scout/internal/models"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		report   models.Report
		contains []string
		absent   []string
	}{
		{
			name: "property report with failed and empty sections",
			report: models.Report{
				Variant:  models.PropertyVariant,
				Query:    "1600 Amphitheatre Parkway, Mountain View, CA",
				Location: models.NewCoordinate(37.4224, -122.0842),
				Radius:   5000,
				Places: []models.PlaceList{
					{Category: "school", Places: []models.Place{{Name: "Castro Elementary", Address: "505 Escuela Ave"}}},
					{Category: "park", Places: []models.Place{}},
					{Category: "grocery store", Err: errors.New("boom")},
				},
			},
			contains: []string{
				"--- Property Analysis Complete ---",
				"Analysis for: 1600 Amphitheatre Parkway, Mountain View, CA",
				"Location: 37.4224,-122.0842 (search radius 5 km)",
				"Nearby Schools:\n  1. Castro Elementary (505 Escuela Ave)",
				"Nearby Parks:\n  (none found)",
				"Nearby Grocery Stores:\n  (lookup failed)",
			},
			absent: []string{"Weather Forecast"},
		},
		{
			name: "trip report without weather",
			report: models.Report{
				Variant: models.TripVariant,
				Query:   "Paris",
				Radius:  800,
				Places: []models.PlaceList{
					{Category: "tourist_attraction", Places: []models.Place{{Name: "Louvre Museum"}}},
				},
			},
			contains: []string{
				"--- Trip Plan for Paris Complete ---",
				"search radius 800 m",
				"Weather Forecast:\n  (unavailable)",
				"Nearby Attractions:\n  1. Louvre Museum\n",
			},
			absent: []string{"Analysis for:"},
		},
		{
			name: "trip report with weather",
			report: models.Report{
				Variant: models.TripVariant,
				Query:   "Paris",
				Radius:  5000,
				Weather: &models.WeatherSummary{Description: "Sunny", Temperature: "21 °C", FeelsLike: "20 °C", Humidity: "40%", WindSpeed: "9 km/h"},
			},
			contains: []string{"Sunny, 21 °C (feels like 20 °C)", "Humidity 40%, wind 9 km/h"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, &tt.report); err != nil {
				t.Fatalf("Render error: %v", err)
			}
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("output unexpectedly contains %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestHeading_Fallback(t *testing.T) {
	if got := Heading("gas_station"); got != "Nearby gas station" {
		t.Errorf("Heading = %q", got)
	}
}

func TestRenderFailure(t *testing.T) {
	var buf bytes.Buffer
	_ = RenderFailure(&buf, models.TripVariant, "Atlantis", errors.New("location not found"))
	if !strings.Contains(buf.String(), `Could not find coordinates for "Atlantis". Planning failed`) {
		t.Errorf("unexpected notice %q", buf.String())
	}
}

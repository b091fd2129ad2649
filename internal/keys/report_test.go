package keys

import (
	"testing"

	"scout/internal/models"
)

func TestReport(t *testing.T) {
	cases := []struct {
		name     string
		report   models.Report
		expected string
	}{
		{
			name:     "address with commas",
			report:   models.Report{ID: "r1", Variant: models.PropertyVariant, Query: "1600 Amphitheatre Parkway, Mountain View, CA"},
			expected: "property/1600-amphitheatre-parkway-mountain-view-ca/r1",
		},
		{
			name:     "city trimmed and lowered",
			report:   models.Report{ID: "r2", Variant: models.TripVariant, Query: "  Paris "},
			expected: "trip/paris/r2",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Report(&tc.report); got != tc.expected {
				t.Fatalf("Report() = %q; want %q", got, tc.expected)
			}
		})
	}
}

func TestBatch(t *testing.T) {
	got := Batch(models.BatchRequest{ID: "b1", Variant: models.TripVariant})
	if got != "batches/trip/b1.json" {
		t.Fatalf("Batch() = %q", got)
	}
}

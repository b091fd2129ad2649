package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"scout/internal/models"
)

var center = models.NewCoordinate(37.4224, -122.0842)

func newPlacesServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/maps/api/place/textsearch/json", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", server.URL, server.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return client
}

func writeResults(w http.ResponseWriter, status string, results []map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": status, "results": results})
}

func TestClient_FindNearby(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		results []map[string]any
		want    []models.Place
	}{
		{
			name:   "vicinity preferred, formatted address fallback, order kept",
			status: "OK",
			results: []map[string]any{
				{"name": "Castro Elementary", "vicinity": "505 Escuela Ave, Mountain View", "formatted_address": "505 Escuela Ave, Mountain View, CA 94040, USA"},
				{"name": "Landels Elementary", "formatted_address": "115 W Dana St, Mountain View, CA 94041, USA"},
				{"name": "Unaddressed School"},
			},
			want: []models.Place{
				{Name: "Castro Elementary", Address: "505 Escuela Ave, Mountain View"},
				{Name: "Landels Elementary", Address: "115 W Dana St, Mountain View, CA 94041, USA"},
				{Name: "Unaddressed School"},
			},
		},
		{
			name:    "zero results is an empty list",
			status:  "ZERO_RESULTS",
			results: []map[string]any{},
			want:    []models.Place{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newPlacesServer(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("query") != "school" {
					t.Errorf("query = %q, want school", q.Get("query"))
				}
				if q.Get("radius") != "5000" {
					t.Errorf("radius = %q, want 5000", q.Get("radius"))
				}
				if q.Get("location") == "" {
					t.Errorf("location not sent")
				}
				writeResults(w, tt.status, tt.results)
			})

			got, err := client.FindNearby(context.Background(), center, "school", DefaultRadius)
			if err != nil {
				t.Fatalf("FindNearby error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindNearby = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClient_FindNearby_ProviderFailure(t *testing.T) {
	client := newPlacesServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeResults(w, "OVER_QUERY_LIMIT", nil)
	})
	got, err := client.FindNearby(context.Background(), center, "park", DefaultRadius)
	if err == nil {
		t.Fatalf("FindNearby error = nil, want provider failure")
	}
	if len(got) != 0 {
		t.Errorf("FindNearby returned %d places on failure", len(got))
	}
}

func TestClient_FindNearby_InvalidInput(t *testing.T) {
	calls := 0
	client := newPlacesServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeResults(w, "OK", nil)
	})

	tests := []struct {
		name     string
		category string
		radius   float64
		wantErr  error
	}{
		{"zero radius", "park", 0, ErrInvalidRadius},
		{"negative radius", "park", -10, ErrInvalidRadius},
		{"sub-meter radius", "park", 0.5, ErrInvalidRadius},
		{"blank category", "  ", DefaultRadius, ErrEmptyCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.FindNearby(context.Background(), center, tt.category, tt.radius)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FindNearby error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if calls != 0 {
		t.Errorf("provider called %d times for invalid input", calls)
	}
}

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scout/internal/aggregator"
	"scout/internal/config"
	"scout/pkg/location"
)

func TestReadQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"line", "Lisbon\n", "Lisbon"},
		{"no newline", "Porto", "Porto"},
		{"blank uses fallback", "   \n", "Paris"},
		{"eof uses fallback", "", "Paris"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := ReadQuery(strings.NewReader(tt.input), &prompt, "city: ", "Paris")
			if err != nil {
				t.Fatalf("ReadQuery error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadQuery = %q, want %q", got, tt.want)
			}
			if prompt.String() != "city: " {
				t.Errorf("prompt = %q", prompt.String())
			}
		})
	}
}

func TestBuild_MissingKey(t *testing.T) {
	cfg := config.Default()
	_, err := Build(&cfg, aggregator.Property())
	var cerr *config.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Build error = %v, want *config.ConfigurationError", err)
	}
}

func newProviderServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/maps/api/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("address") == "Atlantis" {
			_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":48.8566,"lng":2.3522}}}]}`))
	})
	mux.HandleFunc("/maps/api/place/textsearch/json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "OK",
			"results": []map[string]any{{"name": "Spot for " + r.URL.Query().Get("query")}},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_condition":[{"FeelsLikeC":"10","humidity":"81","temp_C":"12","weatherDesc":[{"value":"Partly cloudy"}],"windspeedKmph":"13"}]}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(server *httptest.Server) *config.Config {
	cfg := config.Default()
	cfg.APIKey = "test-key"
	cfg.MapsBaseURL = server.URL
	cfg.WeatherBaseURL = server.URL
	return &cfg
}

func TestRun_EndToEnd(t *testing.T) {
	agg, err := Build(testConfig(newProviderServer(t)), aggregator.Trip())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	var out bytes.Buffer
	if err := Run(context.Background(), agg, "Paris", &out); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	for _, s := range []string{"Trip Plan for Paris", "Partly cloudy", "Spot for tourist_attraction", "Spot for restaurant"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %q:\n%s", s, out.String())
		}
	}

	out.Reset()
	err = Run(context.Background(), agg, "Atlantis", &out)
	if !errors.Is(err, location.ErrNotFound) {
		t.Fatalf("Run error = %v, want ErrNotFound", err)
	}
	if !strings.Contains(out.String(), "Could not find coordinates") {
		t.Errorf("failure notice missing:\n%s", out.String())
	}
}

func TestProgram_Execute(t *testing.T) {
	server := newProviderServer(t)
	trip := Program{Variant: aggregator.Trip(), Prompt: "city: ", Fallback: "Paris"}

	tests := []struct {
		name     string
		cfg      *config.Config
		input    string
		wantCode int
		wantOut  string
	}{
		{"report", testConfig(server), "\n", 0, "Trip Plan for Paris"},
		{"location not found", testConfig(server), "Atlantis\n", 1, "Could not find coordinates"},
		{"missing key", func() *config.Config { c := config.Default(); return &c }(), "", 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := trip.Execute(context.Background(), tt.cfg, strings.NewReader(tt.input), &out)
			if code != tt.wantCode {
				t.Errorf("Execute = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out.String())
			}
		})
	}
}

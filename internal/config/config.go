// Package config builds the single configuration value every client is
// constructed from. Values come from defaults, then an optional YAML file
// named by SCOUT_CONFIG, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"scout/internal/env"
)

const (
	GeocoderGoogle    = "google"
	GeocoderNominatim = "nominatim"

	DefaultRadius           = 5000
	DefaultHTTPTimeout      = 10 * time.Second
	DefaultUserAgent        = "scout/1.0"
	DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"
	DefaultWeatherBaseURL   = "https://wttr.in"
)

// placeholders are values shipped in example files in place of a real key.
var placeholders = map[string]struct{}{
	"YOUR_API_KEY_HERE":             {},
	"YOUR_GOOGLE_MAPS_API_KEY_HERE": {},
}

// ConfigurationError reports a missing or invalid setting. It is always fatal
// and is raised before any network call is made.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Field, e.Reason)
}

type Config struct {
	APIKey           string        `yaml:"api_key" env:"GOOGLE_MAPS_API_KEY" validate:"required"`
	Geocoder         string        `yaml:"geocoder" env:"GEOCODER" validate:"oneof=google nominatim"`
	Radius           float64       `yaml:"radius" env:"SEARCH_RADIUS" validate:"gte=1"`
	HTTPTimeout      time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT" validate:"gt=0"`
	UserAgent        string        `yaml:"user_agent" env:"USER_AGENT" validate:"required"`
	MapsBaseURL      string        `yaml:"maps_base_url" env:"MAPS_BASE_URL" validate:"omitempty,url"`
	NominatimBaseURL string        `yaml:"nominatim_base_url" env:"NOMINATIM_BASE_URL" validate:"required,url"`
	WeatherBaseURL   string        `yaml:"weather_base_url" env:"WEATHER_BASE_URL" validate:"required,url"`
}

func Default() Config {
	return Config{
		Geocoder:         GeocoderGoogle,
		Radius:           DefaultRadius,
		HTTPTimeout:      DefaultHTTPTimeout,
		UserAgent:        DefaultUserAgent,
		NominatimBaseURL: DefaultNominatimBaseURL,
		WeatherBaseURL:   DefaultWeatherBaseURL,
	}
}

// Load resolves the configuration and validates it. The returned error is a
// *ConfigurationError for anything the operator has to fix.
func Load() (*Config, error) {
	cfg := Default()
	if path, ok := env.Lookup("SCOUT_CONFIG"); ok {
		if err := readFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, ok := placeholders[c.APIKey]; ok {
		return &ConfigurationError{Field: "GOOGLE_MAPS_API_KEY", Reason: "is still a placeholder"}
	}
	return validate(c)
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigurationError{Field: "SCOUT_CONFIG", Reason: fmt.Sprintf("cannot be read: %v", err)}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigurationError{Field: "SCOUT_CONFIG", Reason: fmt.Sprintf("is not valid YAML: %v", err)}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	fields := map[string]*string{
		"GOOGLE_MAPS_API_KEY": &cfg.APIKey,
		"GEOCODER":            &cfg.Geocoder,
		"USER_AGENT":          &cfg.UserAgent,
		"MAPS_BASE_URL":       &cfg.MapsBaseURL,
		"NOMINATIM_BASE_URL":  &cfg.NominatimBaseURL,
		"WEATHER_BASE_URL":    &cfg.WeatherBaseURL,
	}
	for key, dst := range fields {
		if val, ok := env.Lookup(key); ok {
			*dst = val
		}
	}

	if val, ok := env.Lookup("SEARCH_RADIUS"); ok {
		radius, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return &ConfigurationError{Field: "SEARCH_RADIUS", Reason: fmt.Sprintf("is not a number: %q", val)}
		}
		cfg.Radius = radius
	}
	if val, ok := env.Lookup("HTTP_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(val)
		if err != nil {
			return &ConfigurationError{Field: "HTTP_TIMEOUT", Reason: fmt.Sprintf("is not a duration: %q", val)}
		}
		cfg.HTTPTimeout = timeout
	}
	return nil
}

var validate = newValidator()

// newValidator reports fields by their environment variable name so that
// errors point at what the operator has to set.
func newValidator() func(any) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return func(s any) error {
		err := v.Struct(s)
		if err == nil {
			return nil
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ConfigurationError{Field: fe.Field(), Reason: reason(fe)}
		}
		return &ConfigurationError{Field: "config", Reason: err.Error()}
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is not set"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "url":
		return fmt.Sprintf("is not a valid URL: %q", fe.Value())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

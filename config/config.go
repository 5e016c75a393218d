package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"weather-forecast/internal/location"
	"weather-forecast/internal/models"
)

const DefaultPath = "config/config.yaml"

// Config is assembled from built-in defaults, then the YAML file, then the
// environment. Later sources win.
type Config struct {
	AppName    string `yaml:"app_name" envconfig:"APP_NAME"`
	AppVersion string `yaml:"app_version" envconfig:"APP_VERSION"`
	AppEnv     string `yaml:"app_env" envconfig:"APP_ENV"`
	Port       string `yaml:"port" envconfig:"PORT"`

	ForecastBaseURL         string        `yaml:"forecast_base_url" envconfig:"FORECAST_BASE_URL"`
	ForecastDays            int           `yaml:"forecast_days" envconfig:"FORECAST_DAYS"`
	GeocodingBaseURL        string        `yaml:"geocoding_base_url" envconfig:"GEOCODING_BASE_URL"`
	ReverseGeocodingBaseURL string        `yaml:"reverse_geocoding_base_url" envconfig:"REVERSE_GEOCODING_BASE_URL"`
	ReverseGeocodingRPS     float64       `yaml:"reverse_geocoding_rps" envconfig:"REVERSE_GEOCODING_RPS"`
	HTTPTimeout             time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`
	UserAgent               string        `yaml:"user_agent" envconfig:"USER_AGENT"`

	SentryDSN      string `yaml:"sentry_dsn" envconfig:"SENTRY_DSN"`
	TracingEnabled bool   `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`

	LaunchWithDeviceLocation bool     `yaml:"launch_with_device_location" envconfig:"LAUNCH_WITH_DEVICE_LOCATION"`
	DeviceLatitude           *float64 `yaml:"device_latitude" envconfig:"DEVICE_LATITUDE"`
	DeviceLongitude          *float64 `yaml:"device_longitude" envconfig:"DEVICE_LONGITUDE"`
	LocationAuthorization    string   `yaml:"location_authorization" envconfig:"LOCATION_AUTHORIZATION"`
}

func defaults() Config {
	return Config{
		AppName:                  "weather-forecast",
		AppVersion:               "1.0.0",
		AppEnv:                   "development",
		Port:                     "8080",
		ForecastBaseURL:          "https://api.open-meteo.com/v1/forecast",
		ForecastDays:             models.DefaultForecastDays,
		GeocodingBaseURL:         "https://geocoding-api.open-meteo.com/v1/search",
		ReverseGeocodingBaseURL:  "https://nominatim.openstreetmap.org/reverse",
		ReverseGeocodingRPS:      1,
		HTTPTimeout:              10 * time.Second,
		UserAgent:                "weather-forecast/1.0",
		LaunchWithDeviceLocation: true,
		LocationAuthorization:    string(location.AuthorizationUndetermined),
	}
}

func NewConfig() *Config {
	cnf, err := Load(DefaultPath)
	if err != nil {
		panic(fmt.Errorf("error loading configuration: %w", err))
	}
	return cnf
}

// Load reads .env (if present), the YAML file at path (if present) and the
// environment, then validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cnf := defaults()

	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read YAML config %s: %w", path, err)
	}

	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	if err := cnf.Validate(); err != nil {
		return nil, err
	}

	return &cnf, nil
}

func (c *Config) Validate() error {
	if c.AppName == "" {
		return errors.New("app name must not be empty")
	}
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.ForecastDays <= 0 {
		return fmt.Errorf("forecast days must be positive, got %d", c.ForecastDays)
	}
	if c.ReverseGeocodingRPS <= 0 {
		return fmt.Errorf("reverse geocoding rps must be positive, got %v", c.ReverseGeocodingRPS)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http timeout must not be negative, got %s", c.HTTPTimeout)
	}

	for name, raw := range map[string]string{
		"forecast_base_url":          c.ForecastBaseURL,
		"geocoding_base_url":         c.GeocodingBaseURL,
		"reverse_geocoding_base_url": c.ReverseGeocodingBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s is not an absolute URL: %q", name, raw)
		}
	}

	if (c.DeviceLatitude == nil) != (c.DeviceLongitude == nil) {
		return errors.New("device latitude and longitude must be set together")
	}

	if _, err := location.ParseAuthorization(c.LocationAuthorization); err != nil {
		return err
	}

	return nil
}

// DeviceCoordinate is the configured device position, or nil.
func (c *Config) DeviceCoordinate() *models.Coordinate {
	if c.DeviceLatitude == nil || c.DeviceLongitude == nil {
		return nil
	}
	return &models.Coordinate{Latitude: *c.DeviceLatitude, Longitude: *c.DeviceLongitude}
}

func (c *Config) Authorization() location.Authorization {
	auth, err := location.ParseAuthorization(c.LocationAuthorization)
	if err != nil {
		return location.AuthorizationUndetermined
	}
	return auth
}

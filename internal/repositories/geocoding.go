package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"

	"weather-forecast/internal/models"
	"weather-forecast/pkg/logger"
	"weather-forecast/pkg/metrics"
)

const (
	OpenMeteoGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1/search"
	NominatimReverseBaseURL   = "https://nominatim.openstreetmap.org/reverse"

	defaultUserAgent = "weather-forecast/1.0"
)

// Geocoder resolves place names to coordinates and back.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, name string) (models.Place, error)
	ReverseGeocode(ctx context.Context, coord models.Coordinate) (models.Place, error)
}

type GeocodingOptions struct {
	ForwardURL string
	ReverseURL string
	UserAgent  string
	Timeout    time.Duration
}

// GeocodingRepository uses the Open-Meteo geocoding API for names and
// Nominatim for coordinates.
type GeocodingRepository struct {
	client     *resty.Client
	forwardURL string
	reverseURL string
	l          *logger.Logger
}

func NewGeocodingRepository(l *logger.Logger, opts GeocodingOptions) *GeocodingRepository {
	if opts.ForwardURL == "" {
		opts.ForwardURL = OpenMeteoGeocodingBaseURL
	}
	if opts.ReverseURL == "" {
		opts.ReverseURL = NominatimReverseBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	client := resty.New().
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json").
		SetLogger(l)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &GeocodingRepository{
		client:     client,
		forwardURL: opts.ForwardURL,
		reverseURL: opts.ReverseURL,
		l:          l,
	}
}

type openMeteoGeocodingResponse struct {
	Results []struct {
		Name      string   `json:"name"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Country   string   `json:"country"`
		Admin1    string   `json:"admin1"`
	} `json:"results"`
}

// ForwardGeocode looks the name up verbatim and returns the best match.
func (g *GeocodingRepository) ForwardGeocode(ctx context.Context, name string) (place models.Place, err error) {
	ctx, span := startSpan(ctx, "geocoding.ForwardGeocode")
	span.SetAttributes(attribute.String("query", name))
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream("open-meteo-geocoding", start, err)
		endSpan(span, err)
	}()

	g.l.Info("forward geocoding", map[string]any{"query": name})

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":     name,
			"count":    "1",
			"language": "en",
			"format":   "json",
		}).
		Get(g.forwardURL)
	if err != nil {
		return models.Place{}, &models.GeoError{Kind: models.GeoNetwork, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		return models.Place{}, &models.GeoError{
			Kind: models.GeoOther,
			Err:  fmt.Errorf("geocoding API returned status %d", resp.StatusCode()),
		}
	}

	var body openMeteoGeocodingResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Place{}, &models.GeoError{Kind: models.GeoOther, Err: fmt.Errorf("failed to decode geocoding response: %w", err)}
	}

	if len(body.Results) == 0 {
		return models.Place{}, fmt.Errorf("%w: %q", models.ErrGeoNotFound, name)
	}

	best := body.Results[0]
	if best.Latitude == nil || best.Longitude == nil {
		return models.Place{}, fmt.Errorf("%w: %q has no coordinates", models.ErrGeoPartialResult, name)
	}

	locality := best.Name
	if locality == "" {
		locality = name
	}

	g.l.Debug("forward geocoding resolved", map[string]any{
		"query":    name,
		"locality": locality,
		"country":  best.Country,
	})

	return models.Place{
		Locality:   locality,
		Coordinate: models.Coordinate{Latitude: *best.Latitude, Longitude: *best.Longitude},
	}, nil
}

type nominatimReverseResponse struct {
	Error   string `json:"error"`
	Address *struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		County       string `json:"county"`
	} `json:"address"`
}

func (r nominatimReverseResponse) locality() string {
	if r.Address == nil {
		return ""
	}
	for _, candidate := range []string{r.Address.City, r.Address.Town, r.Address.Village, r.Address.Municipality, r.Address.County} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// ReverseGeocode names the locality at coord. An empty Locality means the
// position matched but no settlement name was available.
func (g *GeocodingRepository) ReverseGeocode(ctx context.Context, coord models.Coordinate) (place models.Place, err error) {
	ctx, span := startSpan(ctx, "geocoding.ReverseGeocode")
	span.SetAttributes(
		attribute.Float64("latitude", coord.Latitude),
		attribute.Float64("longitude", coord.Longitude),
	)
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream("nominatim", start, err)
		endSpan(span, err)
	}()

	g.l.Info("reverse geocoding", map[string]any{"coordinate": coord.String()})

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "jsonv2",
			"lat":    strconv.FormatFloat(coord.Latitude, 'f', -1, 64),
			"lon":    strconv.FormatFloat(coord.Longitude, 'f', -1, 64),
			"zoom":   "10",
		}).
		Get(g.reverseURL)
	if err != nil {
		return models.Place{}, &models.GeoError{Kind: models.GeoNetwork, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		return models.Place{}, &models.GeoError{
			Kind: models.GeoOther,
			Err:  fmt.Errorf("reverse geocoding returned status %d", resp.StatusCode()),
		}
	}

	var body nominatimReverseResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Place{}, &models.GeoError{Kind: models.GeoOther, Err: fmt.Errorf("failed to decode reverse geocoding response: %w", err)}
	}

	if body.Error != "" {
		return models.Place{}, fmt.Errorf("%w: %s", models.ErrGeoNotFound, body.Error)
	}

	return models.Place{Locality: body.locality(), Coordinate: coord}, nil
}

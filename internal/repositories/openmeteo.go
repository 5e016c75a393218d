package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"weather-forecast/internal/forecast"
	"weather-forecast/internal/models"
	"weather-forecast/pkg/logger"
	"weather-forecast/pkg/metrics"
)

const (
	OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

	openMeteoDailyFields = "temperature_2m_max,weathercode"
)

type OpenMeteoRepository struct {
	baseURL    string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenMeteoRepository(l *logger.Logger, httpClient HTTPClient, baseURL string) *OpenMeteoRepository {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OpenMeteoRepository{
		baseURL:    baseURL,
		httpClient: httpClient,
		l:          l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

// OpenMeteoErrorResponse is the body Open-Meteo sends with 4xx responses.
type OpenMeteoErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// FetchForecast issues one GET for the request's date range and assembles
// the daily records. Nothing is retried or cached.
func (o *OpenMeteoRepository) FetchForecast(ctx context.Context, req models.ForecastRequest) (days []models.DailyForecast, err error) {
	ctx, span := startSpan(ctx, "open-meteo.FetchForecast")
	span.SetAttributes(
		attribute.Float64("latitude", req.Coordinate.Latitude),
		attribute.Float64("longitude", req.Coordinate.Longitude),
	)
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(o.Name(), start, err)
		endSpan(span, err)
	}()

	reqURL, err := o.buildURL(req)
	if err != nil {
		return nil, err
	}

	o.l.Info("making openmeteo API request", map[string]any{
		"params": req.RequestParams(),
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, &models.NetworkError{Kind: classifyNetworkError(err), Err: err}
	}
	defer resp.Body.Close()

	o.l.Info("received openmeteo API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.NetworkError{Kind: classifyNetworkError(err), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp OpenMeteoErrorResponse
		if jsonErr := json.Unmarshal(body, &errorResp); jsonErr == nil && errorResp.Error {
			return nil, &models.NetworkError{
				Kind: models.NetworkOther,
				Err:  fmt.Errorf("API error (status %d): %s", resp.StatusCode, errorResp.Reason),
			}
		}
		return nil, &models.NetworkError{
			Kind: models.NetworkOther,
			Err:  fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status),
		}
	}

	raw, err := decodeOpenMeteoDaily(body)
	if err != nil {
		return nil, err
	}

	o.l.Info("parsed API response", map[string]any{
		"days": len(raw.Time),
	})

	return forecast.Assemble(raw)
}

func (o *OpenMeteoRepository) buildURL(req models.ForecastRequest) (string, error) {
	lat, lon := req.Coordinate.Latitude, req.Coordinate.Longitude
	if !isFinite(lat) || !isFinite(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", fmt.Errorf("%w: coordinate out of range (%v, %v)", models.ErrInvalidRequest, lat, lon)
	}
	if req.EndDate.Before(req.StartDate) {
		return "", fmt.Errorf("%w: end date %s before start date %s", models.ErrInvalidRequest,
			req.EndDate.Format(models.APIDateLayout), req.StartDate.Format(models.APIDateLayout))
	}

	raw := fmt.Sprintf("%s?latitude=%s&longitude=%s&daily=%s&start_date=%s&end_date=%s&timezone=auto",
		o.baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
		openMeteoDailyFields,
		req.StartDate.Format(models.APIDateLayout),
		req.EndDate.Format(models.APIDateLayout),
	)

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: malformed URL %q", models.ErrInvalidRequest, raw)
	}

	return u.String(), nil
}

func decodeOpenMeteoDaily(body []byte) (models.RawForecastResponse, error) {
	var response struct {
		Daily *models.RawForecastResponse `json:"daily"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		if errors.Is(err, models.ErrDecode) {
			return models.RawForecastResponse{}, err
		}
		return models.RawForecastResponse{}, fmt.Errorf("%w: %v", models.ErrDecode, err)
	}
	if response.Daily == nil {
		return models.RawForecastResponse{}, fmt.Errorf("%w: missing daily", models.ErrDecode)
	}
	if err := forecast.Validate(*response.Daily); err != nil {
		return models.RawForecastResponse{}, err
	}

	return *response.Daily, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

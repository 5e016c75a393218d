package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-forecast/internal/location"
	"weather-forecast/internal/models"
	"weather-forecast/internal/services/weather"
	"weather-forecast/pkg/httpserver"
	"weather-forecast/pkg/logger"
)

type stubForecasts struct {
	err error
}

func (s *stubForecasts) FetchForecast(ctx context.Context, req models.ForecastRequest) ([]models.DailyForecast, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.DailyForecast{
		{Date: "Mon, 5 August", Temperature: 21.5, Description: "Clear", IconID: "sun"},
	}, nil
}

type stubGeocoder struct{}

func (stubGeocoder) ForwardGeocode(ctx context.Context, name string) (models.Place, error) {
	if name != "Paris" {
		return models.Place{}, fmt.Errorf("%w: %q", models.ErrGeoNotFound, name)
	}
	return models.Place{Locality: "Paris", Coordinate: models.Coordinate{Latitude: 48.85, Longitude: 2.35}}, nil
}

func (stubGeocoder) ReverseGeocode(ctx context.Context, coord models.Coordinate) (models.Place, error) {
	return models.Place{Locality: "Berlin", Coordinate: coord}, nil
}

func newTestApp(t *testing.T, forecasts *stubForecasts, provider location.Provider) *fiber.App {
	t.Helper()

	l := logger.NewZapLogger("test-app", "test", io.Discard)
	vm := weather.NewViewModel(forecasts, stubGeocoder{}, provider, l,
		weather.WithClock(func() time.Time { return time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC) }))

	app := httpserver.InitFiberServer("test-app")
	NewRouter(app, vm, l)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, out any) int {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestSearch_Success(t *testing.T) {
	app := newTestApp(t, &stubForecasts{}, location.NewStaticProvider(location.AuthorizationDenied, nil))

	var state weather.State
	status := doJSON(t, app, "POST", "/search", `{"city":"Paris"}`, &state)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, weather.PhaseReady, state.Phase)
	assert.Equal(t, "Paris", state.CityName)
	require.Len(t, state.Forecast, 1)
	assert.Equal(t, "sun", state.Forecast[0].IconID)
	assert.Equal(t, []string{"Paris"}, state.History)
	assert.Nil(t, state.Error)
}

func TestSearch_NotFoundReportedInState(t *testing.T) {
	app := newTestApp(t, &stubForecasts{}, location.NewStaticProvider(location.AuthorizationDenied, nil))

	var state weather.State
	status := doJSON(t, app, "POST", "/search", `{"city":"Atlantis"}`, &state)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, weather.PhaseFailed, state.Phase)
	require.NotNil(t, state.Error)
	assert.NotEmpty(t, state.Error.ID)
	assert.Equal(t, weather.UserMessage(models.ErrGeoNotFound), state.Error.Message)
	assert.Empty(t, state.Forecast)
}

func TestSearch_InvalidBody(t *testing.T) {
	app := newTestApp(t, &stubForecasts{}, location.NewStaticProvider(location.AuthorizationDenied, nil))

	var resp ErrorResponse
	status := doJSON(t, app, "POST", "/search", `{not json`, &resp)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", resp.Error)
}

func TestSearch_EmptyCityRejected(t *testing.T) {
	app := newTestApp(t, &stubForecasts{}, location.NewStaticProvider(location.AuthorizationDenied, nil))

	for _, body := range []string{`{}`, `{"city":""}`} {
		var resp ErrorResponse
		status := doJSON(t, app, "POST", "/search", body, &resp)

		assert.Equal(t, fiber.StatusBadRequest, status, body)
		assert.Equal(t, "City must not be empty", resp.Error)
	}

	var history HistoryResponse
	doJSON(t, app, "GET", "/history", "", &history)
	assert.Empty(t, history.History)

	var state weather.State
	doJSON(t, app, "GET", "/state", "", &state)
	assert.Equal(t, weather.PhaseIdle, state.Phase)
}

func TestHistory_SelectDoesNotAppend(t *testing.T) {
	app := newTestApp(t, &stubForecasts{}, location.NewStaticProvider(location.AuthorizationDenied, nil))

	doJSON(t, app, "POST", "/search", `{"city":"Paris"}`, nil)
	doJSON(t, app, "POST", "/search", `{"city":"Paris"}`, nil)

	var state weather.State
	doJSON(t, app, "POST", "/history/select", `{"city":"Paris"}`, &state)
	assert.Equal(t, weather.PhaseReady, state.Phase)

	var history HistoryResponse
	status := doJSON(t, app, "GET", "/history", "", &history)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"Paris"}, history.History)
}

func TestLocation_GrantedFetchesForecast(t *testing.T) {
	coord := &models.Coordinate{Latitude: 52.52, Longitude: 13.41}
	app := newTestApp(t, &stubForecasts{}, location.NewStaticProvider(location.AuthorizationUndetermined, coord))

	var state weather.State
	status := doJSON(t, app, "POST", "/location", "", &state)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, weather.PhaseReady, state.Phase)
	assert.Equal(t, "Berlin", state.CityName)
}

func TestLocation_DeniedSetsError(t *testing.T) {
	app := newTestApp(t, &stubForecasts{}, location.NewStaticProvider(location.AuthorizationUndetermined, nil))

	var state weather.State
	doJSON(t, app, "POST", "/location", "", &state)

	assert.Equal(t, weather.PhaseFailed, state.Phase)
	require.NotNil(t, state.Error)
	assert.Equal(t, weather.UserMessage(models.ErrLocationPermissionDenied), state.Error.Message)
}

func TestForecast_KeepsPreviousOnNetworkFailure(t *testing.T) {
	forecasts := &stubForecasts{}
	app := newTestApp(t, forecasts, location.NewStaticProvider(location.AuthorizationDenied, nil))

	doJSON(t, app, "POST", "/search", `{"city":"Paris"}`, nil)
	forecasts.err = &models.NetworkError{Kind: models.NetworkTimeout}
	doJSON(t, app, "POST", "/history/select", `{"city":"Paris"}`, nil)

	var forecast ForecastResponse
	status := doJSON(t, app, "GET", "/forecast", "", &forecast)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, weather.PhaseFailed, forecast.Phase)
	assert.Equal(t, "Paris", forecast.CityName)
	assert.Len(t, forecast.Forecast, 1)

	var state weather.State
	doJSON(t, app, "GET", "/state", "", &state)
	require.NotNil(t, state.Error)
	assert.Equal(t, "The request timed out. Please try again later.", state.Error.Message)
}

func TestSwaggerDocRegistered(t *testing.T) {
	app := newTestApp(t, &stubForecasts{}, location.NewStaticProvider(location.AuthorizationDenied, nil))

	resp, err := app.Test(httptest.NewRequest("GET", "/swagger/doc.json", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"/search"`)
}

func TestHealthcheck(t *testing.T) {
	app := newTestApp(t, &stubForecasts{}, location.NewStaticProvider(location.AuthorizationDenied, nil))

	resp, err := app.Test(httptest.NewRequest("GET", "/manage/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

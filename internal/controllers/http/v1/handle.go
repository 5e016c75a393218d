package http

import (
	"github.com/gofiber/fiber/v2"

	"weather-forecast/internal/models"
	"weather-forecast/internal/services/weather"
)

// CityRequest carries a city name exactly as the user typed it.
type CityRequest struct {
	City string `json:"city" example:"Paris"`
}

// ForecastResponse is the forecast part of the observable state.
type ForecastResponse struct {
	Phase    weather.Phase          `json:"phase" example:"ready"`
	CityName string                 `json:"city_name" example:"Paris"`
	Forecast []models.DailyForecast `json:"forecast"`
}

// HistoryResponse lists past city searches in submission order.
type HistoryResponse struct {
	History []string `json:"history" example:"Paris,Berlin"`
}

// ErrorResponse represents a malformed request
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid request body"`
}

// handleState godoc
// @Summary Get observable state
// @Description Forecast list, resolved city, the single error slot and the search history
// @Tags State
// @Produce json
// @Success 200 {object} weather.State
// @Router /state [get]
func (r *routes) handleState(c *fiber.Ctx) error {
	return c.JSON(r.vm.State())
}

// handleForecast godoc
// @Summary Get current forecast
// @Tags State
// @Produce json
// @Success 200 {object} ForecastResponse
// @Router /forecast [get]
func (r *routes) handleForecast(c *fiber.Ctx) error {
	state := r.vm.State()
	return c.JSON(ForecastResponse{
		Phase:    state.Phase,
		CityName: state.CityName,
		Forecast: state.Forecast,
	})
}

// handleHistory godoc
// @Summary Get search history
// @Tags History
// @Produce json
// @Success 200 {object} HistoryResponse
// @Router /history [get]
func (r *routes) handleHistory(c *fiber.Ctx) error {
	return c.JSON(HistoryResponse{History: r.vm.History()})
}

// handleSearch godoc
// @Summary Submit a city search
// @Description Records the city in the history, resolves it and loads its forecast.
// @Description Failures are reported in the state's error slot, not the status code.
// @Tags Weather
// @Accept json
// @Produce json
// @Param request body CityRequest true "City to search"
// @Success 200 {object} weather.State
// @Failure 400 {object} ErrorResponse
// @Router /search [post]
func (r *routes) handleSearch(c *fiber.Ctx) error {
	req, ok := r.parseCity(c)
	if !ok {
		return nil
	}

	if err := r.vm.SubmitCityQuery(c.UserContext(), req.City); err != nil {
		r.l.Debug("search finished with error", map[string]any{"city": req.City, "err": err.Error()})
	}

	return c.JSON(r.vm.State())
}

// handleSelectHistory godoc
// @Summary Select a history entry
// @Description Loads the forecast for a past search without adding to the history.
// @Tags History
// @Accept json
// @Produce json
// @Param request body CityRequest true "History entry"
// @Success 200 {object} weather.State
// @Failure 400 {object} ErrorResponse
// @Router /history/select [post]
func (r *routes) handleSelectHistory(c *fiber.Ctx) error {
	req, ok := r.parseCity(c)
	if !ok {
		return nil
	}

	if err := r.vm.SelectHistoryEntry(c.UserContext(), req.City); err != nil {
		r.l.Debug("history selection finished with error", map[string]any{"city": req.City, "err": err.Error()})
	}

	return c.JSON(r.vm.State())
}

// handleUseLocation godoc
// @Summary Use the device location
// @Description Requests location access if undecided, then loads the forecast for the current position.
// @Tags Weather
// @Produce json
// @Success 200 {object} weather.State
// @Router /location [post]
func (r *routes) handleUseLocation(c *fiber.Ctx) error {
	if err := r.vm.UseDeviceLocation(c.UserContext()); err != nil {
		r.l.Debug("device location finished with error", map[string]any{"err": err.Error()})
	}

	return c.JSON(r.vm.State())
}

func (r *routes) parseCity(c *fiber.Ctx) (CityRequest, bool) {
	var req CityRequest
	if err := c.BodyParser(&req); err != nil {
		r.l.Warning("invalid request body", map[string]any{"err": err.Error()})
		_ = c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
		return req, false
	}
	if req.City == "" {
		_ = c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "City must not be empty"})
		return req, false
	}
	return req, true
}

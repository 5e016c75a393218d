package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weather-forecast/docs"
	"weather-forecast/internal/services/weather"
	"weather-forecast/pkg/logger"
	"weather-forecast/pkg/metrics"
)

type routes struct {
	vm *weather.ViewModel
	l  *logger.Logger
}

func NewRouter(
	app *fiber.App,
	vm *weather.ViewModel,
	l *logger.Logger,
) {
	r := &routes{
		vm: vm,
		l:  l,
	}

	app.Get("/metrics", metrics.Handler())

	app.Get("/swagger/*", swagger.New(swagger.Config{
		DeepLinking: true,
	}))

	app.Get("/state", r.handleState)
	app.Get("/forecast", r.handleForecast)
	app.Get("/history", r.handleHistory)

	app.Post("/search", r.handleSearch)
	app.Post("/history/select", r.handleSelectHistory)
	app.Post("/location", r.handleUseLocation)
}

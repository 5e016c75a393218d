package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-forecast/config"
	v1 "weather-forecast/internal/controllers/http/v1"
	"weather-forecast/internal/location"
	"weather-forecast/internal/repositories"
	"weather-forecast/internal/services/weather"
	"weather-forecast/pkg/httpserver"
	"weather-forecast/pkg/logger"
	"weather-forecast/pkg/observe"
)

// @title Weather Forecast API
// @version 1.0.0
// @description Resolves a city or the device location and serves a multi-day Open-Meteo forecast.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf := config.NewConfig()

	writers := []io.Writer{os.Stdout}
	var sentryHook *observe.SentryHook
	if cnf.SentryDSN != "" {
		sentryHook = observe.NewSentryHook(cnf.AppEnv, cnf.AppName, cnf.AppVersion, false, cnf.SentryDSN)
		sentryHook.SetLogger(logger.NewZapLogger(cnf.AppName, cnf.AppEnv, os.Stderr))
		writers = append(writers, sentryHook)
	}

	l := logger.NewZapLogger(cnf.AppName, cnf.AppEnv, writers...)

	var shutdownTracing observe.Shutdown
	if cnf.TracingEnabled {
		var err error
		if shutdownTracing, err = observe.InitTracing(os.Stderr); err != nil {
			l.Fatal("cannot init tracing", map[string]any{"err": err})
		}
	}

	httpClient := &http.Client{Timeout: cnf.HTTPTimeout}

	forecasts := repositories.NewOpenMeteoRepository(l, httpClient, cnf.ForecastBaseURL)

	geocoder := repositories.NewRateLimitedGeocoder(
		repositories.NewGeocodingRepository(l, repositories.GeocodingOptions{
			ForwardURL: cnf.GeocodingBaseURL,
			ReverseURL: cnf.ReverseGeocodingBaseURL,
			UserAgent:  cnf.UserAgent,
			Timeout:    cnf.HTTPTimeout,
		}),
		cnf.ReverseGeocodingRPS,
		1,
	)

	provider := location.NewStaticProvider(cnf.Authorization(), cnf.DeviceCoordinate())

	vm := weather.NewViewModel(forecasts, geocoder, provider, l,
		weather.WithForecastDays(cnf.ForecastDays),
	)

	app := httpserver.InitFiberServer(cnf.AppName)

	v1.NewRouter(
		app,
		vm,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Port})

	if cnf.LaunchWithDeviceLocation {
		go func() {
			if err := vm.UseDeviceLocation(ctx); err != nil {
				l.Warning("launch location lookup failed", map[string]any{"err": err.Error()})
			}
		}()
	}

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if shutdownTracing != nil {
			_ = shutdownTracing(shutdownCtx)
		}
		if sentryHook != nil {
			sentryHook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}

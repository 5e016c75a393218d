package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"weather-forecast/internal/location"
	"weather-forecast/internal/models"
	"weather-forecast/internal/repositories"
	"weather-forecast/pkg/logger"
	"weather-forecast/pkg/metrics"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseResolving Phase = "resolving"
	PhaseFetching  Phase = "fetching"
	PhaseReady     Phase = "ready"
	PhaseFailed    Phase = "failed"
)

const (
	intentSearch   = "search"
	intentHistory  = "history"
	intentLocation = "location"
)

// ErrorState is the single visible error. A fresh ID is minted for every
// failure so repeated identical messages remain distinguishable.
type ErrorState struct {
	ID      string `json:"id" example:"6f1c1c36-3c2e-4c8e-9a53-1f1e0b0e6a0d"`
	Message string `json:"message" example:"No internet connection. Please check your network settings and try again."`
}

// State is everything the presentation layer observes.
type State struct {
	Phase    Phase                  `json:"phase" example:"ready"`
	CityName string                 `json:"city_name" example:"Paris"`
	Forecast []models.DailyForecast `json:"forecast"`
	Error    *ErrorState            `json:"error,omitempty"`
	History  []string               `json:"history"`
}

type ForecastFetcher interface {
	FetchForecast(ctx context.Context, req models.ForecastRequest) ([]models.DailyForecast, error)
}

type Option func(*ViewModel)

// WithClock overrides the source of "today" for the forecast range.
func WithClock(now func() time.Time) Option {
	return func(vm *ViewModel) {
		vm.now = now
	}
}

func WithForecastDays(days int) Option {
	return func(vm *ViewModel) {
		if days > 0 {
			vm.forecastDays = days
		}
	}
}

// ViewModel orchestrates geocoding, device location and forecast fetches
// and owns the observable state.
//
// Actions are not cancelled when a newer one starts: whichever finishes last
// determines the displayed state. Every transition is one locked assignment,
// so readers never see a city name without its forecast.
type ViewModel struct {
	forecasts ForecastFetcher
	geocoder  repositories.Geocoder
	location  location.Provider
	l         *logger.Logger

	now          func() time.Time
	forecastDays int

	mu      sync.RWMutex
	state   State
	history *SearchHistory
}

func NewViewModel(
	forecasts ForecastFetcher,
	geocoder repositories.Geocoder,
	provider location.Provider,
	l *logger.Logger,
	opts ...Option,
) *ViewModel {
	vm := &ViewModel{
		forecasts:    forecasts,
		geocoder:     geocoder,
		location:     provider,
		l:            l,
		now:          time.Now,
		forecastDays: models.DefaultForecastDays,
		state:        State{Phase: PhaseIdle},
		history:      NewSearchHistory(),
	}

	for _, opt := range opts {
		opt(vm)
	}

	return vm
}

// State returns a snapshot of the observable state.
func (vm *ViewModel) State() State {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	s := vm.state
	s.Forecast = append([]models.DailyForecast(nil), vm.state.Forecast...)
	if vm.state.Error != nil {
		e := *vm.state.Error
		s.Error = &e
	}
	s.History = vm.history.Entries()

	return s
}

func (vm *ViewModel) History() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	return vm.history.Entries()
}

// SubmitCityQuery records name in the search history, then resolves it and
// loads its forecast. The name is passed to the geocoder untouched.
func (vm *ViewModel) SubmitCityQuery(ctx context.Context, name string) error {
	vm.mu.Lock()
	added := vm.history.Add(name)
	vm.mu.Unlock()

	vm.l.Info("city query submitted", map[string]any{
		"city":       name,
		"newHistory": added,
	})

	return vm.searchCity(ctx, intentSearch, name)
}

// SelectHistoryEntry repeats a past search without touching the history.
func (vm *ViewModel) SelectHistoryEntry(ctx context.Context, name string) error {
	vm.l.Info("history entry selected", map[string]any{"city": name})

	return vm.searchCity(ctx, intentHistory, name)
}

func (vm *ViewModel) searchCity(ctx context.Context, intent, name string) error {
	vm.setPhase(PhaseResolving)

	place, err := vm.geocoder.ForwardGeocode(ctx, name)
	if err != nil {
		msg := ""
		if errors.Is(err, models.ErrGeoPartialResult) {
			msg = msgCityNotFound
		}
		return vm.fail(intent, errors.Wrapf(err, "forward geocode %q", name), msg)
	}

	return vm.fetch(ctx, intent, place.Locality, place.Coordinate)
}

// UseDeviceLocation asks for location access if it was never decided, waits
// for the first position fix, names it and loads its forecast.
func (vm *ViewModel) UseDeviceLocation(ctx context.Context) error {
	vm.setPhase(PhaseResolving)

	auth := vm.location.Authorization()
	if auth == location.AuthorizationUndetermined {
		var err error
		if auth, err = vm.location.RequestAuthorization(ctx); err != nil {
			return vm.fail(intentLocation, fmt.Errorf("%w: %v", models.ErrLocationUnavailable, err), "")
		}
	}

	switch auth {
	case location.AuthorizationGranted:
	case location.AuthorizationDenied, location.AuthorizationRestricted:
		return vm.fail(intentLocation, errors.Wrapf(models.ErrLocationPermissionDenied, "authorization %s", auth), "")
	default:
		return vm.fail(intentLocation,
			errors.Wrapf(models.ErrLocationUnavailable, "authorization %s", auth),
			"Unknown authorization status. Please try again later.")
	}

	coord, err := vm.firstFix(ctx)
	if err != nil {
		return vm.fail(intentLocation, err, "")
	}

	place, err := vm.geocoder.ReverseGeocode(ctx, coord)
	if err != nil {
		msg := ""
		if errors.Is(err, models.ErrGeoNotFound) || errors.Is(err, models.ErrGeoPartialResult) {
			msg = msgReverseGeocodeFailed
		}
		return vm.fail(intentLocation, errors.Wrapf(err, "reverse geocode %s", coord), msg)
	}

	city := place.Locality
	if city == "" {
		city = unknownLocality
	}

	return vm.fetch(ctx, intentLocation, city, coord)
}

// firstFix subscribes to location updates and stops after the first one.
func (vm *ViewModel) firstFix(ctx context.Context) (models.Coordinate, error) {
	subCtx, stop := context.WithCancel(ctx)
	defer stop()

	updates, err := vm.location.Updates(subCtx)
	if err != nil {
		if errors.Is(err, models.ErrLocationPermissionDenied) {
			return models.Coordinate{}, err
		}
		return models.Coordinate{}, fmt.Errorf("%w: %v", models.ErrLocationUnavailable, err)
	}

	select {
	case update, ok := <-updates:
		if !ok {
			return models.Coordinate{}, errors.Wrap(models.ErrLocationUnavailable, "location updates closed")
		}
		if update.Err != nil {
			if errors.Is(update.Err, models.ErrLocationUnavailable) {
				return models.Coordinate{}, update.Err
			}
			return models.Coordinate{}, fmt.Errorf("%w: %v", models.ErrLocationUnavailable, update.Err)
		}
		return update.Coordinate, nil
	case <-ctx.Done():
		return models.Coordinate{}, fmt.Errorf("%w: %v", models.ErrLocationUnavailable, ctx.Err())
	}
}

func (vm *ViewModel) fetch(ctx context.Context, intent, city string, coord models.Coordinate) error {
	vm.setPhase(PhaseFetching)

	req := models.NewForecastRequest(coord, vm.now(), vm.forecastDays)

	days, err := vm.forecasts.FetchForecast(ctx, req)
	if err != nil {
		return vm.fail(intent, errors.Wrapf(err, "fetch forecast for %s", city), "")
	}

	vm.mu.Lock()
	vm.state.Phase = PhaseReady
	vm.state.CityName = city
	vm.state.Forecast = days
	vm.state.Error = nil
	vm.mu.Unlock()

	metrics.ActionsTotal.WithLabelValues(intent, string(PhaseReady)).Inc()
	vm.l.Info("forecast ready", map[string]any{
		"intent": intent,
		"city":   city,
		"days":   len(days),
	})

	return nil
}

// fail moves to the failed phase and replaces the error slot. The forecast
// and city already on display are left as they were. An empty msg selects
// the default message for err.
func (vm *ViewModel) fail(intent string, err error, msg string) error {
	if msg == "" {
		msg = UserMessage(err)
	}

	vm.mu.Lock()
	vm.state.Phase = PhaseFailed
	vm.state.Error = &ErrorState{ID: uuid.NewString(), Message: msg}
	vm.mu.Unlock()

	metrics.ActionsTotal.WithLabelValues(intent, string(PhaseFailed)).Inc()
	metrics.ActionErrors.WithLabelValues(errorKind(err)).Inc()
	vm.l.Error(err, map[string]any{
		"intent":  intent,
		"message": msg,
	})

	return err
}

func (vm *ViewModel) setPhase(p Phase) {
	vm.mu.Lock()
	vm.state.Phase = p
	vm.mu.Unlock()
}

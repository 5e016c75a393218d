package repositories

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"weather-forecast/internal/models"
)

// RateLimitedGeocoder throttles reverse lookups. Nominatim's usage policy
// allows at most one request per second; forward lookups pass through.
type RateLimitedGeocoder struct {
	geocoder Geocoder
	limiter  *rate.Limiter
}

// NewRateLimitedGeocoder allows rps reverse lookups per second with the given burst.
func NewRateLimitedGeocoder(geocoder Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedGeocoder{
		geocoder: geocoder,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedGeocoder) ForwardGeocode(ctx context.Context, name string) (models.Place, error) {
	return r.geocoder.ForwardGeocode(ctx, name)
}

func (r *RateLimitedGeocoder) ReverseGeocode(ctx context.Context, coord models.Coordinate) (models.Place, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.Place{}, &models.GeoError{Kind: models.GeoOther, Err: fmt.Errorf("rate limit wait canceled: %w", err)}
	}

	return r.geocoder.ReverseGeocode(ctx, coord)
}

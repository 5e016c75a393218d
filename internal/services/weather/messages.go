package weather

import (
	"github.com/pkg/errors"

	"weather-forecast/internal/models"
)

const (
	msgInvalidRequest       = "Failed to create URL. Please try again later."
	msgNoConnectivity       = "No internet connection. Please check your network settings and try again."
	msgTimeout              = "The request timed out. Please try again later."
	msgHostUnreachable      = "Unable to connect to the server. Please try again later."
	msgNetworkOther         = "An unknown network error occurred. Please try again later."
	msgDecode               = "Received an unexpected response from the weather service. Please try again later."
	msgGeoNotFound          = "No results found for the specified city. Please check the city name and try again."
	msgGeoPartialResult     = "Partial results found for the specified city. Please provide a more specific city name."
	msgCityNotFound         = "City not found. Please enter a valid city name."
	msgGeoNetwork           = "Network error occurred while fetching city information. Please try again later."
	msgGeoOther             = "An unknown error occurred while fetching city information. Please try again later."
	msgPermissionDenied     = "Location access denied. Please enable location services in your device settings."
	msgLocationUnavailable  = "Failed to fetch location. Please check your location settings and try again."
	msgReverseGeocodeFailed = "Failed to determine city name. Please try again later."
	msgUnknown              = "An unknown error occurred. Please try again later."

	unknownLocality = "Unknown location"
)

// UserMessage renders err as the single line shown in the error slot.
func UserMessage(err error) string {
	var (
		netErr *models.NetworkError
		geoErr *models.GeoError
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, models.ErrInvalidRequest):
		return msgInvalidRequest
	case errors.Is(err, models.ErrDecode):
		return msgDecode
	case errors.Is(err, models.ErrGeoNotFound):
		return msgGeoNotFound
	case errors.Is(err, models.ErrGeoPartialResult):
		return msgGeoPartialResult
	case errors.Is(err, models.ErrLocationPermissionDenied):
		return msgPermissionDenied
	case errors.Is(err, models.ErrLocationUnavailable):
		return msgLocationUnavailable
	case errors.As(err, &netErr):
		switch netErr.Kind {
		case models.NetworkNoConnectivity:
			return msgNoConnectivity
		case models.NetworkTimeout:
			return msgTimeout
		case models.NetworkHostUnreachable:
			return msgHostUnreachable
		default:
			return msgNetworkOther
		}
	case errors.As(err, &geoErr):
		if geoErr.Kind == models.GeoNetwork {
			return msgGeoNetwork
		}
		return msgGeoOther
	default:
		return msgUnknown
	}
}

// errorKind is the metrics label for err.
func errorKind(err error) string {
	var (
		netErr *models.NetworkError
		geoErr *models.GeoError
	)

	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, models.ErrDecode):
		return "decode"
	case errors.Is(err, models.ErrGeoNotFound):
		return "geo_not_found"
	case errors.Is(err, models.ErrGeoPartialResult):
		return "geo_partial_result"
	case errors.Is(err, models.ErrLocationPermissionDenied):
		return "location_permission_denied"
	case errors.Is(err, models.ErrLocationUnavailable):
		return "location_unavailable"
	case errors.As(err, &netErr):
		return "network_" + string(netErr.Kind)
	case errors.As(err, &geoErr):
		return "geo_" + string(geoErr.Kind)
	default:
		return "unknown"
	}
}

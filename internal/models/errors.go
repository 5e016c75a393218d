package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest           = errors.New("invalid forecast request")
	ErrDecode                   = errors.New("failed to decode forecast response")
	ErrGeoNotFound              = errors.New("no geocoding match")
	ErrGeoPartialResult         = errors.New("partial geocoding result")
	ErrLocationPermissionDenied = errors.New("location permission denied")
	ErrLocationUnavailable      = errors.New("location unavailable")
)

type NetworkErrorKind string

const (
	NetworkNoConnectivity  NetworkErrorKind = "no-connectivity"
	NetworkTimeout         NetworkErrorKind = "timeout"
	NetworkHostUnreachable NetworkErrorKind = "host-unreachable"
	NetworkOther           NetworkErrorKind = "other"
)

// NetworkError is a failed forecast round-trip.
type NetworkError struct {
	Kind NetworkErrorKind
	Err  error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("network error (%s)", e.Kind)
	}
	return fmt.Sprintf("network error (%s): %v", e.Kind, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type GeoErrorKind string

const (
	GeoNetwork GeoErrorKind = "network"
	GeoOther   GeoErrorKind = "other"
)

// GeoError is a geocoding failure that is not a plain "no match".
type GeoError struct {
	Kind GeoErrorKind
	Err  error
}

func (e *GeoError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("geocoding error (%s)", e.Kind)
	}
	return fmt.Sprintf("geocoding error (%s): %v", e.Kind, e.Err)
}

func (e *GeoError) Unwrap() error {
	return e.Err
}

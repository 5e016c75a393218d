package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// APIDateLayout is the yyyy-MM-dd layout used on the wire by Open-Meteo.
	APIDateLayout = "2006-01-02"

	DefaultForecastDays = 15
)

type Coordinate struct {
	Latitude  float64 `json:"latitude" example:"48.8566"`
	Longitude float64 `json:"longitude" example:"2.3522"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f", c.Latitude, c.Longitude)
}

// ForecastRequest is an inclusive date range for one coordinate.
type ForecastRequest struct {
	Coordinate Coordinate
	StartDate  time.Time
	EndDate    time.Time
}

// NewForecastRequest builds the range now .. now+days in now's location.
func NewForecastRequest(coord Coordinate, now time.Time, days int) ForecastRequest {
	if days < 0 {
		days = 0
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return ForecastRequest{
		Coordinate: coord,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, days),
	}
}

func (r ForecastRequest) RequestParams() string {
	return fmt.Sprintf("%s start: %s end: %s", r.Coordinate, r.StartDate.Format(APIDateLayout), r.EndDate.Format(APIDateLayout))
}

// RawForecastResponse holds the index-aligned daily arrays of an Open-Meteo response.
// Nil slices mean the field was absent from the payload.
type RawForecastResponse struct {
	Time             []string  `json:"time"`
	Temperature2mMax []float64 `json:"temperature_2m_max"`
	WeatherCode      []int     `json:"weathercode"`
}

// UnmarshalJSON rejects null elements. Open-Meteo sends null for days it has
// no data for, and those must not decode as zero values.
func (r *RawForecastResponse) UnmarshalJSON(data []byte) error {
	var aux struct {
		Time             []*string  `json:"time"`
		Temperature2mMax []*float64 `json:"temperature_2m_max"`
		WeatherCode      []*int     `json:"weathercode"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if r.Time, err = derefAll(aux.Time, "time"); err != nil {
		return err
	}
	if r.Temperature2mMax, err = derefAll(aux.Temperature2mMax, "temperature_2m_max"); err != nil {
		return err
	}
	if r.WeatherCode, err = derefAll(aux.WeatherCode, "weathercode"); err != nil {
		return err
	}

	return nil
}

func derefAll[T any](in []*T, field string) ([]T, error) {
	if in == nil {
		return nil, nil
	}

	out := make([]T, len(in))
	for i, v := range in {
		if v == nil {
			return nil, fmt.Errorf("%w: null at daily.%s[%d]", ErrDecode, field, i)
		}
		out[i] = *v
	}

	return out, nil
}

// DailyForecast is one display-ready day.
type DailyForecast struct {
	Date        string  `json:"date" example:"Mon, 5 August"`
	Temperature float64 `json:"temperature" example:"21.5"`
	Description string  `json:"description" example:"Clear"`
	IconID      string  `json:"icon_id" example:"sun"`
}

// Place is a geocoding result. Locality may be empty when the provider
// matched the position but could not name it.
type Place struct {
	Locality   string     `json:"locality" example:"Paris"`
	Coordinate Coordinate `json:"coordinate"`
}

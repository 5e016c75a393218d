// Package forecast turns decoded Open-Meteo daily arrays into display records.
package forecast

import (
	"fmt"
	"time"

	"weather-forecast/internal/models"
)

// DisplayDateLayout renders 2024-08-05 as "Mon, 5 August".
const DisplayDateLayout = "Mon, 2 January"

// Assemble zips the daily arrays into one record per day, preserving order.
// Arrays of different lengths are a decode error.
func Assemble(raw models.RawForecastResponse) ([]models.DailyForecast, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}

	days := make([]models.DailyForecast, 0, len(raw.Time))
	for i := range raw.Time {
		condition := Classify(raw.WeatherCode[i])

		days = append(days, models.DailyForecast{
			Date:        FormatDate(raw.Time[i]),
			Temperature: raw.Temperature2mMax[i],
			Description: condition.Description,
			IconID:      condition.IconID,
		})
	}

	return days, nil
}

// Validate checks that all three arrays are present and index-aligned.
func Validate(raw models.RawForecastResponse) error {
	switch {
	case raw.Time == nil:
		return fmt.Errorf("%w: missing daily.time", models.ErrDecode)
	case raw.Temperature2mMax == nil:
		return fmt.Errorf("%w: missing daily.temperature_2m_max", models.ErrDecode)
	case raw.WeatherCode == nil:
		return fmt.Errorf("%w: missing daily.weathercode", models.ErrDecode)
	}

	if len(raw.Time) != len(raw.Temperature2mMax) || len(raw.Time) != len(raw.WeatherCode) {
		return fmt.Errorf("%w: daily arrays differ in length (time=%d temperature_2m_max=%d weathercode=%d)",
			models.ErrDecode, len(raw.Time), len(raw.Temperature2mMax), len(raw.WeatherCode))
	}

	return nil
}

// FormatDate reformats a yyyy-MM-dd date for display. Dates that do not
// parse are returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(models.APIDateLayout, date)
	if err != nil {
		return date
	}

	return t.Format(DisplayDateLayout)
}

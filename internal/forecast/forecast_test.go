package forecast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-forecast/internal/forecast"
	"weather-forecast/internal/models"
)

func TestClassify_Table(t *testing.T) {
	tests := []struct {
		codes       []int
		description string
		icon        string
	}{
		{[]int{0}, "Clear", "sun"},
		{[]int{1, 2}, "Partly Cloudy", "cloud-sun"},
		{[]int{3}, "Cloudy", "cloud"},
		{[]int{45, 48}, "Foggy", "cloud-fog"},
		{[]int{51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 80, 81, 82}, "Rainy", "cloud-rain"},
		{[]int{71, 73, 75, 77, 85, 86}, "Snowy", "cloud-snow"},
		{[]int{95, 96, 99}, "Stormy", "cloud-bolt-rain"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			for _, code := range tt.codes {
				c := forecast.Classify(code)
				assert.Equal(t, tt.description, c.Description, "code %d", code)
				assert.Equal(t, tt.icon, c.IconID, "code %d", code)
			}
		})
	}
}

func TestClassify_UnknownCodes(t *testing.T) {
	for _, code := range []int{-1, 4, 44, 50, 52, 60, 70, 90, 98, 100, 1 << 20} {
		c := forecast.Classify(code)
		assert.Equal(t, "Unknown", c.Description, "code %d", code)
		assert.Equal(t, "question-mark", c.IconID, "code %d", code)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mon, 5 August", forecast.FormatDate("2024-08-05"))
	assert.Equal(t, "Tue, 31 December", forecast.FormatDate("2024-12-31"))
	assert.Equal(t, "not-a-date", forecast.FormatDate("not-a-date"))
	assert.Equal(t, "", forecast.FormatDate(""))
}

func TestAssemble_Success(t *testing.T) {
	raw := models.RawForecastResponse{
		Time:             []string{"2024-08-05", "2024-08-06"},
		Temperature2mMax: []float64{21.5, 19.0},
		WeatherCode:      []int{0, 61},
	}

	got, err := forecast.Assemble(raw)
	require.NoError(t, err)

	want := []models.DailyForecast{
		{Date: "Mon, 5 August", Temperature: 21.5, Description: "Clear", IconID: "sun"},
		{Date: "Tue, 6 August", Temperature: 19.0, Description: "Rainy", IconID: "cloud-rain"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_PreservesOrderAndPassesThroughBadDates(t *testing.T) {
	raw := models.RawForecastResponse{
		Time:             []string{"2024-08-07", "garbage", "2024-08-05"},
		Temperature2mMax: []float64{1, 2, 3},
		WeatherCode:      []int{3, 999, 95},
	}

	got, err := forecast.Assemble(raw)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Wed, 7 August", got[0].Date)
	assert.Equal(t, "garbage", got[1].Date)
	assert.Equal(t, "Unknown", got[1].Description)
	assert.Equal(t, "Mon, 5 August", got[2].Date)
	assert.Equal(t, "Stormy", got[2].Description)
}

func TestAssemble_Empty(t *testing.T) {
	got, err := forecast.Assemble(models.RawForecastResponse{
		Time:             []string{},
		Temperature2mMax: []float64{},
		WeatherCode:      []int{},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAssemble_LengthMismatch(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawForecastResponse
	}{
		{
			name: "short temperatures",
			raw: models.RawForecastResponse{
				Time:             []string{"2024-08-05", "2024-08-06"},
				Temperature2mMax: []float64{21.5},
				WeatherCode:      []int{0, 61},
			},
		},
		{
			name: "long weather codes",
			raw: models.RawForecastResponse{
				Time:             []string{"2024-08-05"},
				Temperature2mMax: []float64{21.5},
				WeatherCode:      []int{0, 61},
			},
		},
		{
			name: "missing weather codes",
			raw: models.RawForecastResponse{
				Time:             []string{"2024-08-05"},
				Temperature2mMax: []float64{21.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := forecast.Assemble(tt.raw)
			require.ErrorIs(t, err, models.ErrDecode)
			assert.Nil(t, got)
		})
	}
}

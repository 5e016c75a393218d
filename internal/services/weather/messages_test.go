package weather

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"weather-forecast/internal/models"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"invalid request", fmt.Errorf("%w: NaN", models.ErrInvalidRequest), msgInvalidRequest},
		{"decode", fmt.Errorf("%w: bad json", models.ErrDecode), msgDecode},
		{"no connectivity", &models.NetworkError{Kind: models.NetworkNoConnectivity}, msgNoConnectivity},
		{"timeout", &models.NetworkError{Kind: models.NetworkTimeout}, msgTimeout},
		{"host unreachable", &models.NetworkError{Kind: models.NetworkHostUnreachable}, msgHostUnreachable},
		{"network other", &models.NetworkError{Kind: models.NetworkOther}, msgNetworkOther},
		{"geo not found", models.ErrGeoNotFound, msgGeoNotFound},
		{"geo partial", models.ErrGeoPartialResult, msgGeoPartialResult},
		{"geo network", &models.GeoError{Kind: models.GeoNetwork}, msgGeoNetwork},
		{"geo other", &models.GeoError{Kind: models.GeoOther}, msgGeoOther},
		{"permission", models.ErrLocationPermissionDenied, msgPermissionDenied},
		{"unavailable", models.ErrLocationUnavailable, msgLocationUnavailable},
		{"wrapped", pkgerrors.Wrap(&models.NetworkError{Kind: models.NetworkTimeout}, "fetch forecast"), msgTimeout},
		{"unknown", errors.New("boom"), msgUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "network_no-connectivity", errorKind(&models.NetworkError{Kind: models.NetworkNoConnectivity}))
	assert.Equal(t, "geo_network", errorKind(&models.GeoError{Kind: models.GeoNetwork}))
	assert.Equal(t, "decode", errorKind(pkgerrors.Wrap(models.ErrDecode, "x")))
	assert.Equal(t, "unknown", errorKind(errors.New("boom")))
}

func TestSearchHistory(t *testing.T) {
	h := NewSearchHistory()

	assert.True(t, h.Add("Paris"))
	assert.True(t, h.Add("paris"))
	assert.False(t, h.Add("Paris"))
	assert.True(t, h.Add("Berlin"))

	assert.Equal(t, []string{"Paris", "paris", "Berlin"}, h.Entries())
	assert.Equal(t, 3, h.Len())

	entries := h.Entries()
	entries[0] = "mutated"
	assert.Equal(t, "Paris", h.Entries()[0])
}

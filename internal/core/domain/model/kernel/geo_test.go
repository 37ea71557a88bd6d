package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porter/internal/core/domain/model/kernel"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		address   string
		wantErr   bool
	}{
		{
			name:      "valid point",
			latitude:  12.9716,
			longitude: 77.5946,
			address:   "MG Road, Bengaluru",
			wantErr:   false,
		},
		{
			name:      "valid point at bounds",
			latitude:  kernel.GeoLatitudeMax,
			longitude: kernel.GeoLongitudeMin,
			address:   "North Pole, somehow",
			wantErr:   false,
		},
		{
			name:      "latitude too small",
			latitude:  -90.5,
			longitude: 0,
			address:   "nowhere",
			wantErr:   true,
		},
		{
			name:      "latitude too large",
			latitude:  91,
			longitude: 0,
			address:   "nowhere",
			wantErr:   true,
		},
		{
			name:      "longitude too small",
			latitude:  0,
			longitude: -180.01,
			address:   "nowhere",
			wantErr:   true,
		},
		{
			name:      "longitude too large",
			latitude:  0,
			longitude: 181,
			address:   "nowhere",
			wantErr:   true,
		},
		{
			name:      "missing address",
			latitude:  12.9716,
			longitude: 77.5946,
			address:   "",
			wantErr:   true,
		},
		{
			name:      "multiple violations reported together",
			latitude:  100,
			longitude: 200,
			address:   "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.latitude, tt.longitude, tt.address)

			if tt.wantErr {
				require.Error(t, err)
				assert.Error(t, p.Validate())
				return
			}

			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.Equal(t, tt.latitude, p.Latitude())
			assert.Equal(t, tt.longitude, p.Longitude())
			assert.Equal(t, tt.address, p.Address())
		})
	}
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var p kernel.GeoPoint
		require.Error(t, p.Validate())
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, p.Validate())
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal coordinates, address ignored", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road")
		p2, _ := kernel.NewGeoPoint(12.9716, 77.5946, "Mahatma Gandhi Road")

		equal, err := p1.IsEqual(p2)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different coordinates", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road")
		p2, _ := kernel.NewGeoPoint(13.0827, 80.2707, "Marina Beach")

		equal, err := p1.IsEqual(p2)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("zero value operand fails", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road")
		var p2 kernel.GeoPoint

		_, err := p1.IsEqual(p2)
		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance between two cities", func(t *testing.T) {
		bengaluru, _ := kernel.NewGeoPoint(12.9716, 77.5946, "Bengaluru")
		chennai, _ := kernel.NewGeoPoint(13.0827, 80.2707, "Chennai")

		d, err := bengaluru.DistanceKm(chennai)
		require.NoError(t, err)
		// Great-circle distance is roughly 290 km.
		assert.InDelta(t, 290, d, 10)
	})

	t.Run("distance to self is zero", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road")

		d, err := p.DistanceKm(p)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(12.9716, 77.5946, "Bengaluru")
		p2, _ := kernel.NewGeoPoint(28.6139, 77.2090, "New Delhi")

		d1, err := p1.DistanceKm(p2)
		require.NoError(t, err)
		d2, err := p2.DistanceKm(p1)
		require.NoError(t, err)
		assert.InDelta(t, d1, d2, 1e-9)
	})
}

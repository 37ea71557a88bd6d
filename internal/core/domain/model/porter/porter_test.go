package porter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/porter"
	"porter/internal/pkg/errs"
)

func TestNewPorter(t *testing.T) {
	t.Run("should create porter with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		p, err := porter.NewPorter(id, "Ravi Kumar", "+919876543210")

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "Ravi Kumar", p.Name())
		assert.Equal(t, "+919876543210", p.Phone())
		assert.Equal(t, 0.0, p.Rating())
		assert.Nil(t, p.Location())
		assert.True(t, p.ReportedAt().IsZero())
	})

	t.Run("should reject missing name", func(t *testing.T) {
		_, err := porter.NewPorter(kernel.NewUUID(), "", "+919876543210")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject missing phone", func(t *testing.T) {
		_, err := porter.NewPorter(kernel.NewUUID(), "Ravi Kumar", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should report all violations together", func(t *testing.T) {
		_, err := porter.NewPorter(kernel.UUID{}, "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "phone")
	})

	t.Run("should reject zero-value porter on Validate", func(t *testing.T) {
		var p porter.Porter

		assert.Equal(t, porter.ErrPorterIsNotConstructed, p.Validate())
	})
}

func TestPorter_Rate(t *testing.T) {
	t.Run("should overwrite the previous rating", func(t *testing.T) {
		p, err := porter.NewPorter(kernel.NewUUID(), "Ravi Kumar", "+919876543210")
		require.NoError(t, err)

		require.NoError(t, p.Rate(4.5))
		assert.Equal(t, 4.5, p.Rating())

		require.NoError(t, p.Rate(2.0))
		assert.Equal(t, 2.0, p.Rating())
	})

	t.Run("should reject out-of-range ratings", func(t *testing.T) {
		p, err := porter.NewPorter(kernel.NewUUID(), "Ravi Kumar", "+919876543210")
		require.NoError(t, err)

		for _, rating := range []float64{-0.1, 5.1, 100} {
			err := p.Rate(rating)

			require.Error(t, err, "rating %v", rating)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})
}

func TestPorter_ReportLocation(t *testing.T) {
	t.Run("should record the device position", func(t *testing.T) {
		p, err := porter.NewPorter(kernel.NewUUID(), "Ravi Kumar", "+919876543210")
		require.NoError(t, err)

		fix, err := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road")
		require.NoError(t, err)
		reportedAt := time.Now()

		require.NoError(t, p.ReportLocation(fix, reportedAt))
		require.NotNil(t, p.Location())
		equal, err := p.Location().IsEqual(fix)
		require.NoError(t, err)
		assert.True(t, equal)
		assert.Equal(t, reportedAt, p.ReportedAt())
	})

	t.Run("should reject an invalid position", func(t *testing.T) {
		p, err := porter.NewPorter(kernel.NewUUID(), "Ravi Kumar", "+919876543210")
		require.NoError(t, err)

		require.Error(t, p.ReportLocation(kernel.GeoPoint{}, time.Now()))
		assert.Nil(t, p.Location())
	})
}

func TestRestorePorter(t *testing.T) {
	t.Run("should restore porter with rating and location", func(t *testing.T) {
		fix, err := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road")
		require.NoError(t, err)
		reportedAt := time.Now().Add(-time.Minute)

		p, err := porter.RestorePorter(
			kernel.NewUUID(), "Ravi Kumar", "+919876543210", 4.2, &fix, reportedAt)

		require.NoError(t, err)
		assert.Equal(t, 4.2, p.Rating())
		require.NotNil(t, p.Location())
		assert.Equal(t, reportedAt, p.ReportedAt())
	})

	t.Run("should restore unrated porter without location", func(t *testing.T) {
		p, err := porter.RestorePorter(
			kernel.NewUUID(), "Ravi Kumar", "+919876543210", 0, nil, time.Time{})

		require.NoError(t, err)
		assert.Nil(t, p.Location())
	})

	t.Run("should reject corrupted rating", func(t *testing.T) {
		_, err := porter.RestorePorter(
			kernel.NewUUID(), "Ravi Kumar", "+919876543210", 7.5, nil, time.Time{})

		require.Error(t, err)
	})
}

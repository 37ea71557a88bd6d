package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porter/internal/core/application/usecases/queries"
	"porter/internal/core/domain/model/delivery"
)

func TestNewGetDeliveryStatsQuery_Valid(t *testing.T) {
	query, err := queries.NewGetDeliveryStatsQuery(testActor(t, delivery.RoleAdmin))
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestGetDeliveryStatsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDeliveryStatsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDeliveryStatsQueryIsNotConstructed)
}

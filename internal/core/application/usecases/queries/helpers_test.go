package queries_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
)

func testActor(t *testing.T, role delivery.Role) delivery.Actor {
	t.Helper()
	actor, err := delivery.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

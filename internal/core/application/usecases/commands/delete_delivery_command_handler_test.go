package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"porter/internal/core/application/usecases/commands"
	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/ports"
	"porter/internal/pkg/errs"
)

func TestDeleteDeliveryCommandHandler_Handle_CancelledDelivery(t *testing.T) {
	ctx := t.Context()
	owner := testActor(t, delivery.RoleUser)
	aggregate := testPendingDelivery(t, owner.ID())
	require.NoError(t, aggregate.Cancel())
	cmd, err := commands.NewDeleteDeliveryCommand(aggregate.ID(), owner)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Delete", mock.Anything, aggregate.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, ports.EventDeliveryUpdated, aggregate.ID()).Return(nil).Once()

	h := commands.NewDeleteDeliveryCommandHandler(factory, publisher, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}

func TestDeleteDeliveryCommandHandler_Handle_NotCancelledConflict(t *testing.T) {
	ctx := t.Context()
	owner := testActor(t, delivery.RoleUser)
	aggregate := testPendingDelivery(t, owner.ID())
	cmd, err := commands.NewDeleteDeliveryCommand(aggregate.ID(), owner)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteDeliveryCommandHandler(factory, new(MockEventPublisher), testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteDeliveryCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	stranger := testActor(t, delivery.RoleUser)
	aggregate := testPendingDelivery(t, kernel.NewUUID())
	require.NoError(t, aggregate.Cancel())
	cmd, err := commands.NewDeleteDeliveryCommand(aggregate.ID(), stranger)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteDeliveryCommandHandler(factory, new(MockEventPublisher), testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrActionNotPermitted)
}

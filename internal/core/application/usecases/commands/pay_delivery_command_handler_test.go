package commands_test

import (
	"errors"
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

func TestPayDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	owner := testActor(t, delivery.RoleUser)
	aggregate := testDeliveredDelivery(t, owner.ID(), kernel.NewUUID())
	cmd, err := commands.NewPayDeliveryCommand(aggregate.ID(), owner)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		gateway.On("Charge", mock.Anything, aggregate).
			Return(ports.PaymentReceipt{ChargeID: "ch_123"}, nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, ports.EventDeliveryUpdated, aggregate.ID()).Return(nil).Once()

	h := commands.NewPayDeliveryCommandHandler(factory, gateway, publisher, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, delivery.PaymentPaid, aggregate.PaymentStatus())
	gateway.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPayDeliveryCommandHandler_Handle_GatewayFailure(t *testing.T) {
	ctx := t.Context()
	owner := testActor(t, delivery.RoleUser)
	aggregate := testDeliveredDelivery(t, owner.ID(), kernel.NewUUID())
	cmd, err := commands.NewPayDeliveryCommand(aggregate.ID(), owner)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		gateway.On("Charge", mock.Anything, aggregate).
			Return(ports.PaymentReceipt{}, errors.New("card declined")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPayDeliveryCommandHandler(factory, gateway, new(MockEventPublisher), testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, delivery.PaymentPending, aggregate.PaymentStatus(),
		"failed charge leaves no partial state")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPayDeliveryCommandHandler_Handle_NotDeliveredConflict(t *testing.T) {
	ctx := t.Context()
	owner := testActor(t, delivery.RoleUser)
	aggregate := testPendingDelivery(t, owner.ID())
	cmd, err := commands.NewPayDeliveryCommand(aggregate.ID(), owner)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPayDeliveryCommandHandler(factory, gateway, new(MockEventPublisher), testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
}

func TestPayDeliveryCommandHandler_Handle_AlreadyPaidConflict(t *testing.T) {
	ctx := t.Context()
	owner := testActor(t, delivery.RoleUser)
	aggregate := testDeliveredDelivery(t, owner.ID(), kernel.NewUUID())
	require.NoError(t, aggregate.MarkPaid())
	cmd, err := commands.NewPayDeliveryCommand(aggregate.ID(), owner)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPayDeliveryCommandHandler(factory, gateway, new(MockEventPublisher), testLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict, "double submit never reaches the gateway")
	gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
}

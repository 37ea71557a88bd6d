package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"porter/internal/core/application/usecases/commands"
	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
)

func TestCreatePorterCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreatePorterCommand(kernel.NewUUID(), "Ravi Kumar", "+919876543210")
	require.NoError(t, err)

	repo := new(MockPorterRepository)
	uow := new(MockPorterUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PorterRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*porter.Porter")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPorterUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreatePorterCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}

func TestNewCreatePorterCommand_Validation(t *testing.T) {
	_, err := commands.NewCreatePorterCommand(kernel.NewUUID(), "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "phone")
}

func TestRatePorterCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	porterID := kernel.NewUUID()
	profile := testPorterProfile(t, porterID)
	cmd, err := commands.NewRatePorterCommand(porterID, testActor(t, delivery.RoleUser), 4.5)
	require.NoError(t, err)

	repo := new(MockPorterRepository)
	uow := new(MockPorterUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PorterRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, porterID).Return(profile, nil).Once(),
		uow.On("PorterRepository").Return(repo).Once(),
		repo.On("Update", mock.Anything, profile).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPorterUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRatePorterCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, 4.5, profile.Rating())
}

func TestRatePorterCommandHandler_Handle_OutOfRange(t *testing.T) {
	ctx := t.Context()
	porterID := kernel.NewUUID()
	profile := testPorterProfile(t, porterID)
	cmd, err := commands.NewRatePorterCommand(porterID, testActor(t, delivery.RoleUser), 9)
	require.NoError(t, err)

	repo := new(MockPorterRepository)
	uow := new(MockPorterUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PorterRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, porterID).Return(profile, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPorterUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRatePorterCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

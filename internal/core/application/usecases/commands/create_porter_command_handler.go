package commands

import (
	"context"

	"porter/internal/core/domain/model/porter"
)

// CreatePorterCommandHandler registers new porter profiles.
type CreatePorterCommandHandler struct {
	uowFactory PorterUoWFactory
}

// NewCreatePorterCommandHandler creates a handler for porter registration.
func NewCreatePorterCommandHandler(uowFactory PorterUoWFactory) CreatePorterCommandHandler {
	return CreatePorterCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates and persists the porter profile.
func (h *CreatePorterCommandHandler) Handle(ctx context.Context, cmd CreatePorterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	profile, err := porter.NewPorter(cmd.PorterID(), cmd.Name(), cmd.Phone())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PorterRepository().Add(ctx, profile); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

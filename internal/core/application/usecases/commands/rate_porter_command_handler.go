package commands

import (
	"context"
)

// RatePorterCommandHandler applies a user's rating to a porter profile.
type RatePorterCommandHandler struct {
	uowFactory PorterUoWFactory
}

// NewRatePorterCommandHandler creates a handler for rating operations.
func NewRatePorterCommandHandler(uowFactory PorterUoWFactory) RatePorterCommandHandler {
	return RatePorterCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle overwrites the porter's rating with the submitted value.
func (h *RatePorterCommandHandler) Handle(ctx context.Context, cmd RatePorterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	profile, err := uow.PorterRepository().Get(ctx, cmd.PorterID())
	if err != nil {
		return err
	}

	if err = profile.Rate(cmd.Rating()); err != nil {
		return err
	}

	if err = uow.PorterRepository().Update(ctx, profile); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

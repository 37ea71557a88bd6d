package commands

import (
	"errors"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/errs"
	"porter/internal/pkg/guard"
)

var ErrCreatePorterCommandIsNotConstructed = errors.New(
	"CreatePorterCommand must be created via NewCreatePorterCommand constructor",
)

// CreatePorterCommand represents a request to register a new porter
// profile, issued when a porter account finishes onboarding.
type CreatePorterCommand struct { //nolint:recvcheck //using for validation
	porterID kernel.UUID
	name     string
	phone    string

	guard guard.ConstructorGuard
}

// NewCreatePorterCommand creates a porter registration command.
func NewCreatePorterCommand(porterID kernel.UUID, name string, phone string) (CreatePorterCommand, error) {
	cmd := CreatePorterCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPorterID(porterID),
		cmd.setName(name),
		cmd.setPhone(phone),
	); err != nil {
		return CreatePorterCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePorterCommand) Validate() error {
	return c.guard.Validate(ErrCreatePorterCommandIsNotConstructed)
}

// PorterID returns the identifier the new profile will carry.
func (c CreatePorterCommand) PorterID() kernel.UUID {
	return c.porterID
}

// Name returns the porter's display name.
func (c CreatePorterCommand) Name() string {
	return c.name
}

// Phone returns the porter's contact phone number.
func (c CreatePorterCommand) Phone() string {
	return c.phone
}

func (c *CreatePorterCommand) setPorterID(porterID kernel.UUID) error {
	if err := porterID.Validate(); err != nil {
		return err
	}
	c.porterID = porterID
	return nil
}

func (c *CreatePorterCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreatePorterCommand) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

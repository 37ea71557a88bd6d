package commands

import (
	"errors"

	"porter/internal/pkg/errs"
	"porter/internal/pkg/guard"
)

var ErrExpireStalePendingCommandIsNotConstructed = errors.New(
	"ExpireStalePendingCommand must be created via NewExpireStalePendingCommand constructor",
)

// ExpireStalePendingCommand represents a sweep request: cancel every
// Pending delivery booked more than the given number of hours ago that
// no porter picked up. Run periodically by the job scheduler.
type ExpireStalePendingCommand struct { //nolint:recvcheck //using for validation
	olderThanHours int

	guard guard.ConstructorGuard
}

// NewExpireStalePendingCommand creates a sweep command.
func NewExpireStalePendingCommand(olderThanHours int) (ExpireStalePendingCommand, error) {
	cmd := ExpireStalePendingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOlderThanHours(olderThanHours); err != nil {
		return ExpireStalePendingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireStalePendingCommand) Validate() error {
	return c.guard.Validate(ErrExpireStalePendingCommandIsNotConstructed)
}

// OlderThanHours returns the staleness threshold in hours.
func (c ExpireStalePendingCommand) OlderThanHours() int {
	return c.olderThanHours
}

func (c *ExpireStalePendingCommand) setOlderThanHours(olderThanHours int) error {
	if olderThanHours <= 0 {
		return errs.NewValueIsInvalidError("olderThanHours")
	}
	c.olderThanHours = olderThanHours
	return nil
}

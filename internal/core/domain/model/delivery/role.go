package delivery

import (
	"errors"
	"fmt"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/errs"
	"porter/internal/pkg/guard"
)

// Role identifies which kind of actor is requesting an action on a
// delivery. Every lifecycle decision is gated on it.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleUser is the customer who booked the delivery. Users may cancel
	// their own pending deliveries, delete cancelled ones, and pay for
	// delivered ones.
	RoleUser

	// RolePorter fulfills deliveries: accepts pending ones and advances
	// them through pickup, transit, and drop-off.
	RolePorter

	// RoleAdmin may override any field of any delivery. Overrides bypass
	// the transition table; callers log them.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "UNKNOWN",
		RoleUser:    "USER",
		RolePorter:  "PORTER",
		RoleAdmin:   "ADMIN",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleUser:   "USER",
		RolePorter: "PORTER",
		RoleAdmin:  "ADMIN",
	}
}

// Validate checks that the Role is one of USER, PORTER, ADMIN.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire-format name of the role. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// RoleFromString parses a wire-format role name ("USER", "PORTER",
// "ADMIN"). Unknown names produce an error.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// ErrActorIsNotConstructed is returned when an Actor instance was not
// created through the NewActor factory method.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated identity attempting a delivery action:
// an identifier plus the role it carries. Actors are value objects; the
// HTTP layer builds one per request from verified token claims.
type Actor struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an Actor after validating the identifier and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	actor := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.setID(id),
		actor.setRole(role),
	); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the role the actor authenticated with.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

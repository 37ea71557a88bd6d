package delivery

import (
	"errors"
	"fmt"
	"slices"

	"porter/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery. It implements a
// state machine with a fixed adjacency table so deliveries only ever move
// forward along the agreed workflow.
//
// State transitions:
//
//	Pending ──> Accepted ──> PickedUp ──> InTransit ──> Delivered
//	   │
//	   └──────> Cancelled
//
// Delivered and Cancelled are terminal. The only path out of a terminal
// state is an admin override, which bypasses the table entirely.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after booking. Pending deliveries are
	// visible to every porter and have no porter assigned.
	Pending

	// Accepted means a porter has claimed the delivery and is heading to
	// the pickup location.
	Accepted

	// PickedUp means the porter has collected the package.
	PickedUp

	// InTransit means the package is on its way to the drop-off location.
	InTransit

	// Delivered is a terminal state: the package reached its destination.
	// Payment settles in this state for cash-on-delivery bookings.
	Delivered

	// Cancelled is a terminal state reachable only from Pending. Cancelled
	// deliveries may be deleted by their owner.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Accepted:  "ACCEPTED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Accepted:  "ACCEPTED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// nextStatuses is the fixed adjacency table: for every status, the set of
// statuses reachable from it by non-admin actors. Terminal states map to
// the empty set.
func nextStatuses() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Accepted, Cancelled},
		Accepted:  {PickedUp},
		PickedUp:  {InTransit},
		InTransit: {Delivered},
		Delivered: {},
		Cancelled: {},
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Pending through Cancelled; Unknown and any other
// values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status ("PENDING",
// "PICKED_UP", ...). Implements fmt.Stringer and is safe to call on any
// Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire-format status name. Unknown names
// produce an error.
func StatusFromString(str string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == str {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", str))
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// TransitionReason classifies why a requested transition was rejected.
type TransitionReason int

const (
	// ReasonInvalidSequence means the requested status is not adjacent to
	// the current one in the lifecycle table.
	ReasonInvalidSequence TransitionReason = iota + 1

	// ReasonRoleNotPermitted means the transition exists but the acting
	// role may not request it.
	ReasonRoleNotPermitted

	// ReasonTerminalState means the current status has no outgoing
	// transitions at all.
	ReasonTerminalState
)

// String returns the wire-format reason code.
func (r TransitionReason) String() string {
	switch r {
	case ReasonInvalidSequence:
		return "INVALID_SEQUENCE"
	case ReasonRoleNotPermitted:
		return "ROLE_NOT_PERMITTED"
	case ReasonTerminalState:
		return "TERMINAL_STATE"
	default:
		return "UNKNOWN"
	}
}

// ErrTransitionNotAllowed is the sentinel all transition rejections
// unwrap to; use errors.Is against it and inspect the TransitionError for
// the reason code.
var ErrTransitionNotAllowed = errors.New("status transition not allowed")

// TransitionError reports a rejected status transition together with the
// reason code the caller (ultimately the UI) needs.
type TransitionError struct {
	From   Status
	To     Status
	Role   Role
	Reason TransitionReason
}

func newTransitionError(from, to Status, role Role, reason TransitionReason) *TransitionError {
	return &TransitionError{From: from, To: to, Role: role, Reason: reason}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s as %s (%s)",
		ErrTransitionNotAllowed, e.From, e.To, e.Role, e.Reason)
}

func (e *TransitionError) Unwrap() error {
	return ErrTransitionNotAllowed
}

// CanTransition decides whether the transition from s to next is legal for
// the given role, without performing it. It is a pure function of its
// arguments: no state, no side effects, deterministic.
//
// Rules:
//   - Admins may request any transition between valid statuses. This is a
//     deliberate escape hatch; callers audit it.
//   - Terminal states (Delivered, Cancelled) reject everything else with
//     ReasonTerminalState.
//   - Transitions absent from the adjacency table are rejected with
//     ReasonInvalidSequence.
//   - Users may only request Pending -> Cancelled; porters may only
//     request Pending -> Accepted and the Accepted -> PickedUp ->
//     InTransit -> Delivered chain. Everything else is
//     ReasonRoleNotPermitted.
func (s Status) CanTransition(next Status, role Role) error {
	if err := errors.Join(s.Validate(), next.Validate(), role.Validate()); err != nil {
		return err
	}

	if role == RoleAdmin {
		return nil
	}

	if s.IsTerminal() {
		return newTransitionError(s, next, role, ReasonTerminalState)
	}

	if !slices.Contains(nextStatuses()[s], next) {
		return newTransitionError(s, next, role, ReasonInvalidSequence)
	}

	switch role {
	case RoleUser:
		if s == Pending && next == Cancelled {
			return nil
		}
	case RolePorter:
		if next != Cancelled {
			return nil
		}
	}

	return newTransitionError(s, next, role, ReasonRoleNotPermitted)
}

// Transition validates the move from s to next for the given role and
// returns the new status. On rejection the current status is returned
// unchanged alongside the TransitionError.
func (s Status) Transition(next Status, role Role) (Status, error) {
	if err := s.CanTransition(next, role); err != nil {
		return s, err
	}
	return next, nil
}

// ValidateCanHavePorter validates the consistency between delivery status
// and porter assignment: a porter is attached exactly when the delivery
// has left Pending on the fulfillment path.
//
// Rules:
//   - Pending and Cancelled deliveries must not have a porter (cancellation
//     is only reachable from Pending, where no porter exists yet).
//   - Accepted, PickedUp, InTransit, and Delivered deliveries must have one.
func (s Status) ValidateCanHavePorter(hasPorter bool) error {
	onFulfillmentPath := s == Accepted || s == PickedUp || s == InTransit || s == Delivered

	if hasPorter && !onFulfillmentPath {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a porter", s.String()),
		)
	}

	if !hasPorter && onFulfillmentPath {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no porter", s.String()),
		)
	}

	return nil
}

// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence. Every status change re-reads
// the authoritative state inside the transaction, so stale clients get a
// conflict error instead of silently clobbering the winner.
package commands

import (
	"context"
	"errors"

	"porter/internal/core/ports"
)

var (
	// ErrLocationRequired is returned when a porter action needs the
	// device's current position and none was provided. The caller aborts
	// before any state changes.
	ErrLocationRequired = errors.New("current location is required for this action")

	// ErrActionNotPermitted is returned when the actor's role or ownership
	// does not allow the requested action. The transport layer maps it to
	// a forbidden response.
	ErrActionNotPermitted = errors.New("action not permitted for this actor")
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// PorterRepoFactory provides access to the porter repository within a transaction.
	PorterRepoFactory interface {
		PorterRepository() ports.PorterRepository
	}

	// TrackingRepoFactory provides access to the tracking repository within a transaction.
	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	// DeliveryUoW manages transactions for delivery-only operations
	// (booking, cancelling, deleting, paying, admin overrides).
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// PorterUoW manages transactions for porter profile operations.
	PorterUoW interface {
		TxManager
		PorterRepoFactory
	}

	// PorterUoWFactory creates new porter unit of work instances.
	PorterUoWFactory interface {
		Create() PorterUoW
	}

	// FulfillmentUoW manages transactions that touch the delivery, the
	// porter profile, and the tracking trail together. Accept and advance
	// use it: one transaction moves the delivery, records the porter's
	// position, and appends a tracking point.
	FulfillmentUoW interface {
		TxManager
		DeliveryRepoFactory
		PorterRepoFactory
		TrackingRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}
)

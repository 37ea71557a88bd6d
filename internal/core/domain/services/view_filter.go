package services

import (
	"porter/internal/core/domain/model/delivery"
)

// ViewFilter is a domain service deriving the delivery subsets each role's
// dashboard shows from one full list. The same semantics back the SQL
// queries; this service is the authoritative, testable definition of them.
//
// Scoping rules:
//   - Users see deliveries they booked
//   - Porters see deliveries assigned to them, plus the open pool
//   - Admins see everything
//
// The filters are pure and total: for a given actor every visible delivery
// lands in exactly one of active, history, or available, and deliveries
// outside the actor's scope land in none.
type ViewFilter struct{}

// NewViewFilter creates a new ViewFilter instance.
func NewViewFilter() ViewFilter {
	return ViewFilter{}
}

// ActiveFor returns in-flight deliveries (Pending through InTransit) the
// actor is involved in, preserving input order.
func (f ViewFilter) ActiveFor(actor delivery.Actor, deliveries []*delivery.Delivery) []*delivery.Delivery {
	return filter(deliveries, func(d *delivery.Delivery) bool {
		return !d.Status().IsTerminal() && f.inScope(actor, d)
	})
}

// HistoryFor returns finished deliveries (Delivered or Cancelled) the actor
// is involved in, preserving input order.
func (f ViewFilter) HistoryFor(actor delivery.Actor, deliveries []*delivery.Delivery) []*delivery.Delivery {
	return filter(deliveries, func(d *delivery.Delivery) bool {
		return d.Status().IsTerminal() && f.inScope(actor, d)
	})
}

// AvailableFor returns the open pool: Pending deliveries with no porter
// attached. Only porters browse the pool; other roles get nothing.
func (f ViewFilter) AvailableFor(actor delivery.Actor, deliveries []*delivery.Delivery) []*delivery.Delivery {
	if actor.Role() != delivery.RolePorter {
		return nil
	}

	return filter(deliveries, func(d *delivery.Delivery) bool {
		return d.Status() == delivery.Pending && d.PorterID() == nil
	})
}

// UnpaidFor returns Delivered deliveries whose fee has not settled. Users
// get their own unpaid deliveries, admins get all of them; porters have no
// payment surface.
func (f ViewFilter) UnpaidFor(actor delivery.Actor, deliveries []*delivery.Delivery) []*delivery.Delivery {
	if actor.Role() == delivery.RolePorter {
		return nil
	}

	return filter(deliveries, func(d *delivery.Delivery) bool {
		if d.Status() != delivery.Delivered || d.PaymentStatus() != delivery.PaymentPending {
			return false
		}
		return actor.IsAdmin() || d.IsOwnedBy(actor.ID())
	})
}

// inScope reports whether the actor is involved in the delivery at all.
// Porters are in scope of assigned deliveries only; the open pool is served
// separately by AvailableFor.
func (f ViewFilter) inScope(actor delivery.Actor, d *delivery.Delivery) bool {
	switch actor.Role() {
	case delivery.RoleAdmin:
		return true
	case delivery.RoleUser:
		return d.IsOwnedBy(actor.ID())
	case delivery.RolePorter:
		return d.IsAssignedTo(actor.ID())
	default:
		return false
	}
}

func filter(deliveries []*delivery.Delivery, keep func(*delivery.Delivery) bool) []*delivery.Delivery {
	result := make([]*delivery.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if keep(d) {
			result = append(result, d)
		}
	}
	return result
}

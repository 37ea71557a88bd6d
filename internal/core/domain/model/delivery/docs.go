// Package delivery provides the domain model for delivery bookings: the
// Delivery aggregate root, the status state machine, and the role-gated
// transition rules.
//
// The package includes:
//   - Delivery: The aggregate root owning lifecycle, payment, and porter assignment
//   - Status: A state machine with a fixed adjacency table and per-role gating
//   - PaymentStatus: Settlement state, decoupled from the lifecycle status
//   - Role and Actor: Who is asking, used to gate every transition
//   - PackageType: Declared package size class
//
// Key business rules:
//   - Lifecycle: Pending -> Accepted -> PickedUp -> InTransit -> Delivered,
//     with Pending -> Cancelled as the only branch
//   - Users cancel their own pending bookings; porters accept and advance;
//     admins override anything, audited at the call site
//   - A porter is attached exactly while the delivery is on the fulfillment path
//   - Payment settles only after delivery, or up front for prepaid bookings
//   - Only cancelled deliveries may be deleted
//
// Transition decisions are pure functions; rejections carry a typed
// TransitionError with a machine-readable reason code.
package delivery

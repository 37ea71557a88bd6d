package delivery

import (
	"errors"
	"fmt"
	"time"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery or RestoreDelivery factory methods.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Delivery is the aggregate root of a booking. It owns the lifecycle status,
// the payment status, and the porter assignment, and it is the only place
// those three are allowed to change together.
//
// Delivery maintains these invariants:
//   - Must have a valid unique identifier and owner (the booking user)
//   - Pickup and dropoff are valid geo points
//   - Weight is positive, amount is non-negative
//   - A porter is attached exactly when the delivery is on the fulfillment
//     path (Accepted through Delivered)
//   - Status only changes through the transition table, except for the
//     audited admin override
//   - Payment becomes Paid only at prepaid booking or after Delivered
//
// All fields are private; state changes go through methods that enforce
// the rules above.
type Delivery struct {
	id       kernel.UUID
	userID   kernel.UUID
	porterID *kernel.UUID

	pickup  kernel.GeoPoint
	dropoff kernel.GeoPoint

	packageType PackageType
	weightKg    float64
	description string

	scheduledTime time.Time
	distanceKm    float64
	amount        float64

	status        Status
	paymentStatus PaymentStatus

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewDelivery creates a new Delivery in Pending status with validation.
// This is the only way to book a delivery; the constructor enforces every
// booking invariant.
//
// The scheduled time must be strictly in the future. The distance between
// pickup and dropoff is computed here so the quote and the stored booking
// can never disagree.
//
// Prepaid bookings start with PaymentPaid; everything else starts with
// PaymentPending and settles after delivery.
func NewDelivery(
	id kernel.UUID,
	userID kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	packageType PackageType,
	weightKg float64,
	description string,
	scheduledTime time.Time,
	amount float64,
	prepaid bool,
) (*Delivery, error) {
	now := time.Now().UTC()

	d := &Delivery{
		status:        Pending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	if prepaid {
		d.paymentStatus = PaymentPaid
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.setPickup(pickup),
		d.setDropoff(dropoff),
		d.setPackageType(packageType),
		d.setWeightKg(weightKg),
		d.setScheduledTime(scheduledTime, now),
		d.setAmount(amount),
	); err != nil {
		return nil, err
	}

	d.description = description
	d.distanceKm = mustDistanceKm(d.pickup, d.dropoff)

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence without applying
// the booking-time rules (a restored delivery legitimately has a scheduled
// time in the past). It still validates every component and the
// porter/status consistency invariant, so a corrupted row fails loudly
// instead of producing an aggregate in an impossible state.
func RestoreDelivery(
	id kernel.UUID,
	userID kernel.UUID,
	porterID *kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	packageType PackageType,
	weightKg float64,
	description string,
	scheduledTime time.Time,
	distanceKm float64,
	amount float64,
	status Status,
	paymentStatus PaymentStatus,
	createdAt time.Time,
	updatedAt time.Time,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		packageType.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if porterID != nil {
		if err := porterID.Validate(); err != nil {
			return nil, err
		}
	}

	if err := status.ValidateCanHavePorter(porterID != nil); err != nil {
		return nil, err
	}

	if weightKg <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%v is not greater than 0", weightKg))
	}

	if amount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is negative", amount))
	}

	return &Delivery{
		id:            id,
		userID:        userID,
		porterID:      porterID,
		pickup:        pickup,
		dropoff:       dropoff,
		packageType:   packageType,
		weightKg:      weightKg,
		description:   description,
		scheduledTime: scheduledTime,
		distanceKm:    distanceKm,
		amount:        amount,
		status:        status,
		paymentStatus: paymentStatus,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Delivery was created through one of the factory
// methods. Call this when receiving aggregates across layer boundaries.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// UserID returns the identifier of the user who booked the delivery.
func (d *Delivery) UserID() kernel.UUID {
	return d.userID
}

// PorterID returns the assigned porter's identifier, or nil while the
// delivery is Pending or Cancelled.
func (d *Delivery) PorterID() *kernel.UUID {
	return d.porterID
}

// Pickup returns the pickup location.
func (d *Delivery) Pickup() kernel.GeoPoint {
	return d.pickup
}

// Dropoff returns the drop-off location.
func (d *Delivery) Dropoff() kernel.GeoPoint {
	return d.dropoff
}

// PackageType returns the declared package size class.
func (d *Delivery) PackageType() PackageType {
	return d.packageType
}

// WeightKg returns the declared package weight in kilograms.
func (d *Delivery) WeightKg() float64 {
	return d.weightKg
}

// Description returns the free-form package description.
func (d *Delivery) Description() string {
	return d.description
}

// ScheduledTime returns the time the user asked for pickup.
func (d *Delivery) ScheduledTime() time.Time {
	return d.scheduledTime
}

// DistanceKm returns the great-circle pickup-to-dropoff distance.
func (d *Delivery) DistanceKm() float64 {
	return d.distanceKm
}

// Amount returns the quoted delivery fee.
func (d *Delivery) Amount() float64 {
	return d.amount
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// PaymentStatus returns the current payment status.
func (d *Delivery) PaymentStatus() PaymentStatus {
	return d.paymentStatus
}

// CreatedAt returns the booking time.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the time of the last state change.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// IsOwnedBy reports whether the given user booked this delivery.
func (d *Delivery) IsOwnedBy(userID kernel.UUID) bool {
	return d.userID.IsEqual(userID)
}

// IsAssignedTo reports whether the given porter holds this delivery.
func (d *Delivery) IsAssignedTo(porterID kernel.UUID) bool {
	return d.porterID != nil && d.porterID.IsEqual(porterID)
}

// Accept assigns the delivery to a porter and moves it to Accepted.
// Only Pending deliveries can be accepted; a second accept fails with a
// TransitionError, which callers surface as a conflict.
func (d *Delivery) Accept(porterID kernel.UUID) error {
	if err := porterID.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Transition(Accepted, RolePorter)
	if err != nil {
		return err
	}

	d.status = newStatus
	d.porterID = &porterID
	d.touch()
	return nil
}

// Advance moves the delivery one step along the fulfillment chain
// (PickedUp, InTransit, Delivered) on behalf of the assigned porter.
// The transition table rejects skipped steps and backward moves; callers
// check assignment before calling.
func (d *Delivery) Advance(next Status) error {
	newStatus, err := d.status.Transition(next, RolePorter)
	if err != nil {
		return err
	}

	d.status = newStatus
	d.touch()
	return nil
}

// Cancel moves a Pending delivery to Cancelled on behalf of its owner.
// Once a porter has accepted, cancellation is no longer possible; a second
// cancel fails because Cancelled is terminal.
func (d *Delivery) Cancel() error {
	newStatus, err := d.status.Transition(Cancelled, RoleUser)
	if err != nil {
		return err
	}

	d.status = newStatus
	d.touch()
	return nil
}

// MarkPaid settles the delivery fee. Settlement requires the delivery to
// be Delivered; paying twice fails with a conflict error so double submits
// never double charge.
func (d *Delivery) MarkPaid() error {
	if d.status != Delivered {
		return errs.NewConflictError("status", d.status.String())
	}
	if d.paymentStatus == PaymentPaid {
		return errs.NewConflictError("paymentStatus", d.paymentStatus.String())
	}

	d.paymentStatus = PaymentPaid
	d.touch()
	return nil
}

// CanDelete reports whether the delivery may be removed. Only Cancelled
// deliveries are deletable; everything else is kept for history.
func (d *Delivery) CanDelete() bool {
	return d.status == Cancelled
}

// Override sets status and porter assignment directly, bypassing the
// transition table. This is the admin escape hatch; the resulting state
// must still be internally consistent, and callers audit every call.
func (d *Delivery) Override(status Status, porterID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if porterID != nil {
		if err := porterID.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateCanHavePorter(porterID != nil); err != nil {
		return err
	}

	d.status = status
	d.porterID = porterID
	d.touch()
	return nil
}

func (d *Delivery) touch() {
	d.updatedAt = time.Now().UTC()
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	d.userID = userID
	return nil
}

func (d *Delivery) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	d.pickup = pickup
	return nil
}

func (d *Delivery) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	d.dropoff = dropoff
	return nil
}

func (d *Delivery) setPackageType(packageType PackageType) error {
	if err := packageType.Validate(); err != nil {
		return err
	}
	d.packageType = packageType
	return nil
}

func (d *Delivery) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%v is not greater than 0", weightKg))
	}
	d.weightKg = weightKg
	return nil
}

func (d *Delivery) setScheduledTime(scheduledTime, now time.Time) error {
	if !scheduledTime.After(now) {
		return errs.NewValueIsInvalidErrorWithCause("scheduledTime",
			fmt.Errorf("%s is not in the future", scheduledTime.Format(time.RFC3339)))
	}
	d.scheduledTime = scheduledTime
	return nil
}

func (d *Delivery) setAmount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is negative", amount))
	}
	d.amount = amount
	return nil
}

// mustDistanceKm computes the distance between two already validated
// points. The error path is unreachable once both points passed Validate.
func mustDistanceKm(a, b kernel.GeoPoint) float64 {
	d, err := a.DistanceKm(b)
	if err != nil {
		return 0
	}
	return d
}

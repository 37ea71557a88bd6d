package commands

import (
	"errors"
	"time"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/errs"
	"porter/internal/pkg/guard"
)

var ErrBookDeliveryCommandIsNotConstructed = errors.New(
	"BookDeliveryCommand must be created via NewBookDeliveryCommand constructor",
)

// BookDeliveryCommand represents a request to book a new delivery.
// Encapsulates everything the quote and the booking need: the route, the
// package details, and the requested pickup time.
//
// Example:
//
//	cmd, err := NewBookDeliveryCommand(
//	    kernel.NewUUID(), userID, pickup, dropoff,
//	    delivery.PackageMedium, 4.5, "fragile", scheduled, false)
//	if err != nil {
//	    return fmt.Errorf("invalid booking data: %w", err)
//	}
type BookDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	userID     kernel.UUID

	pickup  kernel.GeoPoint
	dropoff kernel.GeoPoint

	packageType   delivery.PackageType
	weightKg      float64
	description   string
	scheduledTime time.Time
	prepaid       bool

	guard guard.ConstructorGuard
}

// NewBookDeliveryCommand creates a booking command. Route points and the
// package type are validated here; the aggregate re-checks everything when
// the handler constructs it.
func NewBookDeliveryCommand(
	deliveryID kernel.UUID,
	userID kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	packageType delivery.PackageType,
	weightKg float64,
	description string,
	scheduledTime time.Time,
	prepaid bool,
) (BookDeliveryCommand, error) {
	cmd := BookDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setUserID(userID),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
		cmd.setPackageType(packageType),
		cmd.setWeightKg(weightKg),
	); err != nil {
		return BookDeliveryCommand{}, err
	}

	cmd.description = description
	cmd.scheduledTime = scheduledTime
	cmd.prepaid = prepaid

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BookDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrBookDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier the new delivery will carry.
func (c BookDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// UserID returns the booking user's identifier.
func (c BookDeliveryCommand) UserID() kernel.UUID {
	return c.userID
}

// Pickup returns the pickup location.
func (c BookDeliveryCommand) Pickup() kernel.GeoPoint {
	return c.pickup
}

// Dropoff returns the drop-off location.
func (c BookDeliveryCommand) Dropoff() kernel.GeoPoint {
	return c.dropoff
}

// PackageType returns the declared package size class.
func (c BookDeliveryCommand) PackageType() delivery.PackageType {
	return c.packageType
}

// WeightKg returns the declared package weight.
func (c BookDeliveryCommand) WeightKg() float64 {
	return c.weightKg
}

// Description returns the free-form package description.
func (c BookDeliveryCommand) Description() string {
	return c.description
}

// ScheduledTime returns the requested pickup time.
func (c BookDeliveryCommand) ScheduledTime() time.Time {
	return c.scheduledTime
}

// Prepaid reports whether the fee was settled at booking.
func (c BookDeliveryCommand) Prepaid() bool {
	return c.prepaid
}

func (c *BookDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *BookDeliveryCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *BookDeliveryCommand) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	c.pickup = pickup
	return nil
}

func (c *BookDeliveryCommand) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	c.dropoff = dropoff
	return nil
}

func (c *BookDeliveryCommand) setPackageType(packageType delivery.PackageType) error {
	if err := packageType.Validate(); err != nil {
		return err
	}
	c.packageType = packageType
	return nil
}

func (c *BookDeliveryCommand) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidError("weightKg")
	}
	c.weightKg = weightKg
	return nil
}

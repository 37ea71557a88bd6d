package porter

import (
	"errors"
	"fmt"
	"time"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/errs"
	"porter/internal/pkg/guard"
)

const (
	// RatingMin and RatingMax bound the star rating a porter can carry.
	RatingMin = 0.0
	RatingMax = 5.0
)

var (
	// ErrNameIsRequired is returned when attempting to create a porter without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a porter without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrPorterIsNotConstructed is returned when using an improperly initialized Porter.
	ErrPorterIsNotConstructed = errors.New("Porter must be created via NewPorter constructor")
)

// Porter is the profile of a delivery agent: identity, contact details,
// the latest star rating, and the last position the agent's device reported.
//
// Business rules:
//   - Porter must have a valid UUID, non-empty name, and non-empty phone
//   - Rating stays within [0, 5]; a new rating overwrites the previous one
//   - The reported location is optional until the device sends the first fix
type Porter struct {
	id    kernel.UUID
	name  string
	phone string

	rating float64

	location   *kernel.GeoPoint
	reportedAt time.Time

	guard guard.ConstructorGuard
}

// NewPorter creates a new Porter profile. Fresh porters start unrated and
// without a reported location.
func NewPorter(id kernel.UUID, name string, phone string) (*Porter, error) {
	p := &Porter{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePorter reconstructs a Porter from persistence, including the
// rating and the last reported location when one exists.
func RestorePorter(
	id kernel.UUID,
	name string,
	phone string,
	rating float64,
	location *kernel.GeoPoint,
	reportedAt time.Time,
) (*Porter, error) {
	p, err := NewPorter(id, name, phone)
	if err != nil {
		return nil, err
	}

	if err := p.setRating(rating); err != nil {
		return nil, err
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		p.location = location
		p.reportedAt = reportedAt
	}

	return p, nil
}

// Validate ensures the Porter was created through one of the factory methods.
func (p *Porter) Validate() error {
	if p == nil {
		return ErrPorterIsNotConstructed
	}
	return p.guard.Validate(ErrPorterIsNotConstructed)
}

// IsEqual compares two porters by their unique identifiers.
func (p *Porter) IsEqual(other *Porter) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the porter's unique identifier.
func (p *Porter) ID() kernel.UUID {
	return p.id
}

// Name returns the porter's display name.
func (p *Porter) Name() string {
	return p.name
}

// Phone returns the porter's contact phone number.
func (p *Porter) Phone() string {
	return p.phone
}

// Rating returns the porter's current star rating. Zero means unrated.
func (p *Porter) Rating() float64 {
	return p.rating
}

// Location returns the last reported position, or nil if the device has
// never sent a fix.
func (p *Porter) Location() *kernel.GeoPoint {
	return p.location
}

// ReportedAt returns the time of the last location fix. Zero when no fix
// has been reported.
func (p *Porter) ReportedAt() time.Time {
	return p.reportedAt
}

// Rate overwrites the porter's rating with the given value. The platform
// keeps only the latest rating, not an average.
func (p *Porter) Rate(rating float64) error {
	return p.setRating(rating)
}

// ReportLocation records the device's current position.
func (p *Porter) ReportLocation(location kernel.GeoPoint, reportedAt time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	p.location = &location
	p.reportedAt = reportedAt
	return nil
}

func (p *Porter) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Porter) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Porter) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	p.phone = phone
	return nil
}

func (p *Porter) setRating(rating float64) error {
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}
	p.rating = rating
	return nil
}

// String returns a short human-readable description for logs.
func (p *Porter) String() string {
	return fmt.Sprintf("Porter(%s, %s)", p.id, p.name)
}

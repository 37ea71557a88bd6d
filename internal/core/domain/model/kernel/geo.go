package kernel

import (
	"errors"
	"fmt"
	"math"

	"porter/internal/pkg/errs"
	"porter/internal/pkg/guard"
)

const (
	// GeoLatitudeMin is the southernmost valid latitude in degrees.
	GeoLatitudeMin = -90.0
	// GeoLatitudeMax is the northernmost valid latitude in degrees.
	GeoLatitudeMax = 90.0
	// GeoLongitudeMin is the westernmost valid longitude in degrees.
	GeoLongitudeMin = -180.0
	// GeoLongitudeMax is the easternmost valid longitude in degrees.
	GeoLongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. GeoPoints must be created through
// NewGeoPoint to guarantee their coordinates are within WGS-84 bounds.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// ErrAddressIsRequired is returned when a GeoPoint is created without a
// human-readable address.
var ErrAddressIsRequired = errs.NewValueIsRequiredError("address")

// GeoPoint is an immutable value object holding a WGS-84 coordinate pair
// together with the human-readable address the booking form resolved it
// from. The zero value is invalid; use NewGeoPoint.
//
// Example:
//
//	pickup, err := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road, Bengaluru")
//	if err != nil {
//	    // coordinates out of bounds or address missing
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	address   string
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint after validating that latitude is within
// [-90, 90], longitude within [-180, 180], and the address is non-empty.
// Multiple violations are reported together via errors.Join.
func NewGeoPoint(latitude, longitude float64, address string) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setLatitude(latitude),
		p.setLongitude(longitude),
		p.setAddress(address),
	); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was built through NewGeoPoint.
// The zero value fails with ErrGeoPointIsNotConstructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Address returns the resolved street address for display.
func (p GeoPoint) Address() string {
	return p.address
}

// String implements fmt.Stringer for logging and debugging.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares two points by coordinates only; the address is display
// metadata and does not participate in equality. Both points must be
// properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceKm returns the great-circle distance to other in kilometers,
// computed with the haversine formula. Used for fare estimation when the
// routing service is unavailable.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLon := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < GeoLatitudeMin || latitude > GeoLatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, GeoLatitudeMin, GeoLatitudeMax)
	}

	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < GeoLongitudeMin || longitude > GeoLongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, GeoLongitudeMin, GeoLongitudeMax)
	}

	p.longitude = longitude
	return nil
}

func (p *GeoPoint) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	p.address = address
	return nil
}

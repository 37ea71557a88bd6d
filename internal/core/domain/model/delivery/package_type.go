package delivery

import (
	"fmt"

	"porter/internal/pkg/errs"
)

// PackageType is the declared size class of the package. It drives the
// fee quote and which porters see the booking.
type PackageType int

const (
	// PackageUnknown represents an invalid or undefined package type.
	PackageUnknown PackageType = iota

	// PackageSmall fits documents and parcels up to a few kilograms.
	PackageSmall

	// PackageMedium fits boxes a single porter carries by hand.
	PackageMedium

	// PackageLarge needs a vehicle with cargo space.
	PackageLarge
)

func getPackageTypeStrings() map[PackageType]string {
	return map[PackageType]string{
		PackageUnknown: "UNKNOWN",
		PackageSmall:   "SMALL",
		PackageMedium:  "MEDIUM",
		PackageLarge:   "LARGE",
	}
}

func getValidPackageTypeStrings() map[PackageType]string {
	//nolint:exhaustive // PackageUnknown is intentionally excluded as it's invalid
	return map[PackageType]string{
		PackageSmall:  "SMALL",
		PackageMedium: "MEDIUM",
		PackageLarge:  "LARGE",
	}
}

// Validate checks if the PackageType value is valid.
func (p PackageType) Validate() error {
	if _, ok := getValidPackageTypeStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("packageType",
			fmt.Errorf("%d is not a valid package type", p))
	}
	return nil
}

// String returns the wire-format name ("SMALL", "MEDIUM", "LARGE").
// Implements fmt.Stringer.
func (p PackageType) String() string {
	if str, ok := getPackageTypeStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}

// PackageTypeFromString parses a wire-format package type name.
func PackageTypeFromString(str string) (PackageType, error) {
	for pt, name := range getValidPackageTypeStrings() {
		if name == str {
			return pt, nil
		}
	}
	return PackageUnknown, errs.NewValueIsInvalidErrorWithCause("packageType",
		fmt.Errorf("%q is not a valid package type", str))
}

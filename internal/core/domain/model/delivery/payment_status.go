package delivery

import (
	"fmt"

	"porter/internal/pkg/errs"
)

// PaymentStatus tracks settlement of the delivery fee independently of the
// lifecycle status. Paid is reachable in exactly two ways: immediately at
// booking for prepaid flows, or after the delivery reaches Delivered.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means the fee has not settled yet.
	PaymentPending

	// PaymentPaid means the fee settled, either prepaid at booking or
	// through the gateway after delivery.
	PaymentPaid
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "UNKNOWN",
		PaymentPending: "PENDING",
		PaymentPaid:    "PAID",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s != PaymentPending && s != PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire-format name ("PENDING", "PAID").
// Implements fmt.Stringer.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// PaymentStatusFromString parses a wire-format payment status name.
func PaymentStatusFromString(str string) (PaymentStatus, error) {
	switch str {
	case "PENDING":
		return PaymentPending, nil
	case "PAID":
		return PaymentPaid, nil
	default:
		return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a valid payment status", str))
	}
}

package worldorder

import (
	"fmt"

	"ups/internal/pkg/errs"
)

// Kind is the kind of world command an order records.
type Kind int

const (
	// UnknownKind is the zero value and never valid.
	UnknownKind Kind = iota
	// Delivery sends a truck to a warehouse to pick up a package for delivery.
	Delivery
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Delivery:
		return "Delivery"
	case UnknownKind:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// Validate rejects UnknownKind and values outside the enumeration.
func (k Kind) Validate() error {
	switch k {
	case Delivery:
		return nil
	case UnknownKind:
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%s is not a valid order kind", k))
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid order kind", int(k)))
	}
}

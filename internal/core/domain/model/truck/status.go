package truck

import (
	"fmt"

	"ups/internal/pkg/errs"
)

// Status is the lifecycle state of a truck. The set is closed: every switch over
// Status handles each value below.
//
// State transitions:
//
//	Idle ──Allocate──> Traveling ──world──> ArriveWarehouse
//	 ^                     │                      │
//	 └──────Release────────┘                      │
//	 └────────────────world completion────────────┘
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	// Idle trucks are available for allocation.
	Idle
	// Traveling trucks hold an outstanding allocation and are heading to a warehouse.
	Traveling
	// ArriveWarehouse trucks have reached the warehouse of their pickup.
	ArriveWarehouse
	// Loading trucks are being loaded at a warehouse.
	Loading
	// Delivering trucks are on their way to package destinations.
	Delivering
)

// String returns the name used in logs, metrics and the read model.
func (s Status) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Traveling:
		return "Traveling"
	case ArriveWarehouse:
		return "ArriveWarehouse"
	case Loading:
		return "Loading"
	case Delivering:
		return "Delivering"
	case Unknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// Validate rejects Unknown and values outside the enumeration.
func (s Status) Validate() error {
	switch s {
	case Idle, Traveling, ArriveWarehouse, Loading, Delivering:
		return nil
	case Unknown:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a valid status", s))
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
}

// Allocate transitions Idle to Traveling.
func (s Status) Allocate() (Status, error) {
	if s != Idle {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s truck cannot be allocated", s),
		)
	}
	return Traveling, nil
}

// Release transitions Traveling back to Idle.
func (s Status) Release() (Status, error) {
	if s != Traveling {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s truck cannot be released", s),
		)
	}
	return Idle, nil
}

// ParseWorldStatus maps the status strings of the world simulator.
func ParseWorldStatus(s string) (Status, error) {
	switch s {
	case "IDLE":
		return Idle, nil
	case "TRAVELING":
		return Traveling, nil
	case "ARRIVE WAREHOUSE":
		return ArriveWarehouse, nil
	case "LOADING":
		return Loading, nil
	case "DELIVERING":
		return Delivering, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("unknown world status %q", s),
		)
	}
}

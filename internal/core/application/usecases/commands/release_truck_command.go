package commands

import (
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"
	"ups/internal/pkg/guard"
)

var ErrReleaseTruckCommandIsNotConstructed = errors.New(
	"ReleaseTruckCommand must be created via NewReleaseTruckCommand constructor",
)

// ReleaseTruckCommand returns an allocated truck to Idle when the request it was
// allocated for will not be delivered.
type ReleaseTruckCommand struct {
	truckID kernel.TruckID

	guard guard.ConstructorGuard
}

// NewReleaseTruckCommand creates the command.
func NewReleaseTruckCommand(truckID kernel.TruckID) (ReleaseTruckCommand, error) {
	if truckID <= 0 {
		return ReleaseTruckCommand{}, errs.NewValueIsOutOfRangeError("truck id", truckID, 1, "max int32")
	}

	return ReleaseTruckCommand{
		truckID: truckID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseTruckCommand) Validate() error {
	return c.guard.Validate(ErrReleaseTruckCommandIsNotConstructed)
}

func (c ReleaseTruckCommand) TruckID() kernel.TruckID {
	return c.truckID
}

package commands

import (
	"errors"

	"ups/internal/pkg/errs"
	"ups/internal/pkg/guard"
)

// DefaultFleetSize is the number of trucks a new world starts with.
const DefaultFleetSize = 5

var ErrCreateWorldCommandIsNotConstructed = errors.New(
	"CreateWorldCommand must be created via NewCreateWorldCommand constructor",
)

// CreateWorldCommand requests a new simulated world populated with a fresh fleet.
//
// Example:
//
//	cmd, err := NewCreateWorldCommand(DefaultFleetSize)
//	if err != nil {
//	    return err
//	}
//	worldID, err := handler.Handle(ctx, cmd)
type CreateWorldCommand struct {
	truckCount int

	guard guard.ConstructorGuard
}

// NewCreateWorldCommand creates the command. truckCount must be positive.
func NewCreateWorldCommand(truckCount int) (CreateWorldCommand, error) {
	if truckCount <= 0 {
		return CreateWorldCommand{}, errs.NewValueIsOutOfRangeError("truck count", truckCount, 1, "max int")
	}

	return CreateWorldCommand{
		truckCount: truckCount,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateWorldCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorldCommandIsNotConstructed)
}

// TruckCount returns the size of the initial fleet.
func (c CreateWorldCommand) TruckCount() int {
	return c.truckCount
}

package commands

import (
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/guard"
)

var ErrAllocateTruckCommandIsNotConstructed = errors.New(
	"AllocateTruckCommand must be created via NewAllocateTruckCommand constructor",
)

// AllocateTruckCommand reserves one Idle truck of a world for a new pickup.
type AllocateTruckCommand struct {
	worldID kernel.WorldID

	guard guard.ConstructorGuard
}

// NewAllocateTruckCommand creates the command.
func NewAllocateTruckCommand(worldID kernel.WorldID) AllocateTruckCommand {
	return AllocateTruckCommand{
		worldID: worldID,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AllocateTruckCommand) Validate() error {
	return c.guard.Validate(ErrAllocateTruckCommandIsNotConstructed)
}

func (c AllocateTruckCommand) WorldID() kernel.WorldID {
	return c.worldID
}

package commands

import (
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"
	"ups/internal/pkg/guard"
)

var ErrDispatchToWarehouseCommandIsNotConstructed = errors.New(
	"DispatchToWarehouseCommand must be created via NewDispatchToWarehouseCommand constructor",
)

// DispatchToWarehouseCommand sends an allocated truck to the warehouse holding a package.
type DispatchToWarehouseCommand struct {
	truckID     kernel.TruckID
	warehouseID kernel.WarehouseID
	packageID   kernel.PackageID

	guard guard.ConstructorGuard
}

// NewDispatchToWarehouseCommand creates the command.
func NewDispatchToWarehouseCommand(
	truckID kernel.TruckID,
	warehouseID kernel.WarehouseID,
	packageID kernel.PackageID,
) (DispatchToWarehouseCommand, error) {
	if truckID <= 0 {
		return DispatchToWarehouseCommand{}, errs.NewValueIsOutOfRangeError("truck id", truckID, 1, "max int32")
	}

	return DispatchToWarehouseCommand{
		truckID:     truckID,
		warehouseID: warehouseID,
		packageID:   packageID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchToWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrDispatchToWarehouseCommandIsNotConstructed)
}

func (c DispatchToWarehouseCommand) TruckID() kernel.TruckID {
	return c.truckID
}

func (c DispatchToWarehouseCommand) WarehouseID() kernel.WarehouseID {
	return c.warehouseID
}

func (c DispatchToWarehouseCommand) PackageID() kernel.PackageID {
	return c.packageID
}

package commands

import (
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/parcel"
	"ups/internal/pkg/errs"
	"ups/internal/pkg/guard"
)

var ErrRegisterPackageCommandIsNotConstructed = errors.New(
	"RegisterPackageCommand must be created via NewRegisterPackageCommand constructor",
)

// LineItem is one requested item as received from the order source.
type LineItem struct {
	Description string
	Count       int32
}

// RegisterPackageCommand records a package bound to an allocated truck.
type RegisterPackageCommand struct {
	packageID   kernel.PackageID
	truckID     kernel.TruckID
	warehouseID kernel.WarehouseID
	requester   *kernel.UserID
	destination kernel.Location
	items       []parcel.Item

	guard guard.ConstructorGuard
}

// NewRegisterPackageCommand creates the command. A nil requester is stored as
// kernel.NoUser.
func NewRegisterPackageCommand(
	packageID kernel.PackageID,
	truckID kernel.TruckID,
	warehouseID kernel.WarehouseID,
	requester *kernel.UserID,
	destination kernel.Location,
	lines []LineItem,
) (RegisterPackageCommand, error) {
	if truckID <= 0 {
		return RegisterPackageCommand{}, errs.NewValueIsOutOfRangeError("truck id", truckID, 1, "max int32")
	}
	if err := destination.Validate(); err != nil {
		return RegisterPackageCommand{}, errs.NewValueIsInvalidErrorWithCause("destination", err)
	}

	items := make([]parcel.Item, 0, len(lines))
	for _, line := range lines {
		item, err := parcel.NewItem(line.Description, line.Count)
		if err != nil {
			return RegisterPackageCommand{}, err
		}
		items = append(items, item)
	}

	return RegisterPackageCommand{
		packageID:   packageID,
		truckID:     truckID,
		warehouseID: warehouseID,
		requester:   requester,
		destination: destination,
		items:       items,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPackageCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPackageCommandIsNotConstructed)
}

func (c RegisterPackageCommand) PackageID() kernel.PackageID {
	return c.packageID
}

func (c RegisterPackageCommand) TruckID() kernel.TruckID {
	return c.truckID
}

func (c RegisterPackageCommand) WarehouseID() kernel.WarehouseID {
	return c.warehouseID
}

// Requester returns nil when the request named no user.
func (c RegisterPackageCommand) Requester() *kernel.UserID {
	return c.requester
}

func (c RegisterPackageCommand) Destination() kernel.Location {
	return c.destination
}

func (c RegisterPackageCommand) Items() []parcel.Item {
	return c.items
}

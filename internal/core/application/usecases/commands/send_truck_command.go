package commands

import (
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"
	"ups/internal/pkg/guard"
)

var ErrSendTruckCommandIsNotConstructed = errors.New(
	"SendTruckCommand must be created via NewSendTruckCommand constructor",
)

// SendTruckCommand is a delivery request from the order source: fetch a package
// from a warehouse and deliver it to a destination.
type SendTruckCommand struct {
	packageID   kernel.PackageID
	warehouseID kernel.WarehouseID
	requester   *kernel.UserID
	destination kernel.Location
	items       []LineItem

	guard guard.ConstructorGuard
}

// NewSendTruckCommand creates the command. requester is nil when the request
// named no user.
func NewSendTruckCommand(
	packageID kernel.PackageID,
	warehouseID kernel.WarehouseID,
	requester *kernel.UserID,
	destination kernel.Location,
	items []LineItem,
) (SendTruckCommand, error) {
	if err := destination.Validate(); err != nil {
		return SendTruckCommand{}, errs.NewValueIsInvalidErrorWithCause("destination", err)
	}
	for _, item := range items {
		if item.Count < 0 {
			return SendTruckCommand{}, errs.NewValueIsOutOfRangeError("item count", item.Count, 0, "max int32")
		}
	}

	return SendTruckCommand{
		packageID:   packageID,
		warehouseID: warehouseID,
		requester:   requester,
		destination: destination,
		items:       items,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SendTruckCommand) Validate() error {
	return c.guard.Validate(ErrSendTruckCommandIsNotConstructed)
}

func (c SendTruckCommand) PackageID() kernel.PackageID {
	return c.packageID
}

func (c SendTruckCommand) WarehouseID() kernel.WarehouseID {
	return c.warehouseID
}

func (c SendTruckCommand) Requester() *kernel.UserID {
	return c.requester
}

func (c SendTruckCommand) Destination() kernel.Location {
	return c.destination
}

func (c SendTruckCommand) Items() []LineItem {
	return c.items
}

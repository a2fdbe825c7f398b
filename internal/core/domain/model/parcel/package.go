package parcel

import (
	"errors"
	"slices"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"
)

// ErrPackageIsNotConstructed is returned by Validate for packages not built by New.
var ErrPackageIsNotConstructed = errors.New("Package must be created via New")

// Package is the aggregate root for a delivery request. It is created once, when
// the request is registered, and is immutable afterwards.
//
// Invariants:
//   - the identity is the one assigned by the order source
//   - exactly one owning truck
//   - the requester is NoUser when the request named nobody
//   - zero or more items
type Package struct {
	id          kernel.PackageID
	truckID     kernel.TruckID
	warehouseID kernel.WarehouseID
	requester   kernel.UserID
	destination kernel.Location
	items       []Item

	isConstructed bool
}

// New creates a package. A nil requester is stored as kernel.NoUser.
//
// Example:
//
//	book, _ := parcel.NewItem("book", 2)
//	pkg, err := parcel.New(42, 3, 7, nil, kernel.NewLocation(10, 4), []parcel.Item{book})
func New(
	id kernel.PackageID,
	truckID kernel.TruckID,
	warehouseID kernel.WarehouseID,
	requester *kernel.UserID,
	destination kernel.Location,
	items []Item,
) (*Package, error) {
	if truckID <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("truck id", truckID, 1, "max int32")
	}
	if err := destination.Validate(); err != nil {
		return nil, err
	}

	user := kernel.NoUser
	if requester != nil {
		user = *requester
	}

	return &Package{
		id:            id,
		truckID:       truckID,
		warehouseID:   warehouseID,
		requester:     user,
		destination:   destination,
		items:         slices.Clone(items),
		isConstructed: true,
	}, nil
}

// Validate ensures the package was built by New.
func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}
	return nil
}

// ID returns the identity assigned by the order source.
func (p *Package) ID() kernel.PackageID {
	return p.id
}

// TruckID returns the owning truck.
func (p *Package) TruckID() kernel.TruckID {
	return p.truckID
}

// WarehouseID returns the warehouse the package is picked up from.
func (p *Package) WarehouseID() kernel.WarehouseID {
	return p.warehouseID
}

// Requester returns the requesting user, or kernel.NoUser.
func (p *Package) Requester() kernel.UserID {
	return p.requester
}

// Destination returns the delivery location.
func (p *Package) Destination() kernel.Location {
	return p.destination
}

// Items returns a copy of the line items.
func (p *Package) Items() []Item {
	return slices.Clone(p.items)
}

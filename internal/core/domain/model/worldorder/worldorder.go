package worldorder

import (
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"
)

// ErrWorldOrderIsNotConstructed is returned by Validate for orders not built by New or Restore.
var ErrWorldOrderIsNotConstructed = errors.New("WorldOrder must be created via New or Restore")

// WorldOrder records one command issued to the world. Sequence numbers are
// assigned by the store in creation order and are never reused.
type WorldOrder struct {
	seqNo       kernel.SeqNo
	kind        Kind
	truckID     kernel.TruckID
	packageID   kernel.PackageID
	warehouseID kernel.WarehouseID

	isConstructed bool
}

// New creates an order that has no sequence number until it is persisted.
func New(
	kind Kind,
	truckID kernel.TruckID,
	packageID kernel.PackageID,
	warehouseID kernel.WarehouseID,
) (*WorldOrder, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if truckID <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("truck id", truckID, 1, "max int32")
	}

	return &WorldOrder{
		kind:          kind,
		truckID:       truckID,
		packageID:     packageID,
		warehouseID:   warehouseID,
		isConstructed: true,
	}, nil
}

// Restore rebuilds a persisted order.
func Restore(
	seqNo kernel.SeqNo,
	kind Kind,
	truckID kernel.TruckID,
	packageID kernel.PackageID,
	warehouseID kernel.WarehouseID,
) (*WorldOrder, error) {
	if seqNo <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("sequence number", seqNo, 1, "max int64")
	}

	order, err := New(kind, truckID, packageID, warehouseID)
	if err != nil {
		return nil, err
	}
	order.seqNo = seqNo
	return order, nil
}

// Validate ensures the order was built by a constructor.
func (o *WorldOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrWorldOrderIsNotConstructed
	}
	return nil
}

// SeqNo returns the store-assigned sequence number, zero before the first save.
func (o *WorldOrder) SeqNo() kernel.SeqNo {
	return o.seqNo
}

// Kind returns the order kind.
func (o *WorldOrder) Kind() Kind {
	return o.kind
}

// TruckID returns the truck the command addresses.
func (o *WorldOrder) TruckID() kernel.TruckID {
	return o.truckID
}

// PackageID returns the package the command serves.
func (o *WorldOrder) PackageID() kernel.PackageID {
	return o.packageID
}

// WarehouseID returns the warehouse the truck is sent to.
func (o *WorldOrder) WarehouseID() kernel.WarehouseID {
	return o.warehouseID
}

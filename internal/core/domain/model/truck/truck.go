package truck

import (
	"errors"
	"fmt"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"
)

// ErrTruckIsNotConstructed is returned by Validate for trucks not built by New or Restore.
var ErrTruckIsNotConstructed = errors.New("Truck must be created via New or Restore")

// Truck is the aggregate root for a unit of delivery capacity.
//
// A Truck built by New has no identity yet; the repository assigns one when it is
// first persisted and returns the restored aggregate. It belongs to no world until
// JoinWorld is called with the identity the world simulator returned.
type Truck struct {
	id            kernel.TruckID
	worldID       kernel.WorldID
	inWorld       bool
	location      kernel.Location
	status        Status
	isConstructed bool
}

// New creates an Idle truck at loc, not yet persisted.
func New(loc kernel.Location) (*Truck, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	return &Truck{
		location:      loc,
		status:        Idle,
		isConstructed: true,
	}, nil
}

// Restore rebuilds a persisted truck.
func Restore(id kernel.TruckID, loc kernel.Location, status Status) (*Truck, error) {
	if id <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("truck id", id, 1, "max int32")
	}
	if err := errors.Join(loc.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Truck{
		id:            id,
		location:      loc,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the truck was built by a constructor.
func (t *Truck) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTruckIsNotConstructed
	}
	return nil
}

// ID returns the store-assigned identity, zero before the first save.
func (t *Truck) ID() kernel.TruckID {
	return t.id
}

// WorldID returns the world the truck belongs to. ok is false until JoinWorld.
func (t *Truck) WorldID() (id kernel.WorldID, ok bool) {
	return t.worldID, t.inWorld
}

// JoinWorld places the truck in a world. A truck never moves between worlds.
func (t *Truck) JoinWorld(id kernel.WorldID) error {
	if t.inWorld && t.worldID != id {
		return errs.NewValueIsInvalidErrorWithCause(
			"world id",
			fmt.Errorf("truck %d already belongs to world %d", t.id, t.worldID),
		)
	}

	t.worldID = id
	t.inWorld = true
	return nil
}

// Location returns the last known position.
func (t *Truck) Location() kernel.Location {
	return t.location
}

// Status returns the current status.
func (t *Truck) Status() Status {
	return t.status
}

// Allocate reserves an Idle truck for a pickup.
func (t *Truck) Allocate() error {
	next, err := t.status.Allocate()
	if err != nil {
		return fmt.Errorf("allocate truck %d: %w", t.id, err)
	}
	t.status = next
	return nil
}

// Release returns a Traveling truck to Idle after its pickup was rejected.
func (t *Truck) Release() error {
	next, err := t.status.Release()
	if err != nil {
		return fmt.Errorf("release truck %d: %w", t.id, err)
	}
	t.status = next
	return nil
}

// Finish applies a completion reported by the world: the truck stopped at loc
// and is now Idle or ArriveWarehouse.
func (t *Truck) Finish(loc kernel.Location, status Status) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	if status != Idle && status != ArriveWarehouse {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a completion status", status),
		)
	}

	t.location = loc
	t.status = status
	return nil
}

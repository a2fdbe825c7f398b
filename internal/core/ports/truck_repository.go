// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories and unit of work for the store, and gateways for
// the two peers.
package ports

import (
	"context"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"
)

// TruckRepository defines the persistence contract for truck aggregates.
type TruckRepository interface {
	// Add persists a new truck and returns it with its store-assigned identity.
	Add(ctx context.Context, aggregate *truck.Truck) (*truck.Truck, error)

	// Update persists the world, location and status of an existing truck.
	Update(ctx context.Context, aggregate *truck.Truck) error

	// Get retrieves a truck by identity.
	Get(ctx context.Context, id kernel.TruckID) (*truck.Truck, error)

	// AcquireIdle selects one Idle truck of the given world and locks its row until
	// the surrounding transaction ends. Rows locked by concurrent transactions are
	// skipped, so two transactions never acquire the same truck.
	// Returns errs.ErrObjectNotFound when no unlocked Idle truck exists.
	AcquireIdle(ctx context.Context, worldID kernel.WorldID) (*truck.Truck, error)
}

package ports

import (
	"context"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/worldorder"
)

// WorldOrderRepository defines the persistence contract for world orders.
type WorldOrderRepository interface {
	// Add persists a new order and returns it with its store-assigned sequence number.
	// Sequence numbers increase strictly in creation order.
	Add(ctx context.Context, aggregate *worldorder.WorldOrder) (*worldorder.WorldOrder, error)

	// Get retrieves an order by sequence number.
	// Returns errs.ErrObjectNotFound when no order carries it.
	Get(ctx context.Context, seqNo kernel.SeqNo) (*worldorder.WorldOrder, error)
}

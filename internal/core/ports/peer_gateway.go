package ports

import (
	"context"

	"ups/internal/core/domain/model/kernel"
)

// PeerGateway is the outbound side of the order-source connection.
type PeerGateway interface {
	// AnnounceWorld tells the order source which world to join.
	// It fails only after every retry attempt failed.
	AnnounceWorld(ctx context.Context, worldID kernel.WorldID) error
}

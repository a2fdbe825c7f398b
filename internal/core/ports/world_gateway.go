package ports

import (
	"context"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"
	"ups/internal/core/domain/model/worldorder"
)

// WorldGateway is the connection to the world simulator.
// Implementations serialize calls so that requests and responses on a shared
// connection never interleave.
type WorldGateway interface {
	// Connect creates a new world populated with the given persisted trucks and
	// returns its identity. It fails only after every retry attempt failed.
	Connect(ctx context.Context, fleet []*truck.Truck) (kernel.WorldID, error)

	// Pickup sends the truck of a persisted order to the order's warehouse, tagging
	// the command with the order's sequence number.
	Pickup(ctx context.Context, order *worldorder.WorldOrder) (WorldReport, error)
}

// WorldReport is what the world answered to a command batch.
type WorldReport struct {
	Completions []Completion
	Errors      []CommandError
}

// Completion reports a truck that finished moving.
type Completion struct {
	TruckID  kernel.TruckID
	Location kernel.Location
	Status   truck.Status
	SeqNo    kernel.SeqNo
}

// CommandError is a command the world rejected. SeqNo is the error's own sequence
// number; OriginSeqNo is the sequence number of the command it refers to.
type CommandError struct {
	Message     string
	SeqNo       kernel.SeqNo
	OriginSeqNo kernel.SeqNo
}

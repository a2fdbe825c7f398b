package commands

import (
	"context"
	"log/slog"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"
	"ups/internal/core/ports"
)

// CreateWorldCommandHandler stands up a new world: it stores the initial fleet,
// every truck Idle at the origin, asks the world simulator to create a world
// containing those trucks and records the world on every truck.
//
// The fleet transaction stays open until the world answers, so a failed Connect
// leaves nothing in the store. Trucks of earlier runs belong to their own worlds
// and are never allocated in the new one.
//
// A failed Connect means the world could not be created within the retry bound;
// the error wraps errs.ErrRetryExhausted and startup must not continue.
type CreateWorldCommandHandler struct {
	uowFactory FleetUoWFactory
	world      ports.WorldGateway
	logger     *slog.Logger
}

// NewCreateWorldCommandHandler creates the handler.
func NewCreateWorldCommandHandler(
	uowFactory FleetUoWFactory,
	world ports.WorldGateway,
	logger *slog.Logger,
) CreateWorldCommandHandler {
	return CreateWorldCommandHandler{
		uowFactory: uowFactory,
		world:      world,
		logger:     logger.With("component", "create_world"),
	}
}

// Handle persists the fleet and creates the world. It returns the world identity.
func (h CreateWorldCommandHandler) Handle(ctx context.Context, cmd CreateWorldCommand) (kernel.WorldID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TruckRepository()
	fleet, err := h.addFleet(ctx, repo, cmd.TruckCount())
	if err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "Creating a new world", "trucks", len(fleet))
	worldID, err := h.world.Connect(ctx, fleet)
	if err != nil {
		return 0, err
	}

	for _, t := range fleet {
		if err := t.JoinWorld(worldID); err != nil {
			return 0, err
		}
		if err := repo.Update(ctx, t); err != nil {
			return 0, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "World created", "world_id", worldID)
	return worldID, nil
}

func (h CreateWorldCommandHandler) addFleet(
	ctx context.Context,
	repo ports.TruckRepository,
	count int,
) ([]*truck.Truck, error) {
	fleet := make([]*truck.Truck, 0, count)
	for range count {
		fresh, err := truck.New(kernel.Origin())
		if err != nil {
			return nil, err
		}

		saved, err := repo.Add(ctx, fresh)
		if err != nil {
			return nil, err
		}

		h.logger.DebugContext(ctx, "Truck added", "truck_id", saved.ID())
		fleet = append(fleet, saved)
	}

	return fleet, nil
}

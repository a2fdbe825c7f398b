package commands

import (
	"context"
)

// ReleaseTruckCommandHandler moves a Traveling truck back to Idle in its own transaction.
type ReleaseTruckCommandHandler struct {
	uowFactory FleetUoWFactory
}

// NewReleaseTruckCommandHandler creates the handler.
func NewReleaseTruckCommandHandler(uowFactory FleetUoWFactory) ReleaseTruckCommandHandler {
	return ReleaseTruckCommandHandler{uowFactory: uowFactory}
}

// Handle fails with errs.ErrValueIsInvalid when the truck is not Traveling.
func (h ReleaseTruckCommandHandler) Handle(ctx context.Context, cmd ReleaseTruckCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TruckRepository()
	t, err := repo.Get(ctx, cmd.TruckID())
	if err != nil {
		return err
	}

	if err := t.Release(); err != nil {
		return err
	}

	if err := repo.Update(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

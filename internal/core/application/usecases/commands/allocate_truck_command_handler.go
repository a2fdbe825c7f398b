package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"
)

// ErrNoIdleTruck is returned when every truck stayed busy for the whole polling window.
var ErrNoIdleTruck = errors.New("no idle truck available")

// CapacityPolicy controls how long allocation waits for a truck to become Idle.
// PollAttempts is the number of extra attempts after the first one; zero means a
// saturated fleet is reported immediately.
type CapacityPolicy struct {
	PollInterval time.Duration
	PollAttempts int
}

// AllocateTruckCommandHandler selects one Idle truck and moves it to Traveling.
//
// Each attempt runs in its own transaction. The truck row is locked with
// SKIP LOCKED, so concurrent allocations never receive the same truck and a busy
// row never blocks another allocation.
type AllocateTruckCommandHandler struct {
	uowFactory FleetUoWFactory
	policy     CapacityPolicy
	logger     *slog.Logger
}

// NewAllocateTruckCommandHandler creates the handler.
func NewAllocateTruckCommandHandler(
	uowFactory FleetUoWFactory,
	policy CapacityPolicy,
	logger *slog.Logger,
) AllocateTruckCommandHandler {
	if policy.PollAttempts < 0 {
		policy.PollAttempts = 0
	}

	return AllocateTruckCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     logger.With("component", "allocator"),
	}
}

// Handle returns the identity of the allocated truck, or ErrNoIdleTruck once the
// polling window is spent.
func (h AllocateTruckCommandHandler) Handle(ctx context.Context, cmd AllocateTruckCommand) (kernel.TruckID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	op := func() (kernel.TruckID, error) {
		id, err := h.allocateOnce(ctx, cmd.WorldID())
		if errors.Is(err, ErrNoIdleTruck) {
			return 0, err
		}
		if err != nil {
			return 0, backoff.Permanent(err)
		}
		return id, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(h.policy.PollInterval), uint64(h.policy.PollAttempts)),
		ctx,
	)

	notify := func(_ error, wait time.Duration) {
		h.logger.DebugContext(ctx, "Fleet saturated, waiting for an idle truck", "retry_in", wait)
	}

	id, err := backoff.RetryNotifyWithData[kernel.TruckID](op, policy, notify)
	if err != nil {
		if errors.Is(err, ErrNoIdleTruck) && ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, err
	}

	h.logger.InfoContext(ctx, "Truck allocated", "truck_id", id)
	return id, nil
}

func (h AllocateTruckCommandHandler) allocateOnce(ctx context.Context, worldID kernel.WorldID) (kernel.TruckID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TruckRepository()
	idle, err := repo.AcquireIdle(ctx, worldID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return 0, ErrNoIdleTruck
		}
		return 0, err
	}

	if err := idle.Allocate(); err != nil {
		return 0, err
	}

	if err := repo.Update(ctx, idle); err != nil {
		return 0, err
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return idle.ID(), nil
}

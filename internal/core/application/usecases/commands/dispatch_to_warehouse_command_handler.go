package commands

import (
	"context"
	"log/slog"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/worldorder"
	"ups/internal/core/ports"
	"ups/internal/pkg/metrics"
)

// DispatchToWarehouseCommandHandler issues a pickup command to the world.
//
// The world order is committed before the command is sent, so its sequence
// number is durable even when the exchange fails. Errors the world reports are
// logged and never fail the dispatch. The world may report an error in the
// response to a later batch, so each error is mapped back through its origin
// sequence number to the order it rejected, and that order's truck is returned
// to Idle. The package and order rows stay for audit.
//
// Completions carried by the same response are applied to the fleet.
type DispatchToWarehouseCommandHandler struct {
	uowFactory OrderUoWFactory
	world      ports.WorldGateway
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewDispatchToWarehouseCommandHandler creates the handler. m may be nil.
func NewDispatchToWarehouseCommandHandler(
	uowFactory OrderUoWFactory,
	world ports.WorldGateway,
	m *metrics.Metrics,
	logger *slog.Logger,
) DispatchToWarehouseCommandHandler {
	return DispatchToWarehouseCommandHandler{
		uowFactory: uowFactory,
		world:      world,
		metrics:    m,
		logger:     logger.With("component", "order_coordinator"),
	}
}

// Handle returns the sequence number of the issued order.
func (h DispatchToWarehouseCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchToWarehouseCommand,
) (kernel.SeqNo, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	order, err := h.createOrder(ctx, cmd)
	if err != nil {
		return 0, err
	}

	report, err := h.world.Pickup(ctx, order)
	if err != nil {
		return order.SeqNo(), err
	}

	h.metrics.RecordRemoteErrors(len(report.Errors))

	released := make(map[kernel.SeqNo]bool, len(report.Errors))
	for _, remote := range report.Errors {
		h.logger.ErrorContext(ctx, "World rejected command",
			"err", remote.Message,
			"seqnum", remote.SeqNo,
			"origin_seqnum", remote.OriginSeqNo,
		)
		if remote.OriginSeqNo <= 0 || released[remote.OriginSeqNo] {
			continue
		}
		released[remote.OriginSeqNo] = true
		h.releaseRejected(ctx, remote.OriginSeqNo, order)
	}

	h.applyCompletions(ctx, report.Completions)

	return order.SeqNo(), nil
}

func (h DispatchToWarehouseCommandHandler) createOrder(
	ctx context.Context,
	cmd DispatchToWarehouseCommand,
) (*worldorder.WorldOrder, error) {
	order, err := worldorder.New(worldorder.Delivery, cmd.TruckID(), cmd.PackageID(), cmd.WarehouseID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	saved, err := uow.WorldOrderRepository().Add(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}

func (h DispatchToWarehouseCommandHandler) releaseRejected(
	ctx context.Context,
	origin kernel.SeqNo,
	issued *worldorder.WorldOrder,
) {
	truckID, err := h.releaseOrderTruck(ctx, origin, issued)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to release truck after rejected pickup",
			"origin_seqnum", origin,
			"error", err,
		)
		return
	}

	h.logger.InfoContext(ctx, "Truck released after rejected pickup",
		"truck_id", truckID,
		"origin_seqnum", origin,
	)
}

// releaseOrderTruck returns the truck of the order with sequence number origin
// to Idle. The issued order is known already and is not read back.
func (h DispatchToWarehouseCommandHandler) releaseOrderTruck(
	ctx context.Context,
	origin kernel.SeqNo,
	issued *worldorder.WorldOrder,
) (kernel.TruckID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	truckID := issued.TruckID()
	if origin != issued.SeqNo() {
		rejected, err := uow.WorldOrderRepository().Get(ctx, origin)
		if err != nil {
			return 0, err
		}
		truckID = rejected.TruckID()
	}

	repo := uow.TruckRepository()
	t, err := repo.Get(ctx, truckID)
	if err != nil {
		return truckID, err
	}

	if err := t.Release(); err != nil {
		return truckID, err
	}

	if err := repo.Update(ctx, t); err != nil {
		return truckID, err
	}

	return truckID, uow.Commit(ctx)
}

// applyCompletions updates every reported truck in its own transaction. A failed
// update is logged and does not affect the others.
func (h DispatchToWarehouseCommandHandler) applyCompletions(ctx context.Context, completions []ports.Completion) {
	for _, c := range completions {
		if err := h.finishTruck(ctx, c); err != nil {
			h.logger.WarnContext(ctx, "Failed to apply completion",
				"truck_id", c.TruckID,
				"status", c.Status.String(),
				"error", err,
			)
			continue
		}

		h.logger.InfoContext(ctx, "Truck finished",
			"truck_id", c.TruckID,
			"location", c.Location.String(),
			"status", c.Status.String(),
		)
	}
}

func (h DispatchToWarehouseCommandHandler) finishTruck(ctx context.Context, c ports.Completion) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TruckRepository()
	t, err := repo.Get(ctx, c.TruckID)
	if err != nil {
		return err
	}

	if err := t.Finish(c.Location, c.Status); err != nil {
		return err
	}

	if err := repo.Update(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

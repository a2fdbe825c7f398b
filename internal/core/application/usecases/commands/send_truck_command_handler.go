package commands

import (
	"context"
	"errors"
	"log/slog"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/pkg/errs"
	"ups/internal/pkg/metrics"
)

// Collaborators of SendTruckCommandHandler. The allocate, register, release and
// dispatch handlers of this package satisfy them.
type (
	TruckAllocator interface {
		Handle(ctx context.Context, cmd AllocateTruckCommand) (kernel.TruckID, error)
	}

	TruckReleaser interface {
		Handle(ctx context.Context, cmd ReleaseTruckCommand) error
	}

	PackageRegistrar interface {
		Handle(ctx context.Context, cmd RegisterPackageCommand) (kernel.PackageID, error)
	}

	WarehouseDispatcher interface {
		Handle(ctx context.Context, cmd DispatchToWarehouseCommand) (kernel.SeqNo, error)
	}
)

// Acknowledgement tells the order source which truck is heading to its warehouse.
type Acknowledgement struct {
	TruckID     kernel.TruckID
	PackageID   kernel.PackageID
	WarehouseID kernel.WarehouseID
}

// SendTruckCommandHandler serves one delivery request: it allocates a truck of
// the current world, registers the package against it and dispatches the truck
// to the warehouse.
//
// A truck is Traveling only while a request holds it. When registration or
// dispatch fails after the allocation, the truck is released back to Idle. The
// exception is an exhausted world exchange, which ends the process.
type SendTruckCommandHandler struct {
	worldID    kernel.WorldID
	allocator  TruckAllocator
	registrar  PackageRegistrar
	releaser   TruckReleaser
	dispatcher WarehouseDispatcher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewSendTruckCommandHandler creates the handler for requests against worldID. m may be nil.
func NewSendTruckCommandHandler(
	worldID kernel.WorldID,
	allocator TruckAllocator,
	registrar PackageRegistrar,
	releaser TruckReleaser,
	dispatcher WarehouseDispatcher,
	m *metrics.Metrics,
	logger *slog.Logger,
) SendTruckCommandHandler {
	return SendTruckCommandHandler{
		worldID:    worldID,
		allocator:  allocator,
		releaser:   releaser,
		registrar:  registrar,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger.With("component", "send_truck"),
	}
}

// Handle returns the acknowledgement to send back to the order source.
// ErrNoIdleTruck means the request was not served and nothing was stored.
func (h SendTruckCommandHandler) Handle(ctx context.Context, cmd SendTruckCommand) (Acknowledgement, error) {
	if err := cmd.Validate(); err != nil {
		return Acknowledgement{}, err
	}

	ack, err := h.handle(ctx, cmd)
	switch {
	case err == nil:
		h.metrics.RecordRequest(metrics.OutcomeDispatched)
	case errors.Is(err, ErrNoIdleTruck):
		h.metrics.RecordRequest(metrics.OutcomeNoCapacity)
	default:
		h.metrics.RecordRequest(metrics.OutcomeFailed)
	}

	return ack, err
}

func (h SendTruckCommandHandler) handle(ctx context.Context, cmd SendTruckCommand) (Acknowledgement, error) {
	truckID, err := h.allocator.Handle(ctx, NewAllocateTruckCommand(h.worldID))
	if err != nil {
		return Acknowledgement{}, err
	}

	packageID, seqNo, err := h.deliver(ctx, cmd, truckID)
	if err != nil {
		if !errors.Is(err, errs.ErrRetryExhausted) {
			h.release(ctx, truckID, err)
		}
		return Acknowledgement{}, err
	}

	h.logger.InfoContext(ctx, "Truck dispatched",
		"truck_id", truckID,
		"package_id", packageID,
		"warehouse_id", cmd.WarehouseID(),
		"seqnum", seqNo,
	)

	return Acknowledgement{
		TruckID:     truckID,
		PackageID:   packageID,
		WarehouseID: cmd.WarehouseID(),
	}, nil
}

// deliver registers the package against an allocated truck and sends the truck
// to the warehouse.
func (h SendTruckCommandHandler) deliver(
	ctx context.Context,
	cmd SendTruckCommand,
	truckID kernel.TruckID,
) (kernel.PackageID, kernel.SeqNo, error) {
	register, err := NewRegisterPackageCommand(
		cmd.PackageID(),
		truckID,
		cmd.WarehouseID(),
		cmd.Requester(),
		cmd.Destination(),
		cmd.Items(),
	)
	if err != nil {
		return 0, 0, err
	}

	packageID, err := h.registrar.Handle(ctx, register)
	if err != nil {
		return 0, 0, err
	}

	dispatch, err := NewDispatchToWarehouseCommand(truckID, cmd.WarehouseID(), packageID)
	if err != nil {
		return 0, 0, err
	}

	seqNo, err := h.dispatcher.Handle(ctx, dispatch)
	if err != nil {
		return 0, 0, err
	}

	return packageID, seqNo, nil
}

// release ignores cancellation of ctx. A failed release is logged only; the
// caller reports the original cause.
func (h SendTruckCommandHandler) release(ctx context.Context, truckID kernel.TruckID, cause error) {
	ctx = context.WithoutCancel(ctx)

	cmd, err := NewReleaseTruckCommand(truckID)
	if err == nil {
		err = h.releaser.Handle(ctx, cmd)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to release truck of a failed request",
			"truck_id", truckID,
			"cause", cause,
			"error", err,
		)
		return
	}

	h.logger.WarnContext(ctx, "Truck released after a failed request",
		"truck_id", truckID,
		"cause", cause,
	)
}

package commands

import (
	"context"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/parcel"
)

// RegisterPackageCommandHandler stores a package and its items in one transaction.
type RegisterPackageCommandHandler struct {
	uowFactory PackageUoWFactory
}

// NewRegisterPackageCommandHandler creates the handler.
func NewRegisterPackageCommandHandler(uowFactory PackageUoWFactory) RegisterPackageCommandHandler {
	return RegisterPackageCommandHandler{uowFactory: uowFactory}
}

// Handle persists the package and returns the identity the order source assigned.
func (h RegisterPackageCommandHandler) Handle(ctx context.Context, cmd RegisterPackageCommand) (kernel.PackageID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	pkg, err := parcel.New(
		cmd.PackageID(),
		cmd.TruckID(),
		cmd.WarehouseID(),
		cmd.Requester(),
		cmd.Destination(),
		cmd.Items(),
	)
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PackageRepository().Add(ctx, pkg); err != nil {
		return 0, err
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return pkg.ID(), nil
}

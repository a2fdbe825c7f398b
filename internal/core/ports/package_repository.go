package ports

import (
	"context"

	"ups/internal/core/domain/model/parcel"
)

// PackageRepository defines the persistence contract for package aggregates.
type PackageRepository interface {
	// Add persists a package together with one row per item.
	Add(ctx context.Context, aggregate *parcel.Package) error
}

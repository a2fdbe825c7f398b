package postgres

import (
	"context"

	"ups/internal/adapters/out/postgres/packagerepo"
	"ups/internal/adapters/out/postgres/truckrepo"
	"ups/internal/adapters/out/postgres/worldorderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of the dispatch store.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&truckrepo.TruckDTO{},
		&packagerepo.PackageDTO{},
		&packagerepo.ItemDTO{},
		&worldorderrepo.WorldOrderDTO{},
	)
}

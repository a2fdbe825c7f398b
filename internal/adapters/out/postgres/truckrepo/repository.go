package truckrepo

import (
	"context"
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"
	"ups/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTruckRepository implements TruckRepository using GORM.
type GormTruckRepository struct {
	db *gorm.DB
}

// NewGormTruckRepository creates a new GORM truck repository.
func NewGormTruckRepository(db *gorm.DB) *GormTruckRepository {
	return &GormTruckRepository{db: db}
}

// Add inserts a new truck and returns it with the identity assigned by the database.
func (r *GormTruckRepository) Add(ctx context.Context, aggregate *truck.Truck) (*truck.Truck, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Update saves the world, location and status of an existing truck.
func (r *GormTruckRepository) Update(ctx context.Context, aggregate *truck.Truck) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	// map form so that zero coordinates are written
	result := r.db.WithContext(ctx).Model(&TruckDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"world_id":   dto.WorldID,
		"location_x": dto.Location.X,
		"location_y": dto.Location.Y,
		"status":     dto.Status,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("truck", dto.ID)
	}

	return nil
}

// Get retrieves a truck by ID.
func (r *GormTruckRepository) Get(ctx context.Context, id kernel.TruckID) (*truck.Truck, error) {
	var dto TruckDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", int32(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("truck", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// AcquireIdle selects the lowest-numbered Idle truck of the world with
// SELECT ... FOR UPDATE SKIP LOCKED. The row stays locked until the caller's
// transaction commits or rolls back, and concurrent callers skip it instead of
// waiting on it, so each one either gets a distinct truck or finds none.
//
// Must be called inside a transaction; outside one the lock is released immediately.
func (r *GormTruckRepository) AcquireIdle(ctx context.Context, worldID kernel.WorldID) (*truck.Truck, error) {
	var dto TruckDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("world_id = ? AND status = ?", int64(worldID), int(truck.Idle)).
		Order("id").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("truck", truck.Idle.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

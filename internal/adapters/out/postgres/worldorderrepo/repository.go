package worldorderrepo

import (
	"context"
	"errors"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/worldorder"
	"ups/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorldOrderRepository implements WorldOrderRepository using GORM.
type GormWorldOrderRepository struct {
	db *gorm.DB
}

// NewGormWorldOrderRepository creates a new GORM world order repository.
func NewGormWorldOrderRepository(db *gorm.DB) *GormWorldOrderRepository {
	return &GormWorldOrderRepository{db: db}
}

// Add inserts the order and returns it carrying the sequence number drawn from
// the table's sequence.
func (r *GormWorldOrderRepository) Add(
	ctx context.Context,
	aggregate *worldorder.WorldOrder,
) (*worldorder.WorldOrder, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	dto.SeqNo = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Get retrieves an order by sequence number.
func (r *GormWorldOrderRepository) Get(ctx context.Context, seqNo kernel.SeqNo) (*worldorder.WorldOrder, error) {
	var dto WorldOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "seq_no = ?", int64(seqNo)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("world order", seqNo)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Package worldorderrepo maps world orders to the world_orders table, whose
// bigserial key provides the command sequence numbers.
package worldorderrepo

import (
	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/worldorder"
)

// WorldOrderDTO represents the database structure for persisting world orders.
type WorldOrderDTO struct {
	SeqNo       int64 `gorm:"primaryKey;autoIncrement"`
	Kind        int   `gorm:"type:smallint;not null"`
	TruckID     int32 `gorm:"not null;index"`
	PackageID   int64 `gorm:"not null;index"`
	WarehouseID int32 `gorm:"not null"`
}

// TableName specifies the database table name for world orders.
func (WorldOrderDTO) TableName() string {
	return "world_orders"
}

func fromDomain(aggregate *worldorder.WorldOrder) WorldOrderDTO {
	return WorldOrderDTO{
		SeqNo:       int64(aggregate.SeqNo()),
		Kind:        int(aggregate.Kind()),
		TruckID:     int32(aggregate.TruckID()),
		PackageID:   int64(aggregate.PackageID()),
		WarehouseID: int32(aggregate.WarehouseID()),
	}
}

func toDomain(dto WorldOrderDTO) (*worldorder.WorldOrder, error) {
	return worldorder.Restore(
		kernel.SeqNo(dto.SeqNo),
		worldorder.Kind(dto.Kind),
		kernel.TruckID(dto.TruckID),
		kernel.PackageID(dto.PackageID),
		kernel.WarehouseID(dto.WarehouseID),
	)
}

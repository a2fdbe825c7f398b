// Package truckrepo maps the truck aggregate to the trucks table and implements
// the locking acquisition of idle trucks.
package truckrepo

import (
	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"
)

// TruckDTO represents the database structure for persisting truck aggregates.
// The identity is a serial so that the store hands out truck ids.
type TruckDTO struct {
	ID       int32       `gorm:"primaryKey;autoIncrement"`
	WorldID  *int64      `gorm:"index"`
	Location LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Status   int         `gorm:"type:smallint;not null;index"`
}

// TableName specifies the database table name for truck entities.
func (TruckDTO) TableName() string {
	return "trucks"
}

// LocationDTO represents the embedded truck position.
type LocationDTO struct {
	X int32 `gorm:"not null"`
	Y int32 `gorm:"not null"`
}

func fromDomain(aggregate *truck.Truck) TruckDTO {
	dto := TruckDTO{
		ID: int32(aggregate.ID()),
		Location: LocationDTO{
			X: aggregate.Location().X(),
			Y: aggregate.Location().Y(),
		},
		Status: int(aggregate.Status()),
	}
	if worldID, ok := aggregate.WorldID(); ok {
		id := int64(worldID)
		dto.WorldID = &id
	}
	return dto
}

func toDomain(dto TruckDTO) (*truck.Truck, error) {
	t, err := truck.Restore(
		kernel.TruckID(dto.ID),
		kernel.NewLocation(dto.Location.X, dto.Location.Y),
		truck.Status(dto.Status),
	)
	if err != nil {
		return nil, err
	}

	if dto.WorldID != nil {
		if err := t.JoinWorld(kernel.WorldID(*dto.WorldID)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

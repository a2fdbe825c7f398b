// Package packagerepo maps the package aggregate and its items to the packages
// and items tables.
package packagerepo

import (
	"ups/internal/core/domain/model/parcel"
)

// PackageDTO represents the database structure for persisting package aggregates.
// The identity comes from the order source, so it is not generated.
type PackageDTO struct {
	ID          int64          `gorm:"primaryKey;autoIncrement:false"`
	TruckID     int32          `gorm:"not null;index"`
	WarehouseID int32          `gorm:"not null"`
	UserID      int64          `gorm:"not null"`
	Destination DestinationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Items       []ItemDTO      `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for package entities.
func (PackageDTO) TableName() string {
	return "packages"
}

// DestinationDTO represents the embedded delivery location.
type DestinationDTO struct {
	X int32 `gorm:"not null"`
	Y int32 `gorm:"not null"`
}

// ItemDTO represents one line item of a package.
type ItemDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	PackageID   int64  `gorm:"not null;index"`
	Description string `gorm:"type:text;not null"`
	Count       int32  `gorm:"not null"`
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "items"
}

func fromDomain(aggregate *parcel.Package) PackageDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			PackageID:   int64(aggregate.ID()),
			Description: item.Description(),
			Count:       item.Count(),
		})
	}

	return PackageDTO{
		ID:          int64(aggregate.ID()),
		TruckID:     int32(aggregate.TruckID()),
		WarehouseID: int32(aggregate.WarehouseID()),
		UserID:      int64(aggregate.Requester()),
		Destination: DestinationDTO{
			X: aggregate.Destination().X(),
			Y: aggregate.Destination().Y(),
		},
		Items: items,
	}
}

package queries

import (
	"context"

	"ups/internal/core/domain/model/kernel"
	"ups/internal/core/domain/model/truck"

	"gorm.io/gorm"
)

// GetAllTrucksQueryHandler reads the fleet straight from the trucks table.
type GetAllTrucksQueryHandler struct {
	db *gorm.DB
}

// NewGetAllTrucksQueryHandler creates a handler for fleet queries.
func NewGetAllTrucksQueryHandler(db *gorm.DB) GetAllTrucksQueryHandler {
	return GetAllTrucksQueryHandler{db: db}
}

// Handle returns every truck of the query's world ordered by identity.
func (h GetAllTrucksQueryHandler) Handle(
	ctx context.Context,
	query GetAllTrucksQuery,
) ([]GetAllTrucksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	trucks := make([]GetAllTrucksQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			location_x,
			location_y,
			status
		FROM trucks
		WHERE world_id = ?
		ORDER BY id
	`, int64(query.WorldID())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                   int32
			locationX, locationY int32
			status               int
		)

		if err = rows.Scan(&id, &locationX, &locationY, &status); err != nil {
			return nil, err
		}

		trucks = append(trucks, GetAllTrucksQueryResponse{
			ID:       kernel.TruckID(id),
			Location: kernel.NewLocation(locationX, locationY),
			Status:   truck.Status(status),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trucks, nil
}

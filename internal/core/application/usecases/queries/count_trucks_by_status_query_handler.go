package queries

import (
	"context"

	"ups/internal/core/domain/model/truck"

	"gorm.io/gorm"
)

// CountTrucksByStatusQueryHandler groups the fleet by status.
type CountTrucksByStatusQueryHandler struct {
	db *gorm.DB
}

func NewCountTrucksByStatusQueryHandler(db *gorm.DB) CountTrucksByStatusQueryHandler {
	return CountTrucksByStatusQueryHandler{db: db}
}

// Handle returns the number of trucks per status. Statuses with no trucks are
// reported with a zero count so gauges built from the result reset.
func (h CountTrucksByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountTrucksByStatusQuery,
) (map[truck.Status]int, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts := map[truck.Status]int{
		truck.Idle:            0,
		truck.Traveling:       0,
		truck.ArriveWarehouse: 0,
		truck.Loading:         0,
		truck.Delivering:      0,
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM trucks
		WHERE world_id = ?
		GROUP BY status
	`, int64(query.WorldID())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[truck.Status(status)] += count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
